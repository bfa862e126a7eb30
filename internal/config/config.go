// Package config loads CLI settings from the environment.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Prefix is the environment variable prefix, as in APITOAST_BASE_URL.
const Prefix = "APITOAST"

// NotifierNone disables notifications entirely.
const NotifierNone = "none"

// Config holds the CLI configuration.
type Config struct {
	BaseURL           string        `envconfig:"BASE_URL" default:"http://localhost:8080"`
	Token             string        `envconfig:"TOKEN"`
	WithToast         bool          `envconfig:"WITH_TOAST" default:"true"`
	DeduplicateToasts bool          `envconfig:"DEDUPLICATE_TOASTS" default:"true"`
	SuccessMessage    string        `envconfig:"SUCCESS_MESSAGE"`
	ErrorMessage      string        `envconfig:"ERROR_MESSAGE"`
	Position          string        `envconfig:"POSITION" default:"top-right"`
	Theme             string        `envconfig:"THEME"`
	Notifier          string        `envconfig:"NOTIFIER" default:"term"`
	Timeout           time.Duration `envconfig:"TIMEOUT" default:"30s"`
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"info"`
	Debug             bool          `envconfig:"DEBUG"`
}

// Load reads an optional .env file from the working directory and then
// parses APITOAST_* variables. Variables already set take precedence over
// the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env")
	}
	return FromEnv()
}

// FromEnv parses APITOAST_* variables without touching .env.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "process environment")
	}
	return &cfg, nil
}

// Level maps LogLevel to a zerolog level. Debug forces debug; unknown names
// fall back to info.
func (c *Config) Level() zerolog.Level {
	if c.Debug {
		return zerolog.DebugLevel
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
