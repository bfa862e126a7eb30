package config

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// consoleTimeFormat is short; CLI runs rarely span days.
const consoleTimeFormat = "15:04:05"

// InitLogger sends the global logger to stderr as plain console lines.
func InitLogger() {
	InitLoggerTo(os.Stderr)
}

// InitLoggerTo is InitLogger writing to w. Every line carries app=apitoast so
// CLI logs can be told apart from toasts sharing the stream.
func InitLoggerTo(w io.Writer) {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: consoleTimeFormat, NoColor: true}
	log.Logger = zerolog.New(out).With().Timestamp().Str("app", "apitoast").Logger()
}

// SetLogLevel sets the global log level.
func SetLogLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}
