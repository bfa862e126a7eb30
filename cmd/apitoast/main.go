// Command apitoast sends one request to a JSON API and reports the outcome
// as a terminal toast.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vaultsandbox/apitoast"
	"github.com/vaultsandbox/apitoast/auth"
	"github.com/vaultsandbox/apitoast/internal/config"
	"github.com/vaultsandbox/apitoast/notify"
	"github.com/vaultsandbox/apitoast/notify/term"
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// flags are the persistent command-line settings. Unset flags fall back to
// the APITOAST_* environment.
type flags struct {
	baseURL        string
	token          string
	headers        []string
	noToast        bool
	noDedupe       bool
	successMessage string
	errorMessage   string
	position       string
	theme          string
	debug          bool

	cfg *config.Config
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:           "apitoast",
		Short:         "Send authenticated JSON requests with toast notifications",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			f.merge(cmd, cfg)
			config.InitLoggerTo(cmd.ErrOrStderr())
			config.SetLogLevel(cfg.Level())
			log.Debug().Str("base_url", cfg.BaseURL).Str("notifier", cfg.Notifier).Msg("configuration loaded")
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&f.baseURL, "base-url", "", "Base URL of the API (env APITOAST_BASE_URL)")
	pf.StringVar(&f.token, "token", "", "Bearer token (env APITOAST_TOKEN)")
	pf.StringArrayVarP(&f.headers, "header", "H", nil, "Extra request header as 'Name: value' (repeatable)")
	pf.BoolVar(&f.noToast, "no-toast", false, "Disable notifications")
	pf.BoolVar(&f.noDedupe, "no-dedupe", false, "Keep previous notifications on screen")
	pf.StringVar(&f.successMessage, "success-message", "", "Text shown when the request succeeds")
	pf.StringVar(&f.errorMessage, "error-message", "", "Text shown when the request fails")
	pf.StringVar(&f.position, "position", "", "Toast position passed to the notifier")
	pf.StringVar(&f.theme, "theme", "", "Toast theme passed to the notifier")
	pf.BoolVarP(&f.debug, "debug", "d", false, "Enable debug logging and request dumps")

	rootCmd.AddCommand(newVerbCmd(f, http.MethodGet, false))
	rootCmd.AddCommand(newVerbCmd(f, http.MethodPost, true))
	rootCmd.AddCommand(newVerbCmd(f, http.MethodPut, true))
	rootCmd.AddCommand(newVerbCmd(f, http.MethodPatch, true))
	rootCmd.AddCommand(newVerbCmd(f, http.MethodDelete, false))
	rootCmd.AddCommand(newNotifiersCmd())

	return rootCmd
}

// merge fills cfg from the flags the user set explicitly.
func (f *flags) merge(cmd *cobra.Command, cfg *config.Config) {
	set := func(name string) bool { return cmd.Flags().Changed(name) }
	if set("base-url") {
		cfg.BaseURL = f.baseURL
	}
	if set("token") {
		cfg.Token = f.token
	}
	if set("no-toast") {
		cfg.WithToast = !f.noToast
	}
	if set("no-dedupe") {
		cfg.DeduplicateToasts = !f.noDedupe
	}
	if set("success-message") {
		cfg.SuccessMessage = f.successMessage
	}
	if set("error-message") {
		cfg.ErrorMessage = f.errorMessage
	}
	if set("position") {
		cfg.Position = f.position
	}
	if set("theme") {
		cfg.Theme = f.theme
	}
	if set("debug") {
		cfg.Debug = f.debug
	}
	f.cfg = cfg
}

func newVerbCmd(f *flags, method string, withBody bool) *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   strings.ToLower(method) + " <path>",
		Short: "Send a " + method + " request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headers, err := parseHeaders(f.headers)
			if err != nil {
				return err
			}
			api := newAPI(cmd, f.cfg, headers)

			var body any
			if withBody && data != "" {
				if !json.Valid([]byte(data)) {
					return errors.New("--data is not valid JSON")
				}
				body = json.RawMessage(data)
			}

			var out []byte
			switch method {
			case http.MethodGet:
				err = api.Get(cmd.Context(), args[0], &out)
			case http.MethodPost:
				err = api.Post(cmd.Context(), args[0], body, &out)
			case http.MethodPut:
				err = api.Put(cmd.Context(), args[0], body, &out)
			case http.MethodPatch:
				err = api.Patch(cmd.Context(), args[0], body, &out)
			case http.MethodDelete:
				err = api.Delete(cmd.Context(), args[0], &out)
			}
			if err != nil {
				return err
			}
			if len(out) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(out), "\n"))
			}
			return nil
		},
	}

	if withBody {
		cmd.Flags().StringVar(&data, "data", "", "JSON request body")
	}
	return cmd
}

func newNotifiersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notifiers",
		Short: "List registered notification libraries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range notify.Libraries() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newAPI(cmd *cobra.Command, cfg *config.Config, headers map[string]string) *apitoast.API {
	c := apitoast.Config{
		BaseURL:           cfg.BaseURL,
		WithToast:         apitoast.Bool(cfg.WithToast),
		DeduplicateToasts: apitoast.Bool(cfg.DeduplicateToasts),
		SuccessMessage:    apitoast.SuccessText(cfg.SuccessMessage),
		ErrorMessage:      apitoast.ErrorText(cfg.ErrorMessage),
		ToastOptions:      notify.Options{Position: cfg.Position, Theme: cfg.Theme},
		Bridge:            notify.NewBridge(notifierLoader(cmd, cfg.Notifier)),
		Timeout:           cfg.Timeout,
		Headers:           headers,
		Debug:             cfg.Debug,
	}
	if cfg.Token != "" {
		c.TokenSource = auth.RequireUnexpired(auth.Static(cfg.Token))
	}
	return apitoast.New(c)
}

// notifierLoader picks the notification library. The terminal library
// writes to the command's stderr so that stdout carries only the body.
func notifierLoader(cmd *cobra.Command, name string) notify.Loader {
	switch name {
	case config.NotifierNone:
		return notify.Unavailable(errors.New("notifications disabled"))
	case term.Name, "":
		return notify.Static(term.New(cmd.ErrOrStderr()))
	default:
		return notify.Named(name)
	}
}

func parseHeaders(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.Errorf("invalid header %q, want 'Name: value'", h)
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers, nil
}
