package apitoast

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/vaultsandbox/apitoast/auth"
	"github.com/vaultsandbox/apitoast/notify"
	"github.com/vaultsandbox/apitoast/transport"
)

// Config describes an API handle. It is read once by New and not retained
// for mutation; changing it afterwards has no effect.
type Config struct {
	// BaseURL is prepended to relative request URLs. Required, but only
	// checked by the transport when a request is made.
	BaseURL string

	// TokenSource supplies the bearer token before every request. Nil or an
	// empty token sends the request without Authorization.
	TokenSource auth.TokenSource

	// WithToast enables notifications. Nil means enabled.
	WithToast *bool

	// SuccessMessage and ErrorMessage select the toast text. The zero value
	// uses DefaultSuccessMessage and FallbackErrorMessage respectively.
	SuccessMessage Message[*transport.Response]
	ErrorMessage   Message[error]

	// ToastOptions are passed to the notification library as given.
	ToastOptions notify.Options

	// DeduplicateToasts dismisses the previous toast of the bridge before
	// showing a new one. Nil means enabled.
	DeduplicateToasts *bool

	// Bridge receives the notifications. Nil uses notify.Default().
	Bridge *notify.Bridge

	// HTTPClient, Timeout, Headers, Debug and TracerProvider configure the
	// underlying transport.
	HTTPClient     *http.Client
	Timeout        time.Duration
	Headers        map[string]string
	Debug          bool
	TracerProvider trace.TracerProvider
}

// Bool returns a pointer to v, for the optional flags of Config.
func Bool(v bool) *bool {
	return &v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func (c Config) toastsEnabled() bool { return boolOr(c.WithToast, true) }

func (c Config) dedupe() bool { return boolOr(c.DeduplicateToasts, true) }

func (c Config) bridge() *notify.Bridge {
	if c.Bridge != nil {
		return c.Bridge
	}
	return notify.Default()
}

func (c Config) transportOptions() []transport.Option {
	var opts []transport.Option
	if c.HTTPClient != nil {
		opts = append(opts, transport.WithHTTPClient(c.HTTPClient))
	}
	if c.Timeout != 0 {
		opts = append(opts, transport.WithTimeout(c.Timeout))
	}
	for k, v := range c.Headers {
		opts = append(opts, transport.WithHeader(k, v))
	}
	if c.Debug {
		opts = append(opts, transport.WithDebugLogging(true))
	}
	if c.TracerProvider != nil {
		opts = append(opts, transport.WithTracerProvider(c.TracerProvider))
	}
	return opts
}
