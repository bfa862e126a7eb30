package transport

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/trace"
)

// Default values for client configuration.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "apitoast-go"
)

// Option configures the client.
type Option func(*clientConfig)

type clientConfig struct {
	httpClient     *http.Client
	timeout        time.Duration
	headers        map[string]string
	userAgent      string
	debug          bool
	tracerProvider trace.TracerProvider
}

// WithHTTPClient sets the *http.Client resty sends requests through. Useful
// for custom transports, TLS settings or test servers.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout. Zero keeps DefaultTimeout; a
// negative value disables the client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithHeader adds a default header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *clientConfig) {
		if c.headers == nil {
			c.headers = make(map[string]string)
		}
		c.headers[key] = value
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithDebugLogging dumps every request and response through zerolog at debug
// level.
func WithDebugLogging(enabled bool) Option {
	return func(c *clientConfig) {
		c.debug = enabled
	}
}

// WithTracerProvider sets the OpenTelemetry provider used for request
// spans. The global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *clientConfig) {
		c.tracerProvider = tp
	}
}

// RequestOption adjusts a single call.
type RequestOption func(*resty.Request)

// WithRequestHeader sets a header on this request only.
func WithRequestHeader(key, value string) RequestOption {
	return func(r *resty.Request) {
		r.SetHeader(key, value)
	}
}

// WithQuery sets a query parameter.
func WithQuery(key, value string) RequestOption {
	return func(r *resty.Request) {
		r.SetQueryParam(key, value)
	}
}

// WithQueryValues adds all values as query parameters.
func WithQueryValues(values url.Values) RequestOption {
	return func(r *resty.Request) {
		r.SetQueryParamsFromValues(values)
	}
}
