package transport

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/vaultsandbox/apitoast/transport"
	requestIDHeader     = "X-Request-Id"
)

// Client is the HTTP client with request and response interceptors.
type Client struct {
	// Interceptors are applied to every call made through the client.
	Interceptors Interceptors

	baseURL string
	rc      *resty.Client
	tracer  trace.Tracer
}

// New creates a client rooted at baseURL. Relative request URLs are resolved
// against it; absolute URLs are sent as given. The base URL is not validated
// here; a malformed one fails when a request is made.
func New(baseURL string, opts ...Option) *Client {
	cfg := &clientConfig{userAgent: DefaultUserAgent}
	for _, opt := range opts {
		opt(cfg)
	}

	var rc *resty.Client
	if cfg.httpClient != nil {
		rc = resty.NewWithClient(cfg.httpClient)
		if cfg.timeout != 0 {
			rc.SetTimeout(max(cfg.timeout, 0))
		}
	} else {
		rc = resty.New()
		switch {
		case cfg.timeout == 0:
			rc.SetTimeout(DefaultTimeout)
		case cfg.timeout > 0:
			rc.SetTimeout(cfg.timeout)
		}
	}
	rc.SetBaseURL(baseURL)
	rc.SetHeader("User-Agent", cfg.userAgent)
	rc.SetHeader("Accept", "application/json")
	for k, v := range cfg.headers {
		rc.SetHeader(k, v)
	}

	if cfg.debug {
		rc.SetTransport(newDebugTransport(rc.GetClient().Transport))
	}

	tp := cfg.tracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	c := &Client{
		baseURL: baseURL,
		rc:      rc,
		tracer:  tp.Tracer(instrumentationName),
	}
	rc.OnBeforeRequest(c.beforeRequest)
	return c
}

// BaseURL returns the base URL the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Resty returns the underlying resty client for settings this package does
// not expose.
func (c *Client) Resty() *resty.Client {
	return c.rc
}

// beforeRequest runs the request interceptors, then stamps the request id and
// trace context. It runs ahead of resty's own header handling.
func (c *Client) beforeRequest(_ *resty.Client, r *resty.Request) error {
	if err := c.Interceptors.Request.run(&Request{raw: r}); err != nil {
		return &interceptorError{err: err}
	}
	if r.Header.Get(requestIDHeader) == "" {
		r.SetHeader(requestIDHeader, uuid.NewString())
	}
	otel.GetTextMapPropagator().Inject(r.Context(), propagation.HeaderCarrier(r.Header))
	return nil
}

// Do sends a request and runs the response interceptors on the outcome. The
// returned response is only non-nil when the error is nil, unless an
// interceptor decides otherwise.
func (c *Client) Do(ctx context.Context, method, url string, body any, opts ...RequestOption) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, "HTTP "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", url),
		),
	)
	defer span.End()

	r := c.rc.R().SetContext(ctx)
	if body != nil {
		r.SetBody(body)
	}
	for _, opt := range opts {
		opt(r)
	}

	start := time.Now()
	raw, err := r.Execute(method, url)
	resp, err := settle(method, url, raw, err)
	requestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	recordOutcome(span, method, resp, err)

	return c.Interceptors.Response.run(ctx, resp, err)
}

// settle converts a resty outcome into a Response or one of the error types.
func settle(method, url string, raw *resty.Response, err error) (*Response, error) {
	if err != nil {
		var ie *interceptorError
		if errors.As(err, &ie) {
			return nil, ie.err
		}
		return nil, &NetworkError{Err: err, Method: method, URL: url}
	}
	resp := newResponse(method, url, raw)
	if !resp.OK() {
		return nil, &ResponseError{
			StatusCode: resp.StatusCode,
			RequestID:  resp.Header.Get(requestIDHeader),
			Response:   resp,
		}
	}
	return resp, nil
}

func recordOutcome(span trace.Span, method string, resp *Response, err error) {
	var respErr *ResponseError
	switch {
	case err == nil:
		requestsTotal.WithLabelValues(method, outcomeSuccess).Inc()
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
		return
	case errors.As(err, &respErr):
		requestsTotal.WithLabelValues(method, outcomeHTTPError).Inc()
		span.SetAttributes(attribute.Int("http.response.status_code", respErr.StatusCode))
	case isNetworkError(err):
		requestsTotal.WithLabelValues(method, outcomeNetwork).Inc()
	default:
		requestsTotal.WithLabelValues(method, outcomeInterceptor).Inc()
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func isNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, url string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodGet, url, nil, opts...)
}

// Post sends a POST request with body serialized by resty (JSON for structs
// and maps).
func (c *Client) Post(ctx context.Context, url string, body any, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodPost, url, body, opts...)
}

// Put sends a PUT request.
func (c *Client) Put(ctx context.Context, url string, body any, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodPut, url, body, opts...)
}

// Patch sends a PATCH request.
func (c *Client) Patch(ctx context.Context, url string, body any, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, url, body, opts...)
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, url string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, url, nil, opts...)
}
