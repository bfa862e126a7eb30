package apitoast

import (
	"context"
	"net/http"

	"github.com/vaultsandbox/apitoast/notify"
	"github.com/vaultsandbox/apitoast/transport"
)

// API is a configured request surface for one backend. It is safe for
// concurrent use.
type API struct {
	client *transport.Client
	bridge *notify.Bridge
}

// New builds an API from cfg. It installs two interceptors on a fresh
// transport client: one adding the bearer token, one showing a toast when
// each call settles. Nothing is validated or dialled here.
func New(cfg Config) *API {
	client := transport.New(cfg.BaseURL, cfg.transportOptions()...)

	if cfg.TokenSource != nil {
		client.Interceptors.Request.Use(bearer(cfg.TokenSource))
	}
	t := newToaster(cfg)
	client.Interceptors.Response.Use(t.onFulfilled, t.onRejected)

	return &API{client: client, bridge: t.bridge}
}

// Instance returns the underlying transport client, for callers that need
// the full response or want to add interceptors of their own.
func (a *API) Instance() *transport.Client {
	return a.client
}

// Bridge returns the notification bridge the handle reports to.
func (a *API) Bridge() *notify.Bridge {
	return a.bridge
}

func (a *API) call(ctx context.Context, method, url string, body, out any, opts []transport.RequestOption) error {
	resp, err := a.client.Do(ctx, method, url, body, opts...)
	if err != nil {
		return err
	}
	if resp == nil {
		return nil
	}
	return resp.Decode(out)
}

// Get sends a GET request and decodes the response body into out. A nil out
// discards the body.
func (a *API) Get(ctx context.Context, url string, out any, opts ...transport.RequestOption) error {
	return a.call(ctx, http.MethodGet, url, nil, out, opts)
}

// Post sends body as JSON and decodes the response body into out.
func (a *API) Post(ctx context.Context, url string, body, out any, opts ...transport.RequestOption) error {
	return a.call(ctx, http.MethodPost, url, body, out, opts)
}

// Put sends body as JSON and decodes the response body into out.
func (a *API) Put(ctx context.Context, url string, body, out any, opts ...transport.RequestOption) error {
	return a.call(ctx, http.MethodPut, url, body, out, opts)
}

// Patch sends body as JSON and decodes the response body into out.
func (a *API) Patch(ctx context.Context, url string, body, out any, opts ...transport.RequestOption) error {
	return a.call(ctx, http.MethodPatch, url, body, out, opts)
}

// Delete sends a DELETE request and decodes the response body into out.
func (a *API) Delete(ctx context.Context, url string, out any, opts ...transport.RequestOption) error {
	return a.call(ctx, http.MethodDelete, url, nil, out, opts)
}

// GetAs is Get returning the decoded body.
func GetAs[T any](ctx context.Context, a *API, url string, opts ...transport.RequestOption) (T, error) {
	var out T
	err := a.Get(ctx, url, &out, opts...)
	return out, err
}

// PostAs is Post returning the decoded body.
func PostAs[T any](ctx context.Context, a *API, url string, body any, opts ...transport.RequestOption) (T, error) {
	var out T
	err := a.Post(ctx, url, body, &out, opts...)
	return out, err
}

// PutAs is Put returning the decoded body.
func PutAs[T any](ctx context.Context, a *API, url string, body any, opts ...transport.RequestOption) (T, error) {
	var out T
	err := a.Put(ctx, url, body, &out, opts...)
	return out, err
}

// DeleteAs is Delete returning the decoded body.
func DeleteAs[T any](ctx context.Context, a *API, url string, opts ...transport.RequestOption) (T, error) {
	var out T
	err := a.Delete(ctx, url, &out, opts...)
	return out, err
}
