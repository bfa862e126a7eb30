package apitoast

import (
	"context"

	"github.com/vaultsandbox/apitoast/auth"
	"github.com/vaultsandbox/apitoast/notify"
	"github.com/vaultsandbox/apitoast/transport"
)

// bearer sets Authorization from src on every request. An empty token leaves
// the request unauthenticated; an error fails it before dispatch.
func bearer(src auth.TokenSource) transport.RequestInterceptor {
	return func(req *transport.Request) error {
		if src == nil {
			return nil
		}
		token, err := src.Token(req.Context())
		if err != nil {
			return err
		}
		if token != "" {
			req.SetHeader("Authorization", "Bearer "+token)
		}
		return nil
	}
}

// toaster turns settled calls into notifications. It never alters the
// outcome.
type toaster struct {
	enabled bool
	dedupe  bool
	bridge  *notify.Bridge
	success Message[*transport.Response]
	failure Message[error]
	options notify.Options
}

func newToaster(cfg Config) *toaster {
	return &toaster{
		enabled: cfg.toastsEnabled(),
		dedupe:  cfg.dedupe(),
		bridge:  cfg.bridge(),
		success: cfg.SuccessMessage,
		failure: cfg.ErrorMessage,
		options: cfg.ToastOptions,
	}
}

func (t *toaster) onFulfilled(ctx context.Context, resp *transport.Response) (*transport.Response, error) {
	if t.enabled && t.bridge.EnsureLoaded(ctx) {
		msg := t.success.resolve(resp, func(*transport.Response) string { return DefaultSuccessMessage })
		t.show(ctx, msg, notify.KindSuccess)
	}
	return resp, nil
}

func (t *toaster) onRejected(ctx context.Context, err error) (*transport.Response, error) {
	if t.enabled && t.bridge.EnsureLoaded(ctx) {
		msg := t.failure.resolve(err, FallbackErrorMessage)
		t.show(ctx, msg, notify.KindError)
	}
	return nil, err
}

func (t *toaster) show(ctx context.Context, msg string, kind notify.Kind) {
	t.bridge.Show(ctx, notify.Toast{Message: msg, Kind: kind, Options: t.options}, t.dedupe)
}
