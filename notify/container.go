package notify

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"
)

// Container renders the notification display area of a library. It resolves
// the library itself, in the background, on the first render; until that
// settles, and forever if it fails, it renders nothing.
type Container struct {
	loader Loader

	mu      sync.Mutex
	state   loadState
	started bool
	lib     Library
	ready   chan struct{}
}

// NewContainer returns a container that loads its library through loader.
func NewContainer(loader Loader) *Container {
	return &Container{loader: loader, ready: make(chan struct{})}
}

// Ready returns a channel closed once the background load has settled.
func (c *Container) Ready() <-chan struct{} {
	return c.ready
}

// Loaded reports whether the library is available for rendering.
func (c *Container) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateLoaded
}

// Render writes the container to w using props. It writes nothing while the
// library is loading or if it is unavailable.
func (c *Container) Render(ctx context.Context, w io.Writer, props ContainerProps) error {
	c.mu.Lock()
	if !c.started {
		c.started = true
		go c.load(context.WithoutCancel(ctx))
	}
	lib := c.lib
	c.mu.Unlock()

	if lib == nil {
		return nil
	}
	return lib.RenderContainer(w, props)
}

func (c *Container) load(ctx context.Context) {
	defer close(c.ready)

	lib, err := resolve(ctx, c.loader)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = stateUnavailable
		log.Debug().Err(err).Msg("notification container disabled")
		return
	}
	c.state = stateLoaded
	c.lib = lib
}

// Handler serves the container rendered with props. An empty render is
// answered with 204 No Content.
func (c *Container) Handler(props ContainerProps) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := c.Render(r.Context(), &buf, props); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if buf.Len() == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(buf.Bytes())
	})
}
