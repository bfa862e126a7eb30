package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// DefaultLibrary is the registered library the process-wide bridge loads.
const DefaultLibrary = "term"

type loadState int

const (
	stateUnloaded loadState = iota
	stateLoaded
	stateUnavailable
)

// Bridge mediates access to a notification library. The library is resolved
// on first use and the result, loaded or unavailable, is kept for the life of
// the bridge. A Bridge is safe for concurrent use.
type Bridge struct {
	loader Loader
	once   sync.Once

	mu     sync.Mutex
	state  loadState
	lib    Library
	reason error
	last   Handle
}

// NewBridge returns a bridge that loads its library through loader. A nil
// loader yields a bridge that is always unavailable.
func NewBridge(loader Loader) *Bridge {
	return &Bridge{loader: loader}
}

// EnsureLoaded resolves the library on the first call and reports whether it
// is available. Concurrent first callers wait for the single load. A failed
// load is never retried and never returned as an error.
func (b *Bridge) EnsureLoaded(ctx context.Context) bool {
	b.once.Do(func() { b.load(ctx) })
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state == stateLoaded
}

func (b *Bridge) load(ctx context.Context) {
	lib, err := resolve(ctx, b.loader)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.state = stateUnavailable
		b.reason = err
		libraryLoadsTotal.WithLabelValues("unavailable").Inc()
		log.Debug().Err(err).Msg("notifications disabled")
		return
	}
	b.state = stateLoaded
	b.lib = lib
	libraryLoadsTotal.WithLabelValues("loaded").Inc()
}

// resolve runs loader, turning a panic or a nil library into an unavailable
// result.
func resolve(ctx context.Context, loader Loader) (lib Library, err error) {
	if loader == nil {
		return nil, &UnavailableError{}
	}
	defer func() {
		if r := recover(); r != nil {
			lib, err = nil, &UnavailableError{Err: fmt.Errorf("loader panic: %v", r)}
		}
	}()
	lib, err = loader.Load(ctx)
	if err == nil && lib == nil {
		err = &UnavailableError{}
	}
	if err != nil {
		if !errors.Is(err, ErrUnavailable) {
			err = &UnavailableError{Err: err}
		}
		return nil, err
	}
	return lib, nil
}

// Available reports whether the library has been loaded successfully. It does
// not trigger a load.
func (b *Bridge) Available() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state == stateLoaded
}

// Err returns the reason the library is unavailable, or nil.
func (b *Bridge) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reason
}

// LastHandle returns the handle of the most recently shown toast.
func (b *Bridge) LastHandle() Handle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

func (b *Bridge) library() Library {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != stateLoaded {
		return nil
	}
	return b.lib
}

// Show displays t if the library is loaded; it does not load it. When dedupe
// is set and a previous toast exists, that toast is dismissed first. The new
// handle replaces the previous one regardless of which caller showed it; a
// dismissed handle is forgotten even if the new toast then fails.
// Library failures are logged and reported as ok == false.
func (b *Bridge) Show(ctx context.Context, t Toast, dedupe bool) (h Handle, ok bool) {
	lib := b.library()
	if lib == nil {
		return "", false
	}
	if t.Options.Type != "" {
		t.Kind = t.Options.Type
	}

	if prev := b.LastHandle(); dedupe && prev != "" && b.dismiss(ctx, lib, prev) {
		b.mu.Lock()
		if b.last == prev {
			b.last = ""
		}
		b.mu.Unlock()
	}

	h, err := lib.Show(ctx, t)
	if err != nil {
		log.Debug().Err(err).Str("kind", string(t.Kind)).Msg("toast not shown")
		return "", false
	}
	toastsShownTotal.WithLabelValues(string(t.Kind)).Inc()

	b.mu.Lock()
	b.last = h
	b.mu.Unlock()
	return h, true
}

// Dismiss removes the toast identified by h. Unknown handles and an
// unavailable library are ignored.
func (b *Bridge) Dismiss(ctx context.Context, h Handle) {
	lib := b.library()
	if lib == nil || h == "" {
		return
	}
	b.dismiss(ctx, lib, h)
}

func (b *Bridge) dismiss(ctx context.Context, lib Library, h Handle) bool {
	if err := lib.Dismiss(ctx, h); err != nil {
		log.Debug().Err(err).Str("handle", string(h)).Msg("toast not dismissed")
		return false
	}
	toastsDismissedTotal.Inc()
	return true
}

var (
	defaultMu     sync.Mutex
	defaultBridge *Bridge
)

// Default returns the process-wide bridge, created on first use and backed by
// Named(DefaultLibrary). Handles that are not given a bridge share it, so
// across them the library is loaded at most once per process.
func Default() *Bridge {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultBridge == nil {
		defaultBridge = NewBridge(Named(DefaultLibrary))
	}
	return defaultBridge
}

// SetDefault replaces the process-wide bridge and returns the previous one.
// Passing nil resets it so the next Default call creates a fresh bridge.
func SetDefault(b *Bridge) *Bridge {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultBridge
	defaultBridge = b
	return prev
}
