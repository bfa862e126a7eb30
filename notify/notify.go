// Package notify bridges HTTP outcomes to an optional toast notification
// library.
//
// The library is reached through a [Loader]. Loading happens lazily, at most
// once per [Bridge], and failure is not an error: an unavailable library turns
// every notification into a no-op. Libraries register themselves by name the
// way database/sql drivers do, so importing one is what makes it available:
//
//	import _ "github.com/vaultsandbox/apitoast/notify/term"
//
//	bridge := notify.NewBridge(notify.Named("term"))
//
// A [Container] renders the library's notification area. It resolves the
// library on its own, independently of any bridge.
package notify

import (
	"context"
	"io"
	"time"
)

// Kind is the visual category of a toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Handle identifies a shown toast so it can be dismissed later.
type Handle string

// Options are passed through to the library untouched. A non-empty Type
// replaces the kind chosen by the caller of Bridge.Show. A zero AutoClose
// leaves the library default; a negative one keeps the toast until dismissed.
type Options struct {
	Type            Kind
	Position        string
	AutoClose       time.Duration
	HideProgressBar bool
	Theme           string
	Extra           map[string]any
}

// Toast is a single notification request.
type Toast struct {
	Message string
	Kind    Kind
	Options Options
}

// ContainerProps configure the notification display area.
type ContainerProps struct {
	Position    string
	Theme       string
	Limit       int
	NewestOnTop bool
	Extra       map[string]any
}

// Library is a loaded notification library.
type Library interface {
	Show(ctx context.Context, t Toast) (Handle, error)
	Dismiss(ctx context.Context, h Handle) error
	RenderContainer(w io.Writer, props ContainerProps) error
}
