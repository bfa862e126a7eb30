// Package term is a notification library that prints toasts to a terminal.
//
// Importing the package registers it with notify under the name "term",
// writing to standard error:
//
//	import _ "github.com/vaultsandbox/apitoast/notify/term"
//
// Use New to write somewhere else.
package term

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/vaultsandbox/apitoast/notify"
)

// Name is the name the library registers under.
const Name = "term"

// DefaultAutoClose is how long a toast stays in the container when the toast
// options do not say otherwise.
const DefaultAutoClose = 5 * time.Second

func init() {
	notify.Register(Name, notify.LoaderFunc(func(context.Context) (notify.Library, error) {
		return New(os.Stderr), nil
	}))
}

type entry struct {
	handle  notify.Handle
	toast   notify.Toast
	expires time.Time // zero means sticky
}

// Library prints toasts as single lines and keeps them for the container
// until they are dismissed or expire.
type Library struct {
	out   io.Writer
	color bool
	now   func() time.Time

	mu     sync.Mutex
	active []entry
}

// Option configures a Library.
type Option func(*Library)

// WithColor forces coloured output on or off. By default colour follows
// fatih/color's terminal detection.
func WithColor(enabled bool) Option {
	return func(l *Library) {
		l.color = enabled
	}
}

// WithClock sets the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(l *Library) {
		l.now = now
	}
}

// New returns a Library writing to w.
func New(w io.Writer, opts ...Option) *Library {
	l := &Library{out: w, color: !color.NoColor, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Library) paint(kind notify.Kind, s string) string {
	var c *color.Color
	switch kind {
	case notify.KindSuccess:
		c = color.New(color.FgGreen)
	case notify.KindError:
		c = color.New(color.FgRed, color.Bold)
	case notify.KindWarning:
		c = color.New(color.FgYellow)
	default:
		c = color.New(color.FgCyan)
	}
	if l.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}

func icon(kind notify.Kind) string {
	switch kind {
	case notify.KindSuccess:
		return "✔"
	case notify.KindError:
		return "✖"
	case notify.KindWarning:
		return "!"
	default:
		return "i"
	}
}

// Show prints the toast and returns its handle.
func (l *Library) Show(_ context.Context, t notify.Toast) (notify.Handle, error) {
	h := notify.Handle(uuid.NewString())

	var expires time.Time
	switch {
	case t.Options.AutoClose > 0:
		expires = l.now().Add(t.Options.AutoClose)
	case t.Options.AutoClose == 0:
		expires = l.now().Add(DefaultAutoClose)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.prune()

	label := fmt.Sprintf("%s %s", icon(t.Kind), t.Kind)
	if _, err := fmt.Fprintf(l.out, "[%s] %s\n", l.paint(t.Kind, label), t.Message); err != nil {
		return "", err
	}
	l.active = append(l.active, entry{handle: h, toast: t, expires: expires})
	return h, nil
}

// Dismiss drops the toast from the container. Unknown handles are ignored.
func (l *Library) Dismiss(_ context.Context, h notify.Handle) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.active {
		if e.handle == h {
			l.active = append(l.active[:i], l.active[i+1:]...)
			break
		}
	}
	return nil
}

// prune drops expired toasts. Callers hold l.mu.
func (l *Library) prune() {
	now := l.now()
	kept := l.active[:0]
	for _, e := range l.active {
		if e.expires.IsZero() || now.Before(e.expires) {
			kept = append(kept, e)
		}
	}
	l.active = kept
}

// RenderContainer writes the live toasts, one per line, under a header naming
// the position. Nothing is written when no toast is live.
func (l *Library) RenderContainer(w io.Writer, props notify.ContainerProps) error {
	l.mu.Lock()
	l.prune()
	entries := append([]entry(nil), l.active...)
	l.mu.Unlock()

	if len(entries) == 0 {
		return nil
	}
	if props.NewestOnTop {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}
	if props.Limit > 0 && len(entries) > props.Limit {
		entries = entries[:props.Limit]
	}

	position := props.Position
	if position == "" {
		position = "top-right"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "── notifications (%s", position)
	if props.Theme != "" {
		fmt.Fprintf(&b, ", %s", props.Theme)
	}
	b.WriteString(") ──\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "%s %s\n", l.paint(e.toast.Kind, icon(e.toast.Kind)), e.toast.Message)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
