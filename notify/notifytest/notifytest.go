// Package notifytest provides an in-memory notification library for tests.
package notifytest

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/vaultsandbox/apitoast/notify"
)

// Record is a toast seen by a Recorder.
type Record struct {
	Handle notify.Handle
	Toast  notify.Toast
}

// Recorder is a notify.Library that remembers every call.
type Recorder struct {
	mu        sync.Mutex
	shown     []Record
	dismissed []notify.Handle
	active    map[notify.Handle]int
	showErr   error
	loads     atomic.Int32
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{active: make(map[notify.Handle]int)}
}

// Loader returns a loader yielding r and counting loads.
func (r *Recorder) Loader() notify.Loader {
	return notify.LoaderFunc(func(context.Context) (notify.Library, error) {
		r.loads.Add(1)
		return r, nil
	})
}

// Bridge returns a new bridge backed by r.
func (r *Recorder) Bridge() *notify.Bridge {
	return notify.NewBridge(r.Loader())
}

// Loads returns how many times the loader returned by Loader was invoked.
func (r *Recorder) Loads() int {
	return int(r.loads.Load())
}

// FailShow makes subsequent Show calls return err. Pass nil to restore.
func (r *Recorder) FailShow(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.showErr = err
}

// Show implements notify.Library.
func (r *Recorder) Show(_ context.Context, t notify.Toast) (notify.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.showErr != nil {
		return "", r.showErr
	}
	h := notify.Handle(uuid.NewString())
	r.active[h] = len(r.shown)
	r.shown = append(r.shown, Record{Handle: h, Toast: t})
	return h, nil
}

// Dismiss implements notify.Library.
func (r *Recorder) Dismiss(_ context.Context, h notify.Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dismissed = append(r.dismissed, h)
	delete(r.active, h)
	return nil
}

// RenderContainer writes one line per active toast, oldest first.
func (r *Recorder) RenderContainer(w io.Writer, props notify.ContainerProps) error {
	for _, rec := range r.Active() {
		if _, err := fmt.Fprintf(w, "%s %s: %s\n", props.Position, rec.Toast.Kind, rec.Toast.Message); err != nil {
			return err
		}
	}
	return nil
}

// Shown returns every toast shown so far.
func (r *Recorder) Shown() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Record(nil), r.shown...)
}

// Dismissed returns every dismissed handle in order.
func (r *Recorder) Dismissed() []notify.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Handle(nil), r.dismissed...)
}

// Active returns the toasts not yet dismissed, oldest first.
func (r *Recorder) Active() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, 0, len(r.active))
	for _, rec := range r.shown {
		if _, ok := r.active[rec.Handle]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// Last returns the most recent toast, or false if none was shown.
func (r *Recorder) Last() (Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.shown) == 0 {
		return Record{}, false
	}
	return r.shown[len(r.shown)-1], true
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown = nil
	r.dismissed = nil
	r.active = make(map[notify.Handle]int)
}

// FailingLoader returns a loader that fails with err and counts its calls.
func FailingLoader(err error) (notify.Loader, func() int) {
	var calls atomic.Int32
	loader := notify.LoaderFunc(func(context.Context) (notify.Library, error) {
		calls.Add(1)
		return nil, err
	})
	return loader, func() int { return int(calls.Load()) }
}

// PanickingLoader returns a loader that panics, standing in for a broken
// library.
func PanickingLoader() notify.Loader {
	return notify.LoaderFunc(func(context.Context) (notify.Library, error) {
		panic("notification library is broken")
	})
}
