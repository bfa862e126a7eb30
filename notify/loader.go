package notify

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnavailable is matched by every load failure reported by this package.
var ErrUnavailable = errors.New("notification library unavailable")

// UnavailableError describes why a library could not be loaded.
type UnavailableError struct {
	Name string
	Err  error
}

func (e *UnavailableError) Error() string {
	switch {
	case e.Name != "" && e.Err != nil:
		return fmt.Sprintf("notification library %q unavailable: %v", e.Name, e.Err)
	case e.Name != "":
		return fmt.Sprintf("notification library %q unavailable", e.Name)
	case e.Err != nil:
		return fmt.Sprintf("notification library unavailable: %v", e.Err)
	}
	return "notification library unavailable"
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Is implements errors.Is for sentinel error matching.
func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }

// Loader resolves a notification library.
type Loader interface {
	Load(ctx context.Context) (Library, error)
}

// LoaderFunc adapts a function to a Loader.
type LoaderFunc func(ctx context.Context) (Library, error)

// Load calls f(ctx).
func (f LoaderFunc) Load(ctx context.Context) (Library, error) { return f(ctx) }

// Static returns a Loader that always yields lib.
func Static(lib Library) Loader {
	return LoaderFunc(func(context.Context) (Library, error) {
		if lib == nil {
			return nil, &UnavailableError{}
		}
		return lib, nil
	})
}

// Unavailable returns a Loader that always fails with reason.
func Unavailable(reason error) Loader {
	return LoaderFunc(func(context.Context) (Library, error) {
		return nil, &UnavailableError{Err: reason}
	})
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Loader)
)

// Register makes a library available under name. It panics if loader is nil
// or name is already registered. Libraries call it from init.
func Register(name string, loader Loader) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if loader == nil {
		panic("notify: Register loader is nil")
	}
	if _, dup := registry[name]; dup {
		panic("notify: Register called twice for library " + name)
	}
	registry[name] = loader
}

// Libraries returns the sorted names of registered libraries.
func Libraries() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Named returns a Loader for the library registered under name. The lookup
// happens at load time, so a library may register after Named is called.
func Named(name string) Loader {
	return LoaderFunc(func(ctx context.Context) (Library, error) {
		registryMu.RLock()
		loader, ok := registry[name]
		registryMu.RUnlock()
		if !ok {
			return nil, &UnavailableError{Name: name, Err: errors.New("not registered")}
		}
		lib, err := loader.Load(ctx)
		if err != nil {
			return nil, &UnavailableError{Name: name, Err: err}
		}
		return lib, nil
	})
}

// unregister removes a library. Tests only.
func unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, name)
}
