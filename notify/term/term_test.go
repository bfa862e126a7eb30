package term

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultsandbox/apitoast/notify"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestLibrary(out *bytes.Buffer) (*Library, *clock) {
	c := &clock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	return New(out, WithColor(false), WithClock(c.now)), c
}

func TestRegistered(t *testing.T) {
	assert.Contains(t, notify.Libraries(), Name)

	lib, err := notify.Named(Name).Load(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &Library{}, lib)
}

func TestShow_PrintsLine(t *testing.T) {
	var out bytes.Buffer
	lib, _ := newTestLibrary(&out)

	h, err := lib.Show(context.Background(), notify.Toast{Message: "Request successful", Kind: notify.KindSuccess})
	require.NoError(t, err)
	assert.NotEmpty(t, h)
	assert.Equal(t, "[✔ success] Request successful\n", out.String())

	out.Reset()
	lib.Show(context.Background(), notify.Toast{Message: "Request failed", Kind: notify.KindError})
	assert.Equal(t, "[✖ error] Request failed\n", out.String())
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestShow_WriteErrorKeepsNothing(t *testing.T) {
	lib := New(brokenWriter{}, WithColor(false))

	h, err := lib.Show(context.Background(), notify.Toast{Message: "lost", Kind: notify.KindError})
	require.Error(t, err)
	assert.Empty(t, h)

	var buf bytes.Buffer
	require.NoError(t, lib.RenderContainer(&buf, notify.ContainerProps{}))
	assert.Zero(t, buf.Len(), "failed toast is not in the container")
}

func TestShow_UniqueHandles(t *testing.T) {
	lib, _ := newTestLibrary(&bytes.Buffer{})
	a, _ := lib.Show(context.Background(), notify.Toast{Message: "a"})
	b, _ := lib.Show(context.Background(), notify.Toast{Message: "b"})
	assert.NotEqual(t, a, b)
}

func TestRenderContainer(t *testing.T) {
	lib, _ := newTestLibrary(&bytes.Buffer{})

	var empty bytes.Buffer
	require.NoError(t, lib.RenderContainer(&empty, notify.ContainerProps{}))
	assert.Zero(t, empty.Len(), "no live toasts renders nothing")

	lib.Show(context.Background(), notify.Toast{Message: "first", Kind: notify.KindInfo})
	lib.Show(context.Background(), notify.Toast{Message: "second", Kind: notify.KindWarning})
	lib.Show(context.Background(), notify.Toast{Message: "third", Kind: notify.KindSuccess})

	var buf bytes.Buffer
	require.NoError(t, lib.RenderContainer(&buf, notify.ContainerProps{Position: "bottom-left", Theme: "dark", NewestOnTop: true, Limit: 2}))
	assert.Equal(t, "── notifications (bottom-left, dark) ──\n✔ third\n! second\n", buf.String())
}

func TestDismissAndExpiry(t *testing.T) {
	lib, clk := newTestLibrary(&bytes.Buffer{})

	lib.Show(context.Background(), notify.Toast{Message: "short", Options: notify.Options{AutoClose: time.Second}})
	lib.Show(context.Background(), notify.Toast{Message: "default"})
	lib.Show(context.Background(), notify.Toast{Message: "sticky", Options: notify.Options{AutoClose: -1}})
	gone, _ := lib.Show(context.Background(), notify.Toast{Message: "dismissed"})

	require.NoError(t, lib.Dismiss(context.Background(), gone))
	require.NoError(t, lib.Dismiss(context.Background(), "unknown"))

	clk.t = clk.t.Add(2 * time.Second)
	var buf bytes.Buffer
	require.NoError(t, lib.RenderContainer(&buf, notify.ContainerProps{}))
	out := buf.String()
	assert.NotContains(t, out, "short")
	assert.NotContains(t, out, "dismissed")
	assert.Contains(t, out, "default")
	assert.Contains(t, out, "sticky")
	assert.True(t, strings.HasPrefix(out, "── notifications (top-right) ──\n"))

	clk.t = clk.t.Add(DefaultAutoClose)
	buf.Reset()
	require.NoError(t, lib.RenderContainer(&buf, notify.ContainerProps{}))
	assert.NotContains(t, buf.String(), "default")
	assert.Contains(t, buf.String(), "sticky")
}
