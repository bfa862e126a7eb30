package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestDebugLogging_DumpsExchange(t *testing.T) {
	prev, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pong":true}`))
	}))
	defer server.Close()

	client := New(server.URL, WithDebugLogging(true))
	if _, err := client.Get(context.Background(), "/ping", WithRequestHeader(requestIDHeader, "req-1")); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2:\n%s", len(lines), buf.String())
	}
	for i, want := range []string{"outgoing request", "incoming response"} {
		var entry map[string]any
		if err := json.Unmarshal([]byte(lines[i]), &entry); err != nil {
			t.Fatalf("line %d is not JSON: %v", i, err)
		}
		if entry["message"] != want {
			t.Errorf("line %d message = %v, want %q", i, entry["message"], want)
		}
		if entry["component"] != "transport" {
			t.Errorf("line %d component = %v, want transport", i, entry["component"])
		}
		if entry["request_id"] != "req-1" {
			t.Errorf("line %d request_id = %v, want req-1", i, entry["request_id"])
		}
	}
	if !strings.Contains(lines[1], "pong") {
		t.Errorf("response dump missing body: %s", lines[1])
	}
}

func TestDebugLogging_OffByDefault(t *testing.T) {
	client := New("https://example.com")
	if _, ok := client.Resty().GetClient().Transport.(*debugTransport); ok {
		t.Error("debug transport installed without WithDebugLogging")
	}
}
