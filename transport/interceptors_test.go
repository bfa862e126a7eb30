package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestRequestInterceptors_RunInOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Order"); got != "second" {
			t.Errorf("X-Order = %s, want second", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer t" {
			t.Errorf("Authorization = %s, want Bearer t", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.URL)
	client.Interceptors.Request.Use(func(req *Request) error {
		req.SetHeader("X-Order", "first")
		return nil
	})
	client.Interceptors.Request.Use(func(req *Request) error {
		if req.Method() != http.MethodGet || req.URL() != "/x" {
			t.Errorf("request = %s %s, want GET /x", req.Method(), req.URL())
		}
		req.SetHeader("X-Order", "second")
		req.Header().Set("Authorization", "Bearer t")
		return nil
	})

	if _, err := client.Get(context.Background(), "/x"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
}

func TestRequestInterceptors_ErrorStopsDispatch(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	wantErr := errors.New("token unavailable")
	client := New(server.URL)
	client.Interceptors.Request.Use(func(req *Request) error { return wantErr })

	var seen error
	client.Interceptors.Response.Use(nil, func(ctx context.Context, err error) (*Response, error) {
		seen = err
		return nil, err
	})

	_, err := client.Get(context.Background(), "/x")
	if err != wantErr {
		t.Errorf("error = %v, want the interceptor error unchanged", err)
	}
	if seen != wantErr {
		t.Errorf("onRejected saw %v, want %v", seen, wantErr)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Errorf("server hits = %d, want 0", hits)
	}
}

func TestRequestInterceptors_Eject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Ejected") != "" {
			t.Error("ejected interceptor still ran")
		}
	}))
	defer server.Close()

	client := New(server.URL)
	id := client.Interceptors.Request.Use(func(req *Request) error {
		req.SetHeader("X-Ejected", "1")
		return nil
	})
	client.Interceptors.Request.Eject(id)
	client.Interceptors.Request.Eject(99)

	if client.Interceptors.Request.Len() != 0 {
		t.Errorf("Len() = %d, want 0", client.Interceptors.Request.Len())
	}
	if _, err := client.Get(context.Background(), "/"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
}

func TestResponseInterceptors_Fulfilled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"a":1}`))
	}))
	defer server.Close()

	client := New(server.URL)
	var order []string
	client.Interceptors.Response.Use(func(ctx context.Context, resp *Response) (*Response, error) {
		order = append(order, "one")
		return resp, nil
	}, nil)
	client.Interceptors.Response.Use(nil, func(ctx context.Context, err error) (*Response, error) {
		t.Error("onRejected called for fulfilled response")
		return nil, err
	})
	client.Interceptors.Response.Use(func(ctx context.Context, resp *Response) (*Response, error) {
		order = append(order, "two")
		return resp, nil
	}, nil)

	resp, err := client.Get(context.Background(), "/")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(resp.Data) != `{"a":1}` {
		t.Errorf("Data = %s", resp.Data)
	}
	if len(order) != 2 || order[0] != "one" || order[1] != "two" {
		t.Errorf("order = %v, want [one two]", order)
	}
}

func TestResponseInterceptors_FulfilledCanReject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	client := New(server.URL)
	wantErr := errors.New("rejected by interceptor")
	client.Interceptors.Response.Use(func(ctx context.Context, resp *Response) (*Response, error) {
		return nil, wantErr
	}, nil)

	var seen error
	client.Interceptors.Response.Use(nil, func(ctx context.Context, err error) (*Response, error) {
		seen = err
		return nil, err
	})

	if _, err := client.Get(context.Background(), "/"); err != wantErr {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
	if seen != wantErr {
		t.Errorf("next onRejected saw %v", seen)
	}
}

func TestResponseInterceptors_RejectedCanRecover(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := New(server.URL)
	fallback := &Response{StatusCode: http.StatusOK, Data: []byte(`[]`)}
	client.Interceptors.Response.Use(nil, func(ctx context.Context, err error) (*Response, error) {
		if errors.Is(err, ErrNotFound) {
			return fallback, nil
		}
		return nil, err
	})

	var fulfilled bool
	client.Interceptors.Response.Use(func(ctx context.Context, resp *Response) (*Response, error) {
		fulfilled = true
		return resp, nil
	}, nil)

	resp, err := client.Get(context.Background(), "/missing")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp != fallback {
		t.Error("recovered response not returned")
	}
	if !fulfilled {
		t.Error("onFulfilled not called after recovery")
	}
}

func TestResponseInterceptors_Clear(t *testing.T) {
	client := New("https://example.com")
	client.Interceptors.Response.Use(nil, nil)
	client.Interceptors.Response.Use(nil, nil)
	if client.Interceptors.Response.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", client.Interceptors.Response.Len())
	}
	client.Interceptors.Response.Clear()
	if client.Interceptors.Response.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", client.Interceptors.Response.Len())
	}
}
