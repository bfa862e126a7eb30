package transport

import (
	"context"
	"sync"
)

// RequestInterceptor inspects or modifies an outgoing request. Returning an
// error fails the call before it is dispatched.
type RequestInterceptor func(req *Request) error

// FulfilledFunc handles a settled call that produced a 2xx response.
type FulfilledFunc func(ctx context.Context, resp *Response) (*Response, error)

// RejectedFunc handles a settled call that produced an error. Returning a
// response with a nil error recovers the call.
type RejectedFunc func(ctx context.Context, err error) (*Response, error)

// Interceptors holds the request and response pipelines of a Client.
type Interceptors struct {
	Request  RequestInterceptors
	Response ResponseInterceptors
}

// chain is an append-only list of handlers where ejected slots become nil so
// that ids stay stable.
type chain[T any] struct {
	mu       sync.RWMutex
	handlers []*T
}

func (c *chain[T]) add(h *T) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, h)
	return len(c.handlers) - 1
}

func (c *chain[T]) eject(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id >= 0 && id < len(c.handlers) {
		c.handlers[id] = nil
	}
}

func (c *chain[T]) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.handlers {
		c.handlers[i] = nil
	}
}

func (c *chain[T]) snapshot() []*T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*T, 0, len(c.handlers))
	for _, h := range c.handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

// RequestInterceptors is the request-stage pipeline.
type RequestInterceptors struct {
	chain chain[RequestInterceptor]
}

// Use registers fn and returns an id for Eject.
func (r *RequestInterceptors) Use(fn RequestInterceptor) int {
	return r.chain.add(&fn)
}

// Eject removes the interceptor registered under id.
func (r *RequestInterceptors) Eject(id int) { r.chain.eject(id) }

// Clear removes all request interceptors.
func (r *RequestInterceptors) Clear() { r.chain.clear() }

// Len returns the number of registered interceptors.
func (r *RequestInterceptors) Len() int { return len(r.chain.snapshot()) }

func (r *RequestInterceptors) run(req *Request) error {
	for _, fn := range r.chain.snapshot() {
		if err := (*fn)(req); err != nil {
			return err
		}
	}
	return nil
}

type responseHandler struct {
	fulfilled FulfilledFunc
	rejected  RejectedFunc
}

// ResponseInterceptors is the response-stage pipeline.
type ResponseInterceptors struct {
	chain chain[responseHandler]
}

// Use registers a pair of handlers and returns an id for Eject. Either may be
// nil, in which case that outcome passes through untouched.
func (r *ResponseInterceptors) Use(onFulfilled FulfilledFunc, onRejected RejectedFunc) int {
	return r.chain.add(&responseHandler{fulfilled: onFulfilled, rejected: onRejected})
}

// Eject removes the handlers registered under id.
func (r *ResponseInterceptors) Eject(id int) { r.chain.eject(id) }

// Clear removes all response interceptors.
func (r *ResponseInterceptors) Clear() { r.chain.clear() }

// Len returns the number of registered handler pairs.
func (r *ResponseInterceptors) Len() int { return len(r.chain.snapshot()) }

func (r *ResponseInterceptors) run(ctx context.Context, resp *Response, err error) (*Response, error) {
	for _, h := range r.chain.snapshot() {
		if err == nil {
			if h.fulfilled != nil {
				resp, err = h.fulfilled(ctx, resp)
			}
			continue
		}
		if h.rejected != nil {
			resp, err = h.rejected(ctx, err)
		}
	}
	return resp, err
}
