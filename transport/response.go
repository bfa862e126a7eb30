package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-resty/resty/v2"
)

// Response is the envelope of a settled HTTP call.
type Response struct {
	StatusCode int
	Header     http.Header
	Data       []byte
	Method     string
	URL        string
	Duration   time.Duration
}

func newResponse(method, url string, raw *resty.Response) *Response {
	resp := &Response{
		StatusCode: raw.StatusCode(),
		Header:     raw.Header(),
		Data:       raw.Body(),
		Method:     method,
		URL:        url,
		Duration:   raw.Time(),
	}
	if raw.Request != nil && raw.Request.RawRequest != nil && raw.Request.RawRequest.URL != nil {
		resp.URL = raw.Request.RawRequest.URL.String()
	}
	return resp
}

// OK reports whether the status is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode stores the body in out. A *[]byte or *string receives the raw
// bytes; any other non-nil pointer is filled by JSON decoding. An empty body
// leaves out untouched.
func (r *Response) Decode(out any) error {
	switch v := out.(type) {
	case nil:
		return nil
	case *[]byte:
		*v = append((*v)[:0], r.Data...)
		return nil
	case *string:
		*v = string(r.Data)
		return nil
	}
	if len(r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Data, out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// Request is the view of an outgoing request given to request interceptors.
type Request struct {
	raw *resty.Request
}

// Context returns the context the call was started with.
func (r *Request) Context() context.Context { return r.raw.Context() }

// Method returns the HTTP method.
func (r *Request) Method() string { return r.raw.Method }

// URL returns the request URL as given to the client, before the base URL
// is applied.
func (r *Request) URL() string { return r.raw.URL }

// Header returns the request headers. Client-level default headers are merged
// in after interceptors run and do not override headers set here.
func (r *Request) Header() http.Header { return r.raw.Header }

// SetHeader sets a request header, replacing any existing value.
func (r *Request) SetHeader(key, value string) { r.raw.SetHeader(key, value) }

// Raw returns the underlying resty request.
func (r *Request) Raw() *resty.Request { return r.raw }
