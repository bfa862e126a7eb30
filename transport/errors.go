package transport

import (
	"errors"
	"fmt"

	"github.com/go-faster/jx"
)

// Common errors that can be checked with errors.Is.
var (
	// ErrUnauthorized indicates the server rejected the credentials (401).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates the credentials lack permission (403).
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates the requested resource does not exist (404).
	ErrNotFound = errors.New("not found")
	// ErrRateLimited indicates the rate limit has been exceeded (429).
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrServer indicates a 5xx response.
	ErrServer = errors.New("server error")
)

// ResponseError is returned when the server answers with a status outside
// the 2xx range. The full response, including the body, is kept.
type ResponseError struct {
	StatusCode int
	RequestID  string
	Response   *Response
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// ServerMessage returns the "message" field of a JSON object body, or "" if
// the body has none.
func (e *ResponseError) ServerMessage() string {
	if e.Response == nil {
		return ""
	}
	return messageField(e.Response.Data)
}

// Is implements errors.Is for sentinel error matching.
func (e *ResponseError) Is(target error) bool {
	switch {
	case e.StatusCode == 401:
		return target == ErrUnauthorized
	case e.StatusCode == 403:
		return target == ErrForbidden
	case e.StatusCode == 404:
		return target == ErrNotFound
	case e.StatusCode == 429:
		return target == ErrRateLimited
	case e.StatusCode >= 500:
		return target == ErrServer
	}
	return false
}

// NetworkError represents a failure to get any response from the server.
type NetworkError struct {
	Err    error
	Method string
	URL    string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// interceptorError marks an error returned by a request interceptor so that
// Do can hand it back unchanged instead of classifying it as a network error.
type interceptorError struct {
	err error
}

func (e *interceptorError) Error() string { return e.err.Error() }

func (e *interceptorError) Unwrap() error { return e.err }

// messageField extracts a top-level string "message" field from a JSON
// object. Anything else yields "".
func messageField(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	d := jx.DecodeBytes(data)
	if d.Next() != jx.Object {
		return ""
	}
	var msg string
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != "message" || d.Next() != jx.String {
			return d.Skip()
		}
		s, err := d.Str()
		if err != nil {
			return err
		}
		msg = s
		return nil
	})
	if err != nil {
		return ""
	}
	return msg
}
