package apitoast

import (
	"errors"

	"github.com/vaultsandbox/apitoast/transport"
)

// ResponseError is returned for responses outside the 2xx range.
type ResponseError = transport.ResponseError

// NetworkError is returned when no response was received.
type NetworkError = transport.NetworkError

// Sentinel errors for errors.Is() checks.
var (
	// ErrUnauthorized matches a 401 response.
	ErrUnauthorized = transport.ErrUnauthorized
	// ErrForbidden matches a 403 response.
	ErrForbidden = transport.ErrForbidden
	// ErrNotFound matches a 404 response.
	ErrNotFound = transport.ErrNotFound
	// ErrRateLimited matches a 429 response.
	ErrRateLimited = transport.ErrRateLimited
	// ErrServer matches any 5xx response.
	ErrServer = transport.ErrServer
)

// FallbackErrorMessage returns the text shown for err when no error message
// is configured: the server's "message" field, else err.Error(), else
// DefaultErrorMessage. Custom ErrorFunc implementations can delegate to it.
func FallbackErrorMessage(err error) string {
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		if msg := respErr.ServerMessage(); msg != "" {
			return msg
		}
	}
	if err != nil {
		if msg := err.Error(); msg != "" {
			return msg
		}
	}
	return DefaultErrorMessage
}
