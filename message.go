package apitoast

import "github.com/vaultsandbox/apitoast/transport"

// Fallback toast texts.
const (
	DefaultSuccessMessage = "Request successful"
	DefaultErrorMessage   = "Request failed"
)

// Message is either a literal text or a function deriving the text from the
// outcome of a request. The zero value selects the default text.
type Message[T any] struct {
	text   string
	derive func(T) string
}

// Literal returns a Message that always yields text.
func Literal[T any](text string) Message[T] {
	return Message[T]{text: text}
}

// Derive returns a Message computed from the outcome. A panic in fn is not
// recovered and reaches the caller of the request.
func Derive[T any](fn func(T) string) Message[T] {
	return Message[T]{derive: fn}
}

// SuccessText is Literal for success messages.
func SuccessText(text string) Message[*transport.Response] {
	return Literal[*transport.Response](text)
}

// SuccessFunc is Derive for success messages.
func SuccessFunc(fn func(*transport.Response) string) Message[*transport.Response] {
	return Derive(fn)
}

// ErrorText is Literal for error messages.
func ErrorText(text string) Message[error] {
	return Literal[error](text)
}

// ErrorFunc is Derive for error messages.
func ErrorFunc(fn func(error) string) Message[error] {
	return Derive(fn)
}

// IsZero reports whether m selects the default text.
func (m Message[T]) IsZero() bool {
	return m.text == "" && m.derive == nil
}

// resolve evaluates m against v, using fallback when m yields no text.
func (m Message[T]) resolve(v T, fallback func(T) string) string {
	var s string
	if m.derive != nil {
		s = m.derive(v)
	} else {
		s = m.text
	}
	if s == "" {
		return fallback(v)
	}
	return s
}
