// Package auth provides token sources for bearer authentication.
//
// A TokenSource is asked for a token before every request. An empty token
// means "send this request unauthenticated"; an error fails the request
// before it is dispatched.
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// TokenSource supplies the bearer token for a request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to a TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

// Token calls f(ctx).
func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// Static returns a source that always yields token.
func Static(token string) TokenSource {
	return TokenFunc(func(context.Context) (string, error) {
		return token, nil
	})
}

// Env returns a source that reads the environment variable name on every
// request. An unset variable yields no token.
func Env(name string) TokenSource {
	return TokenFunc(func(context.Context) (string, error) {
		return os.Getenv(name), nil
	})
}

// ErrTokenExpired is matched by *ExpiredTokenError.
var ErrTokenExpired = errors.New("token expired")

// ExpiredTokenError is returned by RequireUnexpired when the JWT's exp claim
// is in the past.
type ExpiredTokenError struct {
	Subject   string
	ExpiredAt time.Time
}

func (e *ExpiredTokenError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("token for %s expired at %s", e.Subject, e.ExpiredAt.Format(time.RFC3339))
	}
	return fmt.Sprintf("token expired at %s", e.ExpiredAt.Format(time.RFC3339))
}

// Is implements errors.Is for sentinel error matching.
func (e *ExpiredTokenError) Is(target error) bool {
	return target == ErrTokenExpired
}

// RequireUnexpired wraps src so that a JWT whose exp claim has passed fails
// the request instead of being sent. The signature is not verified; that is
// the server's job. Tokens that are not JWTs, or carry no exp, pass through.
func RequireUnexpired(src TokenSource) TokenSource {
	return requireUnexpired{src: src, now: time.Now}
}

type requireUnexpired struct {
	src TokenSource
	now func() time.Time
}

func (r requireUnexpired) Token(ctx context.Context) (string, error) {
	token, err := r.src.Token(ctx)
	if err != nil || token == "" {
		return token, err
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return token, nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return token, nil
	}
	sub, _ := claims.GetSubject()
	if !r.now().Before(exp.Time) {
		return "", &ExpiredTokenError{Subject: sub, ExpiredAt: exp.Time}
	}
	log.Debug().Str("sub", sub).Time("exp", exp.Time).Msg("bearer token valid")
	return token, nil
}
