package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return tok
}

func TestStatic(t *testing.T) {
	tok, err := Static("abc").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)
}

func TestEnv(t *testing.T) {
	t.Setenv("APITOAST_TEST_TOKEN", "from-env")
	src := Env("APITOAST_TEST_TOKEN")

	tok, err := src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from-env", tok)

	t.Setenv("APITOAST_TEST_TOKEN", "")
	tok, err = src.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok, "env is read on every call")
}

func TestTokenFunc_PassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	src := TokenFunc(func(ctx context.Context) (string, error) {
		return ctx.Value(key{}).(string), nil
	})
	tok, err := src.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v", tok)
}

func TestRequireUnexpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	valid := signed(t, jwt.MapClaims{"sub": "alice", "exp": now.Add(time.Hour).Unix()})
	expired := signed(t, jwt.MapClaims{"sub": "bob", "exp": now.Add(-time.Minute).Unix()})
	noExp := signed(t, jwt.MapClaims{"sub": "carol"})

	tests := []struct {
		name    string
		token   string
		want    string
		wantErr bool
	}{
		{"valid jwt", valid, valid, false},
		{"expired jwt", expired, "", true},
		{"jwt without exp", noExp, noExp, false},
		{"opaque token", "opaque-api-key", "opaque-api-key", false},
		{"empty token", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := requireUnexpired{src: Static(tt.token), now: func() time.Time { return now }}
			got, err := src.Token(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrTokenExpired))
				var expErr *ExpiredTokenError
				require.True(t, errors.As(err, &expErr))
				assert.Equal(t, "bob", expErr.Subject)
				assert.Contains(t, err.Error(), "bob")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequireUnexpired_SourceError(t *testing.T) {
	wantErr := errors.New("vault sealed")
	src := RequireUnexpired(TokenFunc(func(context.Context) (string, error) {
		return "", wantErr
	}))
	_, err := src.Token(context.Background())
	assert.Equal(t, wantErr, err)
}
