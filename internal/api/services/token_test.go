package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/sharevault/internal/models"
)

func newTokens(t *testing.T) *TokenService {
	t.Helper()
	s, err := NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)
	return s
}

func TestTokenService_RoundTrip(t *testing.T) {
	s := newTokens(t)

	token, err := s.Issue(&models.User{ID: "u1", Email: "a@x.io"})
	require.NoError(t, err)

	id, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, models.Identity{Email: "a@x.io"}, id)
}

func TestNewTokenService_NoSecret(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestTokenService_Verify(t *testing.T) {
	s := newTokens(t)
	now := time.Now()

	sign := func(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
		t.Helper()
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}
	valid := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name:  "garbage",
			token: func(*testing.T) string { return "not-a-jwt" },
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte("other"), &Claims{Email: "a@x.io", RegisteredClaims: valid})
			},
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte("test-secret"), &Claims{
					Email:            "a@x.io",
					RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))},
				})
			},
		},
		{
			name: "no expiry",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte("test-secret"), &Claims{Email: "a@x.io"})
			},
		},
		{
			name: "other hmac algorithm",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS512, []byte("test-secret"), &Claims{Email: "a@x.io", RegisteredClaims: valid})
			},
		},
		{
			name: "unsigned",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, &Claims{Email: "a@x.io", RegisteredClaims: valid})
			},
		},
		{
			name: "missing email",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte("test-secret"), &Claims{RegisteredClaims: valid})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := s.Verify(tt.token(t))
			assert.Error(t, err)
			assert.True(t, id.IsZero())
		})
	}
}
