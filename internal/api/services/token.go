package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rohits-web03/sharevault/internal/models"
)

var (
	ErrNoSecret     = errors.New("jwt secret is not configured")
	ErrMissingEmail = errors.New("token carries no email claim")
)

// Claims is the payload of an access token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 access tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for u, valid for the configured TTL.
func (s *TokenService) Issue(u *models.User) (string, error) {
	now := s.now()
	claims := &Claims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the identity the
// token was issued for.
func (s *TokenService) Verify(token string) (models.Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return models.Identity{}, fmt.Errorf("verify token: %w", err)
	}
	if claims.Email == "" {
		return models.Identity{}, ErrMissingEmail
	}
	return models.Identity{Email: claims.Email}, nil
}
