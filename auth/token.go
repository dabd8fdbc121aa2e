// Package auth issues and validates the operator's JWT. The surrounding
// application has a single admin credential pair; the engine itself knows
// nothing about authentication.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when the token is invalid
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when the token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidCredentials is returned when the login credentials are wrong
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const issuer = "railway-reservation"

// Claims represents the claims in the operator token
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and validates HMAC-signed operator tokens.
type TokenService struct {
	secret        []byte
	ttl           time.Duration
	adminUsername string
	adminPassword string
}

// NewTokenService creates a token service with the given signing secret and
// admin credentials.
func NewTokenService(secret string, ttl time.Duration, adminUsername, adminPassword string) *TokenService {
	return &TokenService{
		secret:        []byte(secret),
		ttl:           ttl,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
	}
}

// Login checks the credentials and issues a token for the operator.
func (s *TokenService) Login(ctx context.Context, username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}
	return s.issue(username)
}

// issue signs a token for the subject.
func (s *TokenService) issue(subject string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a token, returning its claims.
func (s *TokenService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
