package core

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL bounds session token validity. Expiry is enforced by the JWT
// library during verification, not by handler logic.
const tokenTTL = 7 * 24 * time.Hour

// Claims is the session token payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}

// TokenService issues and verifies signed session tokens. Verification is
// stateless; issued tokens are never stored server-side.
type TokenService struct {
	secret []byte
}

// NewTokenService fails when secret is empty: a missing signing secret is a
// fatal startup condition, never a per-request error.
func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// Issue signs a token carrying the user's identity claims, valid for 7 days.
func (s *TokenService) Issue(userID int64, username, fullname string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		UserID:   userID,
		Username: username,
		Fullname: fullname,
	})
	return token.SignedString(s.secret)
}

// Verify parses and validates a token. It returns nil for a missing,
// malformed, tampered or expired token; callers treat all of those as
// "not authenticated".
func (s *TokenService) Verify(tokenString string) *Claims {
	if tokenString == "" {
		return nil
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil
	}
	return claims
}
