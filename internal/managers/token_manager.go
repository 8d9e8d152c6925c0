package managers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPurpose restricts which operation may accept a signed token. A token
// minted for one purpose is rejected everywhere else, even when otherwise
// well-formed and unexpired.
type TokenPurpose string

const (
	PurposeSession      TokenPurpose = "session"
	PurposeVerification TokenPurpose = "verification"
	PurposeReset        TokenPurpose = "reset"
)

var (
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("token is malformed or its signature is invalid")
	ErrWrongPurpose   = errors.New("token was issued for a different purpose")
)

// TokenMgr is the codec for signed, expiring, purpose-tagged tokens.
type TokenMgr interface {
	Issue(subject string, purpose TokenPurpose, ttl time.Duration) (string, error)
	Verify(tokenString string, expected TokenPurpose) (string, error)
}

// TokenManager signs and verifies HS256 JWTs carrying {sub, purpose, exp,
// iat}. The purpose is part of the signed payload; without it a reset token
// could be replayed as a session token under the shared secret.
type TokenManager struct {
	secret []byte
}

type purposeClaims struct {
	jwt.RegisteredClaims
	Purpose TokenPurpose `json:"purpose"`
}

// NewTokenManager creates a TokenManager from the shared signing secret.
// An empty secret is refused.
func NewTokenManager(secret string) (TokenMgr, error) {
	if secret == "" {
		return nil, errors.New("signing secret must not be empty")
	}
	return &TokenManager{secret: []byte(secret)}, nil
}

// Issue produces a signed token for the subject, valid for ttl from now.
func (tm *TokenManager) Issue(subject string, purpose TokenPurpose, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := purposeClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Purpose: purpose,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Verify decodes the token, checks signature and expiry, and requires the
// embedded purpose to match exactly. It returns the subject on success.
func (tm *TokenManager) Verify(tokenString string, expected TokenPurpose) (string, error) {
	claims := &purposeClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("invalid signing method %q", token.Method.Alg())
		}
		return tm.secret, nil
	})

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrTokenExpired
	case err != nil:
		return "", ErrTokenMalformed
	case !token.Valid:
		return "", ErrTokenMalformed
	}

	if claims.Purpose != expected {
		return "", ErrWrongPurpose
	}

	return claims.Subject, nil
}
