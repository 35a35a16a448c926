// Package auth provides the two credential mechanisms of the API.
//
// TWO INDEPENDENT SCHEMES:
//  1. Companies authenticate with email/password and receive a locally
//     issued JWT, sent back on every request in a custom "token" header.
//     TokenService (this file) signs and validates those.
//  2. Job seekers never log in here — the external identity provider issues
//     their session tokens, sent as a standard Authorization bearer token.
//     IdentityVerifier (identity.go) validates those against the provider's
//     signing secret.
//
// Neither scheme needs a session store: everything required (subject,
// expiry) is inside the signed token, so validation is a pure function of
// the secret.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// companyTokenTTL bounds how long a recruiter session stays valid before
// the dashboard has to log in again.
const companyTokenTTL = 7 * 24 * time.Hour

const issuer = "hirehive"

// TokenService signs and validates company session tokens.
//
// It holds the HMAC secret used for both operations — the same secret must
// be configured on every instance of the service.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload. The company ID travels in the standard "sub"
// (Subject) claim.
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates and signs a session token for the given company ID.
func (s *TokenService) Generate(companyID string) (string, error) {
	return s.GenerateWithDuration(companyID, companyTokenTTL)
}

// GenerateWithDuration creates a token with a custom expiry duration.
// Used in tests to produce already-expired tokens.
func (s *TokenService) GenerateWithDuration(companyID string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   companyID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a company session token, returning the
// company ID from the Subject claim.
//
// Pinning the algorithm with jwt.WithValidMethods prevents algorithm
// confusion attacks ("alg":"none" tokens); requiring the issuer rejects
// tokens signed for other deployments that happen to share a secret.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}

	if c.Subject == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}

	return c.Subject, nil
}
