package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityVerifier validates session tokens issued by the external identity
// provider for job seekers.
//
// Unlike TokenService it never issues tokens — users are created and
// authenticated entirely by the provider, and this verifier only confirms
// that a bearer token carries the provider's signature and has not expired.
// The provider's user ID travels in the Subject claim and becomes the
// User primary key everywhere in this system.
//
// No issuer pin here: the provider sets its own per-tenant issuer URL, and
// the shared signing secret is already tenant-specific.
type IdentityVerifier struct {
	secret []byte
}

// NewIdentityVerifier creates a verifier for the given provider signing
// secret.
func NewIdentityVerifier(secret string) (*IdentityVerifier, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: identity provider secret must be at least 16 characters")
	}
	return &IdentityVerifier{secret: []byte(secret)}, nil
}

// Verify validates a provider-issued bearer token and returns the user ID
// from its Subject claim.
func (v *IdentityVerifier) Verify(tokenStr string) (string, error) {
	token, err := jwt.Parse(
		tokenStr,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: session token expired")
		}
		return "", fmt.Errorf("auth: invalid session token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("auth: session token has no subject")
	}

	return sub, nil
}
