package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is an unexported type for context keys in this package, so no
// other package can read or shadow the authenticated principal.
type contextKey string

const (
	companyIDKey contextKey = "companyID"
	userIDKey    contextKey = "userID"
)

// CompanyTokenHeader is the custom header recruiters send their session
// token in. The SPA stores the token and attaches it to every dashboard
// request.
const CompanyTokenHeader = "token"

const unauthorizedBody = `{"success":false,"message":"Not authorized, login again"}`

// RequireCompany enforces company authentication on recruiter routes.
//
// It reads the session token from the "token" header, validates it, and
// stores the company ID in the request context. Missing or invalid tokens
// stop the chain with 401 — handlers behind this middleware can assume a
// company is present.
func RequireCompany(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := r.Header.Get(CompanyTokenHeader)
			if tokenStr == "" {
				writeUnauthorized(w)
				return
			}

			companyID, err := tokens.Validate(tokenStr)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), companyIDKey, companyID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser enforces seeker authentication on user routes.
//
// It reads a standard "Authorization: Bearer <token>" header, verifies the
// token against the identity provider's secret, and stores the provider's
// user ID in the request context.
func RequireUser(identity *IdentityVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				writeUnauthorized(w)
				return
			}

			userID, err := identity.Verify(tokenStr)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CompanyIDFromContext retrieves the authenticated company's ID.
// Returns ("", false) if the request did not pass RequireCompany.
func CompanyIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(companyIDKey).(string)
	return id, ok && id != ""
}

// UserIDFromContext retrieves the authenticated user's ID.
// Returns ("", false) if the request did not pass RequireUser.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
// Returns "" if the header is absent or not a bearer credential.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(unauthorizedBody))
}
