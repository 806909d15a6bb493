package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/tarotlabs/go-tarot-server/auth"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyIdentity stores the authenticated identity
const ContextKeyIdentity ContextKey = "identity"

// IdentityFromContext returns the authenticated identity attached by
// RequireAuth.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(ContextKeyIdentity).(auth.Identity)
	return identity, ok
}

// RequireAuth is the request gate for protected routes. It extracts the
// session token (cookie first, bearer header as fallback), verifies its
// signature and expiry, and attaches the identity to the request context.
// The two failure modes share one response body so callers cannot probe
// which check failed. The gate holds no mutable state and is safe for
// unbounded concurrent use.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			rawToken := extractSessionToken(r)
			if rawToken == "" {
				respondError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			identity, err := s.tokens.Verify(rawToken)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "Invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyIdentity, identity)
			next(w, r.WithContext(ctx))
		}
	}
}

func extractSessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(sessionTokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
