package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zidalco/zidalco-backend/internal/auth"
	"github.com/zidalco/zidalco-backend/internal/models"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityFromContext returns the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityKey).(models.Identity)
	return id, ok
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}

// RequireAuth validates the bearer token, checks that the identity still
// exists in the registry and attaches it to the request context. The
// registry check matters because accounts live in memory: a token issued
// before a reseed must not outlive its account.
func RequireAuth(tokens *auth.TokenManager, registry *auth.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := auth.ParseBearer(r.Header.Get("Authorization"))
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			identity, err := tokens.Parse(raw)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					writeAuthError(w, http.StatusUnauthorized, "Session expired, please log in again")
					return
				}
				writeAuthError(w, http.StatusUnauthorized, "Invalid authentication token")
				return
			}
			if _, ok := registry.Lookup(identity.Email); !ok {
				writeAuthError(w, http.StatusUnauthorized, "Invalid authentication token")
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin allows only identities the registry recognizes as admins.
// Must run after RequireAuth.
func RequireAdmin(registry *auth.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if !registry.IsAdmin(identity) {
				writeAuthError(w, http.StatusForbidden, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
