package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const ownerKey contextKey = "owner"

// Auth is middleware that resolves the owner identity from the Authorization
// header using the injected verifier and stores it on the request context.
// Requests without a valid bearer token are rejected with 401.
func Auth(verify func(token string) (int64, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				WriteError(w, http.StatusUnauthorized, ErrUnauthorized, "Missing bearer token")
				return
			}

			owner, err := verify(token)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, ErrUnauthorized, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), owner)))
		})
	}
}

// WithOwner returns a context carrying the authenticated owner id.
func WithOwner(ctx context.Context, owner int64) context.Context {
	return context.WithValue(ctx, ownerKey, owner)
}

// Owner extracts the authenticated owner id from the request context.
// It returns 0 when the request did not pass through Auth.
func Owner(r *http.Request) int64 {
	owner, _ := r.Context().Value(ownerKey).(int64)
	return owner
}
