package http

import (
	"context"
	"net/http"
)

type sessionIDKey struct{}
type userIDKey struct{}

// identityMiddleware requires the session and user identity headers on every
// API request. The engine scopes staged actions by these values; a request
// without them cannot be attributed and is rejected.
func identityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get("X-Session-ID")
		userID := r.Header.Get("X-User-ID")

		if sessionID == "" || userID == "" {
			http.Error(w, "X-Session-ID and X-User-ID headers are required", http.StatusBadRequest)
			return
		}

		ctx := context.WithValue(r.Context(), sessionIDKey{}, sessionID)
		ctx = context.WithValue(ctx, userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionIDFrom(ctx context.Context) string {
	s, _ := ctx.Value(sessionIDKey{}).(string)
	return s
}

func userIDFrom(ctx context.Context) string {
	s, _ := ctx.Value(userIDKey{}).(string)
	return s
}
