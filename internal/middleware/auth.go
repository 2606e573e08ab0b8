// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/securepass/securepass/internal/service"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionValidator resolves a bearer token to a live session.
type SessionValidator interface {
	Session(token string) (service.Session, bool)
}

// publicPaths can be reached without a session so users can register, log
// in, or start password recovery.
var publicPaths = map[string]bool{
	"/api/health":            true,
	"/api/auth/login":        true,
	"/api/auth/register":     true,
	"/api/auth/forgot":       true,
	"/api/auth/forgot/reset": true,
}

// SessionAuth is a middleware that enforces bearer-token authentication.
//
// It checks the Authorization header for a token issued at login and
// resolves it to the current session. On success the session is stored in
// the request context for downstream handlers.
func SessionAuth(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" {
				http.Error(w, "authorization required", http.StatusUnauthorized)
				return
			}
			session, ok := sessions.Session(token)
			if !ok {
				http.Error(w, "invalid or expired session", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionFromContext extracts the session stored by SessionAuth.
func GetSessionFromContext(ctx context.Context) (service.Session, bool) {
	val := ctx.Value(sessionKey)
	if s, ok := val.(service.Session); ok {
		return s, true
	}
	return service.Session{}, false
}
