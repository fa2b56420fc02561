package middleware

import (
	"net/http"
	"strings"

	"syndl/pkg/utils"

	"go.uber.org/zap"
)

// SessionChecker validates an admin session token.
type SessionChecker interface {
	IsLoggedIn(token string) bool
}

// AdminSession guards the admin routes with the ephemeral session token
// issued at login.
func AdminSession(auth SessionChecker, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			if !auth.IsLoggedIn(parts[1]) {
				logger.Warn("Invalid or expired admin session", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
