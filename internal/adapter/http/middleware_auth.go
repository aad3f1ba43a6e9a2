package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/slatrack/slatrack/internal/ports"
	"github.com/slatrack/slatrack/pkg/apperror"
)

type contextKey string

// AuthUserKey is the request-context key holding the validated token claims
const AuthUserKey contextKey = "auth_user"

// AuthMiddleware validates bearer tokens on protected routes
type AuthMiddleware struct {
	tokenService ports.TokenService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokenService ports.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenService: tokenService}
}

// RequireAuth rejects requests without a valid bearer token
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, apperror.NewUnauthorized("Authorization header required"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			writeError(w, apperror.NewUnauthorized("Invalid authorization header format"))
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(parts[1])
		if err != nil {
			writeError(w, apperror.NewUnauthorized("Invalid or expired token"))
			return
		}

		ctx := context.WithValue(r.Context(), AuthUserKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
