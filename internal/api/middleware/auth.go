package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sohilaahmed2/AlaEltalab/internal/api/shared"
	"github.com/sohilaahmed2/AlaEltalab/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates JWT tokens from the Authorization header and adds
// the account ID and role to the request context for authorized requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				slog.Error("failed to validate token", "error", err)
				shared.RespondWithError(
					w,
					r,
					http.StatusInternalServerError,
					"Authentication error",
				)
			}
			return
		}

		ctx := context.WithValue(r.Context(), shared.AccountIDContextKey, claims.AccountID)
		ctx = context.WithValue(ctx, shared.RoleContextKey, claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole returns middleware that rejects authenticated requests whose
// token carries a different role. It must run after Authenticate.
func (m *AuthMiddleware) RequireRole(role auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := GetRole(r)
			if !ok {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
				return
			}
			if got != role {
				shared.RespondWithError(w, r, http.StatusForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetAccountID extracts the authenticated account ID from the request context.
// Returns the ID and a boolean indicating if it was found.
func GetAccountID(r *http.Request) (uuid.UUID, bool) {
	accountID, ok := r.Context().Value(shared.AccountIDContextKey).(uuid.UUID)
	return accountID, ok
}

// GetRole extracts the authenticated account's role from the request context.
// Returns the role and a boolean indicating if it was found.
func GetRole(r *http.Request) (auth.Role, bool) {
	role, ok := r.Context().Value(shared.RoleContextKey).(auth.Role)
	return role, ok
}
