// Package auth provides JWT token issuance/validation and password hashing.
// The rest of the application only ever sees the authenticated principal
// (account ID + role) that this package extracts.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role distinguishes the two account types on the platform.
type Role string

// Account roles.
const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	return r == RoleCustomer || r == RoleProvider
}

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the given account
	// and role. Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, accountID uuid.UUID, role Role) (string, error)

	// ValidateToken validates the provided access token string and extracts
	// the claims. Returns the claims containing the principal if the token
	// is valid, or an error if validation fails (expired, invalid
	// signature, unknown role, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated principal extracted from a token.
type Claims struct {
	// AccountID is the customer or provider ID the token was issued for.
	AccountID uuid.UUID

	// Role says which table AccountID lives in.
	Role Role

	// Standard registered JWT claims
	IssuedAt  time.Time
	ExpiresAt time.Time
}
