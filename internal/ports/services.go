package ports

import (
	"context"
	"time"
)

// RunLocker serializes recalculation runs. Overlapping runs over the same
// chat set are out of scope for the engine itself, so the trigger surface
// takes a lock before starting one.
type RunLocker interface {
	// Acquire takes the named lock for at most ttl. It returns false when
	// another holder already owns the lock.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release frees the named lock
	Release(ctx context.Context, key string) error
}

// TokenClaims are the claims carried by an access token
type TokenClaims struct {
	UserID string
	Role   string
}

// TokenService issues and validates access tokens
type TokenService interface {
	GenerateAccessToken(claims TokenClaims) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// PasswordService hashes and verifies operator credentials
type PasswordService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) (bool, error)
}
