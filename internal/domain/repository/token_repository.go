package repository

import (
	"context"
	"time"
)

// TokenBlacklist refresh tokens revocados en el logout, por jti.
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
