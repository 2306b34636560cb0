package repository

import (
	"context"
	"time"
)

// Cooldown defines the interface for cooldown timestamp persistence
type Cooldown interface {
	GetLastCooldown(ctx context.Context, scopeID, action string) (*time.Time, error)
	UpdateCooldown(ctx context.Context, scopeID, action string, timestamp time.Time) error
	DeleteCooldown(ctx context.Context, scopeID, action string) error
}
