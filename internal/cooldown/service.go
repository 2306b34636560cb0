package cooldown

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// Service manages action cooldowns per scope (a guild for channel broadcasts)
type Service interface {
	// CheckCooldown reports whether the scope's action is on cooldown.
	// A zero window uses the configured duration for the action.
	// Returns: (onCooldown bool, remaining time.Duration, error)
	CheckCooldown(ctx context.Context, scopeID, action string, window time.Duration) (bool, time.Duration, error)

	// EnforceCooldown atomically checks the cooldown and runs fn if allowed.
	// The timestamp is only recorded when fn succeeds.
	EnforceCooldown(ctx context.Context, scopeID, action string, window time.Duration, fn func() error) error

	// ResetCooldown manually resets a cooldown (admin/testing)
	ResetCooldown(ctx context.Context, scopeID, action string) error

	// GetLastUsed returns when the action last succeeded
	GetLastUsed(ctx context.Context, scopeID, action string) (*time.Time, error)
}

// ErrOnCooldown is returned when action is still on cooldown
type ErrOnCooldown struct {
	Action    string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	return fmt.Sprintf(ErrFmtOnCooldown, e.Action, e.Remaining.Round(time.Second))
}

// Is allows errors.Is() to match any ErrOnCooldown and domain.ErrOnCooldown
func (e ErrOnCooldown) Is(target error) bool {
	if errors.Is(target, domain.ErrOnCooldown) {
		return true
	}
	_, ok := target.(ErrOnCooldown)
	return ok
}

// remainingCooldown compares lastUsed against the window at now
func remainingCooldown(now time.Time, lastUsed *time.Time, window time.Duration) (bool, time.Duration) {
	if lastUsed == nil {
		return false, 0
	}

	elapsed := now.Sub(*lastUsed)
	if elapsed < window {
		return true, window - elapsed
	}

	return false, 0
}
