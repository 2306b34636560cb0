package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/FarmBot_Go/internal/concurrency"
	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

// repositoryBackend implements Service on any cooldown repository, serializing
// enforcement per scope+action with in-process locks.
type repositoryBackend struct {
	repo   repository.Cooldown
	locks  *concurrency.LockManager
	config Config
	now    func() time.Time
}

// NewService creates a cooldown service backed by a repository.
// It is safe within one process; use NewPostgresService when several
// processes share the store.
func NewService(repo repository.Cooldown, locks *concurrency.LockManager, config Config) Service {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &repositoryBackend{
		repo:   repo,
		locks:  locks,
		config: config,
		now:    time.Now,
	}
}

func (b *repositoryBackend) CheckCooldown(ctx context.Context, scopeID, action string, window time.Duration) (bool, time.Duration, error) {
	if b.config.DevMode {
		return false, 0, nil
	}

	lastUsed, err := b.repo.GetLastCooldown(ctx, scopeID, action)
	if err != nil {
		return false, 0, fmt.Errorf(ErrMsgCheckCooldownFailed, err)
	}

	onCooldown, remaining := remainingCooldown(b.now(), lastUsed, b.config.window(action, window))
	return onCooldown, remaining, nil
}

func (b *repositoryBackend) EnforceCooldown(ctx context.Context, scopeID, action string, window time.Duration, fn func() error) error {
	log := logger.FromContext(ctx)

	mu := b.locks.GetLock(concurrency.Key("cooldown", scopeID, action))
	mu.Lock()
	defer mu.Unlock()

	onCooldown, remaining, err := b.CheckCooldown(ctx, scopeID, action, window)
	if err != nil {
		return err
	}
	if onCooldown {
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}
	if b.config.DevMode {
		log.Debug(LogMsgDevModeBypass, "action", action, "scope", scopeID)
	}

	if err := fn(); err != nil {
		return err
	}

	if err := b.repo.UpdateCooldown(ctx, scopeID, action, b.now()); err != nil {
		return fmt.Errorf(ErrMsgUpdateCooldownFailed, err)
	}

	log.Debug(LogMsgCooldownEnforced, "action", action, "scope", scopeID)
	return nil
}

func (b *repositoryBackend) ResetCooldown(ctx context.Context, scopeID, action string) error {
	if err := b.repo.DeleteCooldown(ctx, scopeID, action); err != nil {
		return fmt.Errorf(ErrMsgResetCooldownFailed, err)
	}
	return nil
}

func (b *repositoryBackend) GetLastUsed(ctx context.Context, scopeID, action string) (*time.Time, error) {
	lastUsed, err := b.repo.GetLastCooldown(ctx, scopeID, action)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetLastUsedFailed, err)
	}
	return lastUsed, nil
}
