package cooldown

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FarmBot_Go/internal/logger"
)

// postgresBackend implements Service using PostgreSQL advisory locks, so
// several bot processes sharing one database never double-broadcast.
type postgresBackend struct {
	db     *pgxpool.Pool
	config Config
	now    func() time.Time
}

// NewPostgresService creates a new cooldown service with Postgres backend
func NewPostgresService(db *pgxpool.Pool, config Config) Service {
	return &postgresBackend{
		db:     db,
		config: config,
		now:    time.Now,
	}
}

// CheckCooldown checks if a scope's action is on cooldown (unlocked read)
func (b *postgresBackend) CheckCooldown(ctx context.Context, scopeID, action string, window time.Duration) (bool, time.Duration, error) {
	if b.config.DevMode {
		return false, 0, nil
	}

	lastUsed, err := b.getLastUsed(ctx, b.db, scopeID, action)
	if err != nil {
		return false, 0, fmt.Errorf(ErrMsgCheckCooldownFailed, err)
	}

	onCooldown, remaining := remainingCooldown(b.now(), lastUsed, b.config.window(action, window))
	return onCooldown, remaining, nil
}

// EnforceCooldown atomically checks cooldown and executes action if allowed.
// Uses check-then-lock: a cheap unlocked read rejects most calls before the
// advisory lock is taken.
func (b *postgresBackend) EnforceCooldown(ctx context.Context, scopeID, action string, window time.Duration, fn func() error) error {
	log := logger.FromContext(ctx)

	onCooldown, remaining, err := b.CheckCooldown(ctx, scopeID, action, window)
	if err != nil {
		return err
	}
	if onCooldown {
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}

	if b.config.DevMode {
		log.Debug(LogMsgDevModeBypass, "action", action, "scope", scopeID)
		if err := fn(); err != nil {
			return err
		}
		_, err := b.db.Exec(ctx, SQLUpsertCooldown, scopeID, action, b.now())
		return err
	}

	tx, err := b.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// Advisory locks work even when no row exists (unlike SELECT FOR UPDATE)
	if _, err := tx.Exec(ctx, SQLAdvisoryLock, hashScopeAction(scopeID, action)); err != nil {
		return fmt.Errorf(ErrMsgAcquireLockFailed, err)
	}

	lastUsed, err := b.getLastUsed(ctx, tx, scopeID, action)
	if err != nil {
		return fmt.Errorf(ErrMsgGetCooldownTxFailed, err)
	}
	if onCooldown, remaining := remainingCooldown(b.now(), lastUsed, b.config.window(action, window)); onCooldown {
		log.Debug(LogMsgRaceConditionDetected, "action", action, "scope", scopeID, "remaining", remaining)
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}

	if err := fn(); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, SQLUpsertCooldown, scopeID, action, b.now()); err != nil {
		return fmt.Errorf(ErrMsgUpdateCooldownFailed, err)
	}

	// Commit releases the advisory lock
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	log.Debug(LogMsgCooldownEnforced, "action", action, "scope", scopeID)
	return nil
}

// ResetCooldown manually resets a cooldown
func (b *postgresBackend) ResetCooldown(ctx context.Context, scopeID, action string) error {
	if _, err := b.db.Exec(ctx, SQLDeleteCooldown, scopeID, action); err != nil {
		return fmt.Errorf(ErrMsgResetCooldownFailed, err)
	}
	return nil
}

// GetLastUsed returns when action was last performed
func (b *postgresBackend) GetLastUsed(ctx context.Context, scopeID, action string) (*time.Time, error) {
	return b.getLastUsed(ctx, b.db, scopeID, action)
}

// querier is satisfied by both the pool and a transaction
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (b *postgresBackend) getLastUsed(ctx context.Context, q querier, scopeID, action string) (*time.Time, error) {
	var lastUsed time.Time

	err := q.QueryRow(ctx, SQLSelectLastUsed, scopeID, action).Scan(&lastUsed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf(ErrMsgGetLastUsedFailed, err)
	}
	return &lastUsed, nil
}

// hashScopeAction creates a consistent int64 hash from scopeID + action for advisory locking
func hashScopeAction(scopeID, action string) int64 {
	h := sha256.Sum256([]byte(scopeID + HashSeparator + action))
	return int64(binary.BigEndian.Uint64(h[:8]) & HashMaskPositiveInt64)
}
