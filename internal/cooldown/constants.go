package cooldown

import "time"

// DefaultCooldownDuration applies to actions with no configured duration
const DefaultCooldownDuration = 5 * time.Minute

// Advisory lock keys hash "scope:action" into a positive int64
const (
	HashSeparator         = ":"
	HashMaskPositiveInt64 = 0x7FFFFFFFFFFFFFFF
)

const (
	SQLAdvisoryLock   = "SELECT pg_advisory_xact_lock($1)"
	SQLSelectLastUsed = `SELECT last_used_at FROM cooldowns WHERE scope_id = $1 AND action_name = $2`
	SQLDeleteCooldown = `DELETE FROM cooldowns WHERE scope_id = $1 AND action_name = $2`
	SQLUpsertCooldown = `
		INSERT INTO cooldowns (scope_id, action_name, last_used_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (scope_id, action_name) DO UPDATE
		SET last_used_at = EXCLUDED.last_used_at`
)

// Error messages
const (
	ErrMsgCheckCooldownFailed     = "failed to check cooldown: %w"
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgAcquireLockFailed       = "failed to acquire advisory lock: %w"
	ErrMsgGetCooldownTxFailed     = "failed to get cooldown within transaction: %w"
	ErrMsgUpdateCooldownFailed    = "failed to update cooldown: %w"
	ErrMsgCommitTransactionFailed = "failed to commit cooldown transaction: %w"
	ErrMsgResetCooldownFailed     = "failed to reset cooldown: %w"
	ErrMsgGetLastUsedFailed       = "failed to get last used: %w"

	// ErrFmtOnCooldown takes the action and the remaining time rounded to seconds
	ErrFmtOnCooldown = "%s is on cooldown for another %s"
)

// Log messages
const (
	LogMsgDevModeBypass         = "Cooldown dev mode: skipping enforcement"
	LogMsgRaceConditionDetected = "Lost cooldown race to a concurrent broadcast"
	LogMsgCooldownEnforced      = "Cooldown started"
)
