package postgres

// Migration settings
const (
	MigrationsDir     = "migrations"
	MigrationsDialect = "postgres"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Guilds
const (
	ErrMsgFailedToGetGuild       = "failed to get guild"
	ErrMsgFailedToListGuilds     = "failed to list guilds"
	ErrMsgFailedToSaveGuild      = "failed to save guild"
	ErrMsgFailedToDeleteGuild    = "failed to delete guild"
	ErrMsgFailedToLoadServers    = "failed to load servers"
	ErrMsgFailedToSaveServer     = "failed to save server"
	ErrMsgFailedToUpdateServer   = "failed to update server"
	ErrMsgFailedToUpdateAlerts   = "failed to update alert settings"
	ErrMsgFailedToEncodeSettings = "failed to encode settings"
	ErrMsgFailedToDecodeSettings = "failed to decode settings"
)

// Error Messages - Alert state and cooldowns
const (
	ErrMsgFailedToGetAlertState    = "failed to get alert state"
	ErrMsgFailedToSaveAlertState   = "failed to save alert state"
	ErrMsgFailedToGetCooldown      = "failed to get cooldown"
	ErrMsgFailedToUpdateCooldown   = "failed to update cooldown"
	ErrMsgFailedToDeleteCooldown   = "failed to delete cooldown"
	ErrMsgFailedToApplyMigrations  = "failed to apply migrations"
	ErrMsgFailedToSetMigrationDial = "failed to set migration dialect"
)

// Log Messages
const (
	LogMsgMigrationsApplied = "Database migrations applied"
	LogMsgRollbackFailed    = "Failed to roll back guild save"
)
