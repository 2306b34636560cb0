package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0o755

	// LogFilePermission is the permission for session log files
	LogFilePermission = 0o644
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older session logs kept next to the new one
	LogFileRetentionCount = 9
)

const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingFarmBot     = "Starting FarmBot"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory: %w"
	ErrMsgFailedOpenLogFile   = "failed to open log file: %w"
)

// =============================================================================
// Storage
// =============================================================================

const (
	// DBMaxIdleTime closes pooled connections idle for longer than this
	DBMaxIdleTime = 30 * time.Minute

	// DBMaxLifetime recycles pooled connections after this age
	DBMaxLifetime = time.Hour
)

const (
	LogMsgStorageFile     = "Using file storage"
	LogMsgStoragePostgres = "Using PostgreSQL storage"
	LogMsgGuildsSeeded    = "Seeded guild settings"
	LogMsgSeedSkipped     = "No new guilds in seed file"

	ErrMsgOpenFileStore   = "failed to open file store: %w"
	ErrMsgConnectDatabase = "failed to connect to database: %w"
	ErrMsgMigrateDatabase = "failed to migrate database: %w"
	ErrMsgSeedGuilds      = "failed to seed guilds: %w"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDown       = "Shutting down..."
	LogMsgWorkersStopFailed  = "Worker pool did not drain before the deadline"
	LogMsgShutdownComplete   = "Shutdown complete"
	LogMsgStoppingScheduler  = "Stopping scheduler"
	LogMsgDrainingWorkers    = "Draining worker pool"
	LogMsgClosingDiscord     = "Closing Discord session"
	LogMsgClosingStorage     = "Closing storage"
	LogMsgStoppingHTTPServer = "Stopping HTTP server"
)
