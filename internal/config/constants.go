package config

import "time"

// Environment / config file keys
const (
	KeyDiscordToken       = "DISCORD_TOKEN"
	KeyDiscordAppID       = "DISCORD_APP_ID"
	KeyForceCommandUpdate = "DISCORD_FORCE_COMMAND_UPDATE"
	KeyDataDir            = "DATA_DIR"
	KeyDatabaseURL        = "DATABASE_URL"
	KeyDBMaxConns         = "DB_MAX_CONNS"
	KeyGuildSeedFile      = "GUILD_SEED_FILE"
	KeyHTTPPort           = "HTTP_PORT"
	KeyLogLevel           = "LOG_LEVEL"
	KeyLogFormat          = "LOG_FORMAT"
	KeyLogDir             = "LOG_DIR"
	KeyEnvironment        = "ENVIRONMENT"
	KeyVersion            = "VERSION"
	KeyFeedTimeout        = "FEED_TIMEOUT"
	KeyFeedSSRFGuard      = "FEED_SSRF_GUARD"
	KeyFeedAllowedPorts   = "FEED_ALLOWED_PORTS"
	KeyAlertInterval      = "ALERT_INTERVAL"
	KeyStatusTick         = "STATUS_TICK"
	KeyWorkerCount        = "WORKER_COUNT"
	KeyDMRatePerSecond    = "DM_RATE_PER_SECOND"
	KeyCooldownDevMode    = "COOLDOWN_DEV_MODE"
)

// Defaults
const (
	DefaultDataDir         = "data"
	DefaultDBMaxConns      = 10
	DefaultHTTPPort        = 8082
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultEnvironment     = "dev"
	DefaultVersion         = "dev"
	DefaultFeedTimeout     = 10 * time.Second
	DefaultAlertInterval   = 60 * time.Second
	DefaultStatusTick      = 15 * time.Second
	DefaultWorkerCount     = 4
	DefaultDMRatePerSecond = 2.0
)

// DefaultFeedAllowedPorts are the ports the SSRF guard lets through
const DefaultFeedAllowedPorts = "80,443,8080"

// Config file lookup
const (
	ConfigFileName = "config"
	ConfigFileType = "yaml"
)

// ConfigPaths are searched in order for the optional config file
var ConfigPaths = []string{".", "config"}

// Error Messages
const (
	ErrMsgReadConfigFailed = "failed to read config file: %w"
	ErrMsgInvalidPort      = "invalid %s entry %q: %w"
	ErrMsgInvalidConfig    = "invalid configuration: %s"
)

// Warnings
const (
	WarnSSRFGuardDisabled = "FEED_SSRF_GUARD is off in production; feed URLs may reach internal hosts"
	WarnDatabaseNoSSL     = "DATABASE_URL disables TLS (sslmode=disable) in production"
	WarnCooldownDevMode   = "COOLDOWN_DEV_MODE is on; demand broadcasts are not rate limited"
)
