package filestore

// Layout under the data directory
const (
	GuildsDir    = "guilds"
	StateDir     = "state"
	CooldownsDir = "cooldowns"
	FileExt      = ".json"
	tempPattern  = ".tmp-*"

	dirPerm  = 0o755
	filePerm = 0o644
)

// Error Messages
const (
	ErrMsgInvalidID       = "invalid identifier"
	ErrMsgReadFailed      = "failed to read %s: %w"
	ErrMsgWriteFailed     = "failed to write %s: %w"
	ErrMsgDecodeFailed    = "failed to decode %s: %w"
	ErrMsgEncodeFailed    = "failed to encode %s: %w"
	ErrMsgListFailed      = "failed to list guilds: %w"
	ErrMsgCreateDirFailed = "failed to create data directory: %w"
)

// Log Messages
const (
	LogMsgSkippingCorruptGuild = "Skipping unreadable guild settings file"
)
