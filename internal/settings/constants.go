package settings

// Log Messages
const (
	LogMsgUpgradedSettings   = "Upgraded legacy guild settings"
	LogMsgDroppedUnknownID   = "Dropping unknown display field ID"
	LogMsgClampedInterval    = "Update interval below minimum, clamping"
	LogMsgSkippingGuild      = "Skipping guild with invalid settings"
	LogMsgSeededGuild        = "Seeded guild settings"
	LogMsgSeedGuildExists    = "Guild already has settings, seed entry ignored"
	LogMsgSubscribersChanged = "Demand alert subscribers changed"
)

// Error Messages
const (
	ErrMsgDuplicateServer    = "duplicate server id %q"
	ErrMsgDuplicateName      = "duplicate server name %q"
	ErrMsgIntervalTooShort   = "server %q update interval %s is below %s"
	ErrMsgReadSeedFailed     = "failed to read seed file: %w"
	ErrMsgDecodeSeedFailed   = "failed to decode seed file: %w"
	ErrMsgSaveSettingsFailed = "failed to save guild settings: %w"
)
