package domain

import "time"

// Display limits imposed by Discord embeds
const (
	// MaxEmbedFields is the hard limit of fields in a single embed
	MaxEmbedFields = 25

	// MaxFieldValueLength is the maximum length of an embed field value
	MaxFieldValueLength = 1024

	// MaxFieldNameLength is the maximum length of an embed field name
	MaxFieldNameLength = 256
)

// Settings defaults
const (
	DefaultUpdateInterval = 60 * time.Second
	MinUpdateInterval     = 15 * time.Second
	DefaultAlertCooldown  = 60 * time.Minute
	DefaultFeedTimeout    = 10 * time.Second
)

// Cooldown action names
const (
	// ActionDemandBroadcast is the cooldown action for great demand channel posts
	ActionDemandBroadcast = "demand_broadcast"
)

// Settings schema versions
const (
	// SettingsSchemaLegacy is a guild blob without a version field (hidden-field list)
	SettingsSchemaLegacy = 1

	// SettingsSchemaCurrent is the typed display settings layout
	SettingsSchemaCurrent = 2
)
