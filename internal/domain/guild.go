package domain

import (
	"slices"
	"time"
)

// GuildConfig is the persisted settings blob of one Discord guild
type GuildConfig struct {
	SchemaVersion int            `json:"schemaVersion" yaml:"schemaVersion"`
	GuildID       string         `json:"guildId" yaml:"guildId" validate:"required"`
	Servers       []ServerConfig `json:"servers" yaml:"servers" validate:"dive"`
	Alerts        AlertConfig    `json:"alerts" yaml:"alerts"`

	// HiddenFields is the legacy (schema 1) visibility list, upgraded into
	// each server's DisplaySettings.Fields on load.
	HiddenFields []string `json:"hiddenFields,omitempty" yaml:"hiddenFields,omitempty"`
}

// Server returns the server with the given ID or name
func (g *GuildConfig) Server(idOrName string) (*ServerConfig, bool) {
	for i := range g.Servers {
		s := &g.Servers[i]
		if s.ID == idOrName || s.Name == idOrName {
			return s, true
		}
	}
	return nil, false
}

// ServerConfig is the per-server configuration record
type ServerConfig struct {
	ID             string          `json:"id" yaml:"id" validate:"required"`
	Name           string          `json:"name" yaml:"name" validate:"required,max=100"`
	ChannelID      string          `json:"channelId,omitempty" yaml:"channelId"`
	MessageID      string          `json:"messageId,omitempty" yaml:"messageId"`
	Feeds          FeedURLs        `json:"feeds" yaml:"feeds"`
	Display        DisplaySettings `json:"display" yaml:"display"`
	UpdateInterval time.Duration   `json:"updateInterval" yaml:"updateInterval"`
}

// AlertConfig holds the great demand notification settings of a guild
type AlertConfig struct {
	Enabled     bool          `json:"enabled" yaml:"enabled"`
	ChannelID   string        `json:"channelId,omitempty" yaml:"channelId"`
	Cooldown    time.Duration `json:"cooldown" yaml:"cooldown"`
	Subscribers []string      `json:"subscribers,omitempty" yaml:"subscribers"`
}

// IsSubscribed reports whether the user receives direct notifications
func (a AlertConfig) IsSubscribed(userID string) bool {
	return slices.Contains(a.Subscribers, userID)
}

// AlertState is the last-seen demand set of one guild+server
type AlertState struct {
	GuildID  string   `json:"guildId"`
	ServerID string   `json:"serverId"`
	Crops    []string `json:"crops"`
	// Seen is false until the first poll produced economy data
	Seen bool `json:"seen"`
	// LastNotified is the last channel broadcast triggered by this server
	LastNotified *time.Time `json:"lastNotified,omitempty"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
