package repository

import (
	"context"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// Guild defines the interface for guild settings persistence
type Guild interface {
	// GetGuild returns domain.ErrGuildNotFound when the guild has no settings
	GetGuild(ctx context.Context, guildID string) (*domain.GuildConfig, error)
	ListGuilds(ctx context.Context) ([]domain.GuildConfig, error)
	SaveGuild(ctx context.Context, cfg *domain.GuildConfig) error
	DeleteGuild(ctx context.Context, guildID string) error

	// Narrow per-server writes used by the pollers so they never overwrite
	// settings edited concurrently through commands.
	UpdateServerCursor(ctx context.Context, guildID, serverID string, cursor int) error
	UpdateServerMessage(ctx context.Context, guildID, serverID, messageID string) error

	// UpdateAlerts replaces only the guild's alert settings
	UpdateAlerts(ctx context.Context, guildID string, alerts domain.AlertConfig) error
}
