package discord

import (
	"context"
	"time"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/logger"
)

const defaultCommandTimeout = 15 * time.Second

// SettingsService is the part of the settings layer the commands use
type SettingsService interface {
	Load(ctx context.Context, guildID string) (*domain.GuildConfig, error)
	Subscribe(ctx context.Context, guildID, userID string) error
	Unsubscribe(ctx context.Context, guildID, userID string) error
}

// StatusLookup produces fresh server snapshots
type StatusLookup interface {
	Refresh(ctx context.Context, guildID string, server domain.ServerConfig) domain.ServerStatus
}

// Services bundles the collaborators every command handler receives
type Services struct {
	Settings SettingsService
	Statuses StatusLookup
	// Timeout bounds the work of one command; zero uses a default
	Timeout time.Duration
}

func (s *Services) commandContext() (context.Context, context.CancelFunc) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}
	ctx := logger.WithPollID(context.Background(), logger.GeneratePollID())
	return context.WithTimeout(ctx, timeout)
}
