package repository

import (
	"context"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// AlertState defines the interface for great demand state persistence
type AlertState interface {
	// GetAlertState returns nil without error when the server was never polled
	GetAlertState(ctx context.Context, guildID, serverID string) (*domain.AlertState, error)
	SaveAlertState(ctx context.Context, state domain.AlertState) error
}
