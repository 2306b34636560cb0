package worker

import (
	"context"
	"time"

	"github.com/osse101/FarmBot_Go/internal/compose"
	"github.com/osse101/FarmBot_Go/internal/concurrency"
	"github.com/osse101/FarmBot_Go/internal/demand"
	"github.com/osse101/FarmBot_Go/internal/domain"
)

// GuildLister returns the guilds to poll
type GuildLister interface {
	List(ctx context.Context) ([]domain.GuildConfig, error)
}

// StatusSource produces server snapshots
type StatusSource interface {
	Refresh(ctx context.Context, guildID string, server domain.ServerConfig) domain.ServerStatus
	Latest(ctx context.Context, guildID string, server domain.ServerConfig) domain.ServerStatus
}

// StatusPublisher renders a composition into the server's status channel and
// returns the ID of the message that now shows it
type StatusPublisher interface {
	PublishStatus(ctx context.Context, server domain.ServerConfig, status domain.ServerStatus, c compose.Composition) (string, error)
}

// ServerWriter persists the per-server values a poll changes
type ServerWriter interface {
	UpdateServerCursor(ctx context.Context, guildID, serverID string, cursor int) error
	UpdateServerMessage(ctx context.Context, guildID, serverID, messageID string) error
}

// DemandTracker diffs great demands and sends notifications
type DemandTracker interface {
	Evaluate(ctx context.Context, guildID, serverID string, events []domain.DemandEvent) (demand.Evaluation, error)
	Notify(ctx context.Context, alerts domain.AlertConfig, n demand.Notification) demand.NotifyReport
}

// Enqueuer accepts jobs without blocking
type Enqueuer interface {
	TryEnqueue(job Job) bool
}

// Deps are the collaborators shared by the poll jobs
type Deps struct {
	Guilds      GuildLister
	Statuses    StatusSource
	Publisher   StatusPublisher
	Servers     ServerWriter
	Demand      DemandTracker
	Locks       *concurrency.LockManager
	RenderHooks []compose.RenderHook
	Now         func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}
