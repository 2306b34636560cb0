package worker

import (
	"context"
	"fmt"

	"github.com/osse101/FarmBot_Go/internal/compose"
	"github.com/osse101/FarmBot_Go/internal/concurrency"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/metrics"
)

// StatusJob refreshes one server, publishes its embed and persists the
// rotation cursor and message ID
type StatusJob struct {
	GuildID string
	Server  domain.ServerConfig
	deps    *Deps
}

// NewStatusJob creates the refresh job of one server
func NewStatusJob(deps *Deps, guildID string, server domain.ServerConfig) *StatusJob {
	return &StatusJob{GuildID: guildID, Server: server, deps: deps}
}

// Name implements Job
func (j *StatusJob) Name() string { return JobNameStatus }

// Process implements Job. A refresh of the same server that is still
// running makes this one a no-op.
func (j *StatusJob) Process(ctx context.Context) error {
	unlock, ok := j.deps.Locks.TryLock(concurrency.Key(JobNameStatus, j.GuildID, j.Server.ID))
	if !ok {
		metrics.JobsSkipped.WithLabelValues(JobNameStatus).Inc()
		logger.FromContext(ctx).Debug(LogMsgStatusAlreadyRunning, "guild_id", j.GuildID, "server_id", j.Server.ID)
		return nil
	}
	defer unlock()

	ctx = logger.WithPollID(ctx, logger.GeneratePollID())
	log := logger.FromContext(ctx).With("guild_id", j.GuildID, "server_id", j.Server.ID)

	status := j.deps.Statuses.Refresh(ctx, j.GuildID, j.Server)
	log.Debug(LogMsgStatusRefreshed, "online", status.Online, "players", len(status.Players))

	if j.Server.ChannelID == "" {
		return nil
	}

	comp := compose.Compose(ctx, status, j.Server.Display, j.deps.RenderHooks...)
	messageID, err := j.deps.Publisher.PublishStatus(ctx, j.Server, status, comp)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgPublishFailed, err)
	}

	if messageID != "" && messageID != j.Server.MessageID {
		if err := j.deps.Servers.UpdateServerMessage(ctx, j.GuildID, j.Server.ID, messageID); err != nil {
			log.Warn(LogMsgPersistMessageFailed, "error", err)
		}
	}
	// The cursor only advances once the window was actually shown
	if comp.CursorChanged {
		if err := j.deps.Servers.UpdateServerCursor(ctx, j.GuildID, j.Server.ID, comp.NextCursor); err != nil {
			log.Warn(LogMsgPersistCursorFailed, "error", err)
		}
	}
	return nil
}
