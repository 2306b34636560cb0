package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/FarmBot_Go/internal/discord"
	"github.com/osse101/FarmBot_Go/internal/scheduler"
	"github.com/osse101/FarmBot_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil components are skipped.
type ShutdownComponents struct {
	HTTPServer *discord.HTTPServer
	Scheduler  *scheduler.Scheduler
	Workers    *worker.Pool
	Bot        *discord.Bot
	Storage    *Storage
}

// GracefulShutdown stops the components in dependency order:
// 1. Scheduler (no new jobs)
// 2. Worker pool (in-flight polls finish publishing)
// 3. Discord session
// 4. HTTP server
// 5. Storage
//
// Errors are logged and never stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDown)

	if c.Scheduler != nil {
		slog.Info(LogMsgStoppingScheduler)
		c.Scheduler.Stop()
	}

	if c.Workers != nil {
		slog.Info(LogMsgDrainingWorkers)
		if err := c.Workers.Stop(ctx); err != nil {
			slog.Error(LogMsgWorkersStopFailed, "error", err)
		}
	}

	if c.Bot != nil {
		slog.Info(LogMsgClosingDiscord)
		c.Bot.Stop()
	}

	if c.HTTPServer != nil {
		slog.Info(LogMsgStoppingHTTPServer)
		c.HTTPServer.Stop()
	}

	if c.Storage != nil {
		slog.Info(LogMsgClosingStorage)
		c.Storage.Close()
	}

	slog.Info(LogMsgShutdownComplete)
}
