package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/FarmBot_Go/internal/bootstrap"
	"github.com/osse101/FarmBot_Go/internal/compose"
	"github.com/osse101/FarmBot_Go/internal/concurrency"
	"github.com/osse101/FarmBot_Go/internal/config"
	"github.com/osse101/FarmBot_Go/internal/cooldown"
	"github.com/osse101/FarmBot_Go/internal/demand"
	"github.com/osse101/FarmBot_Go/internal/discord"
	"github.com/osse101/FarmBot_Go/internal/feed"
	"github.com/osse101/FarmBot_Go/internal/scheduler"
	"github.com/osse101/FarmBot_Go/internal/settings"
	"github.com/osse101/FarmBot_Go/internal/status"
	"github.com/osse101/FarmBot_Go/internal/worker"
)

const (
	startupTimeout  = time.Minute
	shutdownTimeout = 30 * time.Second
	// workerQueueFactor sizes the job queue relative to the worker count
	workerQueueFactor = 16
)

// CommandFactory creates a Discord command and its handler.
// Used to register all available commands in one place.
type CommandFactory func() (*discordgo.ApplicationCommand, discord.CommandHandler)

func main() {
	if err := run(); err != nil {
		slog.Error("FarmBot failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startCtx, cancelStart := context.WithTimeout(ctx, startupTimeout)
	defer cancelStart()

	storage, err := bootstrap.OpenStorage(startCtx, cfg)
	if err != nil {
		return err
	}

	settingsSvc := settings.NewService(storage.Store)
	if err := bootstrap.SeedGuilds(startCtx, settingsSvc, cfg.SeedFile); err != nil {
		storage.Close()
		return err
	}

	fetcher := feed.NewFetcher(feed.Config{
		Timeout:      cfg.FeedTimeout,
		SSRFGuard:    cfg.FeedSSRFGuard,
		AllowedPorts: cfg.FeedAllowedPorts,
	})
	statuses := status.NewAggregator(fetcher, 0, status.PlayersGaugeHook)

	bot, err := discord.New(discord.Config{
		Token: cfg.DiscordToken,
		AppID: cfg.DiscordAppID,
	}, &discord.Services{
		Settings: settingsSvc,
		Statuses: statuses,
	})
	if err != nil {
		storage.Close()
		return err
	}

	cooldowns := storage.Cooldowns(cooldown.Config{DevMode: cfg.CooldownDevMode})
	tracker := demand.NewTracker(storage.Store, cooldowns, discord.NewNotifier(bot.Session), cfg.DMRatePerSecond)

	for _, factory := range getCommandFactories() {
		bot.Registry.Register(factory())
	}

	httpServer := discord.NewHTTPServer(strconv.Itoa(cfg.HTTPPort), bot, storage.Store)
	httpServer.Start()

	if err := bot.Start(); err != nil {
		httpServer.Stop()
		storage.Close()
		return err
	}

	if cfg.ForceCommandUpdate {
		slog.Info("Force command update enabled via environment variable")
	}
	if err := bot.RegisterCommands(bot.Registry, cfg.ForceCommandUpdate); err != nil {
		// The bot still works with the commands registered last time
		slog.Error("Failed to register commands", "error", err)
	}

	deps := &worker.Deps{
		Guilds:      settingsSvc,
		Statuses:    statuses,
		Publisher:   discord.NewPublisher(bot.Session),
		Servers:     storage.Store,
		Demand:      tracker,
		Locks:       concurrency.NewLockManager(),
		RenderHooks: []compose.RenderHook{compose.MetricsHook},
	}

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerCount*workerQueueFactor)
	// Jobs are not tied to the signal context so shutdown can drain them
	pool.Start(context.Background())

	sched := scheduler.New(pool)
	sched.Schedule(cfg.StatusTick, worker.NewStatusSweep(deps, pool))
	sched.Schedule(cfg.AlertInterval, worker.NewAlertSweep(deps, pool))

	slog.Info("FarmBot is running. Press CTRL-C to exit.",
		"status_tick", cfg.StatusTick,
		"alert_interval", cfg.AlertInterval,
		"workers", cfg.WorkerCount)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		HTTPServer: httpServer,
		Scheduler:  sched,
		Workers:    pool,
		Bot:        bot,
		Storage:    storage,
	})
	return nil
}

// getCommandFactories returns a list of all available Discord command factories.
// This provides a single place to see and manage all registered commands.
func getCommandFactories() []CommandFactory {
	return []CommandFactory{
		discord.PingCommand,
		discord.StatusCommand,
		discord.PlayersCommand,
		discord.DemandsCommand,
		discord.DemandAlertsCommand,
	}
}
