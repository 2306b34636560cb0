package worker

import (
	"context"
	"fmt"

	"github.com/osse101/FarmBot_Go/internal/concurrency"
	"github.com/osse101/FarmBot_Go/internal/demand"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/metrics"
)

// AlertJob checks every server of one guild for new great demands
type AlertJob struct {
	Guild domain.GuildConfig
	deps  *Deps
}

// NewAlertJob creates the demand check of one guild
func NewAlertJob(deps *Deps, guild domain.GuildConfig) *AlertJob {
	return &AlertJob{Guild: guild, deps: deps}
}

// Name implements Job
func (j *AlertJob) Name() string { return JobNameAlert }

// Process implements Job
func (j *AlertJob) Process(ctx context.Context) error {
	unlock, ok := j.deps.Locks.TryLock(concurrency.Key(JobNameAlert, j.Guild.GuildID))
	if !ok {
		metrics.JobsSkipped.WithLabelValues(JobNameAlert).Inc()
		logger.FromContext(ctx).Debug(LogMsgAlertAlreadyRunning, "guild_id", j.Guild.GuildID)
		return nil
	}
	defer unlock()

	ctx = logger.WithPollID(ctx, logger.GeneratePollID())
	for _, server := range j.Guild.Servers {
		if server.Feeds.Economy == "" {
			continue
		}
		j.checkServer(ctx, server)
	}
	return nil
}

func (j *AlertJob) checkServer(ctx context.Context, server domain.ServerConfig) {
	log := logger.FromContext(ctx).With("guild_id", j.Guild.GuildID, "server_id", server.ID)
	defer func() {
		if r := recover(); r != nil {
			metrics.JobPanics.WithLabelValues(JobNameAlert).Inc()
			log.Error(LogMsgServerCheckPanicked, "panic", fmt.Sprint(r))
		}
	}()

	status := j.deps.Statuses.Latest(ctx, j.Guild.GuildID, server)
	// A missing economy record means the feed failed this round. Diffing an
	// empty set here would re-announce every running demand next time.
	if status.Economy == nil {
		log.Debug(LogMsgNoEconomyData)
		return
	}

	eval, err := j.deps.Demand.Evaluate(ctx, j.Guild.GuildID, server.ID, status.Economy.Demands)
	if err != nil {
		log.Warn(LogMsgEvaluateFailed, "error", err)
		return
	}
	if len(eval.New) == 0 {
		return
	}

	observed := status.CheckedAt
	if observed.IsZero() {
		observed = j.deps.now()
	}
	j.deps.Demand.Notify(ctx, j.Guild.Alerts, demand.Notification{
		GuildID:    j.Guild.GuildID,
		ServerID:   server.ID,
		ServerName: server.Name,
		Events:     eval.New,
		ObservedAt: observed,
	})
}
