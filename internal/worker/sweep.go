package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/FarmBot_Go/internal/concurrency"
	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/metrics"
)

// dueTolerance absorbs ticker jitter so a 60s interval on a 15s tick
// refreshes every fourth tick, not every fifth
const dueTolerance = time.Second

// StatusSweep runs on the status tick and enqueues a StatusJob for every
// server whose own update interval has elapsed
type StatusSweep struct {
	deps  *Deps
	queue Enqueuer

	mu      sync.Mutex
	lastRun map[string]time.Time
}

// NewStatusSweep creates the status tick job
func NewStatusSweep(deps *Deps, queue Enqueuer) *StatusSweep {
	return &StatusSweep{deps: deps, queue: queue, lastRun: make(map[string]time.Time)}
}

// Name implements Job
func (s *StatusSweep) Name() string { return JobNameStatusSweep }

// Process implements Job
func (s *StatusSweep) Process(ctx context.Context) error {
	if !s.mu.TryLock() {
		metrics.JobsSkipped.WithLabelValues(JobNameStatusSweep).Inc()
		return nil
	}
	defer s.mu.Unlock()

	guilds, err := s.deps.Guilds.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgListGuildsFailed, "error", err)
		return err
	}

	now := s.deps.now()
	seen := make(map[string]struct{})
	for _, guild := range guilds {
		for _, server := range guild.Servers {
			key := concurrency.Key(guild.GuildID, server.ID)
			seen[key] = struct{}{}

			if last, ok := s.lastRun[key]; ok && now.Sub(last)+dueTolerance < server.UpdateInterval {
				continue
			}
			if s.queue.TryEnqueue(NewStatusJob(s.deps, guild.GuildID, server)) {
				s.lastRun[key] = now
			}
		}
	}

	for key := range s.lastRun {
		if _, ok := seen[key]; !ok {
			delete(s.lastRun, key)
		}
	}
	return nil
}

// AlertSweep runs on the alert interval and enqueues one AlertJob per guild
// that has at least one economy feed
type AlertSweep struct {
	deps  *Deps
	queue Enqueuer
}

// NewAlertSweep creates the alert sweep job
func NewAlertSweep(deps *Deps, queue Enqueuer) *AlertSweep {
	return &AlertSweep{deps: deps, queue: queue}
}

// Name implements Job
func (s *AlertSweep) Name() string { return JobNameAlertSweep }

// Process implements Job
func (s *AlertSweep) Process(ctx context.Context) error {
	guilds, err := s.deps.Guilds.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgListGuildsFailed, "error", err)
		return err
	}

	for _, guild := range guilds {
		for _, server := range guild.Servers {
			if server.Feeds.Economy != "" {
				s.queue.TryEnqueue(NewAlertJob(s.deps, guild))
				break
			}
		}
	}
	return nil
}
