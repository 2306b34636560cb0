// Package demand detects newly started great demands and notifies guilds
// about them.
package demand

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/osse101/FarmBot_Go/internal/cooldown"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/metrics"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

// Notifier delivers notifications. Implementations must be safe for
// concurrent use.
type Notifier interface {
	PostChannel(ctx context.Context, channelID string, n Notification) error
	SendDM(ctx context.Context, userID string, n Notification) error
}

// Evaluation is the result of diffing one poll against the stored state
type Evaluation struct {
	// New holds the events whose crop was absent from the previous set
	New      []domain.DemandEvent
	Previous []string
	Current  []string
	// FirstObservation is set when no state existed for the server
	FirstObservation bool
}

// NotifyReport tallies one notification pass
type NotifyReport struct {
	Broadcast         string
	BroadcastErr      error
	CooldownRemaining time.Duration
	DMSucceeded       int
	DMFailed          int
}

// Tracker diffs great demands per guild+server and fans notifications out
type Tracker struct {
	states    repository.AlertState
	cooldowns cooldown.Service
	notifier  Notifier
	dmPacer   *dmPacer
	now       func() time.Time
}

// NewTracker creates a tracker. dmPerSecond paces direct messages per guild;
// zero or less disables pacing.
func NewTracker(states repository.AlertState, cooldowns cooldown.Service, notifier Notifier, dmPerSecond float64) *Tracker {
	limit := rate.Inf
	if dmPerSecond > 0 {
		limit = rate.Limit(dmPerSecond)
	}
	return &Tracker{
		states:    states,
		cooldowns: cooldowns,
		notifier:  notifier,
		dmPacer:   newDMPacer(limit),
		now:       time.Now,
	}
}

// dmPacer hands out one rate limiter per guild, so a guild with many
// subscribers does not hold up the DMs of other guilds
type dmPacer struct {
	mu       sync.Mutex
	limit    rate.Limit
	limiters *expirable.LRU[string, *rate.Limiter]
}

func newDMPacer(limit rate.Limit) *dmPacer {
	return &dmPacer{
		limit:    limit,
		limiters: expirable.NewLRU[string, *rate.Limiter](dmPacerCacheSize, nil, dmPacerTTL),
	}
}

func (p *dmPacer) forGuild(guildID string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok := p.limiters.Get(guildID); ok {
		return l
	}
	l := rate.NewLimiter(p.limit, 1)
	p.limiters.Add(guildID, l)
	return l
}

// Evaluate compares the current events against the stored crop set and
// replaces the stored set with the current one, even when it is empty.
// A crop that disappears and later returns is therefore new again.
func (t *Tracker) Evaluate(ctx context.Context, guildID, serverID string, events []domain.DemandEvent) (Evaluation, error) {
	log := logger.FromContext(ctx).With("guild", guildID, "server", serverID)

	prev, err := t.states.GetAlertState(ctx, guildID, serverID)
	if err != nil {
		return Evaluation{}, fmt.Errorf(ErrMsgLoadStateFailed, err)
	}

	eval := Evaluation{FirstObservation: prev == nil || !prev.Seen}
	previous := make(map[string]struct{})
	var lastNotified *time.Time
	if prev != nil {
		eval.Previous = prev.Crops
		lastNotified = prev.LastNotified
		for _, crop := range prev.Crops {
			previous[crop] = struct{}{}
		}
	}

	seen := make(map[string]struct{}, len(events))
	eval.Current = make([]string, 0, len(events))
	for _, e := range events {
		if _, dup := seen[e.Crop]; dup {
			continue
		}
		seen[e.Crop] = struct{}{}
		eval.Current = append(eval.Current, e.Crop)
		if _, known := previous[e.Crop]; !known {
			eval.New = append(eval.New, e)
		}
	}

	state := domain.AlertState{
		GuildID:      guildID,
		ServerID:     serverID,
		Crops:        eval.Current,
		Seen:         true,
		LastNotified: lastNotified,
		UpdatedAt:    t.now(),
	}
	if err := t.states.SaveAlertState(ctx, state); err != nil {
		return eval, fmt.Errorf(ErrMsgSaveStateFailed, err)
	}

	if eval.FirstObservation {
		log.Debug(LogMsgFirstObservation, "crops", eval.Current)
	}
	if len(eval.New) > 0 {
		metrics.DemandNewEvents.Add(float64(len(eval.New)))
		log.Info(LogMsgNewDemands, "crops", domain.Crops(eval.New))
	}
	return eval, nil
}

// Notify broadcasts the notification to the guild's alert channel, subject to
// the guild cooldown, and sends it to every subscriber without cooldown.
// Suppressed broadcasts are dropped, not queued. Each DM is attempted
// independently.
func (t *Tracker) Notify(ctx context.Context, alerts domain.AlertConfig, n Notification) NotifyReport {
	log := logger.FromContext(ctx).With("guild", n.GuildID, "server", n.ServerName)
	report := NotifyReport{Broadcast: BroadcastSkipped}
	if len(n.Events) == 0 {
		return report
	}
	if n.ObservedAt.IsZero() {
		n.ObservedAt = t.now()
	}

	if alerts.Enabled && alerts.ChannelID != "" {
		t.broadcast(ctx, alerts, n, &report)
	}

	limiter := t.dmPacer.forGuild(n.GuildID)
	for _, userID := range alerts.Subscribers {
		if err := limiter.Wait(ctx); err != nil {
			report.DMFailed++
			metrics.DemandDMs.WithLabelValues(metrics.ResultError).Inc()
			continue
		}
		if err := t.notifier.SendDM(ctx, userID, n); err != nil {
			report.DMFailed++
			metrics.DemandDMs.WithLabelValues(metrics.ResultError).Inc()
			log.Warn(LogMsgDMFailed, "user", userID, "error", err)
			continue
		}
		report.DMSucceeded++
		metrics.DemandDMs.WithLabelValues(metrics.ResultSent).Inc()
	}

	log.Info(LogMsgNotifyDone,
		"broadcast", report.Broadcast,
		"dm_succeeded", report.DMSucceeded,
		"dm_failed", report.DMFailed)
	return report
}

func (t *Tracker) broadcast(ctx context.Context, alerts domain.AlertConfig, n Notification, report *NotifyReport) {
	log := logger.FromContext(ctx).With("guild", n.GuildID)

	err := t.cooldowns.EnforceCooldown(ctx, n.GuildID, domain.ActionDemandBroadcast, alerts.Cooldown, func() error {
		return t.notifier.PostChannel(ctx, alerts.ChannelID, n)
	})

	var cdErr cooldown.ErrOnCooldown
	switch {
	case err == nil:
		report.Broadcast = BroadcastSent
		metrics.DemandBroadcasts.WithLabelValues(metrics.ResultSent).Inc()
		log.Info(LogMsgBroadcastSent, "channel", alerts.ChannelID)
		t.stampBroadcast(ctx, n)
	case errors.As(err, &cdErr):
		report.Broadcast = BroadcastSuppressed
		report.CooldownRemaining = cdErr.Remaining
		metrics.DemandBroadcasts.WithLabelValues(metrics.ResultSuppressed).Inc()
		log.Info(LogMsgBroadcastSuppressed, "remaining", cdErr.Remaining)
	default:
		report.Broadcast = BroadcastFailed
		report.BroadcastErr = err
		metrics.DemandBroadcasts.WithLabelValues(metrics.ResultError).Inc()
		log.Warn(LogMsgBroadcastFailed, "channel", alerts.ChannelID, "error", err)
	}
}

// stampBroadcast records which server triggered the last broadcast
func (t *Tracker) stampBroadcast(ctx context.Context, n Notification) {
	state, err := t.states.GetAlertState(ctx, n.GuildID, n.ServerID)
	if err != nil || state == nil {
		return
	}
	at := n.ObservedAt
	state.LastNotified = &at
	if err := t.states.SaveAlertState(ctx, *state); err != nil {
		logger.FromContext(ctx).Warn(LogMsgStampFailed, "error", err)
	}
}
