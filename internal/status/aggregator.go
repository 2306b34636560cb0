// Package status merges the feeds of one dedicated server into a single
// domain.ServerStatus snapshot.
package status

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/feed"
	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/metrics"
	"github.com/osse101/FarmBot_Go/internal/parser"
)

const (
	defaultCacheSize = 512
	defaultCacheTTL  = 2 * domain.DefaultUpdateInterval
)

// FeedFetcher retrieves the raw payloads of one server
type FeedFetcher interface {
	FetchAll(ctx context.Context, sources []domain.FeedSource) feed.Result
}

// StatusHook observes every aggregated status. Hooks run synchronously after
// aggregation and must not retain or modify the status.
type StatusHook func(ctx context.Context, server domain.ServerConfig, status domain.ServerStatus)

// Aggregator builds ServerStatus snapshots and remembers the latest one per server
type Aggregator struct {
	fetcher FeedFetcher
	hooks   []StatusHook
	latest  *expirable.LRU[string, domain.ServerStatus]
	now     func() time.Time
}

// NewAggregator creates an aggregator. A zero cacheTTL uses twice the default
// update interval.
func NewAggregator(fetcher FeedFetcher, cacheTTL time.Duration, hooks ...StatusHook) *Aggregator {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &Aggregator{
		fetcher: fetcher,
		hooks:   hooks,
		latest:  expirable.NewLRU[string, domain.ServerStatus](defaultCacheSize, nil, cacheTTL),
		now:     time.Now,
	}
}

// Check fetches and parses every configured feed of the server. It never
// fails: a missing or unreadable stats feed yields an offline status carrying
// the reason, and optional feeds that fail are left nil.
func (a *Aggregator) Check(ctx context.Context, server domain.ServerConfig) domain.ServerStatus {
	log := logger.FromContext(ctx).With("server", server.Name)
	checkedAt := a.now()

	sources := server.Feeds.Sources()
	if server.Feeds.Stats == "" {
		return a.finish(ctx, server, domain.Offline(ReasonStatsNotConfigured, checkedAt))
	}

	result := a.fetcher.FetchAll(ctx, sources)

	raw, ok := result.Body(domain.FeedStats)
	if !ok {
		reason := ReasonStatsUnavailable
		if err := result.Errors[domain.FeedStats]; err != nil {
			reason = fmt.Sprintf("%s: %v", ReasonStatsUnavailable, err)
		}
		log.Info(LogMsgServerOffline, "reason", reason)
		return a.finish(ctx, server, domain.Offline(reason, checkedAt))
	}

	stats, ok := parser.ParseStats(raw)
	if !ok {
		log.Info(LogMsgServerOffline, "reason", ReasonStatsUnparseable)
		return a.finish(ctx, server, domain.Offline(ReasonStatsUnparseable, checkedAt))
	}
	if !stats.Online {
		log.Info(LogMsgServerOffline, "reason", ReasonNoGameRunning)
		return a.finish(ctx, server, domain.Offline(ReasonNoGameRunning, checkedAt))
	}

	st := domain.ServerStatus{
		Online:    true,
		CheckedAt: checkedAt,
		Name:      stats.Name,
		Map:       stats.Map,
		Version:   stats.Version,
		Game:      stats.Game,
		Players:   stats.Players,
		Capacity:  stats.Capacity,
		DayTimeMs: stats.DayTimeMs,
		ModCount:  stats.ModCount,
	}

	if body, ok := result.Body(domain.FeedCareer); ok {
		if career, ok := parser.ParseCareer(body); ok {
			st.Career = career
		} else {
			log.Debug(LogMsgOptionalMissing, "feed", domain.FeedCareer)
		}
	}
	if body, ok := result.Body(domain.FeedVehicles); ok {
		if vehicles, ok := parser.ParseVehicles(body); ok {
			st.Vehicles = vehicles
		} else {
			log.Debug(LogMsgOptionalMissing, "feed", domain.FeedVehicles)
		}
	}
	if body, ok := result.Body(domain.FeedEconomy); ok {
		if economy, ok := parser.ParseEconomy(body); ok {
			st.Economy = economy
		} else {
			log.Debug(LogMsgOptionalMissing, "feed", domain.FeedEconomy)
		}
	}
	if body, ok := result.Body(domain.FeedModList); ok {
		if count, ok := parser.ParseModList(body); ok {
			st.ModCount = &count
		}
	}

	log.Debug(LogMsgServerChecked, "players", len(st.Players), "failed_feeds", len(result.Errors))
	return a.finish(ctx, server, st)
}

// Refresh checks the server and remembers the result for Latest
func (a *Aggregator) Refresh(ctx context.Context, guildID string, server domain.ServerConfig) domain.ServerStatus {
	st := a.Check(ctx, server)
	a.latest.Add(cacheKey(guildID, server.ID), st)
	return st
}

// Latest returns the remembered status of the server, checking it when no
// fresh snapshot is cached.
func (a *Aggregator) Latest(ctx context.Context, guildID string, server domain.ServerConfig) domain.ServerStatus {
	if st, ok := a.latest.Get(cacheKey(guildID, server.ID)); ok {
		return st
	}
	return a.Refresh(ctx, guildID, server)
}

// Forget drops the remembered status, e.g. after the server config changed
func (a *Aggregator) Forget(guildID, serverID string) {
	a.latest.Remove(cacheKey(guildID, serverID))
}

func (a *Aggregator) finish(ctx context.Context, server domain.ServerConfig, st domain.ServerStatus) domain.ServerStatus {
	result := metrics.ResultOffline
	if st.Online {
		result = metrics.ResultOnline
	}
	metrics.ServerChecksTotal.WithLabelValues(result).Inc()

	for _, hook := range a.hooks {
		hook(ctx, server, st)
	}
	return st
}

func cacheKey(guildID, serverID string) string {
	return guildID + ":" + serverID
}
