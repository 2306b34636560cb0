package discord

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

const (
	HealthStatusHealthy  = "healthy"
	HealthStatusDegraded = "degraded"

	healthPingTimeout = 2 * time.Second
)

// HealthStatus represents the bot's health status
type HealthStatus struct {
	Status           string     `json:"status"`
	Uptime           string     `json:"uptime"`
	Connected        bool       `json:"connected"`
	Guilds           int        `json:"guilds"`
	CommandsReceived int64      `json:"commands_received"`
	LastCommandTime  *time.Time `json:"last_command_time,omitempty"`
	StoreReachable   bool       `json:"store_reachable"`
}

// Pinger checks that the settings store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// BotState is the part of the bot the health check reports on
type BotState interface {
	Connected() bool
	GuildCount() int
}

var (
	startTime       = time.Now()
	commandCounter  atomic.Int64
	lastCommandNano atomic.Int64
)

// RecordCommand increments the command counter
func RecordCommand() {
	commandCounter.Add(1)
	lastCommandNano.Store(time.Now().UnixNano())
}

// CheckHealth builds the current health snapshot
func CheckHealth(ctx context.Context, bot BotState, store Pinger) HealthStatus {
	health := HealthStatus{
		Status:           HealthStatusHealthy,
		Uptime:           time.Since(startTime).Round(time.Second).String(),
		CommandsReceived: commandCounter.Load(),
	}
	if ns := lastCommandNano.Load(); ns != 0 {
		t := time.Unix(0, ns).UTC()
		health.LastCommandTime = &t
	}
	if bot != nil {
		health.Connected = bot.Connected()
		health.Guilds = bot.GuildCount()
	}
	if store != nil {
		pingCtx, cancel := context.WithTimeout(ctx, healthPingTimeout)
		defer cancel()
		health.StoreReachable = store.Ping(pingCtx) == nil
	}

	if !health.Connected || !health.StoreReachable {
		health.Status = HealthStatusDegraded
	}
	return health
}

// HandleHealth returns the bot's health status
func (h *HTTPServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := CheckHealth(r.Context(), h.bot, h.store)

	w.Header().Set("Content-Type", "application/json")
	if health.Status != HealthStatusHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(health); err != nil {
		slog.Debug("Failed to encode health response", "error", err)
	}
}
