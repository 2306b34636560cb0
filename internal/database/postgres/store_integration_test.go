package postgres_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FarmBot_Go/internal/cooldown"
	dbpostgres "github.com/osse101/FarmBot_Go/internal/database/postgres"
	"github.com/osse101/FarmBot_Go/internal/domain"
)

func sampleGuild() *domain.GuildConfig {
	return &domain.GuildConfig{
		SchemaVersion: domain.SettingsSchemaCurrent,
		GuildID:       "g1",
		Alerts: domain.AlertConfig{
			Enabled:     true,
			ChannelID:   "c-alerts",
			Cooldown:    30 * time.Minute,
			Subscribers: []string{"u1", "u2"},
		},
		Servers: []domain.ServerConfig{
			{
				ID:        "main",
				Name:      "Main Farm",
				ChannelID: "c1",
				Feeds: domain.FeedURLs{
					Stats:   "http://farm.example:8080/feed/dedicated-server-stats.xml?code=abc",
					Economy: "http://farm.example:8080/feed/dedicated-server-savegame.html?file=economy&code=abc",
				},
				Display: domain.DisplaySettings{
					Fields:   map[string]bool{"career.money": false},
					Rotation: true,
				},
				UpdateInterval: time.Minute,
			},
			{
				ID:             "second",
				Name:           "Second Farm",
				Feeds:          domain.FeedURLs{Stats: "http://other.example/stats.xml"},
				UpdateInterval: 2 * time.Minute,
			},
		},
	}
}

func TestStore_Integration(t *testing.T) {
	pool := startPostgres(t)
	store := dbpostgres.NewStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	t.Run("missing guild", func(t *testing.T) {
		_, err := store.GetGuild(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrGuildNotFound)
	})

	t.Run("save and load keeps server order", func(t *testing.T) {
		require.NoError(t, store.SaveGuild(ctx, sampleGuild()))

		got, err := store.GetGuild(ctx, "g1")
		require.NoError(t, err)
		assert.Equal(t, sampleGuild().Alerts, got.Alerts)
		require.Len(t, got.Servers, 2)
		assert.Equal(t, "main", got.Servers[0].ID)
		assert.Equal(t, "second", got.Servers[1].ID)
		assert.Equal(t, sampleGuild().Servers[0], got.Servers[0])
	})

	t.Run("save drops removed servers", func(t *testing.T) {
		cfg := sampleGuild()
		cfg.Servers = cfg.Servers[1:]
		require.NoError(t, store.SaveGuild(ctx, cfg))

		got, err := store.GetGuild(ctx, "g1")
		require.NoError(t, err)
		require.Len(t, got.Servers, 1)
		assert.Equal(t, "second", got.Servers[0].ID)

		require.NoError(t, store.SaveGuild(ctx, sampleGuild()))
	})

	t.Run("narrow server updates", func(t *testing.T) {
		require.NoError(t, store.UpdateServerCursor(ctx, "g1", "main", 25))
		require.NoError(t, store.UpdateServerMessage(ctx, "g1", "main", "m-42"))

		got, err := store.GetGuild(ctx, "g1")
		require.NoError(t, err)
		assert.Equal(t, 25, got.Servers[0].Display.RotationCursor)
		assert.True(t, got.Servers[0].Display.Rotation)
		assert.Equal(t, "m-42", got.Servers[0].MessageID)

		err = store.UpdateServerCursor(ctx, "g1", "ghost", 1)
		assert.ErrorIs(t, err, domain.ErrServerNotFound)
		err = store.UpdateServerMessage(ctx, "g1", "ghost", "m")
		assert.ErrorIs(t, err, domain.ErrServerNotFound)
	})

	t.Run("update alerts keeps server state", func(t *testing.T) {
		alerts := sampleGuild().Alerts
		alerts.Subscribers = []string{"u3"}
		require.NoError(t, store.UpdateAlerts(ctx, "g1", alerts))

		got, err := store.GetGuild(ctx, "g1")
		require.NoError(t, err)
		assert.Equal(t, []string{"u3"}, got.Alerts.Subscribers)
		assert.Equal(t, 25, got.Servers[0].Display.RotationCursor)
		assert.Equal(t, "m-42", got.Servers[0].MessageID)

		assert.ErrorIs(t, store.UpdateAlerts(ctx, "nope", alerts), domain.ErrGuildNotFound)
	})

	t.Run("list guilds", func(t *testing.T) {
		other := sampleGuild()
		other.GuildID = "g2"
		other.Servers = other.Servers[:1]
		require.NoError(t, store.SaveGuild(ctx, other))

		guilds, err := store.ListGuilds(ctx)
		require.NoError(t, err)
		require.Len(t, guilds, 2)
		assert.Equal(t, "g1", guilds[0].GuildID)
		assert.Len(t, guilds[0].Servers, 2)
		assert.Equal(t, "g2", guilds[1].GuildID)
		assert.Len(t, guilds[1].Servers, 1)
	})

	t.Run("alert state", func(t *testing.T) {
		state, err := store.GetAlertState(ctx, "g1", "main")
		require.NoError(t, err)
		assert.Nil(t, state)

		notified := time.Now().UTC().Truncate(time.Millisecond)
		require.NoError(t, store.SaveAlertState(ctx, domain.AlertState{
			GuildID:      "g1",
			ServerID:     "main",
			Crops:        []string{"WHEAT", "CANOLA"},
			Seen:         true,
			LastNotified: &notified,
			UpdatedAt:    notified,
		}))

		state, err = store.GetAlertState(ctx, "g1", "main")
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, []string{"WHEAT", "CANOLA"}, state.Crops)
		assert.True(t, state.Seen)
		require.NotNil(t, state.LastNotified)
		assert.True(t, notified.Equal(*state.LastNotified))

		require.NoError(t, store.SaveAlertState(ctx, domain.AlertState{
			GuildID: "g1", ServerID: "main", Seen: true, UpdatedAt: notified,
		}))
		state, err = store.GetAlertState(ctx, "g1", "main")
		require.NoError(t, err)
		assert.Empty(t, state.Crops)
		assert.Nil(t, state.LastNotified)
	})

	t.Run("cooldowns", func(t *testing.T) {
		last, err := store.GetLastCooldown(ctx, "g1", domain.ActionDemandBroadcast)
		require.NoError(t, err)
		assert.Nil(t, last)

		now := time.Now().UTC().Truncate(time.Millisecond)
		require.NoError(t, store.UpdateCooldown(ctx, "g1", domain.ActionDemandBroadcast, now))
		last, err = store.GetLastCooldown(ctx, "g1", domain.ActionDemandBroadcast)
		require.NoError(t, err)
		require.NotNil(t, last)
		assert.True(t, now.Equal(*last))

		require.NoError(t, store.DeleteCooldown(ctx, "g1", domain.ActionDemandBroadcast))
		last, err = store.GetLastCooldown(ctx, "g1", domain.ActionDemandBroadcast)
		require.NoError(t, err)
		assert.Nil(t, last)
	})

	t.Run("delete guild cascades", func(t *testing.T) {
		require.NoError(t, store.DeleteGuild(ctx, "g1"))
		_, err := store.GetGuild(ctx, "g1")
		assert.ErrorIs(t, err, domain.ErrGuildNotFound)

		state, err := store.GetAlertState(ctx, "g1", "main")
		require.NoError(t, err)
		assert.Nil(t, state)
	})
}

func TestPostgresCooldown_ConcurrentBroadcastRunsOnce(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()

	svc := cooldown.NewPostgresService(pool, cooldown.Config{})

	const callers = 10
	var (
		ran      int32
		blocked  int32
		failures int32
		wg       sync.WaitGroup
	)
	start := make(chan struct{})
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			<-start
			err := svc.EnforceCooldown(ctx, "g1", domain.ActionDemandBroadcast, time.Hour, func() error {
				atomic.AddInt32(&ran, 1)
				return nil
			})
			switch {
			case err == nil:
			case errors.Is(err, domain.ErrOnCooldown):
				atomic.AddInt32(&blocked, 1)
			default:
				atomic.AddInt32(&failures, 1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), ran)
	assert.Equal(t, int32(callers-1), blocked)
	assert.Zero(t, failures)
}
