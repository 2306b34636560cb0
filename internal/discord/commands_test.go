package discord

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/metrics"
)

func testGuild() domain.GuildConfig {
	return domain.GuildConfig{
		SchemaVersion: 2,
		GuildID:       "guild-1",
		Servers: []domain.ServerConfig{
			{
				ID:   "srv-a",
				Name: "Valley Farm",
				Feeds: domain.FeedURLs{
					Stats:   "http://fs.example.com/stats.xml",
					Economy: "http://fs.example.com/economy.xml",
				},
			},
			{
				ID:    "srv-b",
				Name:  "Hill Side",
				Feeds: domain.FeedURLs{Stats: "http://fs2.example.com/stats.xml"},
			},
		},
	}
}

func onlineStatus() domain.ServerStatus {
	return domain.ServerStatus{
		Online:    true,
		CheckedAt: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		Name:      "Valley Farm",
		Map:       "Elmcreek",
		Capacity:  16,
		Players: []domain.Player{
			{Name: "Alice", IsAdmin: true, UptimeMinutes: 75},
			{Name: "Bob", UptimeMinutes: 5},
		},
		Economy: &domain.EconomyInfo{Demands: []domain.DemandEvent{
			{Crop: "WHEAT", DurationHours: 5, Multiplier: 1.2, BonusPercent: 20},
		}},
	}
}

func newTestServices(statuses map[string]domain.ServerStatus) (*Services, *fakeSettings, *fakeStatuses) {
	settings := newFakeSettings(testGuild())
	lookup := &fakeStatuses{statuses: statuses}
	return &Services{Settings: settings, Statuses: lookup}, settings, lookup
}

func TestCommandsEqual(t *testing.T) {
	cmd := func(desc string) *discordgo.ApplicationCommand {
		return &discordgo.ApplicationCommand{
			Name:        "status",
			Description: desc,
			Options:     []*discordgo.ApplicationCommandOption{serverOption()},
		}
	}

	assert.True(t, commandsEqual([]*discordgo.ApplicationCommand{cmd("a")}, []*discordgo.ApplicationCommand{cmd("a")}))
	assert.False(t, commandsEqual([]*discordgo.ApplicationCommand{cmd("a")}, []*discordgo.ApplicationCommand{cmd("b")}))
	assert.False(t, commandsEqual(nil, []*discordgo.ApplicationCommand{cmd("a")}))

	noAutocomplete := cmd("a")
	noAutocomplete.Options[0].Autocomplete = false
	assert.False(t, commandsEqual([]*discordgo.ApplicationCommand{noAutocomplete}, []*discordgo.ApplicationCommand{cmd("a")}))
}

func TestFormatFriendlyError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{domain.ErrGuildNotFound, MsgGuildNotConfigured},
		{fmt.Errorf("lookup: %w", domain.ErrServerNotFound), MsgServerNotFound},
		{domain.ErrAlreadySubscribed, MsgAlreadySubscribed},
		{domain.ErrNotSubscribed, MsgNotSubscribed},
		{errGuildOnly, MsgGuildOnly},
		{errors.New("connection refused"), MsgGenericError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, formatFriendlyError(tt.err))
		})
	}
}

func TestRegistry_HandleCountsCommands(t *testing.T) {
	tc := SetupTestContext(t)
	registry := NewCommandRegistry()
	registry.Register(PingCommand())

	before := testutil.ToFloat64(metrics.CommandsTotal.WithLabelValues(CommandPing))
	registry.Handle(tc.Session, newCommandInteraction("guild-1", CommandPing), &Services{})
	registry.Handle(tc.Session, newCommandInteraction("guild-1", "unknown"), &Services{})

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CommandsTotal.WithLabelValues(CommandPing)))
	resp := tc.LastInteractionResponse(t)
	require.NotNil(t, resp.Data)
	assert.Contains(t, resp.Data.Content, "Pong")
	assert.Len(t, tc.Requests(), 1)
}

func TestStatusCommand(t *testing.T) {
	t.Run("renders the first server by default", func(t *testing.T) {
		tc := SetupTestContext(t)
		svc, _, lookup := newTestServices(map[string]domain.ServerStatus{"srv-a": onlineStatus()})
		_, handler := StatusCommand()

		handler(tc.Session, newCommandInteraction("guild-1", CommandStatus), svc)

		edit := tc.LastEdit(t)
		require.NotNil(t, edit.Embeds)
		embed := (*edit.Embeds)[0]
		assert.Equal(t, "Valley Farm", embed.Title)
		assert.Equal(t, ColorOnline, embed.Color)
		assert.NotEmpty(t, embed.Fields)
		assert.Equal(t, []string{"srv-a"}, lookup.calls)
	})

	t.Run("picks the server by autocomplete id", func(t *testing.T) {
		tc := SetupTestContext(t)
		offline := domain.Offline("stats feed unavailable", time.Now())
		svc, _, lookup := newTestServices(map[string]domain.ServerStatus{"srv-b": offline})
		_, handler := StatusCommand()

		handler(tc.Session, newCommandInteraction("guild-1", CommandStatus, stringOpt(OptionServer, "srv-b")), svc)

		embed := (*tc.LastEdit(t).Embeds)[0]
		assert.Equal(t, "Hill Side", embed.Title)
		assert.Equal(t, ColorOffline, embed.Color)
		assert.Equal(t, []string{"srv-b"}, lookup.calls)
	})

	t.Run("matches typed names without case", func(t *testing.T) {
		tc := SetupTestContext(t)
		svc, _, lookup := newTestServices(map[string]domain.ServerStatus{"srv-b": onlineStatus()})
		_, handler := StatusCommand()

		handler(tc.Session, newCommandInteraction("guild-1", CommandStatus, stringOpt(OptionServer, "hill side")), svc)

		assert.Equal(t, []string{"srv-b"}, lookup.calls)
	})

	t.Run("unknown server", func(t *testing.T) {
		tc := SetupTestContext(t)
		svc, _, lookup := newTestServices(nil)
		_, handler := StatusCommand()

		handler(tc.Session, newCommandInteraction("guild-1", CommandStatus, stringOpt(OptionServer, "nope")), svc)

		edit := tc.LastEdit(t)
		require.NotNil(t, edit.Content)
		assert.Equal(t, MsgServerNotFound, *edit.Content)
		assert.Empty(t, lookup.calls)
	})

	t.Run("unconfigured guild", func(t *testing.T) {
		tc := SetupTestContext(t)
		svc, _, _ := newTestServices(nil)
		_, handler := StatusCommand()

		handler(tc.Session, newCommandInteraction("guild-2", CommandStatus), svc)

		assert.Equal(t, MsgGuildNotConfigured, *tc.LastEdit(t).Content)
	})

	t.Run("outside a guild", func(t *testing.T) {
		tc := SetupTestContext(t)
		svc, _, _ := newTestServices(nil)
		_, handler := StatusCommand()

		handler(tc.Session, newCommandInteraction("", CommandStatus), svc)

		assert.Equal(t, MsgGuildOnly, *tc.LastEdit(t).Content)
	})
}

func TestPlayersCommand(t *testing.T) {
	t.Run("lists players", func(t *testing.T) {
		tc := SetupTestContext(t)
		svc, _, _ := newTestServices(map[string]domain.ServerStatus{"srv-a": onlineStatus()})
		_, handler := PlayersCommand()

		handler(tc.Session, newCommandInteraction("guild-1", CommandPlayers), svc)

		embed := (*tc.LastEdit(t).Embeds)[0]
		assert.Contains(t, embed.Title, "2/16")
		assert.Contains(t, embed.Description, "👑 Alice (1h 15m)")
		assert.Contains(t, embed.Description, "• Bob (5m)")
	})

	t.Run("offline server", func(t *testing.T) {
		tc := SetupTestContext(t)
		offline := domain.Offline("timeout", time.Now())
		svc, _, _ := newTestServices(map[string]domain.ServerStatus{"srv-a": offline})
		_, handler := PlayersCommand()

		handler(tc.Session, newCommandInteraction("guild-1", CommandPlayers), svc)

		assert.Equal(t, fmt.Sprintf(MsgServerOffline, "Valley Farm", "timeout"), *tc.LastEdit(t).Content)
	})

	t.Run("nobody online", func(t *testing.T) {
		tc := SetupTestContext(t)
		st := onlineStatus()
		st.Players = nil
		svc, _, _ := newTestServices(map[string]domain.ServerStatus{"srv-a": st})
		_, handler := PlayersCommand()

		handler(tc.Session, newCommandInteraction("guild-1", CommandPlayers), svc)

		assert.Equal(t, fmt.Sprintf(MsgNoPlayers, "Valley Farm"), *tc.LastEdit(t).Content)
	})
}

func TestDemandsCommand(t *testing.T) {
	t.Run("lists demands", func(t *testing.T) {
		tc := SetupTestContext(t)
		svc, _, _ := newTestServices(map[string]domain.ServerStatus{"srv-a": onlineStatus()})
		_, handler := DemandsCommand()

		handler(tc.Session, newCommandInteraction("guild-1", CommandDemands), svc)

		embed := (*tc.LastEdit(t).Embeds)[0]
		assert.Equal(t, ColorDemand, embed.Color)
		assert.Contains(t, embed.Description, "Wheat")
		assert.Contains(t, embed.Description, "+20%")
	})

	t.Run("no economy feed configured", func(t *testing.T) {
		tc := SetupTestContext(t)
		svc, _, lookup := newTestServices(nil)
		_, handler := DemandsCommand()

		handler(tc.Session, newCommandInteraction("guild-1", CommandDemands, stringOpt(OptionServer, "srv-b")), svc)

		assert.Equal(t, fmt.Sprintf(MsgNoEconomyFeed, "Hill Side"), *tc.LastEdit(t).Content)
		assert.Empty(t, lookup.calls)
	})

	t.Run("economy feed unreadable", func(t *testing.T) {
		tc := SetupTestContext(t)
		st := onlineStatus()
		st.Economy = nil
		svc, _, _ := newTestServices(map[string]domain.ServerStatus{"srv-a": st})
		_, handler := DemandsCommand()

		handler(tc.Session, newCommandInteraction("guild-1", CommandDemands), svc)

		assert.Equal(t, fmt.Sprintf(MsgEconomyUnavailable, "Valley Farm"), *tc.LastEdit(t).Content)
	})

	t.Run("no running demands", func(t *testing.T) {
		tc := SetupTestContext(t)
		st := onlineStatus()
		st.Economy = &domain.EconomyInfo{}
		svc, _, _ := newTestServices(map[string]domain.ServerStatus{"srv-a": st})
		_, handler := DemandsCommand()

		handler(tc.Session, newCommandInteraction("guild-1", CommandDemands), svc)

		assert.Equal(t, fmt.Sprintf(MsgNoDemands, "Valley Farm"), *tc.LastEdit(t).Content)
	})
}

func TestDemandAlertsCommand(t *testing.T) {
	tc := SetupTestContext(t)
	svc, settings, _ := newTestServices(nil)
	_, handler := DemandAlertsCommand()

	run := func(action string) string {
		handler(tc.Session, newCommandInteraction("guild-1", CommandDemandAlerts, stringOpt(OptionAction, action)), svc)
		return *tc.LastEdit(t).Content
	}

	assert.Equal(t, MsgSubscribed, run(ActionSubscribe))
	assert.Equal(t, []string{"user-1"}, settings.guilds["guild-1"].Alerts.Subscribers)
	assert.Equal(t, MsgAlreadySubscribed, run(ActionSubscribe))
	assert.Equal(t, MsgUnsubscribed, run(ActionUnsubscribe))
	assert.Empty(t, settings.guilds["guild-1"].Alerts.Subscribers)
	assert.Equal(t, MsgNotSubscribed, run(ActionUnsubscribe))
	assert.Equal(t, MsgUnknownAlertAction, run("toggle"))

	resp := tc.LastInteractionResponse(t)
	require.NotNil(t, resp.Data)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, resp.Data.Flags)
}

func TestAutocomplete_ServerChoices(t *testing.T) {
	guild := testGuild()
	for n := 0; n < 30; n++ {
		guild.Servers = append(guild.Servers, domain.ServerConfig{
			ID:   fmt.Sprintf("extra-%d", n),
			Name: fmt.Sprintf("Extra Farm %d", n),
		})
	}
	svc := &Services{Settings: newFakeSettings(guild)}

	autocomplete := func(typed string) []*discordgo.ApplicationCommandOptionChoice {
		tc := SetupTestContext(t)
		i := newCommandInteraction("guild-1", CommandStatus, &discordgo.ApplicationCommandInteractionDataOption{
			Name:    OptionServer,
			Type:    discordgo.ApplicationCommandOptionString,
			Value:   typed,
			Focused: true,
		})
		i.Type = discordgo.InteractionApplicationCommandAutocomplete

		NewCommandRegistry().Handle(tc.Session, i, svc)

		resp := tc.LastInteractionResponse(t)
		assert.Equal(t, discordgo.InteractionApplicationCommandAutocompleteResult, resp.Type)
		require.NotNil(t, resp.Data)
		return resp.Data.Choices
	}

	choices := autocomplete("hill")
	require.Len(t, choices, 1)
	assert.Equal(t, "Hill Side", choices[0].Name)
	assert.Equal(t, "srv-b", choices[0].Value)

	assert.Len(t, autocomplete(""), maxAutocompleteChoices)
	assert.Len(t, autocomplete("extra farm 1"), 11)
	assert.Empty(t, autocomplete("nothing"))
}

func TestAutocomplete_SettingsFailureYieldsNoChoices(t *testing.T) {
	settings := newFakeSettings(testGuild())
	settings.err = errors.New("store down")
	i := newCommandInteraction("guild-1", CommandPlayers)

	choices := serverChoices(&Services{Settings: settings}, i)

	assert.NotNil(t, choices)
	assert.Empty(t, choices)
}

func TestStringOption_TrimsInput(t *testing.T) {
	i := newCommandInteraction("guild-1", CommandStatus, stringOpt(OptionServer, "  Valley Farm "))
	assert.Equal(t, "Valley Farm", stringOption(i, OptionServer))
	assert.Empty(t, stringOption(i, OptionAction))
	assert.False(t, strings.HasPrefix(stringOption(i, OptionServer), " "))
}
