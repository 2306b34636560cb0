package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// MockRoundTripper implements http.RoundTripper for intercepting requests
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

// capturedRequest is one call the session made to the Discord API
type capturedRequest struct {
	Method string
	Path   string
	Body   []byte
}

// TestContext is a Discord session whose REST calls never leave the process
type TestContext struct {
	Session      *discordgo.Session
	DiscordMocks *MockRoundTripper

	mu       sync.Mutex
	requests []capturedRequest
	// Respond decides the reply to each captured request; nil answers 200 "{}"
	Respond func(req capturedRequest) (int, string)
}

func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)

	ctx := &TestContext{Session: session}
	ctx.DiscordMocks = &MockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			captured := capturedRequest{Method: req.Method, Path: req.URL.Path}
			if req.Body != nil {
				captured.Body, _ = io.ReadAll(req.Body)
			}

			ctx.mu.Lock()
			ctx.requests = append(ctx.requests, captured)
			respond := ctx.Respond
			ctx.mu.Unlock()

			status, body := http.StatusOK, "{}"
			if respond != nil {
				status, body = respond(captured)
			}
			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(bytes.NewBufferString(body)),
				Header:     http.Header{"Content-Type": []string{"application/json"}},
				Request:    req,
			}, nil
		},
	}
	session.Client = &http.Client{Transport: ctx.DiscordMocks}

	return ctx
}

// Requests returns a copy of every captured request in order
func (c *TestContext) Requests() []capturedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]capturedRequest(nil), c.requests...)
}

// LastEdit decodes the last PATCH of the interaction response
func (c *TestContext) LastEdit(t *testing.T) discordgo.WebhookEdit {
	t.Helper()
	reqs := c.Requests()
	for idx := len(reqs) - 1; idx >= 0; idx-- {
		if reqs[idx].Method == http.MethodPatch {
			var edit discordgo.WebhookEdit
			require.NoError(t, json.Unmarshal(reqs[idx].Body, &edit))
			return edit
		}
	}
	t.Fatal("no interaction response edit was sent")
	return discordgo.WebhookEdit{}
}

// LastInteractionResponse decodes the last POST of an interaction callback
func (c *TestContext) LastInteractionResponse(t *testing.T) discordgo.InteractionResponse {
	t.Helper()
	reqs := c.Requests()
	for idx := len(reqs) - 1; idx >= 0; idx-- {
		if reqs[idx].Method == http.MethodPost {
			var resp discordgo.InteractionResponse
			require.NoError(t, json.Unmarshal(reqs[idx].Body, &resp))
			return resp
		}
	}
	t.Fatal("no interaction response was sent")
	return discordgo.InteractionResponse{}
}

func newCommandInteraction(guildID, name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:      "interaction-1",
			AppID:   "app-1",
			Token:   "token-1",
			Type:    discordgo.InteractionApplicationCommand,
			GuildID: guildID,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: options,
			},
			Member: &discordgo.Member{
				User: &discordgo.User{ID: "user-1", Username: "Farmer"},
			},
		},
	}
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

// fakeSettings is an in-memory SettingsService
type fakeSettings struct {
	mu     sync.Mutex
	guilds map[string]*domain.GuildConfig
	err    error
}

func newFakeSettings(guilds ...domain.GuildConfig) *fakeSettings {
	f := &fakeSettings{guilds: make(map[string]*domain.GuildConfig)}
	for idx := range guilds {
		g := guilds[idx]
		f.guilds[g.GuildID] = &g
	}
	return f
}

func (f *fakeSettings) Load(_ context.Context, guildID string) (*domain.GuildConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	g, ok := f.guilds[guildID]
	if !ok {
		return nil, domain.ErrGuildNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *fakeSettings) Subscribe(_ context.Context, guildID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.guilds[guildID]
	if !ok {
		return domain.ErrGuildNotFound
	}
	if g.Alerts.IsSubscribed(userID) {
		return domain.ErrAlreadySubscribed
	}
	g.Alerts.Subscribers = append(g.Alerts.Subscribers, userID)
	return nil
}

func (f *fakeSettings) Unsubscribe(_ context.Context, guildID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.guilds[guildID]
	if !ok {
		return domain.ErrGuildNotFound
	}
	for idx, id := range g.Alerts.Subscribers {
		if id == userID {
			g.Alerts.Subscribers = append(g.Alerts.Subscribers[:idx], g.Alerts.Subscribers[idx+1:]...)
			return nil
		}
	}
	return domain.ErrNotSubscribed
}

// fakeStatuses returns a fixed status per server ID
type fakeStatuses struct {
	mu       sync.Mutex
	statuses map[string]domain.ServerStatus
	calls    []string
}

func (f *fakeStatuses) Refresh(_ context.Context, _ string, server domain.ServerConfig) domain.ServerStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, server.ID)
	return f.statuses[server.ID]
}
