package discord

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Bot represents the Discord bot
type Bot struct {
	Session  *discordgo.Session
	AppID    string
	Registry *CommandRegistry
	Services *Services

	mu     sync.RWMutex
	guilds map[string]struct{}
}

// Config holds the bot configuration
type Config struct {
	Token string
	AppID string
}

// New creates a new Discord bot
func New(cfg Config, services *Services) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreateSession, err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds

	return &Bot{
		Session:  s,
		AppID:    cfg.AppID,
		Registry: NewCommandRegistry(),
		Services: services,
		guilds:   make(map[string]struct{}),
	}, nil
}

// Start opens the gateway connection
func (b *Bot) Start() error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.guildCreate)
	b.Session.AddHandler(b.guildDelete)
	b.Session.AddHandler(b.interactionCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf(ErrMsgOpenConnection, err)
	}

	slog.Info(LogMsgBotRunning)
	return nil
}

// Stop closes the gateway connection
func (b *Bot) Stop() {
	if err := b.Session.Close(); err != nil {
		slog.Warn("Failed to close Discord session", "error", err)
	}
}

// Connected reports whether the gateway session is ready
func (b *Bot) Connected() bool {
	return b.Session != nil && b.Session.DataReady
}

// GuildCount is the number of guilds the bot is currently in
func (b *Bot) GuildCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.guilds)
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	b.mu.Lock()
	b.guilds = make(map[string]struct{}, len(r.Guilds))
	for _, g := range r.Guilds {
		b.guilds[g.ID] = struct{}{}
	}
	b.mu.Unlock()

	slog.Info(LogMsgBotReady, "user", r.User.Username, "guilds", len(r.Guilds))
}

func (b *Bot) guildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if g.Guild == nil {
		return
	}
	b.mu.Lock()
	b.guilds[g.ID] = struct{}{}
	b.mu.Unlock()
}

// guildDelete with Unavailable set is an outage, not a removal
func (b *Bot) guildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Guild == nil || g.Unavailable {
		return
	}
	b.mu.Lock()
	delete(b.guilds, g.ID)
	b.mu.Unlock()
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if b.Registry != nil {
		b.Registry.Handle(s, i, b.Services)
	}
}
