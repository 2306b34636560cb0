package discord

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

var errGuildOnly = errors.New("command used outside a guild")

// serverOption is the optional server picker shared by the status commands
func serverOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         OptionServer,
		Description:  "Server to show (default: the first configured server)",
		Required:     false,
		Autocomplete: true,
	}
}

// resolveServer finds the server the interaction refers to. Autocomplete
// submits server IDs, typed input is matched against names without case.
func resolveServer(ctx context.Context, svc *Services, i *discordgo.InteractionCreate) (*domain.ServerConfig, error) {
	if i.GuildID == "" {
		return nil, errGuildOnly
	}

	cfg, err := svc.Settings.Load(ctx, i.GuildID)
	if err != nil {
		return nil, err
	}
	if len(cfg.Servers) == 0 {
		return nil, domain.ErrGuildNotFound
	}

	query := stringOption(i, OptionServer)
	if query == "" {
		return &cfg.Servers[0], nil
	}
	if server, ok := cfg.Server(query); ok {
		return server, nil
	}
	for idx := range cfg.Servers {
		if strings.EqualFold(cfg.Servers[idx].Name, query) {
			return &cfg.Servers[idx], nil
		}
	}
	return nil, domain.ErrServerNotFound
}
