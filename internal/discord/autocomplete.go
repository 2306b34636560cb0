package discord

import (
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// HandleAutocomplete routes autocomplete interactions to the appropriate handler
func HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
	data := i.ApplicationCommandData()

	switch data.Name {
	case CommandStatus, CommandPlayers, CommandDemands:
		respondChoices(s, i, serverChoices(svc, i))
	default:
		slog.Warn(LogMsgUnhandledAutocomplete, "command", data.Name)
	}
}

// serverChoices offers the guild's servers whose name contains the typed text.
// Any failure yields no choices; autocomplete has no way to show errors.
func serverChoices(svc *Services, i *discordgo.InteractionCreate) []*discordgo.ApplicationCommandOptionChoice {
	choices := []*discordgo.ApplicationCommandOptionChoice{}
	if i.GuildID == "" || svc == nil || svc.Settings == nil {
		return choices
	}

	ctx, cancel := svc.commandContext()
	defer cancel()

	cfg, err := svc.Settings.Load(ctx, i.GuildID)
	if err != nil {
		slog.Debug(LogMsgAutocompleteFailed, "guild", i.GuildID, "error", err)
		return choices
	}

	typed := strings.ToLower(focusedValue(i))
	for _, server := range cfg.Servers {
		if typed != "" && !strings.Contains(strings.ToLower(server.Name), typed) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  server.Name,
			Value: server.ID,
		})
		if len(choices) == maxAutocompleteChoices {
			break
		}
	}
	return choices
}

func focusedValue(i *discordgo.InteractionCreate) string {
	for _, opt := range getOptions(i) {
		if opt.Focused {
			return strings.TrimSpace(opt.StringValue())
		}
	}
	return ""
}

func respondChoices(s *discordgo.Session, i *discordgo.InteractionCreate, choices []*discordgo.ApplicationCommandOptionChoice) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	}); err != nil {
		slog.Error(LogMsgAutocompleteFailed, "error", err)
	}
}
