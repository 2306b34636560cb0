package discord

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/metrics"
)

// CommandHandler handles a slash command
type CommandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services)

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands map[string]*discordgo.ApplicationCommand
	Handlers map[string]CommandHandler
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands: make(map[string]*discordgo.ApplicationCommand),
		Handlers: make(map[string]CommandHandler),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = handler
}

// Handle processes an interaction
func (r *CommandRegistry) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		h, ok := r.Handlers[name]
		if !ok {
			return
		}
		RecordCommand()
		metrics.CommandsTotal.WithLabelValues(name).Inc()
		h(s, i, svc)
	case discordgo.InteractionApplicationCommandAutocomplete:
		HandleAutocomplete(s, i, svc)
	}
}

// RegisterCommands registers or updates the global commands with Discord.
// Nothing is sent when the registered set already matches, to stay clear of
// the command rate limits.
func (b *Bot) RegisterCommands(registry *CommandRegistry, forceUpdate bool) error {
	slog.Info(LogMsgCheckingCommands)

	existingCmds, err := b.Session.ApplicationCommands(b.AppID, "")
	if err != nil {
		return fmt.Errorf(ErrMsgFetchCommands, err)
	}

	desiredCmds := make([]*discordgo.ApplicationCommand, 0, len(registry.Commands))
	for _, cmd := range registry.Commands {
		desiredCmds = append(desiredCmds, cmd)
	}

	if forceUpdate {
		slog.Info("Force update enabled - replacing all commands", "count", len(desiredCmds))
		if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, "", desiredCmds); err != nil {
			return fmt.Errorf(ErrMsgOverwriteCommands, err)
		}
		slog.Info(LogMsgCommandsForceUpdated)
		return nil
	}

	if commandsEqual(existingCmds, desiredCmds) {
		slog.Info(LogMsgCommandsUnchanged, "count", len(existingCmds))
		return nil
	}

	slog.Info(LogMsgCommandsChanged,
		"existing", len(existingCmds),
		"desired", len(desiredCmds))

	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, "", desiredCmds); err != nil {
		return fmt.Errorf(ErrMsgOverwriteCommands, err)
	}

	slog.Info(LogMsgCommandsUpdated, "count", len(desiredCmds))
	return nil
}

// commandsEqual checks if two command sets are equivalent
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}

	existingMap := make(map[string]*discordgo.ApplicationCommand, len(existing))
	for _, cmd := range existing {
		existingMap[cmd.Name] = cmd
	}

	for _, want := range desired {
		have, ok := existingMap[want.Name]
		if !ok || !commandEqual(have, want) {
			return false
		}
	}
	return true
}

func commandEqual(a, b *discordgo.ApplicationCommand) bool {
	if a.Name != b.Name || a.Description != b.Description {
		return false
	}

	if (a.DefaultMemberPermissions == nil) != (b.DefaultMemberPermissions == nil) {
		return false
	}
	if a.DefaultMemberPermissions != nil && *a.DefaultMemberPermissions != *b.DefaultMemberPermissions {
		return false
	}

	if len(a.Options) != len(b.Options) {
		return false
	}
	for i := range a.Options {
		if !optionEqual(a.Options[i], b.Options[i]) {
			return false
		}
	}
	return true
}

func optionEqual(a, b *discordgo.ApplicationCommandOption) bool {
	if a.Type != b.Type || a.Name != b.Name || a.Description != b.Description ||
		a.Required != b.Required || a.Autocomplete != b.Autocomplete {
		return false
	}

	if len(a.Choices) != len(b.Choices) {
		return false
	}
	for i := range a.Choices {
		if a.Choices[i].Name != b.Choices[i].Name || a.Choices[i].Value != b.Choices[i].Value {
			return false
		}
	}
	return true
}

// deferResponse acknowledges an interaction with a deferred message.
// Required before any work that might take longer than 3 seconds.
// Returns false if deferral failed and the handler should return.
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	return deferWithFlags(s, i, 0)
}

// deferEphemeral is deferResponse for replies only the invoking user sees
func deferEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	return deferWithFlags(s, i, discordgo.MessageFlagsEphemeral)
}

func deferWithFlags(s *discordgo.Session, i *discordgo.InteractionCreate, flags discordgo.MessageFlags) bool {
	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}
	if flags != 0 {
		resp.Data = &discordgo.InteractionResponseData{Flags: flags}
	}
	if err := s.InteractionRespond(i.Interaction, resp); err != nil {
		slog.Error(LogMsgDeferFailed, "error", err)
		return false
	}
	return true
}

// getInteractionUser returns the invoking user in guilds and DMs alike
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func getOptions(i *discordgo.InteractionCreate) []*discordgo.ApplicationCommandInteractionDataOption {
	return i.ApplicationCommandData().Options
}

// stringOption returns the named string option or "" when it was not given
func stringOption(i *discordgo.InteractionCreate, name string) string {
	for _, opt := range getOptions(i) {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return strings.TrimSpace(opt.StringValue())
		}
	}
	return ""
}

// respondText replaces the deferred response with a plain message
func respondText(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}); err != nil {
		slog.Error(LogMsgEditFailed, "error", err)
	}
}

// respondError sends a generic error message.
// Use for system-level errors where details would confuse users.
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	respondText(s, i, message)
}

// respondFriendlyError logs err and answers with a message users can act on
func respondFriendlyError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	slog.Warn(LogMsgCommandFailed,
		"command", i.ApplicationCommandData().Name,
		"guild", i.GuildID,
		"error", err)
	respondError(s, i, formatFriendlyError(err))
}

// formatFriendlyError maps domain errors onto user-facing messages
func formatFriendlyError(err error) string {
	switch {
	case errors.Is(err, errGuildOnly):
		return MsgGuildOnly
	case errors.Is(err, domain.ErrGuildNotFound):
		return MsgGuildNotConfigured
	case errors.Is(err, domain.ErrServerNotFound):
		return MsgServerNotFound
	case errors.Is(err, domain.ErrAlreadySubscribed):
		return MsgAlreadySubscribed
	case errors.Is(err, domain.ErrNotSubscribed):
		return MsgNotSubscribed
	case errors.Is(err, domain.ErrInvalidInput):
		return "❌ " + err.Error()
	default:
		return MsgGenericError
	}
}

// sendEmbed replaces the deferred response with an embed
func sendEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Error(LogMsgEditFailed, "error", err)
	}
}

// createEmbed creates a standard embed. An empty footerText uses FooterFarmBot.
func createEmbed(title, description string, color int, footerText string) *discordgo.MessageEmbed {
	if footerText == "" {
		footerText = FooterFarmBot
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText,
		},
	}
}
