package discord

import (
	"github.com/bwmarrin/discordgo"
)

// DemandAlertsCommand returns the demandalerts command definition and handler.
// Subscribers receive a DM whenever a new great demand starts on any server
// of the guild.
func DemandAlertsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandDemandAlerts,
		Description: "Get a DM when a new great demand starts",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptionAction,
				Description: "Subscribe or unsubscribe",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Subscribe", Value: ActionSubscribe},
					{Name: "Unsubscribe", Value: ActionUnsubscribe},
				},
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferEphemeral(s, i) {
			return
		}
		if i.GuildID == "" {
			respondFriendlyError(s, i, errGuildOnly)
			return
		}
		user := getInteractionUser(i)
		if user == nil {
			respondError(s, i, MsgGenericError)
			return
		}

		ctx, cancel := svc.commandContext()
		defer cancel()

		var (
			err error
			msg string
		)
		switch stringOption(i, OptionAction) {
		case ActionSubscribe:
			err = svc.Settings.Subscribe(ctx, i.GuildID, user.ID)
			msg = MsgSubscribed
		case ActionUnsubscribe:
			err = svc.Settings.Unsubscribe(ctx, i.GuildID, user.ID)
			msg = MsgUnsubscribed
		default:
			respondText(s, i, MsgUnknownAlertAction)
			return
		}
		if err != nil {
			respondFriendlyError(s, i, err)
			return
		}
		respondText(s, i, msg)
	}

	return cmd, handler
}
