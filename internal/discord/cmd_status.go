package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/FarmBot_Go/internal/compose"
)

// StatusCommand returns the status command definition and handler.
// It renders the same embed as the status channel without touching the
// stored message or rotation cursor.
func StatusCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandStatus,
		Description: "Show the live status of a Farming Simulator server",
		Options:     []*discordgo.ApplicationCommandOption{serverOption()},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}
		ctx, cancel := svc.commandContext()
		defer cancel()

		server, err := resolveServer(ctx, svc, i)
		if err != nil {
			respondFriendlyError(s, i, err)
			return
		}

		st := svc.Statuses.Refresh(ctx, i.GuildID, *server)
		c := compose.Compose(ctx, st, server.Display)
		sendEmbed(s, i, BuildStatusEmbed(*server, st, c))
	}

	return cmd, handler
}

// PlayersCommand returns the players command definition and handler
func PlayersCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandPlayers,
		Description: "List the players connected to a Farming Simulator server",
		Options:     []*discordgo.ApplicationCommandOption{serverOption()},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}
		ctx, cancel := svc.commandContext()
		defer cancel()

		server, err := resolveServer(ctx, svc, i)
		if err != nil {
			respondFriendlyError(s, i, err)
			return
		}

		st := svc.Statuses.Refresh(ctx, i.GuildID, *server)
		switch {
		case !st.Online:
			respondText(s, i, fmt.Sprintf(MsgServerOffline, server.Name, st.Reason))
		case len(st.Players) == 0:
			respondText(s, i, fmt.Sprintf(MsgNoPlayers, server.Name))
		default:
			sendEmbed(s, i, BuildPlayersEmbed(*server, st))
		}
	}

	return cmd, handler
}

// DemandsCommand returns the demands command definition and handler
func DemandsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandDemands,
		Description: "List the great demands currently running on a server",
		Options:     []*discordgo.ApplicationCommandOption{serverOption()},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}
		ctx, cancel := svc.commandContext()
		defer cancel()

		server, err := resolveServer(ctx, svc, i)
		if err != nil {
			respondFriendlyError(s, i, err)
			return
		}
		if server.Feeds.Economy == "" {
			respondText(s, i, fmt.Sprintf(MsgNoEconomyFeed, server.Name))
			return
		}

		st := svc.Statuses.Refresh(ctx, i.GuildID, *server)
		switch {
		case !st.Online:
			respondText(s, i, fmt.Sprintf(MsgServerOffline, server.Name, st.Reason))
		case st.Economy == nil:
			respondText(s, i, fmt.Sprintf(MsgEconomyUnavailable, server.Name))
		case len(st.Economy.Demands) == 0:
			respondText(s, i, fmt.Sprintf(MsgNoDemands, server.Name))
		default:
			sendEmbed(s, i, BuildDemandListEmbed(*server, st))
		}
	}

	return cmd, handler
}
