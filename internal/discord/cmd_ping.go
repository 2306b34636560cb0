package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// PingCommand reports that the bot is alive along with the gateway heartbeat latency
func PingCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandPing,
		Description: "Check that FarmBot is alive",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, _ *Services) {
		content := MsgPong
		if latency := s.HeartbeatLatency(); latency > 0 {
			content = fmt.Sprintf(MsgPongLatency, latency.Milliseconds())
		}
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Content: content},
		}); err != nil {
			slog.Error(LogMsgRespondFailed, "command", CommandPing, "error", err)
		}
	}

	return cmd, handler
}
