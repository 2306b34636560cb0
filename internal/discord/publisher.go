package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/FarmBot_Go/internal/compose"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/metrics"
)

// Publisher keeps one status message per server up to date
type Publisher struct {
	session *discordgo.Session
}

// NewPublisher creates a publisher on top of an open session
func NewPublisher(session *discordgo.Session) *Publisher {
	return &Publisher{session: session}
}

// PublishStatus edits the server's status message in place. When there is no
// stored message, or Discord reports it deleted, a new one is posted. The
// returned ID is the message that now shows the status.
func (p *Publisher) PublishStatus(ctx context.Context, server domain.ServerConfig, st domain.ServerStatus, c compose.Composition) (string, error) {
	log := logger.FromContext(ctx).With("server", server.Name, "channel", server.ChannelID)
	embed := BuildStatusEmbed(server, st, c)

	if server.MessageID != "" {
		msg, err := p.session.ChannelMessageEditEmbed(server.ChannelID, server.MessageID, embed, discordgo.WithContext(ctx))
		if err == nil {
			metrics.StatusPublishes.WithLabelValues(metrics.ResultEdited).Inc()
			return msg.ID, nil
		}
		if !isUnknownMessage(err) {
			metrics.StatusPublishes.WithLabelValues(metrics.ResultError).Inc()
			return "", fmt.Errorf(ErrMsgEditMessage, err)
		}
		log.Info(LogMsgStatusMessageGone, "message", server.MessageID)
	}

	msg, err := p.session.ChannelMessageSendEmbed(server.ChannelID, embed, discordgo.WithContext(ctx))
	if err != nil {
		metrics.StatusPublishes.WithLabelValues(metrics.ResultError).Inc()
		return "", fmt.Errorf(ErrMsgSendMessage, err)
	}
	metrics.StatusPublishes.WithLabelValues(metrics.ResultCreated).Inc()
	return msg.ID, nil
}

// isUnknownMessage reports whether Discord rejected an edit because the
// message no longer exists. Other 404s, such as an unknown channel, are not
// recoverable by posting again.
func isUnknownMessage(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil && restErr.Message.Code != 0 {
		return restErr.Message.Code == discordgo.ErrCodeUnknownMessage
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}
