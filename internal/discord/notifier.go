package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/FarmBot_Go/internal/demand"
)

const (
	dmChannelCacheSize = 1024
	dmChannelCacheTTL  = 24 * time.Hour
)

var _ demand.Notifier = (*Notifier)(nil)

// Notifier delivers great demand notifications through Discord
type Notifier struct {
	session    *discordgo.Session
	dmChannels *expirable.LRU[string, string]
}

// NewNotifier creates a notifier on top of an open session
func NewNotifier(session *discordgo.Session) *Notifier {
	return &Notifier{
		session:    session,
		dmChannels: expirable.NewLRU[string, string](dmChannelCacheSize, nil, dmChannelCacheTTL),
	}
}

// PostChannel posts the notification embed to a guild channel
func (n *Notifier) PostChannel(ctx context.Context, channelID string, note demand.Notification) error {
	if _, err := n.session.ChannelMessageSendEmbed(channelID, BuildDemandEmbed(note), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf(ErrMsgSendMessage, err)
	}
	return nil
}

// SendDM sends the plain-text notification to a user's DM channel
func (n *Notifier) SendDM(ctx context.Context, userID string, note demand.Notification) error {
	channelID, err := n.dmChannel(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := n.session.ChannelMessageSend(channelID, note.Text(), discordgo.WithContext(ctx)); err != nil {
		n.dmChannels.Remove(userID)
		return fmt.Errorf(ErrMsgSendMessage, err)
	}
	return nil
}

func (n *Notifier) dmChannel(ctx context.Context, userID string) (string, error) {
	if id, ok := n.dmChannels.Get(userID); ok {
		return id, nil
	}
	ch, err := n.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf(ErrMsgOpenDM, err)
	}
	n.dmChannels.Add(userID, ch.ID)
	return ch.ID, nil
}
