package demand

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/parser"
)

// Notification is the payload handed to the channel and DM senders
type Notification struct {
	GuildID    string
	ServerID   string
	ServerName string
	Events     []domain.DemandEvent
	ObservedAt time.Time
}

// Title returns the one-line heading of the notification
func (n Notification) Title() string {
	return fmt.Sprintf(TextHeaderFormat, n.ServerName)
}

// Lines renders one line per event
func (n Notification) Lines() []string {
	lines := make([]string, 0, len(n.Events))
	for _, e := range n.Events {
		lines = append(lines, fmt.Sprintf(TextLineFormat,
			parser.HumanizeName(e.Crop), e.BonusPercent, formatHours(e.DurationHours)))
	}
	return lines
}

// Text is the plain-text rendering used for direct messages
func (n Notification) Text() string {
	return n.Title() + "\n" + strings.Join(n.Lines(), "\n")
}

func formatHours(h float64) string {
	return fmt.Sprintf("%d", int64(math.Round(h)))
}
