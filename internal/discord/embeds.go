package discord

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/FarmBot_Go/internal/compose"
	"github.com/osse101/FarmBot_Go/internal/demand"
	"github.com/osse101/FarmBot_Go/internal/domain"
)

// maxDescriptionLength is Discord's embed description limit
const maxDescriptionLength = 4096

// maxEmbedTotal is Discord's limit on the combined text of one embed
const maxEmbedTotal = 6000

const (
	moreTemplate   = "… and %d more"
	moreFieldsName = "…"
)

// BuildStatusEmbed renders a composition as the status embed of one server
func BuildStatusEmbed(server domain.ServerConfig, st domain.ServerStatus, c compose.Composition) *discordgo.MessageEmbed {
	title := server.Name
	if st.Online && st.Name != "" && !strings.EqualFold(st.Name, server.Name) {
		title = fmt.Sprintf("%s (%s)", server.Name, st.Name)
	}

	color := ColorOnline
	if !st.Online {
		color = ColorOffline
	}

	footer := FooterFarmBot
	if len(c.Fields) < c.Candidates && !c.Overflow {
		footer = fmt.Sprintf("%s • %d of %d fields, rotating", FooterFarmBot, len(c.Fields), c.Candidates)
	}

	embed := createEmbed(title, "", color, footer)
	embed.Fields = make([]*discordgo.MessageEmbedField, 0, len(c.Fields))
	for _, f := range c.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Label,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	if !st.CheckedAt.IsZero() {
		embed.Timestamp = st.CheckedAt.UTC().Format(time.RFC3339)
	}
	fitEmbedTotal(embed)
	return embed
}

// BuildPlayersEmbed lists the connected players of an online server
func BuildPlayersEmbed(server domain.ServerConfig, st domain.ServerStatus) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(st.Players))
	for _, p := range st.Players {
		line := "• " + p.Name
		if p.IsAdmin {
			line = "👑 " + p.Name
		}
		if p.UptimeMinutes > 0 {
			line += fmt.Sprintf(" (%s)", formatMinutes(p.UptimeMinutes))
		}
		lines = append(lines, line)
	}

	title := fmt.Sprintf("👥 %s: %d/%d players", server.Name, len(st.Players), st.Capacity)
	return createEmbed(title, joinLimited(lines, maxDescriptionLength), ColorInfo, "")
}

// BuildDemandListEmbed lists every running great demand of a server
func BuildDemandListEmbed(server domain.ServerConfig, st domain.ServerStatus) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(st.Economy.Demands))
	for _, d := range st.Economy.Demands {
		lines = append(lines, "• "+compose.FormatDemand(d))
	}

	title := fmt.Sprintf("📈 Great demands on %s", server.Name)
	return createEmbed(title, joinLimited(lines, maxDescriptionLength), ColorDemand, FooterDemand)
}

// BuildDemandEmbed renders a new-demand notification for a channel
func BuildDemandEmbed(n demand.Notification) *discordgo.MessageEmbed {
	embed := createEmbed(n.Title(), joinLimited(n.Lines(), maxDescriptionLength), ColorDemand, FooterDemand)
	if !n.ObservedAt.IsZero() {
		embed.Timestamp = n.ObservedAt.UTC().Format(time.RFC3339)
	}
	return embed
}

// joinLimited joins lines with newlines. Lines that would push the result
// past limit are replaced by a note saying how many were left out.
func joinLimited(lines []string, limit int) string {
	var b strings.Builder
	for idx, line := range lines {
		sep := ""
		if idx > 0 {
			sep = "\n"
		}
		reserve := 0
		if idx < len(lines)-1 {
			reserve = 1 + len(fmt.Sprintf(moreTemplate, len(lines)-idx-1))
		}
		if b.Len()+len(sep)+len(line)+reserve > limit {
			b.WriteString(sep)
			fmt.Fprintf(&b, moreTemplate, len(lines)-idx)
			break
		}
		b.WriteString(sep)
		b.WriteString(line)
	}
	return b.String()
}

// fitEmbedTotal drops trailing fields until the embed fits maxEmbedTotal and
// puts a single field in their place saying how many were left out
func fitEmbedTotal(e *discordgo.MessageEmbed) {
	total := embedLength(e)
	if total <= maxEmbedTotal {
		return
	}
	dropped := 0
	for len(e.Fields) > 0 {
		last := e.Fields[len(e.Fields)-1]
		e.Fields = e.Fields[:len(e.Fields)-1]
		dropped++
		total -= fieldLength(last)
		note := fmt.Sprintf(moreTemplate, dropped)
		if total+utf8.RuneCountInString(moreFieldsName)+utf8.RuneCountInString(note) <= maxEmbedTotal {
			break
		}
	}
	e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
		Name:  moreFieldsName,
		Value: fmt.Sprintf(moreTemplate, dropped),
	})
}

// embedLength counts the characters Discord adds up against maxEmbedTotal
func embedLength(e *discordgo.MessageEmbed) int {
	n := utf8.RuneCountInString(e.Title) + utf8.RuneCountInString(e.Description)
	if e.Footer != nil {
		n += utf8.RuneCountInString(e.Footer.Text)
	}
	if e.Author != nil {
		n += utf8.RuneCountInString(e.Author.Name)
	}
	for _, f := range e.Fields {
		n += fieldLength(f)
	}
	return n
}

func fieldLength(f *discordgo.MessageEmbedField) int {
	return utf8.RuneCountInString(f.Name) + utf8.RuneCountInString(f.Value)
}

func formatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", m/60, m%60)
}
