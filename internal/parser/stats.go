package parser

import (
	"regexp"
	"strings"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

var (
	serverTagRe = regexp.MustCompile(`(?is)<Server\b[^>]*>`)
	slotsTagRe  = regexp.MustCompile(`(?is)<Slots\b[^>]*>`)
	playerRe    = regexp.MustCompile(`(?is)<Player\b([^>]*?)(?:/>|>(.*?)</Player\s*>)`)
	modsBlockRe = regexp.MustCompile(`(?is)<Mods\b[^>]*>(.*?)</Mods\s*>`)
	modEntryTag = regexp.MustCompile(`(?i)<Mod\b`)
)

// StatsRecord is the parsed dedicated-server-stats feed
type StatsRecord struct {
	Online    bool
	Game      string
	Name      string
	Map       string
	Version   string
	DayTimeMs int64
	Capacity  int
	Players   []domain.Player
	// ModCount is nil when the feed carried no <Mods> block
	ModCount *int
}

// ParseStats parses the dedicated-server-stats.xml feed.
// It returns false when the markup carries no <Server> element at all.
func ParseStats(raw string) (*StatsRecord, bool) {
	serverTag := serverTagRe.FindString(raw)
	if serverTag == "" {
		return nil, false
	}

	rec := &StatsRecord{}
	if v, ok := attr(serverTag, "game"); ok {
		rec.Game = CleanText(v)
	}
	if v, ok := attr(serverTag, "name"); ok {
		rec.Name = CleanText(v)
	}
	if v, ok := attr(serverTag, "mapName"); ok {
		rec.Map = CleanText(v)
	}
	if v, ok := attr(serverTag, "version"); ok {
		rec.Version = strings.TrimSpace(v)
	}
	if v, ok := attrFloat(serverTag, "dayTime"); ok {
		rec.DayTimeMs = int64(v)
	}

	// A server that is shut down still answers with an empty <Server/> element
	rec.Online = rec.Name != "" || rec.Map != ""

	if slotsTag := slotsTagRe.FindString(raw); slotsTag != "" {
		if c, ok := attrInt(slotsTag, "capacity"); ok {
			rec.Capacity = c
		}
	}

	rec.Players = parsePlayers(raw)

	if m := modsBlockRe.FindStringSubmatch(raw); m != nil {
		count := len(modEntryTag.FindAllStringIndex(m[1], -1))
		rec.ModCount = &count
	}

	return rec, true
}

// parsePlayers keeps only slots explicitly marked as used.
func parsePlayers(raw string) []domain.Player {
	players := []domain.Player{}
	for _, m := range playerRe.FindAllStringSubmatch(raw, -1) {
		attrs := m[1]
		used, ok := attrBool(attrs, "isUsed")
		if !ok || !used {
			continue
		}

		name := CleanText(m[2])
		if name == "" {
			if v, ok := attr(attrs, "name"); ok {
				name = CleanText(v)
			}
		}
		if name == "" {
			continue
		}

		p := domain.Player{Name: name}
		if admin, ok := attrBool(attrs, "isAdmin"); ok {
			p.IsAdmin = admin
		}
		if uptime, ok := attrInt(attrs, "uptime"); ok {
			p.UptimeMinutes = uptime
		}
		players = append(players, p)
	}
	return players
}
