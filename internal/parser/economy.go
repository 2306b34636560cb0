package parser

import (
	"math"
	"regexp"
	"strings"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

var (
	economyRootRe  = regexp.MustCompile(`(?i)<(?:economy|greatDemands)\b`)
	greatDemandTag = regexp.MustCompile(`(?is)<greatDemand\b[^>]*>`)
)

// ParseEconomy parses economy.xml and returns the running great demands.
// Demands not flagged as running, or without a crop, are dropped.
func ParseEconomy(raw string) (*domain.EconomyInfo, bool) {
	if !economyRootRe.MatchString(raw) {
		return nil, false
	}

	info := &domain.EconomyInfo{Demands: []domain.DemandEvent{}}
	for _, tag := range greatDemandTag.FindAllString(raw, -1) {
		event, ok := parseDemand(tag)
		if !ok {
			continue
		}
		info.Demands = append(info.Demands, event)
	}
	return info, true
}

func parseDemand(tag string) (domain.DemandEvent, bool) {
	running, ok := attrBool(tag, "isRunning")
	if !ok || !running {
		return domain.DemandEvent{}, false
	}

	crop, ok := firstAttr(tag, "itemName", "fillTypeName", "fillType")
	crop = strings.TrimSpace(crop)
	if !ok || crop == "" {
		return domain.DemandEvent{}, false
	}

	event := domain.DemandEvent{Crop: crop, Multiplier: 1}
	if m, ok := attrFloat(tag, "demandMultiplier"); ok {
		event.Multiplier = m
	}
	if d, ok := attrFloat(tag, "demandDuration"); ok {
		event.DurationHours = d
	}

	if bonus, ok := firstAttr(tag, "bonusPercent", "demandBonus"); ok {
		if b, ok := parseFloat(bonus); ok {
			event.BonusPercent = int(math.Round(b))
			return event, true
		}
	}
	event.BonusPercent = BonusPercent(event.Multiplier)
	return event, true
}

// BonusPercent converts a price multiplier into a rounded bonus percentage.
func BonusPercent(multiplier float64) int {
	return int(math.Round((multiplier - 1) * 100))
}
