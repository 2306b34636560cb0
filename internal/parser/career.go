package parser

import (
	"regexp"
	"strings"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

var careerRootRe = regexp.MustCompile(`(?i)<careerSavegame\b`)

// ParseCareer parses careerSavegame.xml.
// Every setting is optional; a missing element leaves its zero value.
func ParseCareer(raw string) (*domain.CareerInfo, bool) {
	if !careerRootRe.MatchString(raw) {
		return nil, false
	}

	info := &domain.CareerInfo{}

	if v, ok := element(raw, "savegameName"); ok {
		info.SavegameName = CleanText(v)
	}
	if v, ok := elementFloat(raw, "money"); ok {
		info.Money = v
	}
	if v, ok := element(raw, "economicDifficulty"); ok {
		info.Difficulty = difficultyName(v)
	}
	if v, ok := elementFloat(raw, "timeScale"); ok {
		info.TimeScale = v
	}
	if v, ok := elementFloat(raw, "playTime"); ok {
		info.PlayTimeHours = v / MinutesPerHour
	}
	if v, ok := element(raw, "saveDateFormatted"); ok {
		info.SaveDate = CleanText(v)
	} else if v, ok := element(raw, "saveDate"); ok {
		info.SaveDate = CleanText(v)
	}
	if v, ok := element(raw, "creationDate"); ok {
		info.CreationDate = CleanText(v)
	}
	if v, ok := elementInt(raw, "plannedDaysPerPeriod"); ok {
		info.DaysPerPeriod = v
	}
	if v, ok := elementInt(raw, "growthMode"); ok {
		info.GrowthMode = v
	}
	if v, ok := elementInt(raw, "fuelUsage"); ok {
		info.FuelUsage = v
	}
	if v, ok := elementInt(raw, "autoSaveInterval"); ok {
		info.AutoSaveMins = v
	}

	info.FruitDestruction, _ = elementBool(raw, "fruitDestruction")
	info.PlowingRequired, _ = elementBool(raw, "plowingRequiredEnabled")
	info.Stones, _ = elementBool(raw, "stonesEnabled")
	info.Weeds, _ = elementBool(raw, "weedsEnabled")
	info.Lime, _ = elementBool(raw, "limeRequired")
	info.Snow, _ = elementBool(raw, "isSnowEnabled")
	info.Traffic, _ = elementBool(raw, "trafficEnabled")
	info.HelperBuyFuel, _ = elementBool(raw, "helperBuyFuel")
	info.HelperBuySeeds, _ = elementBool(raw, "helperBuySeeds")
	info.HelperBuyFert, _ = elementBool(raw, "helperBuyFertilizer")

	return info, true
}

// difficultyName maps the numeric and symbolic difficulty forms to a display name.
func difficultyName(v string) string {
	v = strings.TrimSpace(v)
	switch strings.ToUpper(v) {
	case "1", "EASY":
		return DifficultyEasy
	case "2", "NORMAL":
		return DifficultyNormal
	case "3", "HARD":
		return DifficultyHard
	case "":
		return ""
	default:
		return HumanizeName(v)
	}
}
