package parser

import (
	"regexp"
	"strings"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

var (
	vehiclesRootRe = regexp.MustCompile(`(?i)<vehicles\b`)
	vehicleRe      = regexp.MustCompile(`(?is)<vehicle\b([^>]*?)(?:/>|>(.*?)</vehicle\s*>)`)
	wearableTagRe  = regexp.MustCompile(`(?is)<wearable\b[^>]*>`)
)

// categoryRule maps path fragments to a vehicle category.
// Rules are evaluated in order and the first match wins.
type categoryRule struct {
	category  domain.VehicleCategory
	fragments []string
}

var categoryRules = []categoryRule{
	// combine headers, including pickup headers that would otherwise read as trucks
	{domain.CategoryHarvester, []string{"header", "cutter"}},
	{domain.CategoryTractor, []string{"tractor"}},
	{domain.CategoryHarvester, []string{"harvester", "combine"}},
	{domain.CategoryTruck, []string{"truck", "lorry", "pickup"}},
	{domain.CategoryTrailer, []string{"trailer", "tipper"}},
	{domain.CategoryCultivation, []string{"cultivator", "plow", "plough", "seeder", "planter", "harrow", "roller", "weeder", "subsoiler", "mulcher"}},
	{domain.CategorySprayer, []string{"sprayer", "spreader"}},
	{domain.CategoryBaler, []string{"baler", "mower", "tedder", "windrower"}},
	{domain.CategoryLoader, []string{"loader", "telehandler"}},
}

// ParseVehicles parses the savegame vehicles.xml.
// It returns false only when the document has no <vehicles> root; individual
// malformed entries are skipped so the summary degrades towards zero.
func ParseVehicles(raw string) (*domain.VehicleSummary, bool) {
	if !vehiclesRootRe.MatchString(raw) {
		return nil, false
	}

	summary := &domain.VehicleSummary{
		ByCategory: make(map[domain.VehicleCategory]domain.CategoryTotal),
		ByFarm:     make(map[int]domain.CategoryTotal),
	}

	var wearTotal float64
	var wearCount int

	for _, m := range vehicleRe.FindAllStringSubmatch(raw, -1) {
		attrs, body := m[1], m[2]

		filename, ok := firstAttr(attrs, "filename", "configFileName", "xmlFilename")
		if !ok || filename == "" {
			continue
		}
		if isPallet(filename) {
			continue
		}

		price, _ := attrFloat(attrs, "price")
		farmID, _ := attrInt(attrs, "farmId")
		typeName, _ := attr(attrs, "typeName")

		category := Categorize(filename + " " + typeName)

		summary.Count++
		summary.TotalValue += price
		summary.ByCategory[category] = addTotal(summary.ByCategory[category], price)
		summary.ByFarm[farmID] = addTotal(summary.ByFarm[farmID], price)

		if wearTag := wearableTagRe.FindString(body); wearTag != "" {
			if damage, ok := attrFloat(wearTag, "damage"); ok {
				wearTotal += damage
				wearCount++
			}
		}
	}

	if wearCount > 0 {
		summary.MeanWear = wearTotal / float64(wearCount)
	}
	return summary, true
}

// Categorize infers the vehicle category from a path-like configuration identifier.
func Categorize(identifier string) domain.VehicleCategory {
	lower := strings.ToLower(identifier)
	for _, rule := range categoryRules {
		for _, fragment := range rule.fragments {
			if strings.Contains(lower, fragment) {
				return rule.category
			}
		}
	}
	return domain.CategoryOther
}

// isPallet reports whether the entry is a pallet or big bag rather than a machine.
func isPallet(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.Contains(lower, "/pallets/") || strings.Contains(lower, "bigbag")
}

func addTotal(t domain.CategoryTotal, value float64) domain.CategoryTotal {
	t.Count++
	t.Value += value
	return t
}
