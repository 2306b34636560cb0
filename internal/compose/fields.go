package compose

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/parser"
)

// buildContext is what a field builder may read
type buildContext struct {
	ctx      context.Context
	status   domain.ServerStatus
	settings domain.DisplaySettings
}

// FieldDef is one entry of the canonical field list.
// Build returns the value and whether the source data is present.
type FieldDef struct {
	ID     string
	Label  string
	Inline bool
	Build  func(bc buildContext) (string, bool)
}

// GroupDef expands into zero or more fields that share the group's visibility
type GroupDef struct {
	ID     string
	Expand func(bc buildContext) []domain.DisplayField
}

// Entry is either a single field or a group, in canonical order
type Entry struct {
	Field *FieldDef
	Group *GroupDef
}

// CanonicalFields is the fixed display order of every field the bot knows
var CanonicalFields = []Entry{
	{Field: &FieldDef{ID: "server.status", Label: "Status", Inline: true, Build: buildStatus}},
	{Field: &FieldDef{ID: "server.name", Label: "Server", Inline: true, Build: onlineString(func(s domain.ServerStatus) string { return s.Name })}},
	{Field: &FieldDef{ID: "server.map", Label: "Map", Inline: true, Build: onlineString(func(s domain.ServerStatus) string { return s.Map })}},
	{Field: &FieldDef{ID: "server.version", Label: "Version", Inline: true, Build: onlineString(func(s domain.ServerStatus) string { return s.Version })}},
	{Field: &FieldDef{ID: "server.game", Label: "Game", Inline: true, Build: onlineString(func(s domain.ServerStatus) string { return s.Game })}},
	{Field: &FieldDef{ID: "server.password", Label: "Password", Inline: true, Build: buildPassword}},
	{Field: &FieldDef{ID: "server.time", Label: "In-game Time", Inline: true, Build: buildDayTime}},
	{Field: &FieldDef{ID: "server.mods", Label: "Mods", Inline: true, Build: buildMods}},
	{Field: &FieldDef{ID: "players.count", Label: "Players", Inline: true, Build: buildPlayerCount}},
	{Field: &FieldDef{ID: "players.list", Label: "Online Players", Inline: false, Build: buildPlayerList}},

	{Field: &FieldDef{ID: "career.savegame", Label: "Savegame", Inline: true, Build: careerString(func(c *domain.CareerInfo) string { return c.SavegameName })}},
	{Field: &FieldDef{ID: "career.money", Label: "Money", Inline: true, Build: career(func(c *domain.CareerInfo) string { return formatNumber(c.Money) })}},
	{Field: &FieldDef{ID: "career.difficulty", Label: "Difficulty", Inline: true, Build: careerString(func(c *domain.CareerInfo) string { return c.Difficulty })}},
	{Field: &FieldDef{ID: "career.timescale", Label: "Time Scale", Inline: true, Build: buildTimeScale}},
	{Field: &FieldDef{ID: "career.playtime", Label: "Play Time", Inline: true, Build: career(func(c *domain.CareerInfo) string { return formatHours(c.PlayTimeHours) })}},
	{Field: &FieldDef{ID: "career.savedate", Label: "Last Saved", Inline: true, Build: careerString(func(c *domain.CareerInfo) string { return c.SaveDate })}},
	{Field: &FieldDef{ID: "career.created", Label: "Created", Inline: true, Build: careerString(func(c *domain.CareerInfo) string { return c.CreationDate })}},
	{Field: &FieldDef{ID: "career.daysperperiod", Label: "Days per Month", Inline: true, Build: buildDaysPerPeriod}},
	{Field: &FieldDef{ID: "career.growth", Label: "Crop Growth", Inline: true, Build: career(func(c *domain.CareerInfo) string { return growthModeName(c.GrowthMode) })}},
	{Field: &FieldDef{ID: "career.fuelusage", Label: "Fuel Usage", Inline: true, Build: career(func(c *domain.CareerInfo) string { return fuelUsageName(c.FuelUsage) })}},
	{Field: &FieldDef{ID: "career.autosave", Label: "Auto-save", Inline: true, Build: buildAutoSave}},
	{Field: &FieldDef{ID: "career.fruitdestruction", Label: "Fruit Destruction", Inline: true, Build: career(func(c *domain.CareerInfo) string { return onOff(c.FruitDestruction) })}},
	{Field: &FieldDef{ID: "career.plowing", Label: "Plowing Required", Inline: true, Build: career(func(c *domain.CareerInfo) string { return onOff(c.PlowingRequired) })}},
	{Field: &FieldDef{ID: "career.stones", Label: "Stones", Inline: true, Build: career(func(c *domain.CareerInfo) string { return onOff(c.Stones) })}},
	{Field: &FieldDef{ID: "career.weeds", Label: "Weeds", Inline: true, Build: career(func(c *domain.CareerInfo) string { return onOff(c.Weeds) })}},
	{Field: &FieldDef{ID: "career.lime", Label: "Lime Required", Inline: true, Build: career(func(c *domain.CareerInfo) string { return onOff(c.Lime) })}},
	{Field: &FieldDef{ID: "career.snow", Label: "Snow", Inline: true, Build: career(func(c *domain.CareerInfo) string { return onOff(c.Snow) })}},
	{Field: &FieldDef{ID: "career.traffic", Label: "Traffic", Inline: true, Build: career(func(c *domain.CareerInfo) string { return onOff(c.Traffic) })}},
	{Field: &FieldDef{ID: "career.helpers", Label: "Helper Purchases", Inline: true, Build: career(helperPurchases)}},

	{Field: &FieldDef{ID: "vehicles.count", Label: "Vehicles", Inline: true, Build: vehicles(func(v *domain.VehicleSummary) string { return formatNumber(float64(v.Count)) })}},
	{Field: &FieldDef{ID: "vehicles.value", Label: "Fleet Value", Inline: true, Build: vehicles(func(v *domain.VehicleSummary) string { return formatNumber(v.TotalValue) })}},
	{Field: &FieldDef{ID: "vehicles.wear", Label: "Fleet Wear", Inline: true, Build: vehicles(func(v *domain.VehicleSummary) string { return formatPercent(v.MeanWear) })}},
	{Group: &GroupDef{ID: GroupVehicleCategories, Expand: expandCategories}},
	{Group: &GroupDef{ID: GroupVehicleFarms, Expand: expandFarms}},

	{Field: &FieldDef{ID: "economy.demands", Label: "Great Demands", Inline: false, Build: buildDemands}},
}

// FieldIDs lists every static field ID and group ID in canonical order
func FieldIDs() []string {
	ids := make([]string, 0, len(CanonicalFields))
	for _, e := range CanonicalFields {
		if e.Field != nil {
			ids = append(ids, e.Field.ID)
		} else {
			ids = append(ids, e.Group.ID)
		}
	}
	return ids
}

// IsKnownField reports whether id names a canonical field or group
func IsKnownField(id string) bool {
	return slices.Contains(FieldIDs(), id)
}

// IsGroupMember reports whether id names one expanded field of a group,
// such as "vehicles.category.tractor"
func IsGroupMember(id string) bool {
	for _, e := range CanonicalFields {
		if e.Group != nil && strings.HasPrefix(id, e.Group.ID+".") && len(id) > len(e.Group.ID)+1 {
			return true
		}
	}
	return false
}

func buildStatus(bc buildContext) (string, bool) {
	if bc.status.Online {
		return ValueOnline, true
	}
	if bc.status.Reason != "" {
		return fmt.Sprintf("%s (%s)", ValueOffline, bc.status.Reason), true
	}
	return ValueOffline, true
}

func onlineString(get func(domain.ServerStatus) string) func(buildContext) (string, bool) {
	return func(bc buildContext) (string, bool) {
		if !bc.status.Online {
			return "", false
		}
		v := get(bc.status)
		return v, v != ""
	}
}

// buildPassword resolves the password display. An explicit password wins
// over the no-password flag; with neither set the field is omitted.
func buildPassword(bc buildContext) (string, bool) {
	if !bc.status.Online {
		return "", false
	}
	ds := bc.settings
	if ds.Password != "" {
		if ds.NoPassword {
			logger.FromContext(bc.ctx).Warn(LogMsgPasswordConflict, slog.String("server", bc.status.Name))
		}
		if ds.RevealPassword {
			return "||" + ds.Password + "||", true
		}
		return ValueProtected, true
	}
	if ds.NoPassword {
		return ValueNoPassword, true
	}
	return "", false
}

func buildDayTime(bc buildContext) (string, bool) {
	if !bc.status.Online || bc.status.DayTimeMs <= 0 {
		return "", false
	}
	return formatDayTime(bc.status.DayTimeMs), true
}

func buildMods(bc buildContext) (string, bool) {
	if !bc.status.Online || bc.status.ModCount == nil {
		return "", false
	}
	return formatNumber(float64(*bc.status.ModCount)), true
}

func buildPlayerCount(bc buildContext) (string, bool) {
	if !bc.status.Online {
		return "", false
	}
	if bc.status.Capacity > 0 {
		return fmt.Sprintf("%d/%d", len(bc.status.Players), bc.status.Capacity), true
	}
	return strconv.Itoa(len(bc.status.Players)), true
}

func buildPlayerList(bc buildContext) (string, bool) {
	if !bc.status.Online {
		return "", false
	}
	if len(bc.status.Players) == 0 {
		return ValueNobodyOnline, true
	}
	lines := make([]string, 0, len(bc.status.Players))
	for _, p := range bc.status.Players {
		line := p.Name
		if p.IsAdmin {
			line += ValueAdminSuffix
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), true
}

func career(get func(*domain.CareerInfo) string) func(buildContext) (string, bool) {
	return func(bc buildContext) (string, bool) {
		if bc.status.Career == nil {
			return "", false
		}
		return get(bc.status.Career), true
	}
}

func careerString(get func(*domain.CareerInfo) string) func(buildContext) (string, bool) {
	return func(bc buildContext) (string, bool) {
		if bc.status.Career == nil {
			return "", false
		}
		v := get(bc.status.Career)
		return v, v != ""
	}
}

func buildTimeScale(bc buildContext) (string, bool) {
	c := bc.status.Career
	if c == nil || c.TimeScale <= 0 {
		return "", false
	}
	return formatMultiplier(c.TimeScale), true
}

func buildDaysPerPeriod(bc buildContext) (string, bool) {
	c := bc.status.Career
	if c == nil || c.DaysPerPeriod <= 0 {
		return "", false
	}
	return strconv.Itoa(c.DaysPerPeriod), true
}

func buildAutoSave(bc buildContext) (string, bool) {
	c := bc.status.Career
	if c == nil {
		return "", false
	}
	if c.AutoSaveMins <= 0 {
		return ValueOff, true
	}
	return fmt.Sprintf("%d min", c.AutoSaveMins), true
}

func growthModeName(mode int) string {
	switch mode {
	case 1:
		return "Seasonal"
	case 2:
		return "Daily"
	case 3:
		return "Disabled"
	default:
		return ValueUnknownPlaceholder
	}
}

func fuelUsageName(level int) string {
	switch level {
	case 1:
		return "Low"
	case 2:
		return "Normal"
	case 3:
		return "High"
	default:
		return ValueUnknownPlaceholder
	}
}

func helperPurchases(c *domain.CareerInfo) string {
	var parts []string
	if c.HelperBuyFuel {
		parts = append(parts, "Fuel")
	}
	if c.HelperBuySeeds {
		parts = append(parts, "Seeds")
	}
	if c.HelperBuyFert {
		parts = append(parts, "Fertilizer")
	}
	if len(parts) == 0 {
		return ValueNone
	}
	return strings.Join(parts, ", ")
}

func vehicles(get func(*domain.VehicleSummary) string) func(buildContext) (string, bool) {
	return func(bc buildContext) (string, bool) {
		if bc.status.Vehicles == nil {
			return "", false
		}
		return get(bc.status.Vehicles), true
	}
}

var categoryLabels = map[domain.VehicleCategory]string{
	domain.CategoryTractor:     "Tractors",
	domain.CategoryHarvester:   "Harvesters",
	domain.CategoryTruck:       "Trucks",
	domain.CategoryTrailer:     "Trailers",
	domain.CategoryCultivation: "Cultivation",
	domain.CategorySprayer:     "Sprayers & Spreaders",
	domain.CategoryBaler:       "Balers & Mowers",
	domain.CategoryLoader:      "Loaders",
	domain.CategoryOther:       "Other Equipment",
}

func formatTotal(t domain.CategoryTotal) string {
	return fmt.Sprintf("%s (%s)", formatNumber(float64(t.Count)), formatNumber(t.Value))
}

func expandCategories(bc buildContext) []domain.DisplayField {
	v := bc.status.Vehicles
	if v == nil {
		return nil
	}
	var out []domain.DisplayField
	for _, cat := range domain.VehicleCategories {
		total, ok := v.ByCategory[cat]
		if !ok || total.Count == 0 {
			continue
		}
		out = append(out, domain.DisplayField{
			ID:     GroupVehicleCategories + "." + string(cat),
			Label:  categoryLabels[cat],
			Value:  formatTotal(total),
			Inline: true,
		})
	}
	return out
}

func expandFarms(bc buildContext) []domain.DisplayField {
	v := bc.status.Vehicles
	if v == nil {
		return nil
	}
	farms := make([]int, 0, len(v.ByFarm))
	for id := range v.ByFarm {
		farms = append(farms, id)
	}
	slices.Sort(farms)

	out := make([]domain.DisplayField, 0, len(farms))
	for _, id := range farms {
		out = append(out, domain.DisplayField{
			ID:     fmt.Sprintf("%s.%d", GroupVehicleFarms, id),
			Label:  fmt.Sprintf("Farm %d", id),
			Value:  formatTotal(v.ByFarm[id]),
			Inline: true,
		})
	}
	return out
}

func buildDemands(bc buildContext) (string, bool) {
	e := bc.status.Economy
	if e == nil {
		return "", false
	}
	if len(e.Demands) == 0 {
		return ValueNoDemands, true
	}
	lines := make([]string, 0, len(e.Demands))
	for _, d := range e.Demands {
		lines = append(lines, FormatDemand(d))
	}
	return strings.Join(lines, "\n"), true
}

// FormatDemand renders one great demand as a single line
func FormatDemand(d domain.DemandEvent) string {
	return fmt.Sprintf("%s %s (+%d%%), %s left",
		parser.HumanizeName(d.Crop), formatMultiplier(d.Multiplier), d.BonusPercent, formatHours(d.DurationHours))
}
