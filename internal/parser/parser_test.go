package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestParseStats(t *testing.T) {
	rec, ok := ParseStats(loadFixture(t, "stats.xml"))
	require.True(t, ok)

	assert.True(t, rec.Online)
	assert.Equal(t, "Green Acres & Co", rec.Name)
	assert.Equal(t, "Elmcreek", rec.Map)
	assert.Equal(t, "1.14.0.0", rec.Version)
	assert.Equal(t, "Farming Simulator 22", rec.Game)
	assert.Equal(t, int64(45900000), rec.DayTimeMs)
	assert.Equal(t, 16, rec.Capacity)

	require.Len(t, rec.Players, 2, "only occupied slots are kept")
	assert.Equal(t, domain.Player{Name: "José", IsAdmin: true, UptimeMinutes: 42}, rec.Players[0])
	assert.Equal(t, "FarmHand_01", rec.Players[1].Name)
	assert.False(t, rec.Players[1].IsAdmin)

	require.NotNil(t, rec.ModCount)
	assert.Equal(t, 3, *rec.ModCount)
}

func TestParseStats_Failures(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantOK     bool
		wantOnline bool
	}{
		{name: "empty", raw: "", wantOK: false},
		{name: "html error page", raw: "<html><body>403 Forbidden</body></html>", wantOK: false},
		{name: "server not running", raw: `<Server game="" version="" name="" mapName=""/>`, wantOK: true, wantOnline: false},
		{name: "truncated tag", raw: `<Server name="x"`, wantOK: false},
		{name: "minimal", raw: `<Server name='Solo'/>`, wantOK: true, wantOnline: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := ParseStats(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantOnline, rec.Online)
				assert.Empty(t, rec.Players)
				assert.Nil(t, rec.ModCount)
			}
		})
	}
}

func TestParseStats_AttributeOrderIrrelevant(t *testing.T) {
	a, okA := ParseStats(`<Server name="A" mapName="Map" version="1.0"><Slots capacity="4"><Player isUsed="true" isAdmin="false">P</Player></Slots></Server>`)
	b, okB := ParseStats(`<Server version="1.0" mapName="Map" name="A"><Slots capacity="4"><Player isAdmin="false" isUsed="true">P</Player></Slots></Server>`)
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, a, b)
}

func TestParseCareer(t *testing.T) {
	info, ok := ParseCareer(loadFixture(t, "career.xml"))
	require.True(t, ok)

	assert.Equal(t, "My Farm 1", info.SavegameName, "markup is stripped from free text")
	assert.Equal(t, 1234567.0, info.Money)
	assert.Equal(t, DifficultyHard, info.Difficulty)
	assert.Equal(t, 5.0, info.TimeScale)
	assert.InDelta(t, 12.5, info.PlayTimeHours, 0.0001)
	assert.Equal(t, "2024-05-12", info.SaveDate)
	assert.Equal(t, "2024-03-01", info.CreationDate)
	assert.Equal(t, 3, info.DaysPerPeriod)
	assert.Equal(t, 1, info.GrowthMode)
	assert.Equal(t, 2, info.FuelUsage)
	assert.Equal(t, 15, info.AutoSaveMins)

	assert.True(t, info.FruitDestruction)
	assert.False(t, info.PlowingRequired)
	assert.True(t, info.Stones)
	assert.True(t, info.Weeds)
	assert.True(t, info.Lime)
	assert.False(t, info.Snow)
	assert.True(t, info.Traffic)
	assert.True(t, info.HelperBuyFuel)
	assert.False(t, info.HelperBuySeeds)
	assert.True(t, info.HelperBuyFert)
}

func TestParseCareer_MissingRoot(t *testing.T) {
	info, ok := ParseCareer("<settings><money>5</money></settings>")
	assert.False(t, ok)
	assert.Nil(t, info)
}

func TestParseCareer_PartialDocument(t *testing.T) {
	info, ok := ParseCareer(`<careerSavegame><statistics><money>not-a-number</money></statistics>`)
	require.True(t, ok)
	assert.Zero(t, info.Money)
	assert.Empty(t, info.Difficulty)
}

func TestDifficultyName(t *testing.T) {
	assert.Equal(t, DifficultyEasy, difficultyName("1"))
	assert.Equal(t, DifficultyNormal, difficultyName("normal"))
	assert.Equal(t, DifficultyHard, difficultyName(" 3 "))
	assert.Equal(t, "Very Hard", difficultyName("VERY_HARD"))
}

func TestParseVehicles(t *testing.T) {
	summary, ok := ParseVehicles(loadFixture(t, "vehicles.xml"))
	require.True(t, ok)

	assert.Equal(t, 5, summary.Count, "pallets and entries without filename are skipped")
	assert.Equal(t, 841000.0, summary.TotalValue)
	assert.InDelta(t, 0.3, summary.MeanWear, 0.0001)

	assert.Equal(t, domain.CategoryTotal{Count: 1, Value: 300000}, summary.ByCategory[domain.CategoryTractor])
	assert.Equal(t, domain.CategoryTotal{Count: 1, Value: 450000}, summary.ByCategory[domain.CategoryHarvester])
	assert.Equal(t, domain.CategoryTotal{Count: 1, Value: 50000}, summary.ByCategory[domain.CategoryTrailer])
	assert.Equal(t, domain.CategoryTotal{Count: 1, Value: 40000}, summary.ByCategory[domain.CategoryCultivation])
	assert.Equal(t, domain.CategoryTotal{Count: 1, Value: 1000}, summary.ByCategory[domain.CategoryOther])

	assert.Equal(t, domain.CategoryTotal{Count: 2, Value: 750000}, summary.ByFarm[1])
	assert.Equal(t, domain.CategoryTotal{Count: 3, Value: 91000}, summary.ByFarm[2])
}

func TestParseVehicles_Malformed(t *testing.T) {
	summary, ok := ParseVehicles(`<vehicles><vehicle price="abc" filename="x/tractor.xml"`)
	require.True(t, ok)
	assert.Zero(t, summary.Count)
	assert.Zero(t, summary.TotalValue)

	_, ok = ParseVehicles("Service Unavailable")
	assert.False(t, ok)
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		id   string
		want domain.VehicleCategory
	}{
		{"data/vehicles/fendt/tractors/vario.xml", domain.CategoryTractor},
		{"data/vehicles/claas/combineHarvesters/lexion.xml", domain.CategoryHarvester},
		{"data/vehicles/newHolland/harvesters/cr.xml", domain.CategoryHarvester},
		{"data/vehicles/claas/cutters/pickup300/pickup300.xml cutter", domain.CategoryHarvester},
		{"data/vehicles/newHolland/pickupHeaders/790cp.xml", domain.CategoryHarvester},
		{"data/vehicles/claas/headers/convio.xml", domain.CategoryHarvester},
		{"data/vehicles/mack/trucks/anthem.xml", domain.CategoryTruck},
		{"data/vehicles/lizard/pickups/pickup1978.xml", domain.CategoryTruck},
		{"data/vehicles/fliegl/trailers/dps.xml", domain.CategoryTrailer},
		{"data/vehicles/lemken/plows/juwel.xml", domain.CategoryCultivation},
		{"data/vehicles/amazone/seeders/cirrus.xml", domain.CategoryCultivation},
		{"data/vehicles/hardi/sprayers/navigator.xml", domain.CategorySprayer},
		{"data/vehicles/bredal/spreaders/k165.xml", domain.CategorySprayer},
		{"data/vehicles/krone/balers/bigpack.xml", domain.CategoryBaler},
		{"data/vehicles/krone/mowers/easycut.xml", domain.CategoryBaler},
		{"data/vehicles/jcb/telehandlers/542.xml", domain.CategoryLoader},
		{"data/vehicles/volvo/wheelLoaders/l180.xml", domain.CategoryLoader},
		{"$moddir$FS22_Something/thing.xml", domain.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.id))
		})
	}
}

func TestParseEconomy(t *testing.T) {
	info, ok := ParseEconomy(loadFixture(t, "economy.xml"))
	require.True(t, ok)

	require.Len(t, info.Demands, 2, "only running demands with a crop are kept")

	assert.Equal(t, domain.DemandEvent{Crop: "WHEAT", DurationHours: 12, Multiplier: 1.4, BonusPercent: 40}, info.Demands[0])

	canola := info.Demands[1]
	assert.Equal(t, "CANOLA", canola.Crop)
	assert.Equal(t, 30, canola.BonusPercent, "explicit bonus wins over the multiplier")
	assert.Equal(t, 5.6, canola.DurationHours, "raw duration is retained")
}

func TestParseEconomy_WheatExample(t *testing.T) {
	info, ok := ParseEconomy(`<economy><greatDemands><greatDemand itemName="WHEAT" demandMultiplier="1.4" demandDuration="12" isRunning="true"/></greatDemands></economy>`)
	require.True(t, ok)
	require.Len(t, info.Demands, 1)
	assert.Equal(t, "WHEAT", info.Demands[0].Crop)
	assert.Equal(t, 12.0, info.Demands[0].DurationHours)
	assert.Equal(t, 40, info.Demands[0].BonusPercent)
}

func TestParseEconomy_NoDemands(t *testing.T) {
	info, ok := ParseEconomy(`<economy><greatDemands/></economy>`)
	require.True(t, ok)
	assert.NotNil(t, info.Demands)
	assert.Empty(t, info.Demands)

	_, ok = ParseEconomy(`{"error": "not found"}`)
	assert.False(t, ok)
}

func TestBonusPercent(t *testing.T) {
	assert.Equal(t, 40, BonusPercent(1.4))
	assert.Equal(t, 25, BonusPercent(1.25))
	assert.Equal(t, 0, BonusPercent(1.0))
	assert.Equal(t, -10, BonusPercent(0.9))
}

func TestParseModList(t *testing.T) {
	count, ok := ParseModList(loadFixture(t, "mods.html"))
	require.True(t, ok)
	assert.Equal(t, 2, count, "duplicate archive links count once")

	count, ok = ParseModList(`<Server><Mods><Mod name="a"/><Mod name="b"/></Mods></Server>`)
	require.True(t, ok)
	assert.Equal(t, 2, count)

	count, ok = ParseModList(`<html><body><p>No mods installed</p></body></html>`)
	require.True(t, ok)
	assert.Zero(t, count)

	_, ok = ParseModList("connection refused")
	assert.False(t, ok)
}

func TestParsersAreIdempotent(t *testing.T) {
	stats := loadFixture(t, "stats.xml")
	career := loadFixture(t, "career.xml")
	vehicles := loadFixture(t, "vehicles.xml")
	economy := loadFixture(t, "economy.xml")
	mods := loadFixture(t, "mods.html")

	s1, _ := ParseStats(stats)
	s2, _ := ParseStats(stats)
	assert.Equal(t, s1, s2)

	c1, _ := ParseCareer(career)
	c2, _ := ParseCareer(career)
	assert.Equal(t, c1, c2)

	v1, _ := ParseVehicles(vehicles)
	v2, _ := ParseVehicles(vehicles)
	assert.Equal(t, v1, v2)

	e1, _ := ParseEconomy(economy)
	e2, _ := ParseEconomy(economy)
	assert.Equal(t, e1, e2)

	m1, _ := ParseModList(mods)
	m2, _ := ParseModList(mods)
	assert.Equal(t, m1, m2)
}
