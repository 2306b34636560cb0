package domain

import "time"

// ServerStatus is the aggregated snapshot of one server at one point in time.
// It is built fresh on every poll and never mutated afterwards.
//
// Optional sub-records are pointers: nil means the feed was not configured or
// could not be read, while a non-nil empty record means the feed was read and
// simply had nothing to report.
type ServerStatus struct {
	Online    bool
	Reason    string // why the server is considered offline
	CheckedAt time.Time

	Name      string
	Map       string
	Version   string
	Game      string
	Players   []Player
	Capacity  int
	DayTimeMs int64
	ModCount  *int

	Career   *CareerInfo
	Vehicles *VehicleSummary
	Economy  *EconomyInfo
}

// Offline builds the status returned when the mandatory feed is missing
func Offline(reason string, checkedAt time.Time) ServerStatus {
	return ServerStatus{Online: false, Reason: reason, CheckedAt: checkedAt}
}

// PlayerNames returns the names of the connected players in feed order
func (s ServerStatus) PlayerNames() []string {
	names := make([]string, 0, len(s.Players))
	for _, p := range s.Players {
		names = append(names, p.Name)
	}
	return names
}

// Player is one occupied slot on the server
type Player struct {
	Name          string
	IsAdmin       bool
	UptimeMinutes int
}

// CareerInfo is the savegame record from careerSavegame.xml
type CareerInfo struct {
	SavegameName  string
	Money         float64
	Difficulty    string
	TimeScale     float64
	PlayTimeHours float64
	SaveDate      string
	CreationDate  string
	DaysPerPeriod int
	GrowthMode    int
	FuelUsage     int
	AutoSaveMins  int

	FruitDestruction bool
	PlowingRequired  bool
	Stones           bool
	Weeds            bool
	Lime             bool
	Snow             bool
	Traffic          bool
	HelperBuyFuel    bool
	HelperBuySeeds   bool
	HelperBuyFert    bool
}

// VehicleSummary aggregates the vehicles.xml savegame file
type VehicleSummary struct {
	Count      int
	TotalValue float64
	// MeanWear is the average damage fraction (0.0 - 1.0), zero when unknown
	MeanWear   float64
	ByCategory map[VehicleCategory]CategoryTotal
	ByFarm     map[int]CategoryTotal
}

// CategoryTotal is a count/value pair for one breakdown bucket
type CategoryTotal struct {
	Count int
	Value float64
}

// VehicleCategory is the bucket a vehicle is sorted into
type VehicleCategory string

// Vehicle categories in display order
const (
	CategoryTractor     VehicleCategory = "tractor"
	CategoryHarvester   VehicleCategory = "harvester"
	CategoryTruck       VehicleCategory = "truck"
	CategoryTrailer     VehicleCategory = "trailer"
	CategoryCultivation VehicleCategory = "cultivation"
	CategorySprayer     VehicleCategory = "sprayer"
	CategoryBaler       VehicleCategory = "baler"
	CategoryLoader      VehicleCategory = "loader"
	CategoryOther       VehicleCategory = "other"
)

// VehicleCategories lists every category in display order
var VehicleCategories = []VehicleCategory{
	CategoryTractor,
	CategoryHarvester,
	CategoryTruck,
	CategoryTrailer,
	CategoryCultivation,
	CategorySprayer,
	CategoryBaler,
	CategoryLoader,
	CategoryOther,
}

// EconomyInfo is the economy.xml record
type EconomyInfo struct {
	Demands []DemandEvent
}

// DemandEvent is one running great demand.
// Identity for diffing is Crop only.
type DemandEvent struct {
	Crop          string
	DurationHours float64 // raw value from the feed, rounded only for display
	Multiplier    float64
	BonusPercent  int
}

// Crops returns the crop identifiers of the given events
func Crops(events []DemandEvent) []string {
	crops := make([]string, 0, len(events))
	for _, e := range events {
		crops = append(crops, e.Crop)
	}
	return crops
}
