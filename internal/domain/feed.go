package domain

// FeedKind identifies one upstream endpoint of a dedicated server
type FeedKind string

// Feed kinds exposed by a Farming Simulator dedicated server
const (
	FeedStats    FeedKind = "stats"
	FeedCareer   FeedKind = "career"
	FeedVehicles FeedKind = "vehicles"
	FeedEconomy  FeedKind = "economy"
	FeedModList  FeedKind = "mods"
)

// AllFeedKinds lists the feed kinds in fetch order
var AllFeedKinds = []FeedKind{FeedStats, FeedCareer, FeedVehicles, FeedEconomy, FeedModList}

// FeedSource is a named URL endpoint for one server.
// Only the stats feed is required; every other feed is optional.
type FeedSource struct {
	Kind     FeedKind
	URL      string
	Required bool
}

// FeedURLs holds the configured endpoints of one server
type FeedURLs struct {
	Stats    string `json:"stats" yaml:"stats" validate:"required,url"`
	Career   string `json:"career,omitempty" yaml:"career" validate:"omitempty,url"`
	Vehicles string `json:"vehicles,omitempty" yaml:"vehicles" validate:"omitempty,url"`
	Economy  string `json:"economy,omitempty" yaml:"economy" validate:"omitempty,url"`
	ModList  string `json:"modList,omitempty" yaml:"modList" validate:"omitempty,url"`
}

// Sources returns the configured feeds. Empty URLs are skipped.
func (f FeedURLs) Sources() []FeedSource {
	urls := map[FeedKind]string{
		FeedStats:    f.Stats,
		FeedCareer:   f.Career,
		FeedVehicles: f.Vehicles,
		FeedEconomy:  f.Economy,
		FeedModList:  f.ModList,
	}

	sources := make([]FeedSource, 0, len(urls))
	for _, kind := range AllFeedKinds {
		url := urls[kind]
		if url == "" {
			continue
		}
		sources = append(sources, FeedSource{
			Kind:     kind,
			URL:      url,
			Required: kind == FeedStats,
		})
	}
	return sources
}
