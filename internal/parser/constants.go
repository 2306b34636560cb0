package parser

// KnownNamePrefixes are removed from identifiers before humanizing
var KnownNamePrefixes = []string{"FS25_", "FS22_", "FS19_", "FILLTYPE_", "FT_", "$l10n_"}

// Difficulty display names
const (
	DifficultyEasy   = "Easy"
	DifficultyNormal = "Normal"
	DifficultyHard   = "Hard"
)

// ModArchiveSuffix marks a link to a mod download on the server's mods page
const ModArchiveSuffix = ".zip"

// MinutesPerHour converts the savegame play time (minutes) into hours
const MinutesPerHour = 60.0
