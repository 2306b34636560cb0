package status

// Offline reasons shown to users
const (
	ReasonStatsNotConfigured = "no stats feed configured"
	ReasonStatsUnavailable   = "stats feed unreachable"
	ReasonStatsUnparseable   = "stats feed returned unreadable data"
	ReasonNoGameRunning      = "server is not running a savegame"
)

// Log messages
const (
	LogMsgServerOffline   = "Server offline"
	LogMsgServerChecked   = "Server checked"
	LogMsgOptionalMissing = "Optional feed missing or unparseable"
)
