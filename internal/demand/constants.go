package demand

import "time"

// DM pacers are kept per guild and forgotten after a quiet hour
const (
	dmPacerCacheSize = 1024
	dmPacerTTL       = time.Hour
)

// Broadcast outcomes recorded in NotifyReport
const (
	BroadcastSkipped    = "skipped"
	BroadcastSent       = "sent"
	BroadcastSuppressed = "suppressed"
	BroadcastFailed     = "failed"
)

// Log messages
const (
	LogMsgNewDemands          = "New great demands detected"
	LogMsgFirstObservation    = "First demand observation for server"
	LogMsgBroadcastSuppressed = "Demand broadcast suppressed by cooldown"
	LogMsgBroadcastFailed     = "Demand broadcast failed"
	LogMsgBroadcastSent       = "Demand broadcast sent"
	LogMsgDMFailed            = "Demand direct message failed"
	LogMsgNotifyDone          = "Demand notification finished"
	LogMsgStampFailed         = "Failed to record broadcast time"
)

// Error formats
const (
	ErrMsgLoadStateFailed = "failed to load alert state: %w"
	ErrMsgSaveStateFailed = "failed to save alert state: %w"
)

// Notification text
const (
	TextHeaderFormat = "New great demand on %s"
	TextLineFormat   = "• %s: +%d%% for %s h"
)
