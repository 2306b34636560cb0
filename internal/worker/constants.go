package worker

// Log Messages - Worker Pool
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
	LogMsgQueueFull         = "Job queue full, skipping"
	LogMsgPoolStopping      = "Worker pool stopping"
	LogMsgPoolStopTimeout   = "Worker pool shutdown timeout"
	LogMsgPoolStopped       = "Worker pool shutdown complete"
)

// Log Messages - Jobs
const (
	LogMsgStatusAlreadyRunning = "Status refresh still running, skipping"
	LogMsgAlertAlreadyRunning  = "Demand check still running, skipping"
	LogMsgPersistCursorFailed  = "Failed to persist rotation cursor"
	LogMsgPersistMessageFailed = "Failed to persist status message ID"
	LogMsgListGuildsFailed     = "Failed to list guilds"
	LogMsgEvaluateFailed       = "Failed to evaluate great demands"
	LogMsgNoEconomyData        = "No economy data, keeping previous demand set"
	LogMsgStatusRefreshed      = "Status refreshed"
	LogMsgServerCheckPanicked  = "Demand check panicked"
)

// Error Messages
const (
	ErrMsgPublishFailed = "failed to publish status"
)

// Job names used for lock keys and metric labels
const (
	JobNameStatus      = "status"
	JobNameAlert       = "alert"
	JobNameStatusSweep = "status_sweep"
	JobNameAlertSweep  = "alert_sweep"
)
