package database

import "time"

const (
	// DefaultMinConnections is kept warm for the status sweep
	DefaultMinConnections = 2

	// PingTimeout bounds the startup connectivity check
	PingTimeout = 10 * time.Second

	ParamApplicationName = "application_name"
	ApplicationName      = "farm-bot"
)

// Error Messages
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
)

// Log Messages
const (
	LogMsgConnectedToDatabase = "Connected to PostgreSQL"
)
