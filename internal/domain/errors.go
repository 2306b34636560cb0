package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Guild/server lookup errors
	ErrMsgGuildNotFound  = "guild not found"
	ErrMsgServerNotFound = "server not found"

	// Feed errors
	ErrMsgFeedUnavailable   = "feed unavailable"
	ErrMsgFeedNotConfigured = "feed not configured"
	ErrMsgFeedUnparseable   = "feed could not be parsed"

	// Settings errors
	ErrMsgInvalidSettings     = "invalid settings"
	ErrMsgUnsupportedSchema   = "unsupported settings schema version"
	ErrMsgAlreadySubscribed   = "already subscribed"
	ErrMsgNotSubscribed       = "not subscribed"
	ErrMsgAlertsNotConfigured = "demand alerts are not configured"

	// Cooldown errors
	ErrMsgOnCooldown = "action on cooldown"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrGuildNotFound  = errors.New(ErrMsgGuildNotFound)
	ErrServerNotFound = errors.New(ErrMsgServerNotFound)

	ErrFeedUnavailable   = errors.New(ErrMsgFeedUnavailable)
	ErrFeedNotConfigured = errors.New(ErrMsgFeedNotConfigured)
	ErrFeedUnparseable   = errors.New(ErrMsgFeedUnparseable)

	ErrInvalidSettings     = errors.New(ErrMsgInvalidSettings)
	ErrUnsupportedSchema   = errors.New(ErrMsgUnsupportedSchema)
	ErrAlreadySubscribed   = errors.New(ErrMsgAlreadySubscribed)
	ErrNotSubscribed       = errors.New(ErrMsgNotSubscribed)
	ErrAlertsNotConfigured = errors.New(ErrMsgAlertsNotConfigured)

	ErrOnCooldown = errors.New(ErrMsgOnCooldown)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
