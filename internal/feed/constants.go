package feed

import "time"

// Fetch limits
const (
	// DefaultMaxBodyBytes caps a single feed payload
	DefaultMaxBodyBytes int64 = 5 << 20

	DefaultModListTTL       = 10 * time.Minute
	DefaultModListCacheSize = 256

	DefaultUserAgent = "FarmBot/1.0 (+https://github.com/osse101/FarmBot_Go)"
)

// DefaultAllowedPorts are the ports reachable through the SSRF guard
var DefaultAllowedPorts = []int{80, 443, 8080}

// Log messages
const (
	LogMsgFetchFailed    = "Feed fetch failed"
	LogMsgFetchSucceeded = "Feed fetched"
	LogMsgModListCached  = "Mod list served from cache"
	LogMsgSSRFGuardOn    = "Feed SSRF guard enabled"
)

// Error message fragments
const (
	ErrMsgUnexpectedStatus = "unexpected status"
	ErrMsgBodyTooLarge     = "response body exceeds limit"
	ErrMsgEmptyBody        = "empty response body"
)
