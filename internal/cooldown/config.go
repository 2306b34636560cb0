package cooldown

import (
	"time"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// Config holds cooldown service configuration
type Config struct {
	// DevMode bypasses all cooldowns when true
	DevMode bool

	// Cooldowns maps action names to their durations
	// If not specified, defaults from domain package are used
	Cooldowns map[string]time.Duration
}

// GetCooldownDuration returns the cooldown duration for an action
func (c *Config) GetCooldownDuration(action string) time.Duration {
	if c.Cooldowns != nil {
		if duration, ok := c.Cooldowns[action]; ok {
			return duration
		}
	}

	switch action {
	case domain.ActionDemandBroadcast:
		return domain.DefaultAlertCooldown
	default:
		return DefaultCooldownDuration
	}
}

// window resolves an explicit window against the configured default
func (c *Config) window(action string, explicit time.Duration) time.Duration {
	if explicit > 0 {
		return explicit
	}
	return c.GetCooldownDuration(action)
}
