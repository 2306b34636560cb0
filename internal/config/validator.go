package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate checks the struct tags of a loaded Config
func Validate(cfg *Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf(ErrMsgInvalidConfig, describe(err))
	}
	return nil
}

func describe(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, e.Field()+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", e.Field(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", e.Field(), e.Tag(), e.Param(), e.Value()))
		}
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// Warnings returns non-fatal issues worth logging at startup
func Warnings(cfg *Config) []string {
	var warnings []string
	if cfg.IsProduction() && !cfg.FeedSSRFGuard {
		warnings = append(warnings, WarnSSRFGuardDisabled)
	}
	if cfg.IsProduction() && strings.Contains(cfg.DatabaseURL, "sslmode=disable") {
		warnings = append(warnings, WarnDatabaseNoSSL)
	}
	if cfg.CooldownDevMode {
		warnings = append(warnings, WarnCooldownDevMode)
	}
	return warnings
}
