package settings

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks a guild blob that already went through Upgrade
func Validate(cfg *domain.GuildConfig) error {
	if err := getValidator().Struct(cfg); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidSettings, FormatValidationError(err))
	}

	ids := make(map[string]struct{}, len(cfg.Servers))
	names := make(map[string]struct{}, len(cfg.Servers))
	for _, srv := range cfg.Servers {
		if _, dup := ids[srv.ID]; dup {
			return fmt.Errorf("%w: "+ErrMsgDuplicateServer, domain.ErrInvalidSettings, srv.ID)
		}
		ids[srv.ID] = struct{}{}

		name := strings.ToLower(srv.Name)
		if _, dup := names[name]; dup {
			return fmt.Errorf("%w: "+ErrMsgDuplicateName, domain.ErrInvalidSettings, srv.Name)
		}
		names[name] = struct{}{}

		if srv.UpdateInterval < domain.MinUpdateInterval {
			return fmt.Errorf("%w: "+ErrMsgIntervalTooShort,
				domain.ErrInvalidSettings, srv.ID, srv.UpdateInterval, domain.MinUpdateInterval)
		}
	}
	return nil
}

// FormatValidationError renders validator errors as "field: reason" pairs
// without leaking Go struct paths
func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, field+": is required")
		case "url":
			msgs = append(msgs, field+": must be a valid URL")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s: must be at most %s characters", field, e.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s: must be at least %s", field, e.Param()))
		default:
			msgs = append(msgs, field+": invalid value")
		}
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}
