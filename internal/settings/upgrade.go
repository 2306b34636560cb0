package settings

import (
	"fmt"
	"log/slog"

	"github.com/osse101/FarmBot_Go/internal/compose"
	"github.com/osse101/FarmBot_Go/internal/domain"
)

// Upgrade brings a stored guild blob to the current schema and fills
// defaults in place. It reports whether anything changed so callers can
// write the upgraded form back.
func Upgrade(cfg *domain.GuildConfig) (bool, error) {
	changed := false

	version := cfg.SchemaVersion
	if version == 0 {
		version = domain.SettingsSchemaLegacy
	}
	if version > domain.SettingsSchemaCurrent {
		return false, fmt.Errorf("%w: %d", domain.ErrUnsupportedSchema, cfg.SchemaVersion)
	}

	if version == domain.SettingsSchemaLegacy {
		upgradeHiddenFields(cfg)
		cfg.SchemaVersion = domain.SettingsSchemaCurrent
		changed = true
		slog.Default().Info(LogMsgUpgradedSettings, "guild_id", cfg.GuildID, "servers", len(cfg.Servers))
	}

	if applyDefaults(cfg) {
		changed = true
	}
	return changed, nil
}

// upgradeHiddenFields turns the legacy guild-wide hidden list into explicit
// false entries on every server
func upgradeHiddenFields(cfg *domain.GuildConfig) {
	for i := range cfg.Servers {
		if len(cfg.HiddenFields) == 0 {
			break
		}
		srv := &cfg.Servers[i]
		if srv.Display.Fields == nil {
			srv.Display.Fields = make(map[string]bool, len(cfg.HiddenFields))
		}
		for _, id := range cfg.HiddenFields {
			if _, set := srv.Display.Fields[id]; !set {
				srv.Display.Fields[id] = false
			}
		}
	}
	cfg.HiddenFields = nil
}

func applyDefaults(cfg *domain.GuildConfig) bool {
	changed := false

	if cfg.Alerts.Cooldown <= 0 {
		cfg.Alerts.Cooldown = domain.DefaultAlertCooldown
		changed = true
	}

	for i := range cfg.Servers {
		srv := &cfg.Servers[i]
		switch {
		case srv.UpdateInterval == 0:
			srv.UpdateInterval = domain.DefaultUpdateInterval
			changed = true
		case srv.UpdateInterval < domain.MinUpdateInterval:
			slog.Default().Warn(LogMsgClampedInterval,
				"guild_id", cfg.GuildID, "server_id", srv.ID, "interval", srv.UpdateInterval)
			srv.UpdateInterval = domain.MinUpdateInterval
			changed = true
		}

		if srv.Display.RotationCursor < 0 {
			srv.Display.RotationCursor = 0
			changed = true
		}

		for id := range srv.Display.Fields {
			if compose.IsKnownField(id) || compose.IsGroupMember(id) {
				continue
			}
			slog.Default().Warn(LogMsgDroppedUnknownID, "guild_id", cfg.GuildID, "server_id", srv.ID, "field_id", id)
			delete(srv.Display.Fields, id)
			changed = true
		}
	}
	return changed
}
