package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store implements repository.Store for PostgreSQL
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new Store
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the pool
func (s *Store) Close() {
	s.db.Close()
}

// GetGuild loads a guild with its servers in configured order
func (s *Store) GetGuild(ctx context.Context, guildID string) (*domain.GuildConfig, error) {
	var (
		cfg    = domain.GuildConfig{GuildID: guildID}
		alerts []byte
	)
	err := s.db.QueryRow(ctx, `
		SELECT schema_version, alerts
		FROM guilds
		WHERE guild_id = $1
	`, guildID).Scan(&cfg.SchemaVersion, &alerts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrGuildNotFound, guildID)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetGuild, err)
	}
	if err := json.Unmarshal(alerts, &cfg.Alerts); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeSettings, err)
	}

	servers, err := s.loadServers(ctx, `WHERE guild_id = $1`, guildID)
	if err != nil {
		return nil, err
	}
	cfg.Servers = servers[guildID]
	return &cfg, nil
}

// ListGuilds loads every guild
func (s *Store) ListGuilds(ctx context.Context) ([]domain.GuildConfig, error) {
	rows, err := s.db.Query(ctx, `
		SELECT guild_id, schema_version, alerts
		FROM guilds
		ORDER BY guild_id
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListGuilds, err)
	}
	defer rows.Close()

	var guilds []domain.GuildConfig
	for rows.Next() {
		var (
			cfg    domain.GuildConfig
			alerts []byte
		)
		if err := rows.Scan(&cfg.GuildID, &cfg.SchemaVersion, &alerts); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListGuilds, err)
		}
		if err := json.Unmarshal(alerts, &cfg.Alerts); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeSettings, err)
		}
		guilds = append(guilds, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListGuilds, err)
	}

	servers, err := s.loadServers(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range guilds {
		guilds[i].Servers = servers[guilds[i].GuildID]
	}
	return guilds, nil
}

func (s *Store) loadServers(ctx context.Context, where string, args ...any) (map[string][]domain.ServerConfig, error) {
	rows, err := s.db.Query(ctx, `
		SELECT guild_id, server_id, name, channel_id, message_id, feeds, display, update_interval_ms
		FROM servers `+where+`
		ORDER BY guild_id, position`, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadServers, err)
	}
	defer rows.Close()

	out := make(map[string][]domain.ServerConfig)
	for rows.Next() {
		var (
			guildID    string
			srv        domain.ServerConfig
			feeds      []byte
			display    []byte
			intervalMs int64
		)
		if err := rows.Scan(&guildID, &srv.ID, &srv.Name, &srv.ChannelID, &srv.MessageID, &feeds, &display, &intervalMs); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadServers, err)
		}
		if err := json.Unmarshal(feeds, &srv.Feeds); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeSettings, err)
		}
		if err := json.Unmarshal(display, &srv.Display); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeSettings, err)
		}
		srv.UpdateInterval = time.Duration(intervalMs) * time.Millisecond
		out[guildID] = append(out[guildID], srv)
	}
	return out, rows.Err()
}

// SaveGuild replaces the guild and its server list
func (s *Store) SaveGuild(ctx context.Context, cfg *domain.GuildConfig) error {
	alerts, err := json.Marshal(cfg.Alerts)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeSettings, err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer rollback(ctx, tx, cfg.GuildID)

	_, err = tx.Exec(ctx, `
		INSERT INTO guilds (guild_id, schema_version, alerts, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (guild_id) DO UPDATE
		SET schema_version = EXCLUDED.schema_version,
		    alerts = EXCLUDED.alerts,
		    updated_at = NOW()
	`, cfg.GuildID, cfg.SchemaVersion, alerts)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveGuild, err)
	}

	keep := make([]string, 0, len(cfg.Servers))
	for i, srv := range cfg.Servers {
		feeds, err := json.Marshal(srv.Feeds)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeSettings, err)
		}
		display, err := json.Marshal(srv.Display)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeSettings, err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO servers (guild_id, server_id, position, name, channel_id, message_id, feeds, display, update_interval_ms)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (guild_id, server_id) DO UPDATE
			SET position = EXCLUDED.position,
			    name = EXCLUDED.name,
			    channel_id = EXCLUDED.channel_id,
			    message_id = EXCLUDED.message_id,
			    feeds = EXCLUDED.feeds,
			    display = EXCLUDED.display,
			    update_interval_ms = EXCLUDED.update_interval_ms
		`, cfg.GuildID, srv.ID, i, srv.Name, srv.ChannelID, srv.MessageID, feeds, display, srv.UpdateInterval.Milliseconds())
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToSaveServer, err)
		}
		keep = append(keep, srv.ID)
	}

	_, err = tx.Exec(ctx, `DELETE FROM servers WHERE guild_id = $1 AND NOT (server_id = ANY($2))`, cfg.GuildID, keep)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveGuild, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// DeleteGuild removes the guild, its servers and their alert state
func (s *Store) DeleteGuild(ctx context.Context, guildID string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM guilds WHERE guild_id = $1`, guildID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteGuild, err)
	}
	return nil
}

// UpdateServerCursor persists the rotation cursor without touching other settings
func (s *Store) UpdateServerCursor(ctx context.Context, guildID, serverID string, cursor int) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE servers
		SET display = jsonb_set(display, '{rotationCursor}', to_jsonb($3::int))
		WHERE guild_id = $1 AND server_id = $2
	`, guildID, serverID, cursor)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateServer, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrServerNotFound, serverID)
	}
	return nil
}

// UpdateAlerts replaces the guild's alert settings and leaves servers alone
func (s *Store) UpdateAlerts(ctx context.Context, guildID string, alerts domain.AlertConfig) error {
	raw, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeSettings, err)
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE guilds SET alerts = $2, updated_at = NOW()
		WHERE guild_id = $1
	`, guildID, raw)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateAlerts, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrGuildNotFound, guildID)
	}
	return nil
}

// UpdateServerMessage persists the ID of the status message
func (s *Store) UpdateServerMessage(ctx context.Context, guildID, serverID, messageID string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE servers SET message_id = $3
		WHERE guild_id = $1 AND server_id = $2
	`, guildID, serverID, messageID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateServer, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrServerNotFound, serverID)
	}
	return nil
}

// GetAlertState returns nil when the server has no stored state
func (s *Store) GetAlertState(ctx context.Context, guildID, serverID string) (*domain.AlertState, error) {
	state := domain.AlertState{GuildID: guildID, ServerID: serverID}
	err := s.db.QueryRow(ctx, `
		SELECT crops, seen, last_notified, updated_at
		FROM alert_states
		WHERE guild_id = $1 AND server_id = $2
	`, guildID, serverID).Scan(&state.Crops, &state.Seen, &state.LastNotified, &state.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAlertState, err)
	}
	return &state, nil
}

// SaveAlertState upserts the state of one guild+server
func (s *Store) SaveAlertState(ctx context.Context, state domain.AlertState) error {
	crops := state.Crops
	if crops == nil {
		crops = []string{}
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO alert_states (guild_id, server_id, crops, seen, last_notified, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (guild_id, server_id) DO UPDATE
		SET crops = EXCLUDED.crops,
		    seen = EXCLUDED.seen,
		    last_notified = EXCLUDED.last_notified,
		    updated_at = EXCLUDED.updated_at
	`, state.GuildID, state.ServerID, crops, state.Seen, state.LastNotified, state.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveAlertState, err)
	}
	return nil
}

// GetLastCooldown returns nil when the action never ran for the scope
func (s *Store) GetLastCooldown(ctx context.Context, scopeID, action string) (*time.Time, error) {
	var lastUsed time.Time
	err := s.db.QueryRow(ctx, `
		SELECT last_used_at FROM cooldowns
		WHERE scope_id = $1 AND action_name = $2
	`, scopeID, action).Scan(&lastUsed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCooldown, err)
	}
	return &lastUsed, nil
}

// UpdateCooldown records the last use of an action
func (s *Store) UpdateCooldown(ctx context.Context, scopeID, action string, timestamp time.Time) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO cooldowns (scope_id, action_name, last_used_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (scope_id, action_name) DO UPDATE
		SET last_used_at = EXCLUDED.last_used_at
	`, scopeID, action, timestamp)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateCooldown, err)
	}
	return nil
}

// DeleteCooldown clears the cooldown of an action
func (s *Store) DeleteCooldown(ctx context.Context, scopeID, action string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM cooldowns WHERE scope_id = $1 AND action_name = $2`, scopeID, action); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteCooldown, err)
	}
	return nil
}

// rollback is deferred after Begin; after Commit it is a no-op
func rollback(ctx context.Context, tx pgx.Tx, guildID string) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error(LogMsgRollbackFailed, "guild_id", guildID, "error", err)
	}
}
