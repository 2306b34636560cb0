// Package filestore keeps guild settings, alert state and cooldowns as JSON
// files under a data directory. Writes go through a temp file and rename so
// a crash never leaves a half-written file behind.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/FarmBot_Go/internal/concurrency"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store implements repository.Store on the local filesystem
type Store struct {
	dir   string
	locks *concurrency.LockManager
}

// guildState is the per-guild alert state file
type guildState struct {
	Servers map[string]domain.AlertState `json:"servers"`
}

// New creates the data directory layout and returns a Store rooted at dir
func New(dir string) (*Store, error) {
	for _, sub := range []string{GuildsDir, StateDir, CooldownsDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), dirPerm); err != nil {
			return nil, fmt.Errorf(ErrMsgCreateDirFailed, err)
		}
	}
	return &Store{dir: dir, locks: concurrency.NewLockManager()}, nil
}

// Ping checks that the data directory is still reachable
func (s *Store) Ping(_ context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}

// Close is a no-op; every write is flushed before it returns
func (s *Store) Close() {}

func (s *Store) path(sub, id string) (string, error) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, ErrMsgInvalidID, id)
	}
	return filepath.Join(s.dir, sub, id+FileExt), nil
}

// GetGuild loads one guild's settings
func (s *Store) GetGuild(_ context.Context, guildID string) (*domain.GuildConfig, error) {
	path, err := s.path(GuildsDir, guildID)
	if err != nil {
		return nil, err
	}
	mu := s.locks.GetLock(concurrency.Key(GuildsDir, guildID))
	mu.Lock()
	defer mu.Unlock()

	var cfg domain.GuildConfig
	found, err := readJSON(path, &cfg)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", domain.ErrGuildNotFound, guildID)
	}
	return &cfg, nil
}

// ListGuilds loads every guild file, skipping unreadable ones
func (s *Store) ListGuilds(ctx context.Context) ([]domain.GuildConfig, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, GuildsDir))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListFailed, err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, FileExt) || strings.HasPrefix(name, ".") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, FileExt))
	}
	sort.Strings(ids)

	guilds := make([]domain.GuildConfig, 0, len(ids))
	for _, id := range ids {
		cfg, err := s.GetGuild(ctx, id)
		if err != nil {
			slog.Default().Warn(LogMsgSkippingCorruptGuild, "guild_id", id, "error", err)
			continue
		}
		guilds = append(guilds, *cfg)
	}
	return guilds, nil
}

// SaveGuild replaces the guild's settings file
func (s *Store) SaveGuild(_ context.Context, cfg *domain.GuildConfig) error {
	path, err := s.path(GuildsDir, cfg.GuildID)
	if err != nil {
		return err
	}
	mu := s.locks.GetLock(concurrency.Key(GuildsDir, cfg.GuildID))
	mu.Lock()
	defer mu.Unlock()

	return writeJSON(path, cfg)
}

// DeleteGuild removes the guild's settings and alert state
func (s *Store) DeleteGuild(_ context.Context, guildID string) error {
	for _, sub := range []string{GuildsDir, StateDir} {
		path, err := s.path(sub, guildID)
		if err != nil {
			return err
		}
		mu := s.locks.GetLock(concurrency.Key(sub, guildID))
		mu.Lock()
		err = os.Remove(path)
		mu.Unlock()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf(ErrMsgWriteFailed, path, err)
		}
	}
	return nil
}

// UpdateServerCursor rewrites only the rotation cursor of one server
func (s *Store) UpdateServerCursor(ctx context.Context, guildID, serverID string, cursor int) error {
	return s.updateServer(guildID, serverID, func(srv *domain.ServerConfig) {
		srv.Display.RotationCursor = cursor
	})
}

// UpdateServerMessage rewrites only the status message ID of one server
func (s *Store) UpdateServerMessage(ctx context.Context, guildID, serverID, messageID string) error {
	return s.updateServer(guildID, serverID, func(srv *domain.ServerConfig) {
		srv.MessageID = messageID
	})
}

// UpdateAlerts rewrites only the guild's alert settings
func (s *Store) UpdateAlerts(ctx context.Context, guildID string, alerts domain.AlertConfig) error {
	return s.updateGuild(guildID, func(cfg *domain.GuildConfig) error {
		cfg.Alerts = alerts
		return nil
	})
}

func (s *Store) updateServer(guildID, serverID string, mutate func(*domain.ServerConfig)) error {
	return s.updateGuild(guildID, func(cfg *domain.GuildConfig) error {
		for i := range cfg.Servers {
			if cfg.Servers[i].ID == serverID {
				mutate(&cfg.Servers[i])
				return nil
			}
		}
		return fmt.Errorf("%w: %s", domain.ErrServerNotFound, serverID)
	})
}

// updateGuild re-reads the stored guild under its file lock, so a narrow
// update always starts from the latest version on disk
func (s *Store) updateGuild(guildID string, mutate func(*domain.GuildConfig) error) error {
	path, err := s.path(GuildsDir, guildID)
	if err != nil {
		return err
	}
	mu := s.locks.GetLock(concurrency.Key(GuildsDir, guildID))
	mu.Lock()
	defer mu.Unlock()

	var cfg domain.GuildConfig
	found, err := readJSON(path, &cfg)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", domain.ErrGuildNotFound, guildID)
	}
	if err := mutate(&cfg); err != nil {
		return err
	}
	return writeJSON(path, &cfg)
}

// GetAlertState returns nil when the server has no stored state
func (s *Store) GetAlertState(_ context.Context, guildID, serverID string) (*domain.AlertState, error) {
	path, err := s.path(StateDir, guildID)
	if err != nil {
		return nil, err
	}
	mu := s.locks.GetLock(concurrency.Key(StateDir, guildID))
	mu.Lock()
	defer mu.Unlock()

	var state guildState
	if _, err := readJSON(path, &state); err != nil {
		return nil, err
	}
	st, ok := state.Servers[serverID]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

// SaveAlertState replaces the state of one guild+server
func (s *Store) SaveAlertState(_ context.Context, st domain.AlertState) error {
	path, err := s.path(StateDir, st.GuildID)
	if err != nil {
		return err
	}
	mu := s.locks.GetLock(concurrency.Key(StateDir, st.GuildID))
	mu.Lock()
	defer mu.Unlock()

	var state guildState
	if _, err := readJSON(path, &state); err != nil {
		return err
	}
	if state.Servers == nil {
		state.Servers = make(map[string]domain.AlertState)
	}
	if st.Crops == nil {
		st.Crops = []string{}
	}
	state.Servers[st.ServerID] = st
	return writeJSON(path, &state)
}

// GetLastCooldown returns nil when the action never ran for the scope
func (s *Store) GetLastCooldown(_ context.Context, scopeID, action string) (*time.Time, error) {
	path, err := s.path(CooldownsDir, scopeID)
	if err != nil {
		return nil, err
	}
	mu := s.locks.GetLock(concurrency.Key(CooldownsDir, scopeID))
	mu.Lock()
	defer mu.Unlock()

	var stamps map[string]time.Time
	if _, err := readJSON(path, &stamps); err != nil {
		return nil, err
	}
	ts, ok := stamps[action]
	if !ok {
		return nil, nil
	}
	return &ts, nil
}

// UpdateCooldown records the last use of an action
func (s *Store) UpdateCooldown(_ context.Context, scopeID, action string, timestamp time.Time) error {
	return s.editCooldowns(scopeID, func(stamps map[string]time.Time) {
		stamps[action] = timestamp
	})
}

// DeleteCooldown clears the cooldown of an action
func (s *Store) DeleteCooldown(_ context.Context, scopeID, action string) error {
	return s.editCooldowns(scopeID, func(stamps map[string]time.Time) {
		delete(stamps, action)
	})
}

func (s *Store) editCooldowns(scopeID string, edit func(map[string]time.Time)) error {
	path, err := s.path(CooldownsDir, scopeID)
	if err != nil {
		return err
	}
	mu := s.locks.GetLock(concurrency.Key(CooldownsDir, scopeID))
	mu.Lock()
	defer mu.Unlock()

	stamps := make(map[string]time.Time)
	if _, err := readJSON(path, &stamps); err != nil {
		return err
	}
	if stamps == nil {
		stamps = make(map[string]time.Time)
	}
	edit(stamps)
	return writeJSON(path, stamps)
}
