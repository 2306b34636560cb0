package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/osse101/FarmBot_Go/internal/concurrency"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

// Service loads, upgrades and edits guild settings
type Service struct {
	repo  repository.Guild
	locks *concurrency.LockManager
}

// NewService creates a settings service on top of a guild repository
func NewService(repo repository.Guild) *Service {
	return &Service{repo: repo, locks: concurrency.NewLockManager()}
}

// Load returns the upgraded and validated settings of one guild.
// An upgraded blob is written back so the migration runs once.
func (s *Service) Load(ctx context.Context, guildID string) (*domain.GuildConfig, error) {
	cfg, err := s.repo.GetGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if err := s.normalize(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// List returns every guild with valid settings. Invalid guilds are logged
// and skipped so one broken blob never stops polling for the rest.
func (s *Service) List(ctx context.Context) ([]domain.GuildConfig, error) {
	guilds, err := s.repo.ListGuilds(ctx)
	if err != nil {
		return nil, err
	}

	valid := guilds[:0]
	for i := range guilds {
		if err := s.normalize(ctx, &guilds[i]); err != nil {
			logger.FromContext(ctx).Warn(LogMsgSkippingGuild, "guild_id", guilds[i].GuildID, "error", err)
			continue
		}
		valid = append(valid, guilds[i])
	}
	return valid, nil
}

func (s *Service) normalize(ctx context.Context, cfg *domain.GuildConfig) error {
	changed, err := Upgrade(cfg)
	if err != nil {
		return err
	}
	if err := Validate(cfg); err != nil {
		return err
	}
	if changed {
		if err := s.writeBack(ctx, cfg); err != nil {
			return fmt.Errorf(ErrMsgSaveSettingsFailed, err)
		}
	}
	return nil
}

// writeBack stores an upgraded blob. Pollers update the rotation cursor and
// message ID without going through the service, so those are taken from a
// fresh read instead of the copy that was upgraded.
func (s *Service) writeBack(ctx context.Context, cfg *domain.GuildConfig) error {
	current, err := s.repo.GetGuild(ctx, cfg.GuildID)
	if err != nil {
		return err
	}
	for i := range cfg.Servers {
		srv := &cfg.Servers[i]
		for _, cur := range current.Servers {
			if cur.ID == srv.ID {
				srv.Display.RotationCursor = max(cur.Display.RotationCursor, 0)
				srv.MessageID = cur.MessageID
				break
			}
		}
	}
	return s.repo.SaveGuild(ctx, cfg)
}

// Save upgrades, validates and stores a guild blob
func (s *Service) Save(ctx context.Context, cfg *domain.GuildConfig) error {
	if _, err := Upgrade(cfg); err != nil {
		return err
	}
	if err := Validate(cfg); err != nil {
		return err
	}

	mu := s.locks.GetLock(cfg.GuildID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.repo.SaveGuild(ctx, cfg); err != nil {
		return fmt.Errorf(ErrMsgSaveSettingsFailed, err)
	}
	return nil
}

// Subscribe adds a user to the guild's demand alert DM list
func (s *Service) Subscribe(ctx context.Context, guildID, userID string) error {
	return s.editSubscribers(ctx, guildID, func(subs []string) ([]string, error) {
		if slices.Contains(subs, userID) {
			return nil, domain.ErrAlreadySubscribed
		}
		return append(subs, userID), nil
	})
}

// Unsubscribe removes a user from the guild's demand alert DM list
func (s *Service) Unsubscribe(ctx context.Context, guildID, userID string) error {
	return s.editSubscribers(ctx, guildID, func(subs []string) ([]string, error) {
		idx := slices.Index(subs, userID)
		if idx < 0 {
			return nil, domain.ErrNotSubscribed
		}
		return slices.Delete(subs, idx, idx+1), nil
	})
}

// editSubscribers writes the alert settings only, leaving the per-server
// state owned by the pollers untouched
func (s *Service) editSubscribers(ctx context.Context, guildID string, edit func([]string) ([]string, error)) error {
	mu := s.locks.GetLock(guildID)
	mu.Lock()
	defer mu.Unlock()

	cfg, err := s.Load(ctx, guildID)
	if err != nil {
		return err
	}

	subs, err := edit(slices.Clone(cfg.Alerts.Subscribers))
	if err != nil {
		return err
	}
	alerts := cfg.Alerts
	alerts.Subscribers = subs

	if err := s.repo.UpdateAlerts(ctx, guildID, alerts); err != nil {
		return fmt.Errorf(ErrMsgSaveSettingsFailed, err)
	}
	logger.FromContext(ctx).Info(LogMsgSubscribersChanged, "guild_id", guildID, "subscribers", len(subs))
	return nil
}

// Seed stores guilds from a YAML seed file. Guilds that already have
// settings are left alone. It returns the number of guilds written.
func (s *Service) Seed(ctx context.Context, path string) (int, error) {
	guilds, err := LoadSeedFile(path)
	if err != nil {
		return 0, err
	}

	written := 0
	for i := range guilds {
		cfg := &guilds[i]
		_, err := s.repo.GetGuild(ctx, cfg.GuildID)
		switch {
		case err == nil:
			slog.Default().Info(LogMsgSeedGuildExists, "guild_id", cfg.GuildID)
			continue
		case !errors.Is(err, domain.ErrGuildNotFound):
			return written, err
		}

		if err := s.Save(ctx, cfg); err != nil {
			return written, err
		}
		written++
		slog.Default().Info(LogMsgSeededGuild, "guild_id", cfg.GuildID, "servers", len(cfg.Servers))
	}
	return written, nil
}
