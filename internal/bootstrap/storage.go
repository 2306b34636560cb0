package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FarmBot_Go/internal/concurrency"
	"github.com/osse101/FarmBot_Go/internal/config"
	"github.com/osse101/FarmBot_Go/internal/cooldown"
	"github.com/osse101/FarmBot_Go/internal/database"
	"github.com/osse101/FarmBot_Go/internal/database/filestore"
	"github.com/osse101/FarmBot_Go/internal/database/postgres"
	"github.com/osse101/FarmBot_Go/internal/repository"
	"github.com/osse101/FarmBot_Go/internal/settings"
)

// Storage is the selected persistence backend
type Storage struct {
	Store repository.Store
	// Pool is set only for the PostgreSQL backend
	Pool *pgxpool.Pool
}

// OpenStorage selects PostgreSQL when a database URL is configured and the
// JSON file store otherwise. The PostgreSQL schema is migrated on open.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if !cfg.UsePostgres() {
		store, err := filestore.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgOpenFileStore, err)
		}
		slog.Info(LogMsgStorageFile, "dir", cfg.DataDir)
		return &Storage{Store: store}, nil
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, DBMaxIdleTime, DBMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgConnectDatabase, err)
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf(ErrMsgMigrateDatabase, err)
	}
	slog.Info(LogMsgStoragePostgres, "max_conns", cfg.DBMaxConns)
	return &Storage{Store: postgres.NewStore(pool), Pool: pool}, nil
}

// Cooldowns returns the cooldown service matching the backend. PostgreSQL
// uses advisory locks so several bot processes can share one database.
func (s *Storage) Cooldowns(cfg cooldown.Config) cooldown.Service {
	if s.Pool != nil {
		return cooldown.NewPostgresService(s.Pool, cfg)
	}
	return cooldown.NewService(s.Store, concurrency.NewLockManager(), cfg)
}

// Close releases the backend
func (s *Storage) Close() {
	s.Store.Close()
}

// SeedGuilds imports the guilds of a YAML seed file that are not stored yet
func SeedGuilds(ctx context.Context, svc *settings.Service, path string) error {
	if path == "" {
		return nil
	}
	n, err := svc.Seed(ctx, path)
	if err != nil {
		return fmt.Errorf(ErrMsgSeedGuilds, err)
	}
	if n == 0 {
		slog.Info(LogMsgSeedSkipped, "file", path)
		return nil
	}
	slog.Info(LogMsgGuildsSeeded, "file", path, "count", n)
	return nil
}
