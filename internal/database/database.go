// Package database opens the PostgreSQL pool behind the optional Postgres store.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool opens a pool and pings it before returning. The pool is closed
// again when the ping fails so no background connectors are left running.
func NewPool(ctx context.Context, connString string, maxConns int, maxIdle, maxLife time.Duration) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	cfg.MaxConns = int32(min(max(maxConns, 1), math.MaxInt32))
	cfg.MinConns = min(DefaultMinConnections, cfg.MaxConns)
	cfg.MaxConnLifetime = maxLife
	cfg.MaxConnIdleTime = maxIdle
	if _, ok := cfg.ConnConfig.RuntimeParams[ParamApplicationName]; !ok {
		cfg.ConnConfig.RuntimeParams[ParamApplicationName] = ApplicationName
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Default().Info(LogMsgConnectedToDatabase,
		"host", cfg.ConnConfig.Host,
		"database", cfg.ConnConfig.Database,
		"max_conns", cfg.MaxConns)
	return pool, nil
}
