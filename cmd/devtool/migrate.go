package main

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/FarmBot_Go/internal/database"
	"github.com/osse101/FarmBot_Go/internal/database/postgres"
)

const migrateTimeout = 2 * time.Minute

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Apply the embedded database migrations to DATABASE_URL"
}

func (c *MigrateCommand) Run(args []string) error {
	url, err := databaseURL()
	if err != nil {
		return err
	}

	PrintHeader("Migrating database")
	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	pool, err := database.NewPool(ctx, url, 2, time.Minute, time.Hour)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	PrintSuccess("Database schema is up to date")
	return nil
}
