package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/osse101/FarmBot_Go/internal/bootstrap"
	"github.com/osse101/FarmBot_Go/internal/config"
	"github.com/osse101/FarmBot_Go/internal/settings"
)

const seedTimeout = time.Minute

type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Import guild settings from a YAML seed file (DATA_DIR or DATABASE_URL)"
}

func (c *SeedCommand) Run(args []string) error {
	if len(args) < 1 {
		return errors.New("seed file required")
	}

	dataDir := os.Getenv(config.KeyDataDir)
	if dataDir == "" {
		dataDir = config.DefaultDataDir
	}
	cfg := &config.Config{
		DataDir:     dataDir,
		DatabaseURL: os.Getenv(envDatabaseURL),
		DBMaxConns:  2,
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	storage, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer storage.Close()

	PrintHeader("Seeding guilds from " + args[0])
	n, err := settings.NewService(storage.Store).Seed(ctx, args[0])
	if err != nil {
		return err
	}
	if n == 0 {
		PrintWarning("Every guild in the file already has settings")
		return nil
	}
	PrintSuccess("Seeded %d guild(s)", n)
	return nil
}

type ValidateSeedCommand struct{}

func (c *ValidateSeedCommand) Name() string {
	return "validate-seed"
}

func (c *ValidateSeedCommand) Description() string {
	return "Check a YAML seed file without writing anything"
}

func (c *ValidateSeedCommand) Run(args []string) error {
	if len(args) < 1 {
		return errors.New("seed file required")
	}

	guilds, err := settings.LoadSeedFile(args[0])
	if err != nil {
		return err
	}

	PrintHeader("Validating " + args[0])
	failed := 0
	for i := range guilds {
		g := &guilds[i]
		if _, err := settings.Upgrade(g); err != nil {
			PrintError("guild %s: %v", g.GuildID, err)
			failed++
			continue
		}
		if err := settings.Validate(g); err != nil {
			PrintError("guild %s: %s", g.GuildID, settings.FormatValidationError(err))
			failed++
			continue
		}
		PrintSuccess("guild %s: %d server(s)", g.GuildID, len(g.Servers))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d guild(s) invalid", failed, len(guilds))
	}
	return nil
}
