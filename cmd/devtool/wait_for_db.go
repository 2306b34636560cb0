package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	waitMaxRetries    = 30
	waitRetryInterval = 2 * time.Second
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for DATABASE_URL to accept connections (with retries)"
}

func (c *WaitForDBCommand) Run(args []string) error {
	url, err := databaseURL()
	if err != nil {
		return err
	}
	PrintHeader("Waiting for database...")

	for i := 0; i < waitMaxRetries; i++ {
		if err = ping(url); err == nil {
			PrintSuccess("Database is ready")
			return nil
		}
		fmt.Printf("Database not ready (%d/%d): %v\n", i+1, waitMaxRetries, err)
		time.Sleep(waitRetryInterval)
	}
	return fmt.Errorf("database not ready after %d attempts: %w", waitMaxRetries, err)
}

func ping(url string) error {
	ctx, cancel := context.WithTimeout(context.Background(), waitRetryInterval)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return err
	}
	defer pool.Close()
	return pool.Ping(ctx)
}
