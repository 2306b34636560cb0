package repository

import "context"

// Store is a complete storage backend
type Store interface {
	Guild
	AlertState
	Cooldown

	Ping(ctx context.Context) error
	Close()
}
