// Package storex provides the storage collaborator constructed through the locator.
//
// Overview:
//   - Responsibility: Open and manage GORM-backed database handles
//   - Key Types: Store interface, Options for connection settings
//   - Concurrency Model: The returned *gorm.DB is safe for concurrent use
//   - Error Semantics: Coded errors for configuration problems, wrapped driver errors otherwise
//   - Performance Notes: Connection pooling configured from Options
//
// Usage:
//
//	store, err := storex.Open(storex.Options{Driver: "sqlite", DSN: "file:app.db"})
//	defer store.Close()
//	err = store.Ping(ctx)
package storex

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/limekit/lime/core/log"
	"github.com/limekit/lime/storex/internal"
)

// Store is a storage backend handle.
type Store interface {
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connections.
	Close() error

	// DB returns the GORM handle.
	DB() *gorm.DB
}

// Options configures a database connection.
type Options struct {
	Driver          string        // "sqlite", "mysql", or "postgres"
	DSN             string        // Driver-specific connection string
	MaxIdleConns    int           // Idle pool size (default: 10)
	MaxOpenConns    int           // Open connection limit (default: 100)
	ConnMaxLifetime time.Duration // Connection recycling age (default: 1h)
	Logger          log.Logger    // Logger for connection lifecycle events
}

// Open establishes a database connection and configures its pool.
func Open(opts Options) (Store, error) {
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 10
	}
	if opts.MaxOpenConns == 0 {
		opts.MaxOpenConns = 100
	}
	if opts.ConnMaxLifetime == 0 {
		opts.ConnMaxLifetime = time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = log.Nop()
	}

	return internal.Open(internal.Options{
		Driver:          opts.Driver,
		DSN:             opts.DSN,
		MaxIdleConns:    opts.MaxIdleConns,
		MaxOpenConns:    opts.MaxOpenConns,
		ConnMaxLifetime: opts.ConnMaxLifetime,
		Logger:          opts.Logger,
	})
}
