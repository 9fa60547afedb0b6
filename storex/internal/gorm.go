// Package internal contains the GORM adapter backing storex.
package internal

import (
	"context"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/limekit/lime/core/errors"
	"github.com/limekit/lime/core/log"
)

// Options mirrors storex.Options for the adapter.
type Options struct {
	Driver          string
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	Logger          log.Logger
}

// GORMStore wraps a *gorm.DB with lifecycle operations.
type GORMStore struct {
	db     *gorm.DB
	logger log.Logger
}

// Open connects and configures the pool.
func Open(opts Options) (*GORMStore, error) {
	if opts.Driver == "" {
		return nil, errors.New(errors.CodeInvalidArgument, "database driver is required")
	}
	if opts.DSN == "" {
		return nil, errors.New(errors.CodeInvalidArgument, "database DSN is required")
	}

	dialector, err := dialectorFor(opts.Driver, opts.DSN)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(errors.CodeUnavailable, "storex.Open", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, "storex.Open", err)
	}
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	opts.Logger.Info("database connection opened",
		log.Str("driver", opts.Driver),
		log.Int("max_idle", opts.MaxIdleConns),
		log.Int("max_open", opts.MaxOpenConns),
	)

	return &GORMStore{db: db, logger: opts.Logger}, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, errors.Newf(errors.CodeInvalidArgument, "unsupported database driver %q", driver)
	}
}

// Ping checks the connection.
func (s *GORMStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(errors.CodeInternal, "storex.Ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(errors.CodeUnavailable, "storex.Ping", err)
	}
	return nil
}

// Close releases the underlying connections.
func (s *GORMStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(errors.CodeInternal, "storex.Close", err)
	}
	if err := sqlDB.Close(); err != nil {
		return errors.Wrap(errors.CodeInternal, "storex.Close", err)
	}
	s.logger.Info("database connection closed")
	return nil
}

// DB returns the GORM handle.
func (s *GORMStore) DB() *gorm.DB {
	return s.db
}
