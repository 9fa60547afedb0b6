// Package configx loads and merges configuration for lime entities.
//
// Overview:
//   - Responsibility: Merge key-value configuration from env, file, and static sources
//   - Key Types: Source for loading, Manager for merged access and struct binding
//   - Concurrency Model: Manager is safe for concurrent reads after New
//   - Error Semantics: Coded errors for load and binding failures
//   - Performance Notes: Sources load once; the merged snapshot is copied on access
//
// Usage:
//
//	mgr, err := configx.New(ctx, configx.Options{
//	    Logger:  logger,
//	    Sources: []configx.Source{configx.NewEnvSource(configx.EnvOptions{Prefix: "APP_"})},
//	})
//	var cfg AdapterConfig
//	err = mgr.Bind(&cfg)
package configx

import (
	"context"

	"github.com/limekit/lime/configx/internal"
	"github.com/limekit/lime/core/log"
)

// Source loads one configuration snapshot. Implementations must be
// safe for concurrent use.
type Source interface {
	// Load reads the source's current key-value pairs.
	Load(ctx context.Context) (map[string]string, error)
}

// EnvOptions configures an environment variable source.
type EnvOptions struct {
	Prefix    string // Only keys with this prefix are loaded; the prefix is stripped
	Lowercase bool   // Convert keys to lowercase
}

// NewEnvSource creates a source over the process environment.
func NewEnvSource(opts EnvOptions) Source {
	return internal.NewEnvSource(opts.Prefix, opts.Lowercase)
}

// NewStaticSource creates a source over a fixed map, typically for
// tests and defaults.
func NewStaticSource(values map[string]string) Source {
	return internal.NewStaticSource(values)
}

// NewFileSource creates a source over a YAML file of scalar values.
func NewFileSource(path string) Source {
	return internal.NewFileSource(path)
}

// Options configures a Manager.
type Options struct {
	Logger  log.Logger // Logger for load events (default: silent)
	Sources []Source   // Sources in precedence order; later sources win
}

// Manager holds the merged configuration.
type Manager struct {
	impl *internal.Manager
}

// New loads every source and merges the results, later sources taking
// precedence. Empty values never override earlier non-empty ones.
func New(ctx context.Context, opts Options) (*Manager, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Nop()
	}

	loaders := make([]internal.Loader, len(opts.Sources))
	for i, s := range opts.Sources {
		loaders[i] = s
	}

	impl, err := internal.NewManager(ctx, logger, loaders)
	if err != nil {
		return nil, err
	}
	return &Manager{impl: impl}, nil
}

// Snapshot returns a copy of the merged configuration.
func (m *Manager) Snapshot() map[string]string {
	return m.impl.Snapshot()
}

// Value returns the value for a key and whether it exists.
func (m *Manager) Value(key string) (string, bool) {
	return m.impl.Value(key)
}

// Bind decodes the merged configuration into target using `conf` and
// `default` struct tags, then validates `validate` tags.
func (m *Manager) Bind(target any) error {
	if err := internal.BindStruct(m.impl.Snapshot(), target); err != nil {
		return err
	}
	return Validate(target)
}
