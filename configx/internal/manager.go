// Package internal implements configx sources, merging, and binding.
package internal

import (
	"context"
	"sync"

	"github.com/limekit/lime/core/errors"
	"github.com/limekit/lime/core/log"
)

// Manager merges loaded snapshots and serves reads.
type Manager struct {
	mu       sync.RWMutex
	snapshot map[string]string
}

// NewManager loads every source once and merges the results. Later
// sources win; empty values never override earlier non-empty ones.
func NewManager(ctx context.Context, logger log.Logger, sources []Loader) (*Manager, error) {
	if len(sources) == 0 {
		return nil, errors.New(errors.CodeInvalidArgument, "at least one source is required")
	}

	merged := make(map[string]string)
	for i, source := range sources {
		values, err := source.Load(ctx)
		if err != nil {
			return nil, errors.Wrap(errors.CodeInternal, "configx.New", err)
		}
		for k, v := range values {
			if v == "" {
				continue
			}
			merged[k] = v
		}
		logger.Debug("configuration source loaded",
			log.Int("source", i),
			log.Int("keys", len(values)),
		)
	}

	logger.Info("configuration loaded", log.Int("keys", len(merged)))
	return &Manager{snapshot: merged}, nil
}

// Snapshot returns a copy of the merged configuration.
func (m *Manager) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.snapshot))
	for k, v := range m.snapshot {
		out[k] = v
	}
	return out
}

// Value returns the value for a key and whether it exists.
func (m *Manager) Value(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.snapshot[key]
	return v, ok
}
