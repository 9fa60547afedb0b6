// Package objectx provides the configurable base entity.
package objectx

import (
	"context"

	"github.com/limekit/lime/core/log"
	"github.com/limekit/lime/filterx"
)

// legacyFilters is the registry behind the deprecated per-entity filter
// surface. New code should hold its own filterx.Registry and call it
// directly.
var legacyFilters = filterx.NewRegistry()

// LegacyFilters exposes the registry backing the deprecated surface so
// callers migrating off it can move their chains over.
func LegacyFilters() *filterx.Registry {
	return legacyFilters
}

// ApplyFilter wraps the named method of this entity's concrete type in
// a filter.
//
// Deprecated: use a filterx.Registry directly.
func (e *Entity) ApplyFilter(method string, filter filterx.Filter) {
	e.deprecated("ApplyFilter")
	legacyFilters.Apply(e.targetName(), method, filter)
}

// ClearFilters removes filters applied through ApplyFilter. With no
// method names, every chain of this entity's concrete type is removed.
//
// Deprecated: use a filterx.Registry directly.
func (e *Entity) ClearFilters(methods ...string) {
	e.deprecated("ClearFilters")
	legacyFilters.Clear(e.targetName(), methods...)
}

// RunFiltered executes core wrapped in the chains applied through
// ApplyFilter.
//
// Deprecated: use a filterx.Registry directly.
func (e *Entity) RunFiltered(ctx context.Context, method string, p filterx.Params, core filterx.Next) (any, error) {
	e.deprecated("RunFiltered")
	return legacyFilters.Run(ctx, e.targetName(), method, p, core)
}

func (e *Entity) deprecated(op string) {
	e.Logger().Warn("deprecated filter surface used",
		log.Str("op", op),
		log.Str("target", e.targetName()),
	)
}
