// Package objectx provides the configurable base entity every lime
// component is built on.
//
// Overview:
//   - Responsibility: Universal construction convention with declarative auto-configuration
//   - Key Types: Entity base, Config option map, Directive for field binding
//   - Concurrency Model: Configuration happens once, synchronously, during construction;
//     entities are read-only afterwards unless the concrete type says otherwise
//   - Error Semantics: Coded errors (core/errors) for bad directives and unknown methods
//   - Performance Notes: Dynamic dispatch uses an explicit method table before reflection
//
// A concrete type embeds Entity, declares its defaults as ordinary
// fields, and binds selected config keys to those fields with
// directives:
//
//	type Adapter struct {
//	    objectx.Entity
//	    timeout time.Duration
//	    tags    map[string]any
//	}
//
//	func NewAdapter(cfg objectx.Config) (*Adapter, error) {
//	    a := &Adapter{timeout: 5 * time.Second, tags: map[string]any{"tier": "base"}}
//	    err := a.Configure(a, cfg,
//	        objectx.AssignTo("timeout", func(v any) { a.timeout, _ = v.(time.Duration) }),
//	        objectx.MergeInto("tags", func() map[string]any { return a.tags },
//	            func(m map[string]any) { a.tags = m }),
//	    )
//	    return a, err
//	}
package objectx

// Config maps option names to arbitrary values. A Config passed to
// Configure is treated as immutable after construction; the "init" key
// is consumed during construction and controls whether Init runs.
type Config map[string]any

// Clone returns a shallow copy of the config.
func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Has reports whether the key is present.
func (c Config) Has(key string) bool {
	_, ok := c[key]
	return ok
}

// ConfigFromSnapshot converts a merged configx snapshot into a Config.
func ConfigFromSnapshot(snapshot map[string]string) Config {
	cfg := make(Config, len(snapshot))
	for k, v := range snapshot {
		cfg[k] = v
	}
	return cfg
}

// Locator resolves a registered name to a constructed instance. The
// registryx package provides the standard implementation; the
// indirection keeps entities decoupled from any concrete factory.
type Locator interface {
	Resolve(name string, cfg Config) (any, error)
}
