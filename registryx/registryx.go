// Package registryx provides the locator entities resolve collaborators through.
//
// Overview:
//   - Responsibility: Map registered names to constructor factories
//   - Key Types: Locator holding factories, Factory constructing one instance
//   - Concurrency Model: Locator is safe for concurrent use
//   - Error Semantics: Unknown names resolve to CodeNotFound
//   - Performance Notes: Resolution is a single map lookup under RLock
//
// Usage:
//
//	loc := registryx.New()
//	loc.Register("adapter", func(cfg objectx.Config) (any, error) { return NewAdapter(cfg) })
//	v, err := loc.Resolve("adapter", objectx.Config{"timeout": time.Second})
package registryx

import (
	"sort"
	"sync"

	"github.com/limekit/lime/core/errors"
	"github.com/limekit/lime/objectx"
)

// Factory constructs one instance from a configuration.
type Factory func(cfg objectx.Config) (any, error)

// Locator resolves registered names to constructed instances. It
// implements objectx.Locator. Locators are explicit values handed to
// whoever needs them rather than process-global state.
type Locator struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// New creates an empty Locator.
func New() *Locator {
	return &Locator{factories: make(map[string]Factory)}
}

// Register associates a name with a factory. Re-registering a name is
// an error; unregister first to replace a factory.
func (l *Locator) Register(name string, factory Factory) error {
	if name == "" {
		return errors.New(errors.CodeInvalidArgument, "factory name is empty")
	}
	if factory == nil {
		return errors.Newf(errors.CodeInvalidArgument, "factory %q is nil", name)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.factories[name]; exists {
		return errors.Newf(errors.CodeInvalidArgument, "factory %q already registered", name)
	}
	l.factories[name] = factory
	return nil
}

// Unregister removes a factory. Removing an unknown name is a no-op.
func (l *Locator) Unregister(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.factories, name)
}

// Has reports whether a factory is registered under the name.
func (l *Locator) Has(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.factories[name]
	return ok
}

// Names returns the registered factory names, sorted.
func (l *Locator) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.factories))
	for name := range l.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve constructs an instance from the factory registered under
// name, passing cfg through to the constructor.
func (l *Locator) Resolve(name string, cfg objectx.Config) (any, error) {
	l.mu.RLock()
	factory, ok := l.factories[name]
	l.mu.RUnlock()
	if !ok {
		return nil, errors.Newf(errors.CodeNotFound, "no factory registered for %q", name)
	}

	// Factory errors pass through unchanged; they already carry codes.
	return factory(cfg)
}
