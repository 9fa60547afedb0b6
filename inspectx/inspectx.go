// Package inspectx provides type introspection for lime entities.
//
// Overview:
//   - Responsibility: Ancestry lookup over embedded structs and method capability queries
//   - Key Types: Ancestry registry with a per-type memo, MethodProvider for table methods
//   - Concurrency Model: Ancestry is safe for concurrent use; first writer wins per type
//   - Error Semantics: Lookups never fail; unknown targets yield empty results
//   - Performance Notes: Ancestor chains are computed once per concrete type
//
// Usage:
//
//	chain := inspectx.Parents(adapter)
//	ok := inspectx.Callable(adapter, "Ping", false)
package inspectx

import (
	"reflect"
	"sync"
)

// LookupFunc computes the ancestor chain for a struct type. It exists as
// a seam so tests can count how often the chain is actually computed.
type LookupFunc func(reflect.Type) []reflect.Type

// Ancestry memoizes ancestor chains per concrete type. The memo is
// purely additive: entries are computed once and never invalidated.
type Ancestry struct {
	mu     sync.Mutex
	cache  map[reflect.Type][]reflect.Type
	lookup LookupFunc
}

// AncestryOption configures an Ancestry.
type AncestryOption func(*Ancestry)

// WithLookup replaces the chain computation primitive.
func WithLookup(fn LookupFunc) AncestryOption {
	return func(a *Ancestry) { a.lookup = fn }
}

// NewAncestry creates an Ancestry registry.
func NewAncestry(opts ...AncestryOption) *Ancestry {
	a := &Ancestry{
		cache:  make(map[reflect.Type][]reflect.Type),
		lookup: embeddedChain,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Parents returns the ordered ancestor chain of v's concrete type:
// embedded struct types, nearest first, walking each embedded chain
// depth-first in field order. The result is memoized; callers must not
// mutate it.
func (a *Ancestry) Parents(v any) []reflect.Type {
	t := concreteType(v)
	if t == nil {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if chain, ok := a.cache[t]; ok {
		return chain
	}
	chain := a.lookup(t)
	a.cache[t] = chain
	return chain
}

// defaultAncestry backs the package-level Parents.
var defaultAncestry = NewAncestry()

// Parents returns the memoized ancestor chain of v's concrete type
// using the process-wide registry.
func Parents(v any) []reflect.Type {
	return defaultAncestry.Parents(v)
}

// embeddedChain walks embedded struct fields recursively, nearest first.
func embeddedChain(t reflect.Type) []reflect.Type {
	if t.Kind() != reflect.Struct {
		return nil
	}
	var chain []reflect.Type
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.Anonymous {
			continue
		}
		ft := field.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() != reflect.Struct {
			continue
		}
		chain = append(chain, ft)
		chain = append(chain, embeddedChain(ft)...)
	}
	return chain
}

func concreteType(v any) reflect.Type {
	if v == nil {
		return nil
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// MethodProvider is implemented by targets that carry dynamically
// registered methods in addition to their compiled method set.
type MethodProvider interface {
	// ProvidesMethod reports whether the named table method exists.
	// Internal methods are only reported when internal is true.
	ProvidesMethod(name string, internal bool) bool
}

// Callable reports whether the named method can be invoked on target.
// Compiled exported methods are always callable; table methods respect
// their internal flag unless internal is true.
func Callable(target any, name string, internal bool) bool {
	if target == nil {
		return false
	}
	if reflect.ValueOf(target).MethodByName(name).IsValid() {
		return true
	}
	if provider, ok := target.(MethodProvider); ok {
		return provider.ProvidesMethod(name, internal)
	}
	return false
}
