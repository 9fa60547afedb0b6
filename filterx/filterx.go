// Package filterx provides method interception as an explicit middleware chain.
//
// Overview:
//   - Responsibility: Wrap named operations of a target in ordered filter functions
//   - Key Types: Filter and Next for the chain, Registry for per-target chains
//   - Concurrency Model: Registry is safe for concurrent use; Run takes a snapshot
//   - Error Semantics: Filters propagate errors from the core callable unchanged
//   - Performance Notes: Chains are composed per call from a copied slice
//
// Usage:
//
//	reg := filterx.NewRegistry()
//	reg.Apply("adapter", "Fetch", filterx.Logging(logger))
//	result, err := reg.Run(ctx, "adapter", "Fetch", params, core)
package filterx

import (
	"context"
	"sync"
)

// Params carries named arguments through a filter chain.
type Params map[string]any

// Next advances the chain. The innermost Next is the core callable.
type Next func(ctx context.Context, p Params) (any, error)

// Filter wraps an operation. A filter may run code before and after
// calling next, modify params, or short-circuit by not calling next.
type Filter func(ctx context.Context, p Params, next Next) (any, error)

// Invocation identifies the intercepted operation.
type Invocation struct {
	Target string // Target name (usually the concrete type name)
	Method string // Operation name
}

type invocationKey struct{}

// InvocationFrom returns the Invocation for the running chain, if any.
func InvocationFrom(ctx context.Context) (Invocation, bool) {
	inv, ok := ctx.Value(invocationKey{}).(Invocation)
	return inv, ok
}

type chainKey struct {
	target string
	method string
}

// Registry holds filter chains keyed by target and method name.
type Registry struct {
	mu     sync.RWMutex
	chains map[chainKey][]Filter
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{chains: make(map[chainKey][]Filter)}
}

// Apply appends filters to the chain for target.method. Filters run in
// application order: the first applied filter is the outermost wrapper.
func (r *Registry) Apply(target, method string, filters ...Filter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := chainKey{target: target, method: method}
	r.chains[key] = append(r.chains[key], filters...)
}

// Clear removes chains for the target. With no method names every chain
// of the target is removed; otherwise only the named ones.
func (r *Registry) Clear(target string, methods ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(methods) == 0 {
		for key := range r.chains {
			if key.target == target {
				delete(r.chains, key)
			}
		}
		return
	}
	for _, method := range methods {
		delete(r.chains, chainKey{target: target, method: method})
	}
}

// Filters returns a copy of the chain for target.method.
func (r *Registry) Filters(target, method string) []Filter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	chain := r.chains[chainKey{target: target, method: method}]
	out := make([]Filter, len(chain))
	copy(out, chain)
	return out
}

// Run executes core wrapped in the chain registered for target.method.
// With an empty chain core runs directly.
func (r *Registry) Run(ctx context.Context, target, method string, p Params, core Next) (any, error) {
	ctx = context.WithValue(ctx, invocationKey{}, Invocation{Target: target, Method: method})

	chain := r.Filters(target, method)
	next := core
	for i := len(chain) - 1; i >= 0; i-- {
		filter := chain[i]
		inner := next
		next = func(ctx context.Context, p Params) (any, error) {
			return filter(ctx, p, inner)
		}
	}
	return next(ctx, p)
}
