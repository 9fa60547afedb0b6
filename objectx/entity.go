// Package objectx provides the configurable base entity.
package objectx

import (
	"os"
	"reflect"

	"github.com/limekit/lime/core/errors"
	"github.com/limekit/lime/core/log"
	"github.com/limekit/lime/inspectx"
)

// Method is a dynamically registered method on an entity.
type Method func(args ...any) (any, error)

type tableMethod struct {
	fn       Method
	internal bool
}

// Terminator ends the process with a status code. Entities call it
// through Halt; tests swap it for a recording fake so halting an
// entity does not kill the test runner.
type Terminator func(status int)

// Entity is the configurable base embedded by concrete lime types.
// The zero value is usable; Configure establishes the configuration
// and runs initialization.
type Entity struct {
	self       any
	config     Config
	directives []Directive
	methods    map[string]tableMethod
	aliases    map[string]string
	locator    Locator
	logger     log.Logger
	terminate  Terminator
}

// Option adjusts an Entity during Configure.
type Option func(*Entity)

// WithLocator attaches the locator used by Instance.
func WithLocator(l Locator) Option {
	return func(e *Entity) { e.locator = l }
}

// WithLogger attaches the entity's logger.
func WithLogger(logger log.Logger) Option {
	return func(e *Entity) { e.logger = logger }
}

// WithTerminator replaces the process-termination hook.
func WithTerminator(t Terminator) Option {
	return func(e *Entity) { e.terminate = t }
}

// WithAliases sets the short-name map consulted by Instance before
// delegating to the locator.
func WithAliases(aliases map[string]string) Option {
	return func(e *Entity) { e.aliases = aliases }
}

// Configure stores the configuration and, unless the "init" option is
// false, applies the directives immediately. self must be the concrete
// value embedding this Entity; it is what dynamic dispatch and
// introspection operate on.
//
// The stored config is the supplied one merged over {"init": true}.
// Configure is meant to run exactly once, from the concrete
// constructor.
func (e *Entity) Configure(self any, cfg Config, directives ...Directive) error {
	return e.ConfigureWith(self, cfg, directives, nil)
}

// ConfigureWith is Configure with entity options.
func (e *Entity) ConfigureWith(self any, cfg Config, directives []Directive, opts []Option) error {
	for _, d := range directives {
		if err := d.validate(); err != nil {
			return err
		}
	}

	merged := Config{"init": true}
	for k, v := range cfg {
		merged[k] = v
	}

	e.self = self
	e.config = merged
	e.directives = directives
	if e.logger == nil {
		e.logger = log.Nop()
	}
	if e.terminate == nil {
		e.terminate = func(status int) { os.Exit(status) }
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	if run, ok := merged["init"].(bool); ok && !run {
		return nil
	}
	return e.Init()
}

// Init applies the auto-configuration directives in declaration order.
// Configure calls it during construction; it is public only so callers
// that constructed with init=false can run it manually, once.
func (e *Entity) Init() error {
	for _, d := range e.directives {
		if err := d.apply(e.config); err != nil {
			return err
		}
	}
	return nil
}

// Config returns a copy of the stored configuration.
func (e *Entity) Config() Config {
	return e.config.Clone()
}

// Define registers a table method under the given name.
func (e *Entity) Define(name string, fn Method) {
	e.define(name, fn, false)
}

// DefineInternal registers a table method hidden from external
// capability queries.
func (e *Entity) DefineInternal(name string, fn Method) {
	e.define(name, fn, true)
}

func (e *Entity) define(name string, fn Method, internal bool) {
	if e.methods == nil {
		e.methods = make(map[string]tableMethod)
	}
	e.methods[name] = tableMethod{fn: fn, internal: internal}
}

// Invoke dispatches to the named method with the given arguments.
// Table methods take precedence; otherwise the call falls through to
// reflection over the concrete type's exported methods. Unknown names
// return CodeUnimplemented.
func (e *Entity) Invoke(name string, args ...any) (any, error) {
	if m, ok := e.methods[name]; ok {
		return m.fn(args...)
	}
	if e.self != nil {
		if fn := reflect.ValueOf(e.self).MethodByName(name); fn.IsValid() {
			return callReflected(name, fn, args)
		}
	}
	return nil, errors.Newf(errors.CodeUnimplemented, "no method %q on %s", name, e.targetName())
}

// RespondsTo reports whether the named method is callable. Internal
// table methods are only reported when internal is true; compiled
// exported methods are always reported.
func (e *Entity) RespondsTo(name string, internal bool) bool {
	target := e.self
	if target == nil {
		target = e
	}
	return inspectx.Callable(target, name, internal)
}

// ProvidesMethod implements inspectx.MethodProvider over the method table.
func (e *Entity) ProvidesMethod(name string, internal bool) bool {
	m, ok := e.methods[name]
	if !ok {
		return false
	}
	return internal || !m.internal
}

// Parents returns the memoized ancestor chain of the concrete type.
func (e *Entity) Parents() []reflect.Type {
	if e.self == nil {
		return nil
	}
	return inspectx.Parents(e.self)
}

// Instance resolves nameOrObject into a constructed instance. Strings
// are mapped through the alias table and handed to the locator;
// anything else passes through unchanged.
func (e *Entity) Instance(nameOrObject any, cfg Config) (any, error) {
	name, ok := nameOrObject.(string)
	if !ok {
		return nameOrObject, nil
	}
	if resolved, ok := e.aliases[name]; ok {
		name = resolved
	}
	if e.locator == nil {
		return nil, errors.New(errors.CodeUnavailable, "entity has no locator")
	}
	return e.locator.Resolve(name, cfg)
}

// Halt terminates the process with the given status. Concrete types
// and tests control the effect through WithTerminator.
func (e *Entity) Halt(status int) {
	if e.terminate == nil {
		os.Exit(status)
	}
	e.terminate(status)
}

// Logger returns the entity's logger.
func (e *Entity) Logger() log.Logger {
	if e.logger == nil {
		return log.Nop()
	}
	return e.logger
}

// targetName names the concrete type for errors, logs, and filter keys.
func (e *Entity) targetName() string {
	if e.self == nil {
		return "objectx.Entity"
	}
	t := reflect.TypeOf(e.self)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// callReflected invokes a reflected method, converting arguments and
// splitting a trailing error result.
func callReflected(name string, fn reflect.Value, args []any) (any, error) {
	t := fn.Type()

	fixed := t.NumIn()
	if t.IsVariadic() {
		fixed--
		if len(args) < fixed {
			return nil, errors.Newf(errors.CodeInvalidArgument,
				"method %q wants at least %d args, got %d", name, fixed, len(args))
		}
	} else if len(args) != fixed {
		return nil, errors.Newf(errors.CodeInvalidArgument,
			"method %q wants %d args, got %d", name, fixed, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		want := t.In(min(i, t.NumIn()-1))
		if t.IsVariadic() && i >= fixed {
			want = t.In(t.NumIn() - 1).Elem()
		}
		v, err := coerce(arg, want)
		if err != nil {
			return nil, errors.Wrap(errors.CodeInvalidArgument, "objectx.Invoke", err)
		}
		in[i] = v
	}

	out := fn.Call(in)

	// A trailing error return is split off; remaining values collapse
	// to nil, a single value, or a slice.
	var err error
	if n := len(out); n > 0 && t.Out(n-1) == errType {
		if !out[n-1].IsNil() {
			err = out[n-1].Interface().(error)
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return nil, err
	case 1:
		return out[0].Interface(), err
	default:
		results := make([]any, len(out))
		for i, v := range out {
			results[i] = v.Interface()
		}
		return results, err
	}
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

func coerce(arg any, want reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(want), nil
	}
	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(want) {
		return v, nil
	}
	if v.Type().ConvertibleTo(want) {
		return v.Convert(want), nil
	}
	return reflect.Value{}, errors.Newf(errors.CodeInvalidArgument,
		"cannot use %T as %s", arg, want)
}
