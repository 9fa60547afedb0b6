// Package objectx provides the configurable base entity.
package objectx

import (
	"github.com/limekit/lime/core/errors"
)

// Effect selects how a directive moves a config value into its field.
type Effect int

const (
	// EffectAssign overwrites the bound field with the config value.
	EffectAssign Effect = iota
	// EffectMerge unions a map config value with the field's current
	// map value; config keys win on collision.
	EffectMerge
)

// Directive binds one config key to one field of a concrete type.
// Instead of resolving field names through reflection at apply time,
// each directive carries setter closures bound to the concrete field;
// the dispatch table is built once, in the constructor.
type Directive struct {
	Field  string // Config key and logical field name
	Alias  string // Alternate config key; assign reads and writes through it when set
	Effect Effect

	// Assign overwrites the bound field. Required for EffectAssign.
	Assign func(v any)

	// Current returns the field's present map value. Required for EffectMerge.
	Current func() map[string]any

	// Replace stores the merged map back into the field. Required for EffectMerge.
	Replace func(m map[string]any)
}

// AssignTo declares an assign directive for the named field.
func AssignTo(field string, set func(v any)) Directive {
	return Directive{Field: field, Effect: EffectAssign, Assign: set}
}

// AssignAs declares an assign directive whose config key differs from
// the logical field name. The value is read from cfg[alias], and the
// directive also fires when only cfg[field] is present.
func AssignAs(field, alias string, set func(v any)) Directive {
	return Directive{Field: field, Alias: alias, Effect: EffectAssign, Assign: set}
}

// MergeInto declares a merge directive for the named map field.
func MergeInto(field string, current func() map[string]any, replace func(m map[string]any)) Directive {
	return Directive{Field: field, Effect: EffectMerge, Current: current, Replace: replace}
}

// mergeTag is the literal key the presence check probes for merge
// directives; it occupies the same slot an assign alias would.
const mergeTag = "merge"

// key returns the config key an assign directive reads from.
func (d Directive) key() string {
	if d.Alias != "" {
		return d.Alias
	}
	return d.Field
}

// lookupKey returns the second key probed by the presence check.
func (d Directive) lookupKey() string {
	if d.Effect == EffectMerge {
		return mergeTag
	}
	return d.key()
}

// validate checks that the directive carries the closures its effect needs.
func (d Directive) validate() error {
	if d.Field == "" {
		return errors.New(errors.CodeInvalidArgument, "directive has no field name")
	}
	switch d.Effect {
	case EffectAssign:
		if d.Assign == nil {
			return errors.Newf(errors.CodeInvalidArgument, "assign directive %q has no setter", d.Field)
		}
	case EffectMerge:
		if d.Current == nil || d.Replace == nil {
			return errors.Newf(errors.CodeInvalidArgument, "merge directive %q needs Current and Replace", d.Field)
		}
	default:
		return errors.Newf(errors.CodeInvalidArgument, "directive %q has unknown effect %d", d.Field, d.Effect)
	}
	return nil
}

// apply runs one directive against the config.
//
// The presence check accepts either the field name or the directive's
// second key (the alias for assigns, the literal merge tag for merges).
// The two effects read asymmetrically: merge reads the field key while
// assign reads the alias key.
func (d Directive) apply(cfg Config) error {
	if !cfg.Has(d.Field) && !cfg.Has(d.lookupKey()) {
		return nil
	}

	if d.Effect == EffectMerge {
		supplied, ok := asMap(cfg[d.Field])
		if !ok {
			if !cfg.Has(d.Field) {
				// Fired via the merge tag alone; there is no field
				// value to merge.
				return nil
			}
			return errors.Newf(errors.CodeInvalidArgument,
				"merge directive %q needs a map config value, got %T", d.Field, cfg[d.Field])
		}
		d.Replace(union(supplied, d.Current()))
		return nil
	}

	d.Assign(cfg[d.key()])
	return nil
}

// asMap views a config value as a plain map. Nested maps arrive either
// as map[string]any or as Config, depending on how the caller wrote
// the literal.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Config:
		return m, true
	}
	return nil, false
}

// union combines two maps with left-operand keys winning on collision.
func union(left, right map[string]any) map[string]any {
	out := make(map[string]any, len(left)+len(right))
	for k, v := range right {
		out[k] = v
	}
	for k, v := range left {
		out[k] = v
	}
	return out
}
