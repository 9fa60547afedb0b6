// Package objectx provides the configurable base entity.
package objectx

import (
	"reflect"
	"unsafe"

	"github.com/limekit/lime/core/errors"
)

// Snapshot exports the data fields of a concrete entity as a name-to-
// value map, suitable for re-instantiation through Restore. Exported
// and unexported fields are both captured; embedded Entity state,
// nested anonymous structs, and function-typed fields are skipped —
// those are rebuilt by the concrete constructor, not carried as data.
func Snapshot(v any) (map[string]any, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, errors.New(errors.CodeInvalidArgument, "cannot snapshot a nil pointer")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, errors.Newf(errors.CodeInvalidArgument, "cannot snapshot %T", v)
	}
	if !rv.CanAddr() {
		// Unexported fields are read through their address.
		addressable := reflect.New(rv.Type()).Elem()
		addressable.Set(rv)
		rv = addressable
	}

	t := rv.Type()
	fields := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if skipField(sf) {
			continue
		}
		fields[sf.Name] = readField(rv.Field(i))
	}
	return fields, nil
}

// Restore overwrites the named fields of target, which must be a
// pointer to a struct — typically a freshly constructed zero value of
// the original concrete type. Unexported fields are set through their
// address, so restoring works for the same protected state Snapshot
// captures. Unknown field names are rejected.
func Restore(target any, fields map[string]any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return errors.Newf(errors.CodeInvalidArgument, "restore target must be a struct pointer, got %T", target)
	}
	rv = rv.Elem()
	t := rv.Type()

	for name, value := range fields {
		sf, ok := t.FieldByName(name)
		if !ok || len(sf.Index) != 1 {
			return errors.Newf(errors.CodeInvalidArgument, "%s has no field %q", t.Name(), name)
		}
		field := rv.FieldByIndex(sf.Index)
		v, err := coerce(value, field.Type())
		if err != nil {
			return errors.Wrap(errors.CodeInvalidArgument, "objectx.Restore", err)
		}
		writeField(field, v)
	}
	return nil
}

func skipField(sf reflect.StructField) bool {
	if sf.Anonymous {
		return true
	}
	switch sf.Type.Kind() {
	case reflect.Func, reflect.Chan:
		return true
	}
	return sf.Type == reflect.TypeOf(Entity{})
}

// readField reads a field value, going through the field's address for
// unexported fields.
func readField(field reflect.Value) any {
	if field.CanInterface() {
		return field.Interface()
	}
	return reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem().Interface()
}

// writeField sets a field value, going through the field's address for
// unexported fields.
func writeField(field reflect.Value, v reflect.Value) {
	if field.CanSet() {
		field.Set(v)
		return
	}
	reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem().Set(v)
}
