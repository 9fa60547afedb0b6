// Package internal implements configx sources, merging, and binding.
package internal

import (
	"reflect"
	"strconv"
	"time"

	"github.com/limekit/lime/core/errors"
)

// BindStruct decodes a snapshot into target using `conf` tags for key
// names and `default` tags for fallback values. Nested structs are
// walked recursively; untagged fields are ignored.
func BindStruct(snapshot map[string]string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return errors.Newf(errors.CodeInvalidArgument, "bind target must be a struct pointer, got %T", target)
	}
	return bindFields(snapshot, rv.Elem())
}

func bindFields(snapshot map[string]string, structValue reflect.Value) error {
	structType := structValue.Type()

	for i := 0; i < structValue.NumField(); i++ {
		field := structValue.Field(i)
		sf := structType.Field(i)

		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct && field.Type() != reflect.TypeOf(time.Time{}) {
			if err := bindFields(snapshot, field); err != nil {
				return errors.Wrap(errors.CodeInvalidArgument, "configx.Bind "+sf.Name, err)
			}
			continue
		}

		key := sf.Tag.Get("conf")
		if key == "" {
			continue
		}

		value, ok := snapshot[key]
		if !ok {
			value = sf.Tag.Get("default")
		}
		if value == "" {
			continue
		}

		if err := setField(field, value); err != nil {
			return errors.Wrap(errors.CodeInvalidArgument, "configx.Bind "+sf.Name, err)
		}
	}
	return nil
}

func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return errors.Newf(errors.CodeInvalidArgument, "unsupported field kind %s", field.Kind())
	}
	return nil
}
