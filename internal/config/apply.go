package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/dshills/phylab/internal/logging"
)

// Apply copies the overrides declared for target's type onto its
// exported struct fields. Attribute names match field names
// case-insensitively with underscores ignored, so the conventional
// script spelling max_spikes reaches the field MaxSpikes. Overrides
// with no matching field are skipped with a warning; a value that
// cannot be converted to the field's type is an error. A nil cfg
// applies nothing.
func Apply(cfg *Config, target any) error {
	if cfg == nil {
		return nil
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config: target must be a non-nil struct pointer, got %T", target)
	}
	elem := rv.Elem()
	typeName := elem.Type().Name()

	for attr, val := range cfg.Section(typeName) {
		field, ok := fieldByAttr(elem, attr)
		if !ok {
			logging.Logger.Warn().
				Str("type", typeName).
				Str("attr", attr).
				Msg("config override has no matching field")
			continue
		}
		if err := setField(field, val); err != nil {
			return fmt.Errorf("config: %s.%s: %w", typeName, attr, err)
		}
	}

	return nil
}

// fieldByAttr finds the settable exported field matching an attribute
// name, comparing names lowercased with underscores removed.
func fieldByAttr(elem reflect.Value, attr string) (reflect.Value, bool) {
	want := normalize(attr)
	t := elem.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if normalize(f.Name) == want {
			return elem.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func normalize(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}

// setField assigns a script value to a struct field, converting between
// the numeric representations the Lua bridge produces.
func setField(field reflect.Value, val any) error {
	if val == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}

	switch field.Kind() {
	case reflect.Bool:
		b, ok := val.(bool)
		if !ok {
			return typeError("bool", val)
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch n := val.(type) {
		case int64:
			field.SetInt(n)
		case float64:
			field.SetInt(int64(n))
		default:
			return typeError("integer", val)
		}
	case reflect.Float32, reflect.Float64:
		switch n := val.(type) {
		case int64:
			field.SetFloat(float64(n))
		case float64:
			field.SetFloat(n)
		default:
			return typeError("float", val)
		}
	case reflect.String:
		s, ok := val.(string)
		if !ok {
			return typeError("string", val)
		}
		field.SetString(s)
	default:
		v := reflect.ValueOf(val)
		if !v.Type().AssignableTo(field.Type()) {
			return typeError(field.Type().String(), val)
		}
		field.Set(v)
	}

	return nil
}

func typeError(expected string, val any) error {
	return fmt.Errorf("expected %s, got %T", expected, val)
}
