package datatable

import (
	"reflect"
	"strings"
)

// Fielder is implemented by records that expose their values by column key.
type Fielder interface {
	Field(key string) (any, bool)
}

// FieldValue returns the value stored under key in rec.
//
// Lookup order: rec implements Fielder; rec is a map with string keys;
// rec is a struct (or pointer to one) with a field tagged `table:"key"` or
// named key (case-insensitive). The boolean is false when no value exists
// or the value is missing (see package docs).
func FieldValue(rec any, key string) (any, bool) {
	if f, ok := rec.(Fielder); ok {
		v, ok := f.Field(key)
		if !ok || isMissing(v) {
			return nil, false
		}
		return v, true
	}

	if m, ok := rec.(map[string]any); ok {
		v, ok := m[key]
		if !ok || isMissing(v) {
			return nil, false
		}
		return v, true
	}

	rv := indirect(reflect.ValueOf(rec))
	if !rv.IsValid() {
		return nil, false
	}

	var fv reflect.Value
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		fv = rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	case reflect.Struct:
		fv = structField(rv, key)
	default:
		return nil, false
	}

	if !fv.IsValid() || !fv.CanInterface() {
		return nil, false
	}
	v := fv.Interface()
	if isMissing(v) {
		return nil, false
	}
	return v, true
}

// structField finds the exported field for key by tag first, then by name.
func structField(rv reflect.Value, key string) reflect.Value {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(sf.Tag.Get("table"), ",")
		if tag == key {
			return rv.Field(i)
		}
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.IsExported() && strings.EqualFold(sf.Name, key) {
			return rv.Field(i)
		}
	}
	return reflect.Value{}
}
