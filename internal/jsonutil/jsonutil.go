// Package jsonutil provides shared helpers for loosely typed data: nested path
// lookup, truthiness, and conversion of decoded documents into typed structs.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// Convert re-encodes a decoded document (typically the map[string]interface{}
// produced by a YAML or JSON decoder) into the typed value out.
func Convert(in interface{}, out interface{}, context string) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return UnmarshalWithContext(data, out, context)
}

// Lookup walks a dotted path ("props.componentId") through nested maps and
// exported struct fields. Struct fields match by json tag first, then by
// case-insensitive field name. Returns false if any segment is missing.
func Lookup(v interface{}, path string) (interface{}, bool) {
	cur := v
	for _, seg := range strings.Split(path, ".") {
		next, ok := field(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// GetOr returns the value at path, or defaultValue if the path is absent.
func GetOr(v interface{}, path string, defaultValue interface{}) interface{} {
	if got, ok := Lookup(v, path); ok {
		return got
	}
	return defaultValue
}

// GetString safely extracts a string value from a map[string]interface{}.
// Returns the value if it's a string, otherwise returns empty string.
func GetString(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

// Truthy reports whether v would count as set: not nil, not false, not a zero
// number, not an empty string. Maps, slices and structs are always truthy.
func Truthy(v interface{}) bool {
	if v == nil {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	case int:
		return val != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	case reflect.Map, reflect.Slice:
		return !rv.IsNil()
	}
	return true
}

func field(v interface{}, name string) (interface{}, bool) {
	if v == nil {
		return nil, false
	}
	if m, ok := v.(map[string]interface{}); ok {
		got, ok := m[name]
		return got, ok
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		got := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !got.IsValid() {
			return nil, false
		}
		return got.Interface(), true
	case reflect.Struct:
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if tag == name || (tag == "" && strings.EqualFold(f.Name, name)) {
				return rv.Field(i).Interface(), true
			}
		}
	}
	return nil, false
}
