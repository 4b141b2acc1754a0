package display

import (
	"fmt"
	"reflect"
	"sort"
)

const previewStringLimit = 20

// property is one own-enumerable property of an object for previewing.
type property struct {
	name  string
	value any
}

// objectProperties returns the own-enumerable properties of v and its
// constructor name. Struct fields keep declaration order; map keys are
// sorted for deterministic previews.
func objectProperties(v any) ([]property, string) {
	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		byKey := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := coerceString(iter.Key().Interface())
			keys = append(keys, k)
			byKey[k] = iter.Value().Interface()
		}
		sort.Strings(keys)
		props := make([]property, 0, len(keys))
		for _, k := range keys {
			props = append(props, property{name: k, value: byKey[k]})
		}
		return props, ""
	case reflect.Struct:
		t := rv.Type()
		var props []property
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			props = append(props, property{name: field.Name, value: rv.Field(i).Interface()})
		}
		return props, t.Name()
	}
	return nil, ""
}

// previewItem renders one container element for a truncated preview.
func previewItem(v any) string {
	if v == nil {
		return "null"
	}
	switch item := v.(type) {
	case Undefined, *Undefined:
		return "undefined"
	case string:
		return "'" + item + "'"
	}

	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("Array(%d)", rv.Len())
	case reflect.Map, reflect.Struct:
		return "{...}"
	case reflect.Ptr:
		if rv.Elem().Kind() == reflect.Struct {
			return "{...}"
		}
	}
	return coerceString(v)
}

// previewProperty renders one object property value. Long strings are
// truncated, nested containers are summarized, functions are opaque.
func previewProperty(v any) string {
	if v == nil {
		return "null"
	}
	switch item := v.(type) {
	case Undefined, *Undefined:
		return "undefined"
	case string:
		if len(item) > previewStringLimit {
			return "'" + item[:previewStringLimit] + "...'"
		}
		return "'" + item + "'"
	case Function, *Function:
		return "[Function]"
	}

	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Func:
		return "[Function]"
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("Array(%d)", rv.Len())
	case reflect.Map, reflect.Struct:
		return "{...}"
	case reflect.Ptr:
		if rv.Elem().Kind() == reflect.Struct {
			return "{...}"
		}
	}
	return coerceString(v)
}

// coerceString is the generic string coercion at the bottom of the
// classifier.
func coerceString(v any) string {
	if v == nil {
		return "null"
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}
