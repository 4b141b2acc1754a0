package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreviewItem(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"nil", nil, "null"},
		{"undefined", Undefined{}, "undefined"},
		{"string quoted", "abc", "'abc'"},
		{"number", 7, "7"},
		{"bool", false, "false"},
		{"slice summarized", []any{1, 2, 3}, "Array(3)"},
		{"map summarized", map[string]any{"a": 1}, "{...}"},
		{"struct summarized", point{}, "{...}"},
		{"struct pointer summarized", &point{}, "{...}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, previewItem(tt.v))
		})
	}
}

func TestPreviewProperty(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"nil", nil, "null"},
		{"short string", "short", "'short'"},
		{"long string truncated", "abcdefghijklmnopqrstuvwxyz", "'abcdefghijklmnopqrst...'"},
		{"exactly at limit", "12345678901234567890", "'12345678901234567890'"},
		{"function value", Function{Name: "f"}, "[Function]"},
		{"go func", func() {}, "[Function]"},
		{"nested slice", []int{1, 2}, "Array(2)"},
		{"nested map", map[string]any{}, "{...}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, previewProperty(tt.v))
		})
	}
}

func TestObjectProperties(t *testing.T) {
	props, ctor := objectProperties(point{X: 1, Y: 2})
	assert.Equal(t, "point", ctor)
	assert.Equal(t, []property{{name: "X", value: 1}, {name: "Y", value: 2}}, props)

	props, ctor = objectProperties(map[string]any{"z": 3, "a": 1})
	assert.Equal(t, "", ctor)
	assert.Equal(t, []property{{name: "a", value: 1}, {name: "z", value: 3}}, props)
}

type mixedFields struct {
	Visible int
	hidden  string
}

func TestObjectPropertiesSkipsUnexported(t *testing.T) {
	props, _ := objectProperties(mixedFields{Visible: 1, hidden: "x"})
	assert.Equal(t, []property{{name: "Visible", value: 1}}, props)
}

func TestCoerceString(t *testing.T) {
	assert.Equal(t, "null", coerceString(nil))
	assert.Equal(t, "Symbol(s)", coerceString(Symbol{Description: "s"}))
	assert.Equal(t, "42", coerceString(42))
}
