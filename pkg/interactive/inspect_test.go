package interactive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapscript/pkg/display"
	"github.com/leapstack-labs/leapscript/pkg/scope"
)

func inspectScope() *scope.Scope {
	s := scope.New()
	s.Set("count", 42)
	s.Set("title", "hello")
	s.Set("items", []any{1, 2, 3})
	s.Set("config", map[string]any{"debug": true, "level": "info"})
	s.Set("add", display.Function{
		Name:   "add",
		Source: "function add(a, b) { return a + b; }",
	})
	return s
}

func inspectText(t *testing.T, result Inspection) string {
	t.Helper()
	require.True(t, result.Found)
	text, ok := result.Data[display.MimeText].(string)
	require.True(t, ok)
	return text
}

func TestInspectValueTags(t *testing.T) {
	s := inspectScope()
	eval := scope.PathEvaluator{}

	tests := []struct {
		name   string
		code   string
		cursor int
		want   string
	}{
		{"number", "count", 5, "count: number"},
		{"string", "title", 5, "title: string"},
		{"array", "items", 5, "items: Array(3)"},
		{"cursor mid token", "count + 1", 3, "count: number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Inspect(tt.code, tt.cursor, 0, s, eval)
			assert.Equal(t, tt.want, inspectText(t, got))
			assert.Equal(t, strings.Split(tt.want, ":")[0], got.Metadata["token"])
		})
	}
}

func TestInspectObjectProperties(t *testing.T) {
	s := inspectScope()
	got := Inspect("config", 6, 0, s, scope.PathEvaluator{})

	text := inspectText(t, got)
	assert.True(t, strings.HasPrefix(text, "config: object"))
	assert.Contains(t, text, "  debug: boolean")
	assert.Contains(t, text, "  level: string")
}

func TestInspectFunctionSignature(t *testing.T) {
	s := inspectScope()

	got := Inspect("add", 3, 0, s, scope.PathEvaluator{})
	assert.Equal(t, "add: add(a, b)", inspectText(t, got))
}

func TestInspectFunctionDetailIncludesSource(t *testing.T) {
	s := inspectScope()

	got := Inspect("add", 3, 1, s, scope.PathEvaluator{})
	text := inspectText(t, got)
	assert.Contains(t, text, "add: add(a, b)")
	assert.Contains(t, text, "function add(a, b) { return a + b; }")
}

func TestInspectBuiltinFallback(t *testing.T) {
	s := scope.New()

	got := Inspect("console", 7, 0, s, scope.PathEvaluator{})
	require.True(t, got.Found)
	assert.Equal(t, "builtin", got.Metadata["source"])
	assert.Contains(t, got.Data[display.MimeText], "host logging object")
}

func TestInspectNotFound(t *testing.T) {
	s := scope.New()

	got := Inspect("definitelyMissing", 5, 0, s, scope.PathEvaluator{})
	assert.False(t, got.Found)

	got = Inspect("   ", 1, 0, s, scope.PathEvaluator{})
	assert.False(t, got.Found)

	got = Inspect("x", -1, 0, s, scope.PathEvaluator{})
	assert.False(t, got.Found)
}

func TestInspectPropertyLimit(t *testing.T) {
	s := scope.New()
	big := make(map[string]any, 25)
	for i := 0; i < 25; i++ {
		big[string(rune('a'+i))] = i
	}
	s.Set("wide", big)

	got := Inspect("wide", 4, 0, s, scope.PathEvaluator{})
	text := inspectText(t, got)
	assert.Contains(t, text, "... 5 more")
}

func TestFunctionSignature(t *testing.T) {
	tests := []struct {
		name string
		f    display.Function
		want string
	}{
		{
			name: "declaration",
			f:    display.Function{Source: "function add(a, b) { return a + b; }"},
			want: "add(a, b)",
		},
		{
			name: "async declaration",
			f:    display.Function{Source: "async function load(url) {}"},
			want: "load(url)",
		},
		{
			name: "generator",
			f:    display.Function{Name: "gen", Source: "function* gen(n) {}"},
			want: "gen(n)",
		},
		{
			name: "arrow with parens",
			f:    display.Function{Name: "sum", Source: "(a, b) => a + b"},
			want: "sum(a, b)",
		},
		{
			name: "arrow single argument",
			f:    display.Function{Name: "inc", Source: "x => x + 1"},
			want: "inc(x)",
		},
		{
			name: "method shorthand",
			f:    display.Function{Source: "render(props) { return null; }"},
			want: "render(props)",
		},
		{
			name: "empty source uses name",
			f:    display.Function{Name: "mystery"},
			want: "mystery()",
		},
		{
			name: "anonymous empty source",
			f:    display.Function{},
			want: "anonymous()",
		},
		{
			name: "unrecognized shape falls back to first line",
			f:    display.Function{Source: "class X {}\nmore"},
			want: "class X {}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, functionSignature(tt.f))
		})
	}
}

func TestFunctionSignatureTruncation(t *testing.T) {
	long := "weird " + strings.Repeat("x", 200)
	got := functionSignature(display.Function{Source: long})
	assert.Len(t, got, 100)
}
