package transform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compose(t *testing.T, code string) *Unit {
	t.Helper()
	unit, err := Compose(context.Background(), code, Options{Resolver: testResolver})
	require.NoError(t, err)
	return unit
}

func TestComposeEmpty(t *testing.T) {
	for _, code := range []string{"", "   ", "\n\t\n"} {
		unit := compose(t, code)
		assert.Equal(t, "", unit.Body)
		assert.False(t, unit.CapturesValue)
		assert.Empty(t, unit.Hoists)
		assert.Empty(t, unit.Imports)
	}
}

func TestComposeInvalid(t *testing.T) {
	_, err := Compose(context.Background(), "const = ;", Options{Resolver: testResolver})
	assert.Error(t, err)
}

func TestComposeDeclarationAndCapture(t *testing.T) {
	unit := compose(t, "const x = 1;\nx + 1")

	want := `const x = 1;
globalThis["x"] = x;
return [x + 1];`
	assert.Equal(t, want, unit.Body)
	assert.True(t, unit.CapturesValue)
	assert.Equal(t, []Hoist{{Local: "x", Key: "x"}}, unit.Hoists)
	assert.Empty(t, unit.Imports)
}

func TestComposeImportRewrite(t *testing.T) {
	unit := compose(t, `import _ from "lodash";`)

	want := `const { default: _ } = await import("https://cdn.jsdelivr.net/npm/lodash/+esm");
globalThis["_"] = _;`
	assert.Equal(t, want, unit.Body)
	assert.False(t, unit.CapturesValue)
	assert.Equal(t, []ImportSpec{{Source: "lodash", DefaultLocal: "_"}}, unit.Imports)
}

func TestComposeOrderInterleaved(t *testing.T) {
	unit := compose(t, "import a from \"aa\";\nconst x = 1;\nimport b from \"bb\";")

	// Hoists follow the order statements appear in the source.
	assert.Equal(t, []Hoist{
		{Local: "a", Key: "a"},
		{Local: "x", Key: "x"},
		{Local: "b", Key: "b"},
	}, unit.Hoists)
	assert.Contains(t, unit.Body, `const { default: a } = await import("https://cdn.jsdelivr.net/npm/aa/+esm");`)
	assert.Contains(t, unit.Body, `const { default: b } = await import("https://cdn.jsdelivr.net/npm/bb/+esm");`)
}

func TestComposeNoCaptureOnSemicolon(t *testing.T) {
	unit := compose(t, "f();")
	assert.False(t, unit.CapturesValue)
	assert.Equal(t, "f();", unit.Body)
}

func TestComposeNoCaptureOnAssignment(t *testing.T) {
	unit := compose(t, "x = 1")
	assert.False(t, unit.CapturesValue)
}

func TestComposeFunctionHoist(t *testing.T) {
	unit := compose(t, "function add(a, b) { return a + b; }\nadd(1, 2)")

	assert.True(t, unit.CapturesValue)
	assert.Equal(t, []Hoist{{Local: "add", Key: "add"}}, unit.Hoists)
	assert.Contains(t, unit.Body, `globalThis["add"] = add;`)
	assert.Contains(t, unit.Body, "return [add(1, 2)];")
}

type stubHost struct {
	body string
	fail error
}

func (h *stubHost) Compile(_ context.Context, body string) (RunFunc, error) {
	if h.fail != nil {
		return nil, h.fail
	}
	h.body = body
	return func(context.Context) ([]any, error) { return []any{42}, nil }, nil
}

func TestUnitBind(t *testing.T) {
	unit := compose(t, "40 + 2")
	host := &stubHost{}

	run, err := unit.Bind(context.Background(), host)
	require.NoError(t, err)
	assert.Equal(t, unit.Body, host.body)

	got, err := run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []any{42}, got)
}

func TestUnitBindCompileError(t *testing.T) {
	unit := compose(t, "1 + 1")
	host := &stubHost{fail: assert.AnError}

	_, err := unit.Bind(context.Background(), host)
	assert.ErrorIs(t, err, assert.AnError)
}
