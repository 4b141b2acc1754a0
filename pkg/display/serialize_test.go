package display

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializePrimitives(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want Bundle
	}{
		{
			name: "nil is null",
			v:    nil,
			want: Bundle{MimeText: "null"},
		},
		{
			name: "undefined marker",
			v:    Undefined{},
			want: Bundle{MimeText: "undefined"},
		},
		{
			name: "int",
			v:    42,
			want: Bundle{MimeText: "42"},
		},
		{
			name: "float",
			v:    3.14,
			want: Bundle{MimeText: "3.14"},
		},
		{
			name: "bool",
			v:    true,
			want: Bundle{MimeText: "true"},
		},
		{
			name: "plain string is quoted",
			v:    "hi",
			want: Bundle{MimeText: "'hi'"},
		},
		{
			name: "markup string renders as html and text",
			v:    "<b>hi</b>",
			want: Bundle{MimeHTML: "<b>hi</b>", MimeText: "<b>hi</b>"},
		},
		{
			name: "markup detection trims before checking brackets",
			v:    "  <div>x</div>  ",
			want: Bundle{MimeHTML: "  <div>x</div>  ", MimeText: "  <div>x</div>  "},
		},
		{
			name: "symbol",
			v:    Symbol{Description: "id"},
			want: Bundle{MimeText: "Symbol(id)"},
		},
		{
			name: "bigint gets n suffix",
			v:    big.NewInt(9007199254740993),
			want: Bundle{MimeText: "9007199254740993n"},
		},
		{
			name: "regexp",
			v:    regexp.MustCompile(`\d+`),
			want: Bundle{MimeText: `/\d+/`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Serialize(tt.v))
		})
	}
}

func TestSerializeFunction(t *testing.T) {
	got := Serialize(Function{Name: "add", Source: "function add(a, b) { return a + b; }"})
	assert.Equal(t, "[Function: add]", got[MimeText])
	assert.Equal(t, "<pre><code>function add(a, b) { return a + b; }</code></pre>", got[MimeHTML])

	got = Serialize(Function{Source: "<script>x</script>"})
	assert.Equal(t, "[Function: anonymous]", got[MimeText])
	assert.Equal(t, "<pre><code>&lt;script&gt;x&lt;/script&gt;</code></pre>", got[MimeHTML])

	got = Serialize(func() {})
	assert.Equal(t, "[Function: anonymous]", got[MimeText])
	assert.NotContains(t, got, MimeHTML)
}

type tracedError struct {
	msg   string
	stack string
}

func (e *tracedError) Error() string { return e.msg }
func (e *tracedError) Stack() string { return e.stack }

func TestSerializeError(t *testing.T) {
	got := Serialize(&tracedError{msg: "boom", stack: "Error: boom\n    at f"})
	assert.Equal(t, "Error: boom\n    at f", got[MimeText])
	assert.Equal(t, map[string]any{
		"name":    "tracedError",
		"message": "boom",
		"stack":   "Error: boom\n    at f",
	}, got[MimeJSON])
}

func TestSerializeErrorWithoutStack(t *testing.T) {
	got := Serialize(errors.New("plain failure"))
	assert.Equal(t, "plain failure", got[MimeText])
}

func TestSerializeDate(t *testing.T) {
	d := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	got := Serialize(d)
	assert.Equal(t, "2024-03-15T10:30:00.000Z", got[MimeText])
	assert.Equal(t, "2024-03-15T10:30:00.000Z", got[MimeJSON])

	// Non-UTC times normalize to UTC.
	loc := time.FixedZone("plus2", 2*3600)
	got = Serialize(time.Date(2024, 3, 15, 12, 30, 0, 0, loc))
	assert.Equal(t, "2024-03-15T10:30:00.000Z", got[MimeText])
}

func TestSerializeMap(t *testing.T) {
	m := NewMap().Set("a", 1).Set("b", 2)
	got := Serialize(m)
	assert.Equal(t, "Map(2) { 'a' => 1, 'b' => 2 }", got[MimeText])
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, got[MimeJSON])

	assert.Equal(t, "Map(0) {}", Serialize(NewMap())[MimeText])
}

func TestSerializeMapTruncation(t *testing.T) {
	m := NewMap()
	for i := 0; i < 7; i++ {
		m.Set(fmt.Sprintf("k%d", i), i)
	}
	got := Serialize(m)
	assert.Equal(t, "Map(7) { 'k0' => 0, 'k1' => 1, 'k2' => 2, 'k3' => 3, 'k4' => 4, ... }", got[MimeText])
}

func TestSerializeMapJSONFailure(t *testing.T) {
	m := NewMap().Set("f", func() {})
	assert.Equal(t, Bundle{MimeText: "Map(1)"}, Serialize(m))
}

func TestSerializeSet(t *testing.T) {
	s := NewSet().Add(1).Add(2).Add(2)
	got := Serialize(s)
	assert.Equal(t, "Set(2) { 1, 2 }", got[MimeText])
	assert.Equal(t, []any{1, 2}, got[MimeJSON])

	assert.Equal(t, "Set(0) {}", Serialize(NewSet())[MimeText])
}

func TestSerializeSetTruncation(t *testing.T) {
	s := NewSet()
	for i := 0; i < 6; i++ {
		s.Add(i)
	}
	assert.Equal(t, "Set(6) { 0, 1, 2, 3, 4, ... }", Serialize(s)[MimeText])
}

func TestSerializeArray(t *testing.T) {
	got := Serialize([]any{1, "two", nil})
	assert.Equal(t, "[1, 'two', null]", got[MimeText])
	assert.Equal(t, []any{1, "two", nil}, got[MimeJSON])
}

func TestSerializeArrayTruncation(t *testing.T) {
	items := make([]int, 12)
	for i := range items {
		items[i] = i
	}
	got := Serialize(items)
	assert.Equal(t, "[0, 1, 2, 3, 4, 5, 6, 7, 8, 9, ... (12 items)]", got[MimeText])
}

func TestSerializeArrayJSONFailure(t *testing.T) {
	got := Serialize([]any{func() {}})
	assert.Equal(t, Bundle{MimeText: "Array(1)"}, got)
}

func TestSerializeNestedArrayPreview(t *testing.T) {
	got := Serialize([]any{[]any{1, 2}, map[string]any{"a": 1}})
	assert.Equal(t, "[Array(2), {...}]", got[MimeText])
}

func TestSerializeTypedArrays(t *testing.T) {
	tests := []struct {
		v    any
		want string
	}{
		{[]uint8{1, 2, 3}, "Uint8Array(3)"},
		{[]int8{1}, "Int8Array(1)"},
		{[]uint16{}, "Uint16Array(0)"},
		{[]int32{1, 2}, "Int32Array(2)"},
		{[]float32{1.5}, "Float32Array(1)"},
		{[]float64{1, 2, 3, 4}, "Float64Array(4)"},
		{[]int64{9}, "BigInt64Array(1)"},
		{[]uint64{9}, "BigUint64Array(1)"},
	}
	for _, tt := range tests {
		assert.Equal(t, Bundle{MimeText: tt.want}, Serialize(tt.v))
	}

	// []int is a plain array, not a binary view.
	assert.Equal(t, "[1, 2]", Serialize([]int{1, 2})[MimeText])
}

type fakeThenable struct{}

func (fakeThenable) Then(func(any), func(error)) {}

func TestSerializePromiseLike(t *testing.T) {
	assert.Equal(t, "Promise { <pending> }", Serialize(make(chan int))[MimeText])
	assert.Equal(t, "Promise { <pending> }", Serialize(fakeThenable{})[MimeText])
}

func TestSerializeBundleWrapper(t *testing.T) {
	wrapped := map[string]any{
		"data": map[string]any{MimeHTML: "<p>hi</p>", MimeText: "hi"},
	}
	got := Serialize(wrapped)
	assert.Equal(t, Bundle{MimeHTML: "<p>hi</p>", MimeText: "hi"}, got)
}

func TestSerializeObjectMap(t *testing.T) {
	got := Serialize(map[string]any{"b": 2, "a": 1})
	assert.Equal(t, "{ a: 1, b: 2 }", got[MimeText])
	assert.Equal(t, map[string]any{"b": 2, "a": 1}, got[MimeJSON])
}

type point struct {
	X int
	Y int
}

func TestSerializeObjectStruct(t *testing.T) {
	got := Serialize(point{X: 1, Y: 2})
	assert.Equal(t, "point { X: 1, Y: 2 }", got[MimeText])

	got = Serialize(&point{X: 3, Y: 4})
	assert.Equal(t, "point { X: 3, Y: 4 }", got[MimeText])
}

func TestSerializeObjectTruncation(t *testing.T) {
	obj := map[string]any{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5, "f": 6, "g": 7}
	got := Serialize(obj)
	assert.Equal(t, "{ a: 1, b: 2, c: 3, d: 4, e: 5, ... }", got[MimeText])
}

func TestSerializeObjectJSONFailure(t *testing.T) {
	got := Serialize(map[string]any{"f": func() {}})
	assert.Equal(t, Bundle{MimeText: "Object { 1 properties }"}, got)
}

type fakeElement struct {
	markup string
}

func (e fakeElement) OuterHTML() string { return e.markup }

func TestSerializeElement(t *testing.T) {
	var elt Element = fakeElement{markup: "<div>chart</div>"}
	got := Serialize(elt)
	assert.Equal(t, Bundle{MimeHTML: "<div>chart</div>", MimeText: "<div>chart</div>"}, got)
}

type fakeCanvas struct {
	fakeElement
	w, h int
	png  string
	fail error
}

func (c fakeCanvas) Width() int  { return c.w }
func (c fakeCanvas) Height() int { return c.h }
func (c fakeCanvas) EncodePNG() (string, error) {
	return c.png, c.fail
}

func TestSerializeCanvas(t *testing.T) {
	var c Canvas = fakeCanvas{w: 300, h: 150, png: "iVBORw0KGgo="}
	got := Serialize(c)
	assert.Equal(t, "iVBORw0KGgo=", got[MimePNG])
	assert.Equal(t, "<canvas width=300 height=150>", got[MimeText])
}

func TestSerializeCanvasEncodeFailure(t *testing.T) {
	var c Canvas = fakeCanvas{
		fakeElement: fakeElement{markup: "<canvas></canvas>"},
		fail:        errors.New("no pixels"),
	}
	got := Serialize(c)
	assert.Equal(t, Bundle{MimeHTML: "<canvas></canvas>", MimeText: "<canvas></canvas>"}, got)
}

type fakeSurface struct {
	name string
	elt  Element
}

func (s fakeSurface) TypeName() string { return s.name }
func (s fakeSurface) Elt() Element     { return s.elt }

func TestSerializeSurface(t *testing.T) {
	var s Surface = fakeSurface{
		name: "Sketch",
		elt:  fakeCanvas{w: 100, h: 100, png: "abc123"},
	}
	got := Serialize(s)
	assert.Equal(t, "abc123", got[MimePNG])

	s = fakeSurface{name: "Sketch", elt: fakeElement{markup: "<svg/>"}}
	assert.Equal(t, Bundle{MimeText: "<Sketch>"}, Serialize(s))
}

type htmlValue struct {
	html string
	text string
}

func (h htmlValue) RenderHTML() (string, error) { return h.html, nil }
func (h htmlValue) InspectText() string         { return h.text }

func TestSerializeCapability(t *testing.T) {
	got := Serialize(htmlValue{html: "<table/>", text: "a table"})
	assert.Equal(t, Bundle{MimeHTML: "<table/>", MimeText: "a table"}, got)
}

type failingRenderer struct{}

func (failingRenderer) RenderHTML() (string, error)     { return "", errors.New("render failed") }
func (failingRenderer) RenderMarkdown() (string, error) { return "# ok", nil }

func TestSerializeCapabilityPartialFailure(t *testing.T) {
	got := Serialize(failingRenderer{})
	require.NotContains(t, got, MimeHTML)
	assert.Equal(t, "# ok", got[MimeMarkdown])
	assert.Contains(t, got, MimeText)
}

type mimeValue struct{}

func (mimeValue) RenderMime() (Bundle, error) {
	return Bundle{MimeSVG: "<svg/>", MimeText: "picture"}, nil
}
func (mimeValue) RenderHTML() (string, error) { return "<p>never</p>", nil }

func TestSerializeMimeRendererShortCircuits(t *testing.T) {
	got := Serialize(mimeValue{})
	assert.Equal(t, Bundle{MimeSVG: "<svg/>", MimeText: "picture"}, got)
}

func TestSerializeRuleOrder(t *testing.T) {
	// A capability value that is also an error classifies as capability.
	v := capabilityError{}
	got := Serialize(v)
	assert.Equal(t, "<em>styled</em>", got[MimeHTML])
}

type capabilityError struct{}

func (capabilityError) Error() string               { return "wrapped" }
func (capabilityError) RenderHTML() (string, error) { return "<em>styled</em>", nil }
