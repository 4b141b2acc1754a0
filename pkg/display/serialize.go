package display

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// rule is one (predicate, handler) pair of the classifier.
type rule struct {
	name   string
	match  func(v any) bool
	render func(v any) Bundle
}

// rules is the fixed classification order. The first matching rule determines
// the bundle; later rules never apply once an earlier one matches.
var rules = []rule{
	{"null", matchNull, renderNull},
	{"undefined", matchUndefined, renderUndefined},
	{"capability", hasCapability, renderCapabilities},
	{"string", matchKind(reflect.String), renderString},
	{"number", matchNumber, renderPlain},
	{"bool", matchKind(reflect.Bool), renderPlain},
	{"symbol", matchType[Symbol](), renderPlain},
	{"bigint", matchBigInt, renderBigInt},
	{"function", matchFunction, renderFunction},
	{"error", matchError, renderError},
	{"date", matchDate, renderDate},
	{"regexp", matchRegexp, renderRegexp},
	{"map", matchType[*Map](), renderMap},
	{"set", matchType[*Set](), renderSet},
	{"canvas", matchCanvas, renderCanvas},
	{"element", matchElement, renderElement},
	{"surface", matchSurface, renderSurface},
	{"array", matchArray, renderArray},
	{"binary", matchTypedArray, renderTypedArray},
	{"promise", matchPromise, renderPromise},
	{"bundle-wrapper", matchBundleWrapper, renderBundleWrapper},
	{"object", matchObject, renderObject},
}

// Serialize classifies v and builds its display bundle. It never fails;
// unclassifiable values degrade to a generic string coercion.
func Serialize(v any) Bundle {
	for _, r := range rules {
		if r.match(v) {
			return r.render(v)
		}
	}
	return Bundle{MimeText: coerceString(v)}
}

// ---------- primitives ----------

func matchNull(v any) bool { return v == nil }

func renderNull(any) Bundle { return Bundle{MimeText: "null"} }

func matchUndefined(v any) bool {
	switch v.(type) {
	case Undefined, *Undefined:
		return true
	}
	return false
}

func renderUndefined(any) Bundle { return Bundle{MimeText: "undefined"} }

func matchKind(kind reflect.Kind) func(any) bool {
	return func(v any) bool {
		return v != nil && reflect.TypeOf(v).Kind() == kind
	}
}

func matchType[T any]() func(any) bool {
	return func(v any) bool {
		_, ok := v.(T)
		return ok
	}
}

// renderString treats trimmed values bracketed by < and > as markup and
// returns them verbatim as both HTML and text; everything else is quoted.
func renderString(v any) Bundle {
	s := reflect.ValueOf(v).String()
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "<") && strings.HasSuffix(trimmed, ">") {
		return Bundle{MimeHTML: s, MimeText: s}
	}
	return Bundle{MimeText: "'" + s + "'"}
}

func matchNumber(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		// Concrete numeric slices are binary views, not numbers; this only
		// sees scalar kinds.
		return true
	}
	return false
}

func renderPlain(v any) Bundle { return Bundle{MimeText: coerceString(v)} }

func matchBigInt(v any) bool {
	_, ok := v.(*big.Int)
	return ok
}

func renderBigInt(v any) Bundle {
	return Bundle{MimeText: v.(*big.Int).String() + "n"}
}

// ---------- functions ----------

func matchFunction(v any) bool {
	switch v.(type) {
	case Function, *Function:
		return true
	}
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}

func renderFunction(v any) Bundle {
	var name, source string
	switch f := v.(type) {
	case Function:
		name, source = f.Name, f.Source
	case *Function:
		name, source = f.Name, f.Source
	default:
		name = runtimeFuncName(v)
	}
	if name == "" {
		name = "anonymous"
	}

	bundle := Bundle{MimeText: fmt.Sprintf("[Function: %s]", name)}
	if source != "" {
		bundle[MimeHTML] = "<pre><code>" + html.EscapeString(source) + "</code></pre>"
	}
	return bundle
}

func runtimeFuncName(v any) string {
	name := reflect.TypeOf(v).Name()
	if name != "" {
		return name
	}
	return ""
}

// ---------- errors, dates, regexps ----------

func matchError(v any) bool {
	_, ok := v.(error)
	return ok
}

func renderError(v any) Bundle {
	err := v.(error)
	var stack string
	if st, ok := err.(StackTracer); ok {
		stack = st.Stack()
	}

	text := stack
	if text == "" {
		text = err.Error()
	}

	name := reflect.Indirect(reflect.ValueOf(err)).Type().Name()
	if name == "" {
		name = "Error"
	}
	return Bundle{
		MimeText: text,
		MimeJSON: map[string]any{
			"name":    name,
			"message": err.Error(),
			"stack":   stack,
		},
	}
}

func matchDate(v any) bool {
	switch v.(type) {
	case time.Time, *time.Time:
		return true
	}
	return false
}

func renderDate(v any) Bundle {
	var t time.Time
	switch d := v.(type) {
	case time.Time:
		t = d
	case *time.Time:
		t = *d
	}
	iso := t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	return Bundle{MimeText: iso, MimeJSON: iso}
}

func matchRegexp(v any) bool {
	_, ok := v.(*regexp.Regexp)
	return ok
}

func renderRegexp(v any) Bundle {
	return Bundle{MimeText: "/" + v.(*regexp.Regexp).String() + "/"}
}

// ---------- containers ----------

const (
	mapPreviewLimit    = 5
	arrayPreviewLimit  = 10
	objectPreviewLimit = 5
)

func renderMap(v any) Bundle {
	m := v.(*Map)
	n := m.Len()

	obj := make(map[string]any, n)
	for _, e := range m.Entries() {
		obj[coerceString(e.Key)] = e.Value
	}
	if _, err := json.Marshal(obj); err != nil {
		return Bundle{MimeText: fmt.Sprintf("Map(%d)", n)}
	}

	if n == 0 {
		return Bundle{MimeText: "Map(0) {}", MimeJSON: obj}
	}

	entries := m.Entries()
	shown := entries
	if len(shown) > mapPreviewLimit {
		shown = shown[:mapPreviewLimit]
	}
	parts := make([]string, 0, len(shown))
	for _, e := range shown {
		parts = append(parts, previewItem(e.Key)+" => "+previewItem(e.Value))
	}
	preview := strings.Join(parts, ", ")
	if n > mapPreviewLimit {
		preview += ", ..."
	}
	return Bundle{
		MimeText: fmt.Sprintf("Map(%d) { %s }", n, preview),
		MimeJSON: obj,
	}
}

func renderSet(v any) Bundle {
	s := v.(*Set)
	n := s.Len()

	if _, err := json.Marshal(s.Values()); err != nil {
		return Bundle{MimeText: fmt.Sprintf("Set(%d)", n)}
	}
	values := s.Values()
	if values == nil {
		values = []any{}
	}

	if n == 0 {
		return Bundle{MimeText: "Set(0) {}", MimeJSON: values}
	}

	shown := values
	if len(shown) > mapPreviewLimit {
		shown = shown[:mapPreviewLimit]
	}
	parts := make([]string, 0, len(shown))
	for _, item := range shown {
		parts = append(parts, previewItem(item))
	}
	preview := strings.Join(parts, ", ")
	if n > mapPreviewLimit {
		preview += ", ..."
	}
	return Bundle{
		MimeText: fmt.Sprintf("Set(%d) { %s }", n, preview),
		MimeJSON: values,
	}
}

// ---------- graphics ----------

func matchCanvas(v any) bool {
	_, ok := v.(Canvas)
	return ok
}

func renderCanvas(v any) Bundle {
	c := v.(Canvas)
	data, err := c.EncodePNG()
	if err != nil {
		markup := c.OuterHTML()
		return Bundle{MimeHTML: markup, MimeText: markup}
	}
	return Bundle{
		MimePNG:  data,
		MimeText: fmt.Sprintf("<canvas width=%d height=%d>", c.Width(), c.Height()),
	}
}

func matchElement(v any) bool {
	_, ok := v.(Element)
	return ok
}

func renderElement(v any) Bundle {
	markup := v.(Element).OuterHTML()
	return Bundle{MimeHTML: markup, MimeText: markup}
}

func matchSurface(v any) bool {
	s, ok := v.(Surface)
	return ok && s.Elt() != nil
}

func renderSurface(v any) Bundle {
	s := v.(Surface)
	if c, ok := s.Elt().(Canvas); ok {
		if data, err := c.EncodePNG(); err == nil {
			return Bundle{
				MimePNG:  data,
				MimeText: fmt.Sprintf("<canvas width=%d height=%d>", c.Width(), c.Height()),
			}
		}
	}
	return Bundle{MimeText: "<" + s.TypeName() + ">"}
}

// ---------- arrays and binary views ----------

// typedArrayNames maps concrete numeric slice types to their binary-view
// labels. These are disjoint from arrays: an []any or []string is an array,
// a concrete numeric slice is a view over binary data.
var typedArrayNames = map[reflect.Type]string{
	reflect.TypeOf([]uint8(nil)):   "Uint8Array",
	reflect.TypeOf([]int8(nil)):    "Int8Array",
	reflect.TypeOf([]uint16(nil)):  "Uint16Array",
	reflect.TypeOf([]int16(nil)):   "Int16Array",
	reflect.TypeOf([]uint32(nil)):  "Uint32Array",
	reflect.TypeOf([]int32(nil)):   "Int32Array",
	reflect.TypeOf([]uint64(nil)):  "BigUint64Array",
	reflect.TypeOf([]int64(nil)):   "BigInt64Array",
	reflect.TypeOf([]float32(nil)): "Float32Array",
	reflect.TypeOf([]float64(nil)): "Float64Array",
}

func matchTypedArray(v any) bool {
	if v == nil {
		return false
	}
	_, ok := typedArrayNames[reflect.TypeOf(v)]
	return ok
}

func renderTypedArray(v any) Bundle {
	name := typedArrayNames[reflect.TypeOf(v)]
	return Bundle{MimeText: fmt.Sprintf("%s(%d)", name, reflect.ValueOf(v).Len())}
}

func matchArray(v any) bool {
	if v == nil || matchTypedArray(v) {
		return false
	}
	kind := reflect.TypeOf(v).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

func renderArray(v any) Bundle {
	rv := reflect.ValueOf(v)
	n := rv.Len()

	if _, err := json.Marshal(v); err != nil {
		return Bundle{MimeText: fmt.Sprintf("Array(%d)", n)}
	}

	limit := n
	if limit > arrayPreviewLimit {
		limit = arrayPreviewLimit
	}
	parts := make([]string, 0, limit)
	for i := 0; i < limit; i++ {
		parts = append(parts, previewItem(rv.Index(i).Interface()))
	}
	preview := strings.Join(parts, ", ")
	if n > arrayPreviewLimit {
		preview += fmt.Sprintf(", ... (%d items)", n)
	}
	return Bundle{
		MimeText: "[" + preview + "]",
		MimeJSON: v,
	}
}

// ---------- promise-like ----------

func matchPromise(v any) bool {
	if _, ok := v.(Thenable); ok {
		return true
	}
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Chan
}

func renderPromise(any) Bundle {
	return Bundle{MimeText: "Promise { <pending> }"}
}

// ---------- objects ----------

// matchBundleWrapper recognizes plain objects already shaped like a display
// payload: a `data` field that is itself an object. The inner data object is
// returned directly.
func matchBundleWrapper(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	switch m["data"].(type) {
	case map[string]any, Bundle:
		return true
	}
	return false
}

func renderBundleWrapper(v any) Bundle {
	switch data := v.(map[string]any)["data"].(type) {
	case Bundle:
		return data
	case map[string]any:
		return Bundle(data)
	}
	return nil
}

func matchObject(v any) bool {
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	switch t.Kind() {
	case reflect.Map, reflect.Struct:
		return true
	case reflect.Ptr:
		return t.Elem().Kind() == reflect.Struct
	}
	return false
}

func renderObject(v any) Bundle {
	props, ctor := objectProperties(v)
	n := len(props)

	if _, err := json.Marshal(v); err != nil {
		label := ctor
		if label == "" {
			label = "Object"
		}
		return Bundle{MimeText: fmt.Sprintf("%s { %d properties }", label, n)}
	}

	prefix := ""
	if ctor != "" && ctor != "Object" {
		prefix = ctor + " "
	}

	if n == 0 {
		return Bundle{MimeText: prefix + "{}", MimeJSON: v}
	}

	limit := n
	if limit > objectPreviewLimit {
		limit = objectPreviewLimit
	}
	parts := make([]string, 0, limit)
	for _, p := range props[:limit] {
		parts = append(parts, p.name+": "+previewProperty(p.value))
	}
	preview := strings.Join(parts, ", ")
	if n > objectPreviewLimit {
		preview += ", ..."
	}
	return Bundle{
		MimeText: prefix + "{ " + preview + " }",
		MimeJSON: v,
	}
}
