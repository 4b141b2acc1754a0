package interactive

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/leapstack-labs/leapscript/pkg/display"
	"github.com/leapstack-labs/leapscript/pkg/scope"
)

// Inspection is the result of a cursor-anchored documentation lookup.
type Inspection struct {
	Found    bool           `json:"found"`
	Data     display.Bundle `json:"data"`
	Metadata map[string]any `json:"metadata"`
}

const (
	inspectPropertyLimit = 20
	signatureLineLimit   = 100
)

var (
	tokenBefore = regexp.MustCompile(`[\w$.]+$`)
	tokenAfter  = regexp.MustCompile(`^[\w$]*`)
)

// Inspect extracts the token around cursor, evaluates it against the scope,
// and synthesizes a documentation bundle. Evaluation failures fall back to
// the static builtin documentation table; tokens absent there report
// found=false.
func Inspect(code string, cursor, detail int, s *scope.Scope, eval scope.Evaluator) Inspection {
	notFound := Inspection{Found: false, Data: display.Bundle{}, Metadata: map[string]any{}}
	if cursor < 0 || cursor > len(code) {
		return notFound
	}

	token := tokenBefore.FindString(code[:cursor]) + tokenAfter.FindString(code[cursor:])
	token = strings.Trim(token, ".")
	if token == "" {
		return notFound
	}

	value, err := eval.Eval(token, s)
	if err != nil {
		if doc, ok := builtinDocs[token]; ok {
			return Inspection{
				Found:    true,
				Data:     display.Bundle{display.MimeText: doc},
				Metadata: map[string]any{"token": token, "source": "builtin"},
			}
		}
		return notFound
	}

	doc := describe(token, value, detail)
	return Inspection{
		Found:    true,
		Data:     display.Bundle{display.MimeText: doc},
		Metadata: map[string]any{"token": token},
	}
}

// describe builds the documentation text for a resolved value.
func describe(token string, v any, detail int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", token, typeTag(v))

	if f, ok := functionValue(v); ok && detail > 0 && f.Source != "" {
		b.WriteString("\n\n")
		b.WriteString(f.Source)
		return b.String()
	}

	names := objectPropertyNames(v)
	if len(names) > 0 {
		shown := names
		if len(shown) > inspectPropertyLimit {
			shown = shown[:inspectPropertyLimit]
		}
		b.WriteString("\n")
		for _, name := range shown {
			fmt.Fprintf(&b, "\n  %s: %s", name, typeTag(propertyOf(v, name)))
		}
		if rest := len(names) - len(shown); rest > 0 {
			fmt.Fprintf(&b, "\n  ... %d more", rest)
		}
	}
	return b.String()
}

// propertyOf best-effort reads one property off a container for tagging.
func propertyOf(v any, name string) any {
	if m, ok := v.(map[string]any); ok {
		return m[name]
	}
	if method := reflect.ValueOf(v).MethodByName(name); method.IsValid() {
		return method.Interface()
	}
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() == reflect.Struct {
		if f := rv.FieldByName(name); f.IsValid() && f.CanInterface() {
			return f.Interface()
		}
	}
	return nil
}

// objectPropertyNames lists own property names for object-like values only.
func objectPropertyNames(v any) []string {
	if v == nil {
		return nil
	}
	switch v.(type) {
	case display.Function, *display.Function:
		return nil
	}
	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		return scope.PropertyNames(v)
	}
	return nil
}

// typeTag is the runtime type tag shown in documentation output.
func typeTag(v any) string {
	if v == nil {
		return "null"
	}
	switch val := v.(type) {
	case display.Undefined, *display.Undefined:
		return "undefined"
	case display.Function:
		return functionSignature(val)
	case *display.Function:
		return functionSignature(*val)
	case bool:
		return "boolean"
	case string:
		return "string"
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("Array(%d)", rv.Len())
	case reflect.Func:
		return "function"
	case reflect.Map:
		return "object"
	case reflect.Struct:
		return rv.Type().Name()
	case reflect.Ptr:
		if rv.Elem().Kind() == reflect.Struct {
			return rv.Elem().Type().Name()
		}
	}
	return "object"
}

func functionValue(v any) (display.Function, bool) {
	switch f := v.(type) {
	case display.Function:
		return f, true
	case *display.Function:
		return *f, true
	}
	return display.Function{}, false
}

// Function source shapes the signature extractor recognizes.
var (
	functionDeclPattern = regexp.MustCompile(`^(?:async\s+)?function\s*\*?\s*([\w$]*)\s*\(([^)]*)\)`)
	arrowPattern        = regexp.MustCompile(`^(?:async\s+)?(?:\(([^)]*)\)|([\w$]+))\s*=>`)
	methodPattern       = regexp.MustCompile(`^([\w$]+)\s*\(([^)]*)\)`)
)

// functionSignature extracts a best-effort signature from a function's
// source text, falling back to the first source line truncated at 100
// characters.
func functionSignature(f display.Function) string {
	src := strings.TrimSpace(f.Source)
	name := f.Name
	if name == "" {
		name = "anonymous"
	}
	if src == "" {
		return fmt.Sprintf("%s()", name)
	}

	if m := functionDeclPattern.FindStringSubmatch(src); m != nil {
		if m[1] != "" {
			name = m[1]
		}
		return fmt.Sprintf("%s(%s)", name, m[2])
	}
	if m := arrowPattern.FindStringSubmatch(src); m != nil {
		args := m[1]
		if args == "" {
			args = m[2]
		}
		return fmt.Sprintf("%s(%s)", name, args)
	}
	if m := methodPattern.FindStringSubmatch(src); m != nil {
		return fmt.Sprintf("%s(%s)", m[1], m[2])
	}

	line := src
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if len(line) > signatureLineLimit {
		line = line[:signatureLineLimit]
	}
	return line
}
