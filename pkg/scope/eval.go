package scope

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

// Evaluator resolves an expression against a scope. Failures are expected
// and surfaced to callers, which present them as empty or not-found results.
type Evaluator interface {
	Eval(expr string, s *Scope) (any, error)
}

// PathEvaluator is the default, constrained evaluator. It resolves dotted
// and bracketed property paths (`a.b[0]["c"]`) by walking values with
// reflection and never executes code.
type PathEvaluator struct{}

// Eval resolves a property path rooted in s.
func (PathEvaluator) Eval(expr string, s *Scope) (any, error) {
	segments, err := splitPath(strings.TrimSpace(expr))
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("empty expression")
	}

	root, ok := s.Get(segments[0].name)
	if !ok {
		return nil, fmt.Errorf("%q is not defined", segments[0].name)
	}

	value := root
	for _, seg := range segments[1:] {
		if seg.isIndex {
			value, err = indexValue(value, seg.index)
		} else {
			value, err = propertyValue(value, seg.name)
		}
		if err != nil {
			return nil, err
		}
	}
	return value, nil
}

// segment is one step of a property path.
type segment struct {
	name    string
	index   int
	isIndex bool
}

// splitPath tokenizes `root.prop[3]["key"]` into segments.
func splitPath(expr string) ([]segment, error) {
	var segments []segment
	i := 0
	n := len(expr)

	readIdent := func() (string, error) {
		start := i
		for i < n && isIdentChar(rune(expr[i])) {
			i++
		}
		if i == start {
			return "", fmt.Errorf("expected identifier at offset %d in %q", start, expr)
		}
		return expr[start:i], nil
	}

	name, err := readIdent()
	if err != nil {
		return nil, err
	}
	segments = append(segments, segment{name: name})

	for i < n {
		switch expr[i] {
		case '.':
			i++
			name, err := readIdent()
			if err != nil {
				return nil, err
			}
			segments = append(segments, segment{name: name})
		case '[':
			i++
			end := strings.IndexByte(expr[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("unterminated index in %q", expr)
			}
			inner := strings.TrimSpace(expr[i : i+end])
			i += end + 1

			if len(inner) >= 2 && (inner[0] == '"' || inner[0] == '\'') {
				segments = append(segments, segment{name: inner[1 : len(inner)-1]})
				continue
			}
			idx, err := strconv.Atoi(inner)
			if err != nil {
				return nil, fmt.Errorf("unsupported index %q in %q", inner, expr)
			}
			segments = append(segments, segment{index: idx, isIndex: true})
		default:
			return nil, fmt.Errorf("unexpected character %q in %q", expr[i], expr)
		}
	}
	return segments, nil
}

func isIdentChar(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// propertyValue resolves one named property on a value.
func propertyValue(v any, name string) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("cannot read property %q of null", name)
	}
	if s, ok := v.(*Scope); ok {
		out, ok := s.Get(name)
		if !ok {
			return nil, fmt.Errorf("%q is not defined", name)
		}
		return out, nil
	}
	if m, ok := v.(map[string]any); ok {
		out, ok := m[name]
		if !ok {
			return nil, fmt.Errorf("undefined property %q", name)
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	if method := rv.MethodByName(name); method.IsValid() {
		return method.Interface(), nil
	}

	indirect := reflect.Indirect(rv)
	switch indirect.Kind() {
	case reflect.Struct:
		if field := indirect.FieldByName(name); field.IsValid() && field.CanInterface() {
			return field.Interface(), nil
		}
	case reflect.Map:
		if indirect.Type().Key().Kind() == reflect.String {
			out := indirect.MapIndex(reflect.ValueOf(name))
			if out.IsValid() {
				return out.Interface(), nil
			}
		}
	}
	return nil, fmt.Errorf("undefined property %q", name)
}

// indexValue resolves one numeric index on a slice or array.
func indexValue(v any, idx int) (any, error) {
	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if idx < 0 || idx >= rv.Len() {
			return nil, fmt.Errorf("index %d out of range", idx)
		}
		return rv.Index(idx).Interface(), nil
	}
	return nil, fmt.Errorf("cannot index value of kind %s", rv.Kind())
}
