package scope

import (
	"fmt"

	"go.starlark.net/starlark"
)

// StarlarkEvaluator evaluates full expressions against a scope inside an
// isolated Starlark thread. It is richer than PathEvaluator (arithmetic,
// comparisons, calls into converted values) while staying sandboxed: only
// scope bindings convertible to Starlark values are visible, and nothing can
// reach the host. Bindings that cannot be converted are silently omitted,
// so expressions touching them fail evaluation rather than the whole call.
type StarlarkEvaluator struct{}

// Eval evaluates expr with the scope's bindings as predeclared globals.
func (StarlarkEvaluator) Eval(expr string, s *Scope) (any, error) {
	globals := starlark.StringDict{}
	for _, name := range s.Names() {
		v, ok := s.Get(name)
		if !ok {
			continue
		}
		sv, err := toStarlark(v)
		if err != nil {
			continue
		}
		globals[name] = sv
	}

	thread := &starlark.Thread{
		Name:  "scope-eval",
		Print: func(_ *starlark.Thread, _ string) {},
	}
	value, err := starlark.Eval(thread, "<expr>", expr, globals) //nolint:staticcheck // SA1019: will migrate to EvalOptions later
	if err != nil {
		return nil, fmt.Errorf("eval %q: %w", expr, err)
	}
	return fromStarlark(value)
}

// toStarlark converts a Go value to a Starlark value.
// Supported types: string, int, int64, float64, bool, []string, []any,
// map[string]any, and nil.
func toStarlark(v any) (starlark.Value, error) {
	if v == nil {
		return starlark.None, nil
	}

	switch val := v.(type) {
	case string:
		return starlark.String(val), nil
	case int:
		return starlark.MakeInt(val), nil
	case int64:
		return starlark.MakeInt64(val), nil
	case float64:
		return starlark.Float(val), nil
	case bool:
		return starlark.Bool(val), nil

	case []string:
		list := make([]starlark.Value, len(val))
		for i, s := range val {
			list[i] = starlark.String(s)
		}
		return starlark.NewList(list), nil

	case []any:
		list := make([]starlark.Value, len(val))
		for i, item := range val {
			sv, err := toStarlark(item)
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			list[i] = sv
		}
		return starlark.NewList(list), nil

	case map[string]any:
		dict := starlark.NewDict(len(val))
		for k, item := range val {
			sv, err := toStarlark(item)
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", k, err)
			}
			if err := dict.SetKey(starlark.String(k), sv); err != nil {
				return nil, fmt.Errorf("dict setkey %q: %w", k, err)
			}
		}
		return dict, nil

	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

// fromStarlark converts a Starlark value back to a Go value.
// Returns: nil, bool, int64, float64, string, []any, or map[string]any.
func fromStarlark(v starlark.Value) (any, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.Bool:
		return bool(val), nil
	case starlark.Int:
		i, ok := val.Int64()
		if !ok {
			return nil, fmt.Errorf("integer out of int64 range: %s", val)
		}
		return i, nil
	case starlark.Float:
		return float64(val), nil
	case starlark.String:
		return string(val), nil

	case *starlark.List:
		out := make([]any, val.Len())
		for i := 0; i < val.Len(); i++ {
			item, err := fromStarlark(val.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = item
		}
		return out, nil

	case *starlark.Dict:
		out := make(map[string]any, val.Len())
		for _, k := range val.Keys() {
			key, ok := starlark.AsString(k)
			if !ok {
				return nil, fmt.Errorf("non-string dict key: %s", k)
			}
			item, _, err := val.Get(k)
			if err != nil {
				return nil, err
			}
			converted, err := fromStarlark(item)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported starlark type: %s", v.Type())
	}
}
