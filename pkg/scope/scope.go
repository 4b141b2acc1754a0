// Package scope holds the shared namespace that hoisted bindings target and
// the evaluators that resolve completion and inspection expressions against
// it.
//
// The namespace is an explicit environment object passed into every compiled
// unit rather than an implicit ambient global. The design assumes serialized,
// non-concurrent submissions; re-declaring a name is a last-writer-wins
// overwrite in program order.
package scope

import (
	"reflect"
	"sort"
)

// Scope is an insertion-ordered name/value namespace with prototype-style
// parent chaining. Lookup walks the chain; writes always land on the
// receiver.
type Scope struct {
	parent *Scope
	names  []string
	values map[string]any
}

// New returns an empty root scope.
func New() *Scope {
	return &Scope{values: make(map[string]any)}
}

// Child returns a scope that inherits from s.
func (s *Scope) Child() *Scope {
	child := New()
	child.parent = s
	return child
}

// Set defines or overwrites name on this scope. Insertion order is kept for
// enumeration.
func (s *Scope) Set(name string, value any) {
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = value
}

// Get resolves name against this scope and its ancestors.
func (s *Scope) Get(name string) (any, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Has reports whether name resolves anywhere on the chain.
func (s *Scope) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Names returns every reachable name, own bindings first in insertion order,
// then inherited ones. The order is enumeration order, not sorted.
func (s *Scope) Names() []string {
	var names []string
	seen := make(map[string]bool)
	for cur := s; cur != nil; cur = cur.parent {
		for _, name := range cur.names {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// Len returns the number of own bindings.
func (s *Scope) Len() int { return len(s.values) }

// PropertyNames enumerates the property names reachable on an arbitrary
// value: scope bindings, map keys, struct fields, and methods. Map keys are
// sorted for determinism; everything else follows declaration order.
func PropertyNames(v any) []string {
	if v == nil {
		return nil
	}
	if s, ok := v.(*Scope); ok {
		return s.Names()
	}

	var names []string
	rv := reflect.ValueOf(v)
	rt := rv.Type()

	// Methods on the value's own type, pointer receivers included.
	collect := func(t reflect.Type) {
		for i := 0; i < t.NumMethod(); i++ {
			names = append(names, t.Method(i).Name)
		}
	}

	switch indirect := reflect.Indirect(rv); indirect.Kind() {
	case reflect.Map:
		if indirect.Type().Key().Kind() == reflect.String {
			keys := make([]string, 0, indirect.Len())
			for _, k := range indirect.MapKeys() {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			names = append(names, keys...)
		}
	case reflect.Struct:
		t := indirect.Type()
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).IsExported() {
				names = append(names, t.Field(i).Name)
			}
		}
	}

	if rt.Kind() != reflect.Ptr {
		if ptr := reflect.PtrTo(rt); ptr.NumMethod() > 0 {
			collect(ptr)
			return names
		}
	}
	collect(rt)
	return names
}
