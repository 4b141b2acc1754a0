// Package display converts arbitrary runtime values into multi-representation
// MIME bundles.
//
// Classification is a fixed, priority-ordered list of (predicate, handler)
// pairs evaluated top to bottom; the first match wins and later rules never
// apply. Custom serialization is expressed through small capability
// interfaces checked by presence before invocation. Serialization is
// best-effort throughout: a failing capability drops that one
// representation, and JSON failures degrade to lower-fidelity text. The
// overall call never fails.
package display

import "fmt"

// Bundle maps a MIME-type string to one representation of a value. The
// mapping is open; consumers must treat unknown keys as opaque.
type Bundle map[string]any

// MIME types used by the serializer.
const (
	MimeText     = "text/plain"
	MimeHTML     = "text/html"
	MimeJSON     = "application/json"
	MimePNG      = "image/png"
	MimeJPEG     = "image/jpeg"
	MimeSVG      = "image/svg+xml"
	MimeMarkdown = "text/markdown"
	MimeLaTeX    = "text/latex"
)

// Undefined is the distinguished not-a-value marker, kept separate from nil
// the way undefined is separate from null.
type Undefined struct{}

func (Undefined) String() string { return "undefined" }

// Symbol is an opaque unique-name value.
type Symbol struct {
	Description string
}

func (s Symbol) String() string { return fmt.Sprintf("Symbol(%s)", s.Description) }

// Function carries a callable's name and full source text for display.
// Name may be empty for anonymous functions.
type Function struct {
	Name   string
	Source string
}

// MapEntry is one key/value pair of a Map.
type MapEntry struct {
	Key   any
	Value any
}

// Map is an insertion-ordered key/value container, the display analog of an
// ES Map. Keys may be any value.
type Map struct {
	entries []MapEntry
	index   map[any]int
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{index: make(map[any]int)}
}

// Set inserts or replaces the value for key, preserving first-insertion
// order. Unhashable keys panic like any Go map key would; callers holding
// such keys should wrap them.
func (m *Map) Set(key, value any) *Map {
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = value
		return m
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, MapEntry{Key: key, Value: value})
	return m
}

// Get returns the value for key.
func (m *Map) Get(key any) (any, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Len returns the entry count.
func (m *Map) Len() int { return len(m.entries) }

// Entries returns the entries in insertion order.
func (m *Map) Entries() []MapEntry { return m.entries }

// Set is an insertion-ordered collection of unique values.
type Set struct {
	values []any
	index  map[any]bool
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{index: make(map[any]bool)}
}

// Add inserts value if not already present.
func (s *Set) Add(value any) *Set {
	if s.index[value] {
		return s
	}
	s.index[value] = true
	s.values = append(s.values, value)
	return s
}

// Len returns the value count.
func (s *Set) Len() int { return len(s.values) }

// Values returns the values in insertion order.
func (s *Set) Values() []any { return s.values }

// Thenable marks promise-like values. The serializer never awaits one; it
// only renders the pending placeholder.
type Thenable interface {
	Then(onResolved func(any), onRejected func(error))
}

// Element is a DOM-element-like value that can serialize its markup.
type Element interface {
	OuterHTML() string
}

// Canvas is a drawable DOM-canvas-like element whose pixels can be encoded
// as a base64 PNG payload.
type Canvas interface {
	Element
	Width() int
	Height() int
	EncodePNG() (string, error)
}

// Surface is a graphics object (a drawing-surface wrapper such as a sketch
// renderer) that exposes its underlying element. TypeName is the label used
// when pixel extraction fails.
type Surface interface {
	TypeName() string
	Elt() Element
}

// StackTracer is implemented by error values that carry a captured stack.
type StackTracer interface {
	Stack() string
}
