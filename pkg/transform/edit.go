// Package transform rewrites JavaScript snippets into executable async units.
//
// The pipeline mirrors how a notebook kernel prepares a cell for evaluation:
// static imports become awaited dynamic imports with resolvable URLs,
// top-level declarations are hoisted into a shared namespace so later
// snippets can see them, and a trailing bare expression is captured as the
// snippet's result. All rewriting is expressed as offset-based text edits
// over the immutable original source.
package transform

import (
	"sort"
	"strings"
)

// Edit replaces the [Start,End) byte range of the original source with
// Replacement. Edits within one composition pass never overlap.
type Edit struct {
	Start       uint32
	End         uint32
	Replacement string
}

// ApplyEdits applies edits to src in strictly descending start order, so
// earlier offsets stay valid while later spans are spliced.
func ApplyEdits(src []byte, edits []Edit) string {
	if len(edits) == 0 {
		return string(src)
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })

	out := string(src)
	var b strings.Builder
	for _, e := range sorted {
		b.Reset()
		b.WriteString(out[:e.Start])
		b.WriteString(e.Replacement)
		b.WriteString(out[e.End:])
		out = b.String()
	}
	return out
}
