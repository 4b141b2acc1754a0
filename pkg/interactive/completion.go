// Package interactive implements cursor-based completion and inspection over
// a scope object. Both engines share the constrained evaluators from
// pkg/scope; evaluation failures surface as empty or not-found results and
// never propagate.
package interactive

import (
	"strings"

	"github.com/leapstack-labs/leapscript/pkg/scope"
)

// Completion status values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Completion holds prefix matches plus the replacement span in the original
// source.
type Completion struct {
	Matches     []string `json:"matches"`
	CursorStart int      `json:"cursorStart"`
	CursorEnd   int      `json:"cursorEnd"`
	Status      string   `json:"status"`
}

// stopChars terminate the trailing pseudo-expression on a line. Identifier
// characters, `.`, and brackets stay out of the set so property paths
// survive the scan.
const stopChars = " \t\r\n\"'`~!@#%^&*()-=+{}\\|;:,<>/?"

// Complete returns the property names reachable on the scope (or on a root
// object resolved against it) that match the prefix ending at cursor.
//
// Completion only works with the cursor at the exact end of its line; a
// mid-line cursor yields no matches. This is a known limitation of the
// line-based pseudo-expression scan, not a bug.
func Complete(code string, cursor int, s *scope.Scope, eval scope.Evaluator) Completion {
	empty := Completion{Matches: []string{}, CursorStart: cursor, CursorEnd: cursor, Status: StatusOK}
	if cursor < 0 || cursor > len(code) {
		return empty
	}

	line, lineStart, ok := lineAt(code, cursor)
	if !ok || cursor != lineStart+len(line) {
		return empty
	}

	pseudo := trailingPseudoExpression(line)
	if pseudo == "" {
		return empty
	}

	rootExpr, prefix := splitRoot(pseudo)

	var names []string
	if rootExpr == "" {
		names = s.Names()
	} else {
		root, err := eval.Eval(rootExpr, s)
		if err != nil {
			return Completion{Matches: []string{}, CursorStart: cursor, CursorEnd: cursor, Status: StatusError}
		}
		names = scope.PropertyNames(root)
	}

	matches := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	return Completion{
		Matches:     matches,
		CursorStart: cursor - len(prefix),
		CursorEnd:   cursor,
		Status:      StatusOK,
	}
}

// lineAt locates the line containing offset by scanning line boundaries and
// accumulating offsets. Returns the line text and its start offset.
func lineAt(code string, offset int) (string, int, bool) {
	start := 0
	for {
		end := strings.IndexByte(code[start:], '\n')
		if end < 0 {
			return code[start:], start, offset >= start
		}
		end += start
		if offset <= end {
			return code[start:end], start, true
		}
		start = end + 1
	}
}

// trailingPseudoExpression isolates the substring after the last stop
// character.
func trailingPseudoExpression(line string) string {
	if i := strings.LastIndexAny(line, stopChars); i >= 0 {
		return line[i+1:]
	}
	return line
}

// splitRoot splits a pseudo-expression at the last `.` or `]` into a
// root-object expression and a match prefix. Without a split point the whole
// pseudo-expression is the prefix, matched against the scope directly.
func splitRoot(pseudo string) (string, string) {
	for i := len(pseudo) - 1; i >= 0; i-- {
		switch pseudo[i] {
		case '.':
			return pseudo[:i], pseudo[i+1:]
		case ']':
			return pseudo[:i+1], strings.TrimPrefix(pseudo[i+1:], ".")
		}
	}
	return "", pseudo
}
