package transform

import (
	"strings"

	"github.com/leapstack-labs/leapscript/pkg/parser"
)

// TrailingExpression inspects the last top-level statement of prog. When it
// is a bare expression statement with no assignment and no literal semicolon
// in its tail, the expression is removed from the source and returned so the
// composer can splice in a synthesized return. The second return is the
// expression text.
//
// The semicolon scan looks at literal characters between the expression's
// end and the statement's end. Comments after the statement are outside
// that span, so a semicolon inside a trailing comment does not suppress
// capture; see DESIGN.md.
func TrailingExpression(prog *parser.Program) (*Edit, string, bool) {
	last := prog.Last()
	if last == nil || last.Kind != parser.KindExpressionStatement {
		return nil, "", false
	}

	expr := last.Node.NamedChild(0)
	if expr == nil {
		return nil, "", false
	}
	switch expr.Type() {
	case parser.KindAssignment, parser.KindAugmentedAssignment:
		return nil, "", false
	}

	tail := prog.Span(expr.EndByte(), last.End)
	if strings.Contains(tail, ";") {
		return nil, "", false
	}

	edit := &Edit{Start: expr.StartByte(), End: expr.EndByte()}
	return edit, prog.Text(expr), true
}
