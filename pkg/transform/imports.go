package transform

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/leapstack-labs/leapscript/pkg/parser"
)

// NamedImport is one entry of a named-import clause. Local differs from
// Imported only when the declaration uses an `as` alias.
type NamedImport struct {
	Imported string
	Local    string
}

// ImportSpec describes one static import declaration.
type ImportSpec struct {
	Source         string        `json:"source"`
	DefaultLocal   string        `json:"defaultLocal,omitempty"`
	NamespaceLocal string        `json:"namespaceLocal,omitempty"`
	Named          []NamedImport `json:"named,omitempty"`
}

// ImportRecord is a persisted import declaration. The integration layer owns
// the record list across submissions; the transform only consumes Source for
// de-duplication when regenerating replay code.
type ImportRecord struct {
	Source string     `json:"source"`
	Spec   ImportSpec `json:"spec"`
}

// ExtractImports returns the specifier set of every static import
// declaration in prog, in source order.
func ExtractImports(prog *parser.Program) []ImportSpec {
	var specs []ImportSpec
	for i := range prog.Statements {
		stmt := &prog.Statements[i]
		if stmt.Kind != parser.KindImportStatement {
			continue
		}
		specs = append(specs, parseImportStatement(prog, stmt.Node))
	}
	return specs
}

// parseImportStatement decodes one import_statement node.
func parseImportStatement(prog *parser.Program, node *sitter.Node) ImportSpec {
	spec := ImportSpec{}
	if src := node.ChildByFieldName("source"); src != nil {
		spec.Source = stringValue(prog, src)
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != parser.KindImportClause {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			clause := child.NamedChild(j)
			switch clause.Type() {
			case parser.KindIdentifier:
				spec.DefaultLocal = prog.Text(clause)
			case parser.KindNamespaceImport:
				for k := 0; k < int(clause.NamedChildCount()); k++ {
					if id := clause.NamedChild(k); id.Type() == parser.KindIdentifier {
						spec.NamespaceLocal = prog.Text(id)
					}
				}
			case parser.KindNamedImports:
				spec.Named = append(spec.Named, namedImports(prog, clause)...)
			}
		}
	}
	return spec
}

func namedImports(prog *parser.Program, node *sitter.Node) []NamedImport {
	var named []NamedImport
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != parser.KindImportSpecifier {
			continue
		}
		entry := NamedImport{}
		if name := child.ChildByFieldName("name"); name != nil {
			entry.Imported = prog.Text(name)
		}
		entry.Local = entry.Imported
		if alias := child.ChildByFieldName("alias"); alias != nil {
			entry.Local = prog.Text(alias)
		}
		if entry.Imported != "" {
			named = append(named, entry)
		}
	}
	return named
}

// stringValue extracts the content of a string literal node without quotes.
func stringValue(prog *parser.Program, node *sitter.Node) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if frag := node.NamedChild(i); frag.Type() == parser.KindStringFragment {
			return prog.Text(frag)
		}
	}
	// Empty string literal has no fragment child.
	return strings.Trim(prog.Text(node), `"'`)
}

// RewriteImports rewrites every static import in prog into an awaited
// dynamic import. Edits are produced in reverse node order so earlier
// offsets remain stable; hoists come back in source order.
func RewriteImports(prog *parser.Program, r Resolver) ([]Edit, []Hoist, []ImportSpec) {
	var (
		edits  []Edit
		hoists [][]Hoist
		specs  []ImportSpec
	)
	for i := range prog.Statements {
		stmt := &prog.Statements[i]
		if stmt.Kind != parser.KindImportStatement {
			continue
		}
		spec := parseImportStatement(prog, stmt.Node)
		replacement, stmtHoists := rewriteImport(spec, r)
		specs = append(specs, spec)
		hoists = append(hoists, stmtHoists)
		edits = append(edits, Edit{Start: stmt.Start, End: stmt.End, Replacement: replacement})
	}

	// Reverse the edit list: callers splice descending by start offset and
	// the reference rewriter visits nodes back-to-front.
	for i, j := 0, len(edits)-1; i < j; i, j = i+1, j-1 {
		edits[i], edits[j] = edits[j], edits[i]
	}

	var flat []Hoist
	for _, h := range hoists {
		flat = append(flat, h...)
	}
	return edits, flat, specs
}

// rewriteImport renders the dynamic-import replacement for one declaration
// and the hoists that expose its bindings.
//
// Named imports are destructured by their imported name even when the
// declaration aliases them, while the hoist targets the alias. An aliased
// import therefore references an unbound name at execution time. This
// replicates the reference engine's behavior; see DESIGN.md.
func rewriteImport(spec ImportSpec, r Resolver) (string, []Hoist) {
	resolved := r.Resolve(spec.Source)

	var (
		parts  []string
		hoists []Hoist
	)
	if spec.DefaultLocal != "" {
		parts = append(parts, fmt.Sprintf("default: %s", spec.DefaultLocal))
		hoists = append(hoists, Hoist{Local: spec.DefaultLocal, Key: spec.DefaultLocal})
	}
	for _, n := range spec.Named {
		parts = append(parts, n.Imported)
		hoists = append(hoists, Hoist{Local: n.Local, Key: n.Local})
	}

	switch {
	case spec.NamespaceLocal != "":
		hoists = append(hoists, Hoist{Local: spec.NamespaceLocal, Key: spec.NamespaceLocal})
		return fmt.Sprintf("const %s = await import(%q);", spec.NamespaceLocal, resolved), hoists
	case len(parts) > 0:
		return fmt.Sprintf("const { %s } = await import(%q);", strings.Join(parts, ", "), resolved), hoists
	default:
		// Side-effect import: no bindings, no hoists.
		return fmt.Sprintf("await import(%q);", resolved), nil
	}
}

// GenerateImportCode regenerates import-rewrite output for a list of
// persisted records, de-duplicated by source. Later snippets replay this
// preamble so previously imported modules stay visible.
func GenerateImportCode(records []ImportRecord, r Resolver) string {
	seen := make(map[string]bool, len(records))
	var b strings.Builder
	for _, rec := range records {
		if rec.Source == "" || seen[rec.Source] {
			continue
		}
		seen[rec.Source] = true

		replacement, hoists := rewriteImport(rec.Spec, r)
		b.WriteString(replacement)
		b.WriteString("\n")
		for _, h := range hoists {
			b.WriteString(h.Statement())
			b.WriteString("\n")
		}
	}
	return b.String()
}
