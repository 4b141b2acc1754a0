package transform

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/leapstack-labs/leapscript/pkg/parser"
)

// Hoist copies the value of a local binding into the shared namespace under
// Key. Key defaults to the local name.
type Hoist struct {
	Local string
	Key   string
}

// Statement renders the hoist as executable code against the shared
// namespace object.
func (h Hoist) Statement() string {
	return fmt.Sprintf("globalThis[%q] = %s;", h.Key, h.Local)
}

// HoistBindings walks the top-level statements of prog and returns the hoist
// bindings for every function and variable declaration, in declaration
// order. Duplicates are not removed; at execution time the last write wins.
func HoistBindings(prog *parser.Program) []Hoist {
	var hoists []Hoist
	for i := range prog.Statements {
		hoists = append(hoists, statementHoists(prog, &prog.Statements[i])...)
	}
	return hoists
}

// statementHoists returns the hoists for a single top-level statement.
// Import statements are handled by the import rewriter, not here.
func statementHoists(prog *parser.Program, stmt *parser.Statement) []Hoist {
	switch stmt.Kind {
	case parser.KindFunctionDeclaration, parser.KindGeneratorFunction:
		if name := stmt.Node.ChildByFieldName("name"); name != nil {
			text := prog.Text(name)
			return []Hoist{{Local: text, Key: text}}
		}
	case parser.KindLexicalDeclaration, parser.KindVariableDeclaration:
		var hoists []Hoist
		for i := 0; i < int(stmt.Node.NamedChildCount()); i++ {
			child := stmt.Node.NamedChild(i)
			if child.Type() != parser.KindVariableDeclarator {
				continue
			}
			hoists = append(hoists, declaratorHoists(prog, child)...)
		}
		return hoists
	}
	return nil
}

// declaratorHoists extracts hoists from one variable declarator target.
func declaratorHoists(prog *parser.Program, declarator *sitter.Node) []Hoist {
	target := declarator.ChildByFieldName("name")
	if target == nil {
		return nil
	}

	switch target.Type() {
	case parser.KindIdentifier:
		text := prog.Text(target)
		return []Hoist{{Local: text, Key: text}}
	case parser.KindObjectPattern:
		return objectPatternHoists(prog, target)
	case parser.KindArrayPattern:
		var hoists []Hoist
		for i := 0; i < int(target.NamedChildCount()); i++ {
			elt := target.NamedChild(i)
			if elt.Type() == parser.KindIdentifier {
				text := prog.Text(elt)
				hoists = append(hoists, Hoist{Local: text, Key: text})
			}
		}
		return hoists
	}
	return nil
}

// objectPatternHoists handles object-destructuring targets. A `default:`
// property key hoists the bound local under its own name, which covers the
// `const { default: X } = await import(...)` shape produced by import
// replay; every other property hoists under the property key.
func objectPatternHoists(prog *parser.Program, pattern *sitter.Node) []Hoist {
	var hoists []Hoist
	for i := 0; i < int(pattern.NamedChildCount()); i++ {
		prop := pattern.NamedChild(i)
		switch prop.Type() {
		case parser.KindShorthandPattern:
			text := prog.Text(prop)
			hoists = append(hoists, Hoist{Local: text, Key: text})
		case parser.KindPairPattern:
			key := prop.ChildByFieldName("key")
			value := prop.ChildByFieldName("value")
			if key == nil {
				continue
			}
			keyText := prog.Text(key)
			if keyText == "default" && value != nil && value.Type() == parser.KindIdentifier {
				local := prog.Text(value)
				hoists = append(hoists, Hoist{Local: local, Key: local})
				continue
			}
			hoists = append(hoists, Hoist{Local: keyText, Key: keyText})
		case parser.KindObjectAssignPattern:
			if left := prop.ChildByFieldName("left"); left != nil && left.Type() == parser.KindShorthandPattern {
				text := prog.Text(left)
				hoists = append(hoists, Hoist{Local: text, Key: text})
			}
		}
	}
	return hoists
}
