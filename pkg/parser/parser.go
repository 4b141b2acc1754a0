// Package parser provides the JavaScript parsing front-end for LeapScript.
//
// # Usage
//
//	prog, err := parser.Parse(ctx, []byte(src))
//	if err != nil {
//	    // handle error
//	}
//	defer prog.Close()
//
// Parsing uses the tree-sitter JavaScript grammar in module mode, so top-level
// import and export declarations are valid input. Every node carries byte
// offsets into the original source, which the transform package relies on for
// offset-based text splicing.
package parser

import (
	"context"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// Node kind names from the tree-sitter JavaScript grammar that the rest of
// the engine dispatches on.
const (
	KindImportStatement     = "import_statement"
	KindFunctionDeclaration = "function_declaration"
	KindGeneratorFunction   = "generator_function_declaration"
	KindLexicalDeclaration  = "lexical_declaration"
	KindVariableDeclaration = "variable_declaration"
	KindVariableDeclarator  = "variable_declarator"
	KindExpressionStatement = "expression_statement"
	KindAssignment          = "assignment_expression"
	KindAugmentedAssignment = "augmented_assignment_expression"
	KindObjectPattern       = "object_pattern"
	KindArrayPattern        = "array_pattern"
	KindPairPattern         = "pair_pattern"
	KindShorthandPattern    = "shorthand_property_identifier_pattern"
	KindObjectAssignPattern = "object_assignment_pattern"
	KindIdentifier          = "identifier"
	KindString              = "string"
	KindStringFragment      = "string_fragment"
	KindImportClause        = "import_clause"
	KindNamespaceImport     = "namespace_import"
	KindNamedImports        = "named_imports"
	KindImportSpecifier     = "import_specifier"
	KindPropertyIdentifier  = "property_identifier"
)

// Statement is one top-level statement with its [Start,End) byte span.
type Statement struct {
	Node  *sitter.Node
	Kind  string
	Start uint32
	End   uint32
}

// Program is a parsed module: the original source plus its top-level
// statement list. Close must be called to release the underlying tree.
type Program struct {
	Source     []byte
	Root       *sitter.Node
	Statements []Statement

	tree *sitter.Tree
}

// Parse parses src as a JavaScript module and returns its top-level
// statements in source order.
func Parse(ctx context.Context, src []byte) (*Program, error) {
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("source is not valid UTF-8")
	}

	p := sitter.NewParser()
	p.SetLanguage(javascript.GetLanguage())

	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}

	root := tree.RootNode()
	prog := &Program{
		Source: src,
		Root:   root,
		tree:   tree,
	}

	count := int(root.NamedChildCount())
	prog.Statements = make([]Statement, 0, count)
	for i := 0; i < count; i++ {
		node := root.NamedChild(i)
		if node.Type() == "comment" {
			continue
		}
		prog.Statements = append(prog.Statements, Statement{
			Node:  node,
			Kind:  node.Type(),
			Start: node.StartByte(),
			End:   node.EndByte(),
		})
	}
	return prog, nil
}

// Close releases the parse tree.
func (p *Program) Close() {
	if p.tree != nil {
		p.tree.Close()
		p.tree = nil
	}
}

// HasError reports whether the tree contains syntax-error or missing nodes.
func (p *Program) HasError() bool {
	return p.Root.HasError()
}

// Text returns the source text for a node.
func (p *Program) Text(n *sitter.Node) string {
	return string(p.Source[n.StartByte():n.EndByte()])
}

// Span returns the source text for a [start,end) byte range.
func (p *Program) Span(start, end uint32) string {
	return string(p.Source[start:end])
}

// Last returns the final top-level statement, or nil for an empty program.
func (p *Program) Last() *Statement {
	if len(p.Statements) == 0 {
		return nil
	}
	return &p.Statements[len(p.Statements)-1]
}
