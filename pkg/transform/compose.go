package transform

import (
	"context"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapscript/pkg/parser"
)

// Options configures a composition pass.
type Options struct {
	Resolver Resolver
}

// RunFunc executes a compiled unit. When the unit captures a value, the
// resolved slice holds the snippet's logical result at index 0.
type RunFunc func(ctx context.Context) ([]any, error)

// Host compiles a composed async function body against an execution
// environment. The environment itself (the object code actually runs
// against) is an external collaborator; the engine only prepares the body.
type Host interface {
	Compile(ctx context.Context, body string) (RunFunc, error)
}

// Unit is one composed, executable submission.
type Unit struct {
	// Body is the async function body: edited source, hoist statements,
	// then the optional synthesized return.
	Body string
	// CapturesValue reports whether running the unit yields the trailing
	// expression's value as the first element of the resolved slice.
	CapturesValue bool
	// Hoists are the namespace bindings the unit installs, in declaration
	// order.
	Hoists []Hoist
	// Imports are the static import declarations the unit rewrote.
	Imports []ImportSpec
}

// Bind compiles the unit against host and returns the runnable.
func (u *Unit) Bind(ctx context.Context, host Host) (RunFunc, error) {
	run, err := host.Compile(ctx, u.Body)
	if err != nil {
		return nil, fmt.Errorf("compile unit: %w", err)
	}
	return run, nil
}

// Compose transforms code into a single executable async unit body.
//
// The pass applies import rewrites and the trailing-expression removal as
// one descending-offset edit batch, then appends hoist statements and the
// optional synthesized return. Empty input short-circuits to a no-op unit.
// Parse failures propagate unmodified; they are fatal for the submission.
func Compose(ctx context.Context, code string, opts Options) (*Unit, error) {
	if strings.TrimSpace(code) == "" {
		return &Unit{}, nil
	}
	if err := parser.Validate(code); err != nil {
		return nil, err
	}

	prog, err := parser.Parse(ctx, []byte(code))
	if err != nil {
		return nil, err
	}
	defer prog.Close()

	var (
		edits  []Edit
		hoists []Hoist
		specs  []ImportSpec
	)
	for i := range prog.Statements {
		stmt := &prog.Statements[i]
		if stmt.Kind == parser.KindImportStatement {
			spec := parseImportStatement(prog, stmt.Node)
			replacement, stmtHoists := rewriteImport(spec, opts.Resolver)
			edits = append(edits, Edit{Start: stmt.Start, End: stmt.End, Replacement: replacement})
			hoists = append(hoists, stmtHoists...)
			specs = append(specs, spec)
			continue
		}
		hoists = append(hoists, statementHoists(prog, stmt)...)
	}

	trailingEdit, exprText, captures := TrailingExpression(prog)
	if captures {
		edits = append(edits, *trailingEdit)
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(ApplyEdits(prog.Source, edits), " \t\n"))
	for _, h := range hoists {
		b.WriteString("\n")
		b.WriteString(h.Statement())
	}
	if captures {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("return [%s];", exprText))
	}

	return &Unit{
		Body:          strings.TrimLeft(b.String(), "\n"),
		CapturesValue: captures,
		Hoists:        hoists,
		Imports:       specs,
	}, nil
}
