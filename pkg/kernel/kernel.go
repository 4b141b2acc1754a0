// Package kernel is the top-level façade of the LeapScript engine. It wires
// the transform pipeline, the display serializer, and the interactive
// engines to one shared namespace and one configuration.
//
// The kernel never executes code itself. A compiled unit body is handed to
// the Host, which represents the external execution environment; successive
// submissions are assumed to be strictly sequential.
package kernel

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/leapscript/pkg/display"
	"github.com/leapstack-labs/leapscript/pkg/interactive"
	"github.com/leapstack-labs/leapscript/pkg/parser"
	"github.com/leapstack-labs/leapscript/pkg/scope"
	"github.com/leapstack-labs/leapscript/pkg/transform"
)

// Kernel owns the shared namespace and configuration for one session.
type Kernel struct {
	resolver transform.Resolver
	ns       *scope.Scope
	eval     scope.Evaluator
	host     transform.Host
	logger   *slog.Logger
	markers  []string
}

// Option configures a Kernel.
type Option func(*Kernel)

// WithResolver sets the magic-import resolver.
func WithResolver(r transform.Resolver) Option {
	return func(k *Kernel) { k.resolver = r }
}

// WithScope supplies an existing shared namespace.
func WithScope(s *scope.Scope) Option {
	return func(k *Kernel) { k.ns = s }
}

// WithEvaluator sets the evaluator used by completion and inspection.
func WithEvaluator(e scope.Evaluator) Option {
	return func(k *Kernel) { k.eval = e }
}

// WithHost sets the execution environment units compile against.
func WithHost(h transform.Host) Option {
	return func(k *Kernel) { k.host = h }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(k *Kernel) { k.logger = l }
}

// WithStackMarkers overrides the internal-frame markers used by
// SanitizeStack.
func WithStackMarkers(markers []string) Option {
	return func(k *Kernel) { k.markers = markers }
}

// New returns a Kernel with the default path evaluator, a fresh namespace,
// and magic imports disabled until configured.
func New(opts ...Option) *Kernel {
	k := &Kernel{
		ns:      scope.New(),
		eval:    scope.PathEvaluator{},
		logger:  slog.Default(),
		markers: defaultStackMarkers,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Scope returns the shared namespace.
func (k *Kernel) Scope() *scope.Scope { return k.ns }

// Transform compiles code into an executable async unit per the rewrite
// pipeline: import rewriting, declaration hoisting, trailing-expression
// capture, composition. Parse failures propagate unmodified.
func (k *Kernel) Transform(ctx context.Context, code string) (*transform.Unit, error) {
	unit, err := transform.Compose(ctx, code, transform.Options{Resolver: k.resolver})
	if err != nil {
		return nil, err
	}
	k.logger.Debug("transformed submission",
		"captures", unit.CapturesValue,
		"imports", len(unit.Imports),
		"hoists", len(unit.Hoists))
	return unit, nil
}

// Bind compiles a unit against the kernel's host.
func (k *Kernel) Bind(ctx context.Context, unit *transform.Unit) (transform.RunFunc, error) {
	return unit.Bind(ctx, k.host)
}

// Serialize converts a runtime value into its display bundle.
func (k *Kernel) Serialize(v any) display.Bundle {
	return display.Serialize(v)
}

// Complete returns completion matches for the cursor position.
func (k *Kernel) Complete(code string, cursor int) interactive.Completion {
	return interactive.Complete(code, cursor, k.ns, k.eval)
}

// Inspect returns documentation for the token at the cursor position.
func (k *Kernel) Inspect(code string, cursor, detail int) interactive.Inspection {
	return interactive.Inspect(code, cursor, detail, k.ns, k.eval)
}

// CheckComplete classifies code for interactive input handling.
func (k *Kernel) CheckComplete(code string) parser.Completeness {
	return parser.CheckCompleteness(code)
}

// ExtractImports returns the static import specifier sets of code without
// rewriting it.
func (k *Kernel) ExtractImports(ctx context.Context, code string) ([]transform.ImportSpec, error) {
	prog, err := parser.Parse(ctx, []byte(code))
	if err != nil {
		return nil, err
	}
	defer prog.Close()
	return transform.ExtractImports(prog), nil
}

// GenerateImportCode regenerates the rewrite output for persisted import
// records, de-duplicated by source.
func (k *Kernel) GenerateImportCode(records []transform.ImportRecord) string {
	return transform.GenerateImportCode(records, k.resolver)
}
