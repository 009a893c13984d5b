// Package engine implements the jexpr tree-walking interpreter: pack
// composition, expression recognition, the dual-mode dispatcher and
// diagnostics for malformed expressions.
package engine

import (
	"context"
	"log/slog"
	"sort"

	"github.com/jexpr/jexpr/pkg/packs/base"
	"github.com/jexpr/jexpr/pkg/schema"
)

// DefaultMaxDepth bounds expression-tree recursion. Cyclic or pathologically
// deep input is rejected with a DOMAIN_ERROR instead of overflowing the stack.
const DefaultMaxDepth = 10_000

// Config controls engine construction.
type Config struct {
	// Packs are folded in order; later packs replace earlier definitions by
	// name, whole-definition replacement.
	Packs []schema.Pack
	// Custom is a single pack folded last, with the highest precedence.
	Custom schema.Pack
	// DisableBase skips the base pack. The zero value includes it.
	DisableBase bool
	// MaxDepth bounds recursion depth. Zero means DefaultMaxDepth.
	MaxDepth int
	// Logger receives debug-level dispatch records. Nil means slog.Default().
	Logger *slog.Logger
}

// Engine is an immutable evaluator closed over one pack composition.
// It is safe for concurrent use: construction is the only mutation.
type Engine struct {
	defs     map[string]schema.Operation
	names    []string
	maxDepth int
	logger   *slog.Logger
}

// New builds an Engine from the configuration. The definition map is a pure
// fold over base, packs and custom; caller-supplied packs are never mutated.
// The $literal escape is always installed last and cannot be shadowed.
func New(cfg Config) *Engine {
	defs := buildDefinitions(base.New(), cfg.Packs, cfg.Custom, !cfg.DisableBase)

	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		defs:     defs,
		names:    names,
		maxDepth: maxDepth,
		logger:   logger,
	}
}

// Apply evaluates expr bound to external input data. Nested expressions
// anywhere inside expr resolve against the same input.
func (e *Engine) Apply(ctx context.Context, expr, input any) (any, error) {
	return e.apply(ctx, expr, input, 0)
}

// Evaluate evaluates a self-contained expr. No external input data exists
// anywhere in the recursion.
func (e *Engine) Evaluate(ctx context.Context, expr any) (any, error) {
	return e.evaluate(ctx, expr, 0)
}

// IsExpression reports whether v is a single-key, sigil-prefixed map whose key
// names a registered operation.
func (e *Engine) IsExpression(v any) bool {
	name, _, ok := splitExpression(v)
	if !ok {
		return false
	}
	_, registered := e.defs[name]
	return registered
}

// ExpressionNames returns the sorted names of all registered operations.
func (e *Engine) ExpressionNames() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}
