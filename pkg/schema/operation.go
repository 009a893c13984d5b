package schema

import (
	"context"
	"strings"
)

// Sigil is the prefix every operation name carries. A single-key map whose key
// starts with the sigil is expression-shaped; everything else is plain data.
const Sigil = "$"

// LiteralName is the fixed escape operation. It is force-installed into every
// engine and cannot be shadowed by packs or custom definitions. Both of its
// modes return the operand completely unresolved, with zero traversal.
const LiteralName = Sigil + "literal"

// ApplyFunc evaluates an operand against external input data. The EvalContext
// is bound to the engine snapshot that dispatched the call, so nested
// sub-expressions resolve against the same definition set.
type ApplyFunc func(ctx context.Context, operand, input any, ec EvalContext) (any, error)

// EvaluateFunc evaluates a self-contained operand. No external input data
// exists anywhere in the recursion; values the operation needs must already be
// embedded in the operand itself.
type EvaluateFunc func(ctx context.Context, operand any, ec EvalContext) (any, error)

// Operation is one named operation definition. A nil mode function declares
// that the mode is unsupported; dispatching it raises a DOMAIN_ERROR naming
// the operation and the mode.
type Operation struct {
	Name     string
	Apply    ApplyFunc
	Evaluate EvaluateFunc
}

// Pack is a composable bundle of operation definitions keyed by name.
// Merge order is significant: later packs replace earlier ones whole,
// definition by definition, never field by field.
type Pack map[string]Operation

// EvalContext is the evaluation surface handed to every operation call. It is
// bound to one immutable engine snapshot, so custom and built-in operations
// compose transparently regardless of registration order.
type EvalContext interface {
	// Apply resolves expr against input data, recursing into nested
	// expressions with the same input.
	Apply(ctx context.Context, expr, input any) (any, error)
	// Evaluate resolves expr with no external input data.
	Evaluate(ctx context.Context, expr any) (any, error)
	// IsExpression reports whether v is a registered expression.
	IsExpression(v any) bool
}

// IsOperationName reports whether name carries the sigil prefix.
func IsOperationName(name string) bool {
	return strings.HasPrefix(name, Sigil)
}
