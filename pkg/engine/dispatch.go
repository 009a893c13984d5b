package engine

import (
	"context"

	"github.com/jexpr/jexpr/internal/logging"
	"github.com/jexpr/jexpr/pkg/schema"
)

// apply is the recursive evaluator for apply mode. Rules, in order:
//  1. registered expression: dispatch to the definition's Apply.
//  2. shaped-but-unregistered: diagnostic.
//  3. sequence: map this algorithm over elements with the same input.
//  4. map (not shaped): same-shape map with every value recursively applied.
//  5. scalar/nil: unchanged.
func (e *Engine) apply(ctx context.Context, v, input any, depth int) (any, error) {
	if depth > e.maxDepth {
		return nil, schema.NewError(schema.ErrCodeDomain, "maximum recursion depth exceeded")
	}

	if name, operand, ok := splitExpression(v); ok {
		def, registered := e.defs[name]
		if !registered {
			return nil, e.unrecognized(name)
		}
		if def.Apply == nil {
			return nil, schema.NewErrorf(schema.ErrCodeDomain,
				"operation %q does not support apply mode", name).WithOp(name)
		}
		ctx = logging.WithMode(logging.WithOperation(ctx, name), "apply")
		e.logger.DebugContext(ctx, "dispatch", "op", name, "mode", "apply", "depth", depth)
		return def.Apply(ctx, operand, input, &boundContext{engine: e, depth: depth + 1})
	}

	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			resolved, err := e.apply(ctx, item, input, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			resolved, err := e.apply(ctx, item, input, depth+1)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	default:
		return v, nil
	}
}

// evaluate mirrors apply rule for rule, except the registered case calls the
// definition's Evaluate and no input data exists anywhere in the recursion.
func (e *Engine) evaluate(ctx context.Context, v any, depth int) (any, error) {
	if depth > e.maxDepth {
		return nil, schema.NewError(schema.ErrCodeDomain, "maximum recursion depth exceeded")
	}

	if name, operand, ok := splitExpression(v); ok {
		def, registered := e.defs[name]
		if !registered {
			return nil, e.unrecognized(name)
		}
		if def.Evaluate == nil {
			return nil, schema.NewErrorf(schema.ErrCodeDomain,
				"operation %q does not support evaluate mode", name).WithOp(name)
		}
		ctx = logging.WithMode(logging.WithOperation(ctx, name), "evaluate")
		e.logger.DebugContext(ctx, "dispatch", "op", name, "mode", "evaluate", "depth", depth)
		return def.Evaluate(ctx, operand, &boundContext{engine: e, depth: depth + 1})
	}

	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			resolved, err := e.evaluate(ctx, item, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			resolved, err := e.evaluate(ctx, item, depth+1)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	default:
		return v, nil
	}
}

// boundContext is the EvalContext handed to operation definitions. It carries
// the engine snapshot plus the recursion depth at the point of dispatch, so
// nested callbacks stay inside the depth guard.
type boundContext struct {
	engine *Engine
	depth  int
}

func (c *boundContext) Apply(ctx context.Context, expr, input any) (any, error) {
	return c.engine.apply(ctx, expr, input, c.depth+1)
}

func (c *boundContext) Evaluate(ctx context.Context, expr any) (any, error) {
	return c.engine.evaluate(ctx, expr, c.depth+1)
}

func (c *boundContext) IsExpression(v any) bool {
	return c.engine.IsExpression(v)
}

var _ schema.EvalContext = (*boundContext)(nil)
