package base

import (
	"context"

	"github.com/jexpr/jexpr/pkg/schema"
)

func arrayOperations() []schema.Operation {
	return []schema.Operation{mapOperation(), filterOperation()}
}

// requireItems enforces the sequence-input contract for array transforms.
func requireItems(op string, v any) ([]any, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, schema.NewErrorf(schema.ErrCodeDomain,
			"requires array input, got %T", v).WithOp(op)
	}
	return items, nil
}

// evaluateItems extracts the embedded {"items": ..., "expr": ...} operand used
// by evaluate mode, where no external input exists.
func evaluateItems(ctx context.Context, op string, operand any, ec schema.EvalContext) ([]any, any, error) {
	m, err := requireMap(op, operand)
	if err != nil {
		return nil, nil, schema.NewError(schema.ErrCodeInvalidOperand,
			`evaluate mode requires an object operand {"items": [...], "expr": ...}`).WithOp(op)
	}
	resolved, err := ec.Evaluate(ctx, m["items"])
	if err != nil {
		return nil, nil, err
	}
	items, err := requireList(op, resolved)
	if err != nil {
		return nil, nil, err
	}
	expr, ok := m["expr"]
	if !ok {
		return nil, nil, schema.NewError(schema.ErrCodeInvalidOperand,
			`evaluate mode requires an "expr" embedded in the operand`).WithOp(op)
	}
	return items, expr, nil
}

// mapOperation applies the operand sub-expression to each element of the
// input sequence, preserving order.
func mapOperation() schema.Operation {
	name := schema.Sigil + "map"
	transform := func(ctx context.Context, ec schema.EvalContext, items []any, expr any) (any, error) {
		out := make([]any, len(items))
		for i, item := range items {
			mapped, err := ec.Apply(ctx, expr, item)
			if err != nil {
				return nil, err
			}
			out[i] = mapped
		}
		return out, nil
	}

	return schema.Operation{
		Name: name,
		Apply: func(ctx context.Context, operand, input any, ec schema.EvalContext) (any, error) {
			items, err := requireItems(name, input)
			if err != nil {
				return nil, err
			}
			return transform(ctx, ec, items, operand)
		},
		Evaluate: func(ctx context.Context, operand any, ec schema.EvalContext) (any, error) {
			items, expr, err := evaluateItems(ctx, name, operand, ec)
			if err != nil {
				return nil, err
			}
			return transform(ctx, ec, items, expr)
		},
	}
}

// filterOperation keeps the elements for which the operand sub-expression
// returns a strict true.
func filterOperation() schema.Operation {
	name := schema.Sigil + "filter"
	keep := func(ctx context.Context, ec schema.EvalContext, items []any, expr any) (any, error) {
		out := make([]any, 0, len(items))
		for _, item := range items {
			verdict, err := ec.Apply(ctx, expr, item)
			if err != nil {
				return nil, err
			}
			b, ok := schema.ToBool(verdict)
			if !ok {
				return nil, schema.NewErrorf(schema.ErrCodeDomain,
					"predicate must return a boolean, got %T", verdict).WithOp(name)
			}
			if b {
				out = append(out, item)
			}
		}
		return out, nil
	}

	return schema.Operation{
		Name: name,
		Apply: func(ctx context.Context, operand, input any, ec schema.EvalContext) (any, error) {
			items, err := requireItems(name, input)
			if err != nil {
				return nil, err
			}
			return keep(ctx, ec, items, operand)
		},
		Evaluate: func(ctx context.Context, operand any, ec schema.EvalContext) (any, error) {
			items, expr, err := evaluateItems(ctx, name, operand, ec)
			if err != nil {
				return nil, err
			}
			return keep(ctx, ec, items, expr)
		},
	}
}
