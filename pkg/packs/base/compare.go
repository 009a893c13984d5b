package base

import (
	"context"
	"strings"

	"github.com/jexpr/jexpr/pkg/schema"
)

func comparisonOperations() []schema.Operation {
	return []schema.Operation{
		equalityOperation(schema.Sigil+"eq", true),
		equalityOperation(schema.Sigil+"ne", false),
		orderingOperation(schema.Sigil+"gt", func(c int) bool { return c > 0 }),
		orderingOperation(schema.Sigil+"gte", func(c int) bool { return c >= 0 }),
		orderingOperation(schema.Sigil+"lt", func(c int) bool { return c < 0 }),
		orderingOperation(schema.Sigil+"lte", func(c int) bool { return c <= 0 }),
	}
}

// equalityOperation compares by deep structural equality with numeric
// normalization. Apply mode compares the input against the resolved operand;
// evaluate mode requires a two-element operand array.
func equalityOperation(name string, want bool) schema.Operation {
	return schema.Operation{
		Name: name,
		Apply: func(ctx context.Context, operand, input any, ec schema.EvalContext) (any, error) {
			resolved, err := ec.Apply(ctx, operand, input)
			if err != nil {
				return nil, err
			}
			return schema.DeepEqual(input, resolved) == want, nil
		},
		Evaluate: func(ctx context.Context, operand any, ec schema.EvalContext) (any, error) {
			resolved, err := ec.Evaluate(ctx, operand)
			if err != nil {
				return nil, err
			}
			a, b, err := requirePair(name, resolved)
			if err != nil {
				return nil, err
			}
			return schema.DeepEqual(a, b) == want, nil
		},
	}
}

// orderingOperation compares numbers numerically and strings
// lexicographically. Mixed or unsupported types are a domain error.
func orderingOperation(name string, accept func(int) bool) schema.Operation {
	return schema.Operation{
		Name: name,
		Apply: func(ctx context.Context, operand, input any, ec schema.EvalContext) (any, error) {
			resolved, err := ec.Apply(ctx, operand, input)
			if err != nil {
				return nil, err
			}
			c, err := compareValues(name, input, resolved)
			if err != nil {
				return nil, err
			}
			return accept(c), nil
		},
		Evaluate: func(ctx context.Context, operand any, ec schema.EvalContext) (any, error) {
			resolved, err := ec.Evaluate(ctx, operand)
			if err != nil {
				return nil, err
			}
			a, b, err := requirePair(name, resolved)
			if err != nil {
				return nil, err
			}
			c, err := compareValues(name, a, b)
			if err != nil {
				return nil, err
			}
			return accept(c), nil
		},
	}
}

func compareValues(op string, a, b any) (int, error) {
	if af, ok := schema.ToFloat(a); ok {
		bf, ok := schema.ToFloat(b)
		if !ok {
			return 0, schema.NewErrorf(schema.ErrCodeDomain,
				"cannot compare number with %T", b).WithOp(op)
		}
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	}
	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		if !ok {
			return 0, schema.NewErrorf(schema.ErrCodeDomain,
				"cannot compare string with %T", b).WithOp(op)
		}
		return strings.Compare(as, bs), nil
	}
	return 0, schema.NewErrorf(schema.ErrCodeDomain,
		"cannot order values of type %T", a).WithOp(op)
}
