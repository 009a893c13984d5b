package base

import (
	"context"

	"github.com/jexpr/jexpr/pkg/schema"
)

func booleanOperations() []schema.Operation {
	return []schema.Operation{
		junctionOperation(schema.Sigil+"and", func(values []bool) bool {
			for _, v := range values {
				if !v {
					return false
				}
			}
			return true
		}),
		junctionOperation(schema.Sigil+"or", func(values []bool) bool {
			for _, v := range values {
				if v {
					return true
				}
			}
			return false
		}),
		notOperation(),
	}
}

// junctionOperation resolves every element of the operand array and combines
// the strict booleans. All elements are resolved before combining: a failing
// sub-expression aborts the whole evaluation regardless of position.
func junctionOperation(name string, combine func([]bool) bool) schema.Operation {
	gather := func(op string, resolved any) ([]bool, error) {
		list, err := requireList(op, resolved)
		if err != nil {
			return nil, err
		}
		out := make([]bool, len(list))
		for i, item := range list {
			b, err := requireBool(op, item)
			if err != nil {
				return nil, err
			}
			out[i] = b
		}
		return out, nil
	}

	return schema.Operation{
		Name: name,
		Apply: func(ctx context.Context, operand, input any, ec schema.EvalContext) (any, error) {
			resolved, err := ec.Apply(ctx, operand, input)
			if err != nil {
				return nil, err
			}
			values, err := gather(name, resolved)
			if err != nil {
				return nil, err
			}
			return combine(values), nil
		},
		Evaluate: func(ctx context.Context, operand any, ec schema.EvalContext) (any, error) {
			resolved, err := ec.Evaluate(ctx, operand)
			if err != nil {
				return nil, err
			}
			values, err := gather(name, resolved)
			if err != nil {
				return nil, err
			}
			return combine(values), nil
		},
	}
}

func notOperation() schema.Operation {
	name := schema.Sigil + "not"
	return schema.Operation{
		Name: name,
		Apply: func(ctx context.Context, operand, input any, ec schema.EvalContext) (any, error) {
			resolved, err := ec.Apply(ctx, operand, input)
			if err != nil {
				return nil, err
			}
			b, err := requireBool(name, resolved)
			if err != nil {
				return nil, err
			}
			return !b, nil
		},
		Evaluate: func(ctx context.Context, operand any, ec schema.EvalContext) (any, error) {
			resolved, err := ec.Evaluate(ctx, operand)
			if err != nil {
				return nil, err
			}
			b, err := requireBool(name, resolved)
			if err != nil {
				return nil, err
			}
			return !b, nil
		},
	}
}
