package base

import (
	"context"
	"math"

	"github.com/jexpr/jexpr/pkg/schema"
)

func arithmeticOperations() []schema.Operation {
	return []schema.Operation{
		foldArithmetic(schema.Sigil+"add", identity(0), func(acc, x float64) (float64, error) {
			return acc + x, nil
		}),
		foldArithmetic(schema.Sigil+"multiply", identity(1), func(acc, x float64) (float64, error) {
			return acc * x, nil
		}),
		foldArithmetic(schema.Sigil+"subtract", nil, func(acc, x float64) (float64, error) {
			return acc - x, nil
		}),
		foldArithmetic(schema.Sigil+"divide", nil, func(acc, x float64) (float64, error) {
			if x == 0 {
				return 0, schema.NewError(schema.ErrCodeDomain, "division by zero")
			}
			return acc / x, nil
		}),
		foldArithmetic(schema.Sigil+"modulo", nil, func(acc, x float64) (float64, error) {
			if x == 0 {
				return 0, schema.NewError(schema.ErrCodeDomain, "modulo by zero")
			}
			return math.Mod(acc, x), nil
		}),
	}
}

func identity(v float64) *float64 { return &v }

// foldArithmetic builds an arithmetic operation folding left over a numeric
// sequence. Operations without an identity (subtract, divide, modulo) seed the
// fold with the first element and reject empty operands.
//
// Apply mode additionally accepts a single numeric operand, yielding
// input ∘ operand, so pipelines can write {"$add": 1} against a numeric input.
func foldArithmetic(name string, identity *float64, step func(acc, x float64) (float64, error)) schema.Operation {
	fold := func(list []any) (any, error) {
		if len(list) == 0 {
			if identity == nil {
				return nil, schema.NewError(schema.ErrCodeInvalidOperand,
					"requires a non-empty array operand").WithOp(name)
			}
			return *identity, nil
		}
		acc, err := requireFloat(name, list[0])
		if err != nil {
			return nil, err
		}
		if identity != nil {
			first, stepErr := step(*identity, acc)
			if stepErr != nil {
				return nil, withOp(stepErr, name)
			}
			acc = first
		}
		for _, item := range list[1:] {
			x, err := requireFloat(name, item)
			if err != nil {
				return nil, err
			}
			if acc, err = step(acc, x); err != nil {
				return nil, withOp(err, name)
			}
		}
		return acc, nil
	}

	return schema.Operation{
		Name: name,
		Apply: func(ctx context.Context, operand, input any, ec schema.EvalContext) (any, error) {
			resolved, err := ec.Apply(ctx, operand, input)
			if err != nil {
				return nil, err
			}
			if list, ok := resolved.([]any); ok {
				return fold(list)
			}
			x, err := requireFloat(name, resolved)
			if err != nil {
				return nil, err
			}
			in, err := requireFloat(name, input)
			if err != nil {
				return nil, err
			}
			out, err := step(in, x)
			if err != nil {
				return nil, withOp(err, name)
			}
			return out, nil
		},
		Evaluate: func(ctx context.Context, operand any, ec schema.EvalContext) (any, error) {
			resolved, err := ec.Evaluate(ctx, operand)
			if err != nil {
				return nil, err
			}
			list, err := requireList(name, resolved)
			if err != nil {
				return nil, err
			}
			return fold(list)
		},
	}
}

// withOp stamps the operation name onto structured errors raised by fold steps.
func withOp(err error, op string) error {
	if e, ok := err.(*schema.Error); ok && e.Op == "" {
		return e.WithOp(op)
	}
	return err
}
