package base

import (
	"context"

	"github.com/jexpr/jexpr/pkg/schema"
)

func compositionOperations() []schema.Operation {
	return []schema.Operation{
		foldComposition(schema.Sigil+"pipe", false),
		foldComposition(schema.Sigil+"compose", true),
	}
}

// foldComposition folds a sequence of sub-expressions so each result feeds the
// next one's input. $pipe runs left to right; $compose runs right to left
// (mathematical order). The machinery is identical, only the fold direction
// differs.
//
// Apply mode seeds the fold with the input data. Evaluate mode has no input,
// so the seed must be embedded: {"value": <seed>, "steps": [...]}.
func foldComposition(name string, reversed bool) schema.Operation {
	runFold := func(ctx context.Context, ec schema.EvalContext, steps []any, seed any) (any, error) {
		acc := seed
		for i := range steps {
			step := steps[i]
			if reversed {
				step = steps[len(steps)-1-i]
			}
			next, err := ec.Apply(ctx, step, acc)
			if err != nil {
				return nil, err
			}
			acc = next
		}
		return acc, nil
	}

	return schema.Operation{
		Name: name,
		Apply: func(ctx context.Context, operand, input any, ec schema.EvalContext) (any, error) {
			steps, err := requireList(name, operand)
			if err != nil {
				return nil, err
			}
			return runFold(ctx, ec, steps, input)
		},
		Evaluate: func(ctx context.Context, operand any, ec schema.EvalContext) (any, error) {
			m, err := requireMap(name, operand)
			if err != nil {
				return nil, schema.NewError(schema.ErrCodeInvalidOperand,
					`evaluate mode requires an object operand {"value": ..., "steps": [...]}`).WithOp(name)
			}
			rawSeed, ok := m["value"]
			if !ok {
				return nil, schema.NewError(schema.ErrCodeInvalidOperand,
					`evaluate mode requires a "value" seed embedded in the operand`).WithOp(name)
			}
			seed, err := ec.Evaluate(ctx, rawSeed)
			if err != nil {
				return nil, err
			}
			steps, err := requireList(name, m["steps"])
			if err != nil {
				return nil, err
			}
			return runFold(ctx, ec, steps, seed)
		},
	}
}
