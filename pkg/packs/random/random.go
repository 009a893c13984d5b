// Package random ships generative operations: $uuid, $random and $randomInt.
// Like the temporal pack, apply and evaluate behave identically and the input
// data is ignored.
package random

import (
	"context"
	"math/rand"

	"github.com/google/uuid"

	"github.com/jexpr/jexpr/pkg/schema"
)

const (
	opUUID      = schema.Sigil + "uuid"
	opRandom    = schema.Sigil + "random"
	opRandomInt = schema.Sigil + "randomInt"
)

// New returns the random pack.
func New() schema.Pack {
	pack := make(schema.Pack)
	for _, op := range []schema.Operation{
		generative(opUUID, func() any { return uuid.NewString() }),
		generative(opRandom, func() any { return rand.Float64() }),
		randomIntOperation(),
	} {
		pack[op.Name] = op
	}
	return pack
}

func generative(name string, produce func() any) schema.Operation {
	return schema.Operation{
		Name: name,
		Apply: func(_ context.Context, _, _ any, _ schema.EvalContext) (any, error) {
			return produce(), nil
		},
		Evaluate: func(_ context.Context, _ any, _ schema.EvalContext) (any, error) {
			return produce(), nil
		},
	}
}

// randomIntOperation draws a uniform integer from the inclusive range
// {"min": ..., "max": ...}.
func randomIntOperation() schema.Operation {
	draw := func(resolved any) (any, error) {
		m, ok := resolved.(map[string]any)
		if !ok {
			return nil, schema.NewErrorf(schema.ErrCodeInvalidOperand,
				`requires an object operand {"min": ..., "max": ...}, got %T`, resolved).WithOp(opRandomInt)
		}
		minF, ok := schema.ToFloat(m["min"])
		if !ok {
			return nil, schema.NewError(schema.ErrCodeInvalidOperand,
				`requires a numeric "min"`).WithOp(opRandomInt)
		}
		maxF, ok := schema.ToFloat(m["max"])
		if !ok {
			return nil, schema.NewError(schema.ErrCodeInvalidOperand,
				`requires a numeric "max"`).WithOp(opRandomInt)
		}
		lo, hi := int64(minF), int64(maxF)
		if lo > hi {
			return nil, schema.NewErrorf(schema.ErrCodeInvalidOperand,
				"min %d is greater than max %d", lo, hi).WithOp(opRandomInt)
		}
		return lo + rand.Int63n(hi-lo+1), nil
	}

	return schema.Operation{
		Name: opRandomInt,
		Apply: func(ctx context.Context, operand, input any, ec schema.EvalContext) (any, error) {
			resolved, err := ec.Apply(ctx, operand, input)
			if err != nil {
				return nil, err
			}
			return draw(resolved)
		},
		Evaluate: func(ctx context.Context, operand any, ec schema.EvalContext) (any, error) {
			resolved, err := ec.Evaluate(ctx, operand)
			if err != nil {
				return nil, err
			}
			return draw(resolved)
		},
	}
}
