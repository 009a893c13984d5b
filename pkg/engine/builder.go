package engine

import (
	"context"

	"github.com/jexpr/jexpr/pkg/schema"
)

// buildDefinitions folds base, extension packs and custom into one fresh
// definition map. Later packs win on name collision; custom wins over
// everything except the $literal escape, which is force-installed last.
// Caller-supplied packs are read, never mutated.
func buildDefinitions(basePack schema.Pack, packs []schema.Pack, custom schema.Pack, includeBase bool) map[string]schema.Operation {
	defs := make(map[string]schema.Operation)

	if includeBase {
		for name, op := range basePack {
			defs[name] = op
		}
	}
	for _, pack := range packs {
		for name, op := range pack {
			defs[name] = op
		}
	}
	for name, op := range custom {
		defs[name] = op
	}

	defs[schema.LiteralName] = literalOperation()
	return defs
}

// literalOperation is the fixed escape: both modes return the operand exactly
// as given, with no recursion into it at all, even into nested containers.
func literalOperation() schema.Operation {
	return schema.Operation{
		Name: schema.LiteralName,
		Apply: func(_ context.Context, operand, _ any, _ schema.EvalContext) (any, error) {
			return operand, nil
		},
		Evaluate: func(_ context.Context, operand any, _ schema.EvalContext) (any, error) {
			return operand, nil
		},
	}
}
