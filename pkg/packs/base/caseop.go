package base

import (
	"context"

	"github.com/jexpr/jexpr/pkg/schema"
)

const opCase = schema.Sigil + "case"

func caseOperations() []schema.Operation {
	return []schema.Operation{caseOperation()}
}

// caseOperation matches a subject against ordered branches. Per branch, a
// "when" clause that is a registered expression is applied to the subject and
// must return a strict boolean; any other "when" value compares by deep
// structural equality. First match wins, otherwise the default branch.
//
// Operand: {"cases": [{"when": ..., "then": ...}, ...], "default": ...}.
// Apply mode matches against the input data; evaluate mode matches against an
// embedded "value" in the operand.
func caseOperation() schema.Operation {
	return schema.Operation{
		Name: opCase,
		Apply: func(ctx context.Context, operand, input any, ec schema.EvalContext) (any, error) {
			m, err := requireMap(opCase, operand)
			if err != nil {
				return nil, err
			}
			return matchCase(ctx, ec, m, input)
		},
		Evaluate: func(ctx context.Context, operand any, ec schema.EvalContext) (any, error) {
			m, err := requireMap(opCase, operand)
			if err != nil {
				return nil, err
			}
			rawSubject, ok := m["value"]
			if !ok {
				return nil, schema.NewError(schema.ErrCodeInvalidOperand,
					`evaluate mode requires a "value" subject embedded in the operand`).WithOp(opCase)
			}
			subject, err := ec.Evaluate(ctx, rawSubject)
			if err != nil {
				return nil, err
			}
			return matchCase(ctx, ec, m, subject)
		},
	}
}

func matchCase(ctx context.Context, ec schema.EvalContext, operand map[string]any, subject any) (any, error) {
	branches, err := requireList(opCase, operand["cases"])
	if err != nil {
		return nil, schema.NewError(schema.ErrCodeInvalidOperand,
			`requires a "cases" array of {"when": ..., "then": ...} branches`).WithOp(opCase)
	}

	for i, raw := range branches {
		branch, ok := raw.(map[string]any)
		if !ok {
			return nil, schema.NewErrorf(schema.ErrCodeInvalidOperand,
				"branch %d must be an object with \"when\" and \"then\", got %T", i, raw).WithOp(opCase)
		}
		when, hasWhen := branch["when"]
		then, hasThen := branch["then"]
		if !hasWhen || !hasThen {
			return nil, schema.NewErrorf(schema.ErrCodeInvalidOperand,
				"branch %d must carry both \"when\" and \"then\"", i).WithOp(opCase)
		}

		matched, err := branchMatches(ctx, ec, when, subject, i)
		if err != nil {
			return nil, err
		}
		if matched {
			return ec.Apply(ctx, then, subject)
		}
	}

	if fallback, ok := operand["default"]; ok {
		return ec.Apply(ctx, fallback, subject)
	}
	return nil, schema.NewError(schema.ErrCodeDomain,
		"no branch matched and no default was provided").WithOp(opCase)
}

// branchMatches classifies the when clause: a registered expression is a
// predicate applied to the subject; everything else — including
// expression-shaped-but-unregistered data wrapped in $literal, and plain
// values that merely coincide with operation names — compares structurally.
func branchMatches(ctx context.Context, ec schema.EvalContext, when, subject any, index int) (bool, error) {
	if ec.IsExpression(when) {
		result, err := ec.Apply(ctx, when, subject)
		if err != nil {
			return false, err
		}
		b, ok := schema.ToBool(result)
		if !ok {
			return false, schema.NewErrorf(schema.ErrCodeDomain,
				"predicate in branch %d must return a boolean, got %T", index, result).WithOp(opCase)
		}
		return b, nil
	}
	return schema.DeepEqual(when, subject), nil
}
