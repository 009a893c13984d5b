// Package script ships embedded-scripting operations: $expr (expr-lang),
// $cel (Common Expression Language) and $jq (gojq). Each operation compiles
// its script once and caches the program, so repeated dispatches of the same
// expression reuse compiled code across goroutines.
package script

import (
	"context"
	"fmt"

	"github.com/jexpr/jexpr/pkg/schema"
)

// New builds the script pack. Construction can fail: the CEL environment is
// compiled eagerly.
func New() (schema.Pack, error) {
	celOp, err := newCELOperation()
	if err != nil {
		return nil, fmt.Errorf("create cel operation: %w", err)
	}
	pack := make(schema.Pack)
	for _, op := range []schema.Operation{
		newExprOperation().operation(),
		celOp.operation(),
		newJQOperation().operation(),
	} {
		pack[op.Name] = op
	}
	return pack, nil
}

// MustNew is New for wiring code where a construction failure is fatal.
func MustNew() schema.Pack {
	pack, err := New()
	if err != nil {
		panic(err)
	}
	return pack
}

// scriptSpec is the parsed operand shared by all three operations.
//
// Apply mode accepts a plain string (the script, evaluated against the input
// data) or {"expr": ...}. Evaluate mode requires the data embedded:
// {"expr": ..., "data": ...}; data defaults to empty.
type scriptSpec struct {
	source string
	data   any
}

func parseOperand(op string, resolved any) (scriptSpec, error) {
	switch v := resolved.(type) {
	case string:
		if v == "" {
			return scriptSpec{}, schema.NewError(schema.ErrCodeValidation, "empty expression").WithOp(op)
		}
		return scriptSpec{source: v}, nil
	case map[string]any:
		source, ok := v["expr"].(string)
		if !ok || source == "" {
			return scriptSpec{}, schema.NewError(schema.ErrCodeValidation,
				`requires a non-empty "expr" string`).WithOp(op)
		}
		return scriptSpec{source: source, data: v["data"]}, nil
	default:
		return scriptSpec{}, schema.NewErrorf(schema.ErrCodeInvalidOperand,
			"requires a string or object operand, got %T", resolved).WithOp(op)
	}
}

// runner evaluates one script source against one data value.
type runner interface {
	name() string
	run(ctx context.Context, source string, data any) (any, error)
}

// bind adapts a runner to the operation contract.
func bind(r runner) schema.Operation {
	op := r.name()
	return schema.Operation{
		Name: op,
		Apply: func(ctx context.Context, operand, input any, ec schema.EvalContext) (any, error) {
			resolved, err := ec.Apply(ctx, operand, input)
			if err != nil {
				return nil, err
			}
			spec, err := parseOperand(op, resolved)
			if err != nil {
				return nil, err
			}
			return r.run(ctx, spec.source, input)
		},
		Evaluate: func(ctx context.Context, operand any, ec schema.EvalContext) (any, error) {
			resolved, err := ec.Evaluate(ctx, operand)
			if err != nil {
				return nil, err
			}
			spec, err := parseOperand(op, resolved)
			if err != nil {
				return nil, err
			}
			return r.run(ctx, spec.source, spec.data)
		},
	}
}
