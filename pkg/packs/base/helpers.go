package base

import (
	"github.com/jexpr/jexpr/pkg/schema"
)

// requireFloat enforces the numeric operand contract for op.
func requireFloat(op string, v any) (float64, error) {
	f, ok := schema.ToFloat(v)
	if !ok {
		return 0, schema.NewErrorf(schema.ErrCodeDomain,
			"requires a number, got %T", v).WithOp(op)
	}
	return f, nil
}

// requireBool enforces the strict-boolean contract for op.
func requireBool(op string, v any) (bool, error) {
	b, ok := schema.ToBool(v)
	if !ok {
		return false, schema.NewErrorf(schema.ErrCodeDomain,
			"requires a boolean, got %T", v).WithOp(op)
	}
	return b, nil
}

// requireString enforces the string contract for op.
func requireString(op string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", schema.NewErrorf(schema.ErrCodeDomain,
			"requires a string, got %T", v).WithOp(op)
	}
	return s, nil
}

// requireList enforces the sequence operand contract for op.
func requireList(op string, v any) ([]any, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, schema.NewErrorf(schema.ErrCodeInvalidOperand,
			"requires an array operand, got %T", v).WithOp(op)
	}
	return list, nil
}

// requireMap enforces the object operand contract for op.
func requireMap(op string, v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, schema.NewErrorf(schema.ErrCodeInvalidOperand,
			"requires an object operand, got %T", v).WithOp(op)
	}
	return m, nil
}

// requirePair enforces the two-element array operand contract used by
// evaluate-mode comparisons and pattern matches.
func requirePair(op string, v any) (any, any, error) {
	list, err := requireList(op, v)
	if err != nil {
		return nil, nil, err
	}
	if len(list) != 2 {
		return nil, nil, schema.NewErrorf(schema.ErrCodeInvalidOperand,
			"requires an array of length 2, got length %d", len(list)).WithOp(op)
	}
	return list[0], list[1], nil
}
