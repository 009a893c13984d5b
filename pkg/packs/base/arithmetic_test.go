package base_test

import (
	"context"

	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jexpr/jexpr/pkg/schema"
)

func TestArithmetic_EvaluateFolds(t *testing.T) {
	eng := newEngine(t)

	assert.Equal(t, float64(5), evaluate(t, eng, map[string]any{"$add": []any{2, 3}}))
	assert.Equal(t, float64(24), evaluate(t, eng, map[string]any{"$multiply": []any{2, 3, 4}}))
	assert.Equal(t, float64(5), evaluate(t, eng, map[string]any{"$subtract": []any{10, 3, 2}}))
	assert.Equal(t, float64(5), evaluate(t, eng, map[string]any{"$divide": []any{10, 2}}))
	assert.Equal(t, float64(1), evaluate(t, eng, map[string]any{"$modulo": []any{10, 3}}))
}

func TestArithmetic_EmptyOperand(t *testing.T) {
	eng := newEngine(t)

	assert.Equal(t, float64(0), evaluate(t, eng, map[string]any{"$add": []any{}}))
	assert.Equal(t, float64(1), evaluate(t, eng, map[string]any{"$multiply": []any{}}))

	_, err := eng.Evaluate(context.Background(), map[string]any{"$subtract": []any{}})
	assert.ErrorContains(t, err, "non-empty array")
}

func TestArithmetic_DivisionByZero(t *testing.T) {
	eng := newEngine(t)

	_, err := eng.Evaluate(context.Background(), map[string]any{"$divide": []any{1, 0}})
	var e *schema.Error
	assert.ErrorAs(t, err, &e)
	assert.Equal(t, schema.ErrCodeDomain, e.Code)
	assert.Equal(t, "$divide", e.Op)
	assert.Contains(t, e.Error(), "division by zero")

	_, err = eng.Evaluate(context.Background(), map[string]any{"$modulo": []any{1, 0}})
	assert.ErrorContains(t, err, "modulo by zero")
}

func TestArithmetic_ApplyScalarOperand(t *testing.T) {
	eng := newEngine(t)

	assert.Equal(t, float64(8), apply(t, eng, map[string]any{"$add": 5}, 3))
	assert.Equal(t, float64(6), apply(t, eng, map[string]any{"$multiply": 2}, 3))
	assert.Equal(t, float64(1), apply(t, eng, map[string]any{"$subtract": 2}, 3))
}

func TestArithmetic_ApplyNonNumericInput(t *testing.T) {
	eng := newEngine(t)

	e := expectError(t, eng, map[string]any{"$add": 5}, "three")
	assert.Equal(t, schema.ErrCodeDomain, e.Code)
	assert.Equal(t, "$add", e.Op)
}

func TestArithmetic_NestedOperandsResolve(t *testing.T) {
	eng := newEngine(t)
	input := map[string]any{"a": 2, "b": 3}

	expr := map[string]any{"$add": []any{
		map[string]any{"$get": "a"},
		map[string]any{"$get": "b"},
		1,
	}}
	assert.Equal(t, float64(6), apply(t, eng, expr, input))
}
