package schemaval_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jexpr/jexpr/pkg/engine"
	"github.com/jexpr/jexpr/pkg/packs/schemaval"
	"github.com/jexpr/jexpr/pkg/schema"
)

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return engine.New(engine.Config{Packs: []schema.Pack{schemaval.New()}})
}

func TestConformsTo_ApplyValid(t *testing.T) {
	eng := newEngine(t)

	out, err := eng.Apply(context.Background(),
		map[string]any{"$conformsTo": map[string]any{
			"type":     "object",
			"required": []any{"name"},
			"properties": map[string]any{
				"name": map[string]any{"type": "string"},
				"age":  map[string]any{"type": "integer", "minimum": 0},
			},
		}},
		map[string]any{"name": "ada", "age": 36})
	require.NoError(t, err)
	assert.Equal(t, true, out)
}

func TestConformsTo_ApplyInvalidIsFalse(t *testing.T) {
	eng := newEngine(t)

	out, err := eng.Apply(context.Background(),
		map[string]any{"$conformsTo": map[string]any{
			"type":     "object",
			"required": []any{"name"},
		}},
		map[string]any{"age": 36})
	require.NoError(t, err)
	assert.Equal(t, false, out)
}

func TestConformsTo_WholeNumberFloatIsInteger(t *testing.T) {
	eng := newEngine(t)

	schemaDoc := map[string]any{"type": "integer"}

	out, err := eng.Apply(context.Background(),
		map[string]any{"$conformsTo": schemaDoc}, float64(6))
	require.NoError(t, err)
	assert.Equal(t, true, out)

	out, err = eng.Apply(context.Background(),
		map[string]any{"$conformsTo": schemaDoc}, 6.5)
	require.NoError(t, err)
	assert.Equal(t, false, out)
}

func TestConformsTo_Evaluate(t *testing.T) {
	eng := newEngine(t)

	out, err := eng.Evaluate(context.Background(), map[string]any{"$conformsTo": map[string]any{
		"value":  "hello",
		"schema": map[string]any{"type": "string", "minLength": 3},
	}})
	require.NoError(t, err)
	assert.Equal(t, true, out)

	out, err = eng.Evaluate(context.Background(), map[string]any{"$conformsTo": map[string]any{
		"value":  "hi",
		"schema": map[string]any{"type": "string", "minLength": 3},
	}})
	require.NoError(t, err)
	assert.Equal(t, false, out)
}

func TestConformsTo_EvaluateMissingKeys(t *testing.T) {
	eng := newEngine(t)

	_, err := eng.Evaluate(context.Background(), map[string]any{"$conformsTo": map[string]any{
		"value": 1,
	}})
	require.Error(t, err)

	var e *schema.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, schema.ErrCodeInvalidOperand, e.Code)
}

func TestConformsTo_InvalidSchema(t *testing.T) {
	eng := newEngine(t)

	_, err := eng.Apply(context.Background(),
		map[string]any{"$conformsTo": map[string]any{"type": "not-a-type"}}, "x")
	require.Error(t, err)

	var e *schema.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, schema.ErrCodeValidation, e.Code)
	assert.Equal(t, "$conformsTo", e.Op)
}

func TestConformsTo_SchemaReusedAcrossCalls(t *testing.T) {
	eng := newEngine(t)

	schemaDoc := map[string]any{"type": "number", "minimum": float64(10)}
	for _, tc := range []struct {
		input any
		want  bool
	}{
		{input: 15, want: true},
		{input: 10, want: true},
		{input: 3, want: false},
		{input: "ten", want: false},
	} {
		out, err := eng.Apply(context.Background(),
			map[string]any{"$conformsTo": schemaDoc}, tc.input)
		require.NoError(t, err)
		assert.Equal(t, tc.want, out, "input %v", tc.input)
	}
}
