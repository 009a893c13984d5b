package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jexpr/jexpr/pkg/schema"
)

// constOperation returns a definition that yields the same value in both modes.
func constOperation(name string, value any) schema.Operation {
	return schema.Operation{
		Name: name,
		Apply: func(_ context.Context, _, _ any, _ schema.EvalContext) (any, error) {
			return value, nil
		},
		Evaluate: func(_ context.Context, _ any, _ schema.EvalContext) (any, error) {
			return value, nil
		},
	}
}

func TestBuilder_PackOrderPrecedence(t *testing.T) {
	packA := schema.Pack{"$which": constOperation("$which", "A")}
	packB := schema.Pack{"$which": constOperation("$which", "B")}

	eng := New(Config{Packs: []schema.Pack{packA, packB}})

	out, err := eng.Evaluate(context.Background(), map[string]any{"$which": nil})
	require.NoError(t, err)
	assert.Equal(t, "B", out)
}

func TestBuilder_CustomWinsOverPacks(t *testing.T) {
	packA := schema.Pack{"$which": constOperation("$which", "A")}
	custom := schema.Pack{"$which": constOperation("$which", "custom")}

	eng := New(Config{Packs: []schema.Pack{packA}, Custom: custom})

	out, err := eng.Evaluate(context.Background(), map[string]any{"$which": nil})
	require.NoError(t, err)
	assert.Equal(t, "custom", out)
}

func TestBuilder_CustomOverridesBase(t *testing.T) {
	custom := schema.Pack{"$add": constOperation("$add", "overridden")}

	eng := New(Config{Custom: custom})

	out, err := eng.Evaluate(context.Background(), map[string]any{"$add": []any{2, 3}})
	require.NoError(t, err)
	assert.Equal(t, "overridden", out)
}

func TestBuilder_DisableBase(t *testing.T) {
	eng := New(Config{DisableBase: true})

	_, err := eng.Apply(context.Background(), map[string]any{"$gte": 5}, 6)
	require.Error(t, err)

	var e *schema.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, schema.ErrCodeUnrecognizedOperation, e.Code)

	// The literal escape survives even without the base pack.
	out, err := eng.Apply(context.Background(), map[string]any{"$literal": map[string]any{"$gte": 5}}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"$gte": 5}, out)
}

func TestBuilder_LiteralCannotBeShadowed(t *testing.T) {
	custom := schema.Pack{"$literal": constOperation("$literal", "shadowed")}

	eng := New(Config{Custom: custom})

	out, err := eng.Apply(context.Background(), map[string]any{"$literal": "raw"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "raw", out)

	out, err = eng.Evaluate(context.Background(), map[string]any{"$literal": "raw"})
	require.NoError(t, err)
	assert.Equal(t, "raw", out)
}

func TestBuilder_DoesNotMutateCallerPacks(t *testing.T) {
	pack := schema.Pack{"$mine": constOperation("$mine", 1)}

	New(Config{Packs: []schema.Pack{pack}})

	assert.Len(t, pack, 1)
	assert.NotContains(t, pack, "$literal")
}
