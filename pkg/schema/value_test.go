package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Numbers(t *testing.T) {
	assert.Equal(t, float64(5), Normalize(5))
	assert.Equal(t, float64(5), Normalize(int64(5)))
	assert.Equal(t, float64(5), Normalize(int32(5)))
	assert.Equal(t, float64(5), Normalize(float32(5)))
	assert.Equal(t, 2.5, Normalize(json.Number("2.5")))
}

func TestNormalize_Nested(t *testing.T) {
	in := map[string]any{
		"a": []any{1, int64(2), map[string]any{"b": 3}},
	}
	out := Normalize(in)
	assert.Equal(t, map[string]any{
		"a": []any{float64(1), float64(2), map[string]any{"b": float64(3)}},
	}, out)
}

func TestNormalize_NonNumeric(t *testing.T) {
	assert.Equal(t, "x", Normalize("x"))
	assert.Equal(t, true, Normalize(true))
	assert.Nil(t, Normalize(nil))
}

func TestDeepEqual_CrossNumericTypes(t *testing.T) {
	assert.True(t, DeepEqual(2, 2.0))
	assert.True(t, DeepEqual(
		map[string]any{"n": []any{1, 2}},
		map[string]any{"n": []any{1.0, 2.0}},
	))
	assert.False(t, DeepEqual(2, 3))
	assert.False(t, DeepEqual([]any{1}, []any{1, 2}))
}

func TestToFloat(t *testing.T) {
	f, ok := ToFloat(json.Number("7"))
	require.True(t, ok)
	assert.Equal(t, float64(7), f)

	_, ok = ToFloat("7")
	assert.False(t, ok)
}

func TestToBool_Strict(t *testing.T) {
	b, ok := ToBool(true)
	require.True(t, ok)
	assert.True(t, b)

	_, ok = ToBool(1)
	assert.False(t, ok)
	_, ok = ToBool("true")
	assert.False(t, ok)
}
