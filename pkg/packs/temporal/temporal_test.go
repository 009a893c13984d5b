package temporal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jexpr/jexpr/pkg/engine"
	"github.com/jexpr/jexpr/pkg/schema"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func fixedEngine(t *testing.T) *engine.Engine {
	t.Helper()
	pack := newWithClock(func() time.Time { return fixedNow })
	return engine.New(engine.Config{Packs: []schema.Pack{pack}})
}

func TestNow_FixedClock(t *testing.T) {
	eng := fixedEngine(t)

	out, err := eng.Evaluate(context.Background(), map[string]any{"$now": nil})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15T10:30:00Z", out)
}

func TestTimestamp_FixedClock(t *testing.T) {
	eng := fixedEngine(t)

	out, err := eng.Evaluate(context.Background(), map[string]any{"$timestamp": nil})
	require.NoError(t, err)
	assert.Equal(t, fixedNow.UnixMilli(), out)
}

func TestToday_FixedClock(t *testing.T) {
	eng := fixedEngine(t)

	out, err := eng.Apply(context.Background(), map[string]any{"$today": nil}, map[string]any{"ignored": 1})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", out)
}

func TestGenerative_IgnoresInput(t *testing.T) {
	eng := fixedEngine(t)

	a, err := eng.Apply(context.Background(), map[string]any{"$now": nil}, map[string]any{"x": 1})
	require.NoError(t, err)
	b, err := eng.Evaluate(context.Background(), map[string]any{"$now": nil})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCronNext_FromOperand(t *testing.T) {
	eng := fixedEngine(t)

	out, err := eng.Evaluate(context.Background(), map[string]any{"$cronNext": map[string]any{
		"schedule": "0 0 * * *",
		"from":     "2024-03-15T10:30:00Z",
	}})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-16T00:00:00Z", out)
}

func TestCronNext_DefaultsToClock(t *testing.T) {
	eng := fixedEngine(t)

	out, err := eng.Evaluate(context.Background(), map[string]any{"$cronNext": "*/5 * * * *"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15T10:35:00Z", out)
}

func TestCronNext_InvalidSchedule(t *testing.T) {
	eng := fixedEngine(t)

	_, err := eng.Evaluate(context.Background(), map[string]any{"$cronNext": "not a schedule"})
	require.Error(t, err)

	var e *schema.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, schema.ErrCodeValidation, e.Code)
	assert.Equal(t, "$cronNext", e.Op)
}

func TestCronNext_InvalidFrom(t *testing.T) {
	eng := fixedEngine(t)

	_, err := eng.Evaluate(context.Background(), map[string]any{"$cronNext": map[string]any{
		"schedule": "0 0 * * *",
		"from":     "yesterday",
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid "from" timestamp`)
}
