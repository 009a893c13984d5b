package base_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jexpr/jexpr/pkg/engine"
	"github.com/jexpr/jexpr/pkg/packs/base"
	"github.com/jexpr/jexpr/pkg/schema"
)

// newEngine builds a default engine for pack tests.
func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return engine.New(engine.Config{})
}

// apply is a shorthand asserting a successful apply call.
func apply(t *testing.T, eng *engine.Engine, expr, input any) any {
	t.Helper()
	out, err := eng.Apply(context.Background(), expr, input)
	require.NoError(t, err)
	return out
}

// evaluate is a shorthand asserting a successful evaluate call.
func evaluate(t *testing.T, eng *engine.Engine, expr any) any {
	t.Helper()
	out, err := eng.Evaluate(context.Background(), expr)
	require.NoError(t, err)
	return out
}

// expectError runs apply and returns the structured error.
func expectError(t *testing.T, eng *engine.Engine, expr, input any) *schema.Error {
	t.Helper()
	_, err := eng.Apply(context.Background(), expr, input)
	require.Error(t, err)
	var e *schema.Error
	require.ErrorAs(t, err, &e)
	return e
}

func TestPack_New_CopiesAreIndependent(t *testing.T) {
	a := base.New()
	b := base.New()

	delete(a, "$add")
	require.Contains(t, b, "$add")
}

func TestPack_New_ContainsAllGroups(t *testing.T) {
	pack := base.New()
	for _, name := range []string{
		"$get", "$eq", "$ne", "$gt", "$gte", "$lt", "$lte",
		"$add", "$subtract", "$multiply", "$divide", "$modulo",
		"$and", "$or", "$not", "$pipe", "$compose", "$case",
		"$matchesLike", "$matchesGlob", "$matchesRegex", "$map", "$filter",
	} {
		require.Contains(t, pack, name)
	}
}
