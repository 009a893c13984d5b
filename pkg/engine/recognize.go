package engine

import (
	"strings"

	"github.com/jexpr/jexpr/pkg/schema"
)

// splitExpression destructures an expression-shaped value into its operation
// name and operand. A value is expression-shaped iff it is a map with exactly
// one key and that key starts with the sigil. Multi-key maps are always
// ordinary data, even when one of the keys matches a registered name.
func splitExpression(v any) (name string, operand any, ok bool) {
	m, isMap := v.(map[string]any)
	if !isMap || len(m) != 1 {
		return "", nil, false
	}
	for k, val := range m {
		if !strings.HasPrefix(k, schema.Sigil) {
			return "", nil, false
		}
		return k, val, true
	}
	return "", nil, false
}

// looksExpressionShaped reports the two-tier check's first tier: the value has
// the single-key sigil shape, registered or not. A shaped-but-unregistered
// value is a diagnostic, never silent pass-through.
func looksExpressionShaped(v any) bool {
	_, _, ok := splitExpression(v)
	return ok
}
