package schema

import (
	"encoding/json"
	"reflect"
)

// Normalize converts Go numeric types to float64 for consistent deep-equal
// comparison. JSON unmarshaling produces float64 for numbers; this normalizes
// int, int64, int32, float32 and json.Number so reflect.DeepEqual works across
// boundaries. Maps and slices are normalized recursively.
func Normalize(v any) any {
	switch val := v.(type) {
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case int32:
		return float64(val)
	case float32:
		return float64(val)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
		return v
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Normalize(item)
		}
		return out
	default:
		return v
	}
}

// DeepEqual reports deep structural equality after numeric normalization,
// so 2 and 2.0 compare equal inside any nesting.
func DeepEqual(a, b any) bool {
	return reflect.DeepEqual(Normalize(a), Normalize(b))
}

// ToFloat extracts a float64 from any supported numeric type.
func ToFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// ToBool extracts a strict boolean. Truthiness coercion is deliberately not
// offered: predicates must produce real booleans or fail.
func ToBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}
