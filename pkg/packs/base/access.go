package base

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/jexpr/jexpr/pkg/schema"
)

const opGet = schema.Sigil + "get"

func accessOperations() []schema.Operation {
	return []schema.Operation{getOperation()}
}

// getOperation reads a dot-delimited path. Apply mode reads from the input
// data; evaluate mode reads from a value embedded in the operand itself.
//
// Operand forms:
//
//	"$get": "user.name"
//	"$get": {"path": "user.name", "default": "anonymous"}
//	"$get": {"path": "user.name", "from": {...}}          (evaluate mode)
func getOperation() schema.Operation {
	return schema.Operation{
		Name: opGet,
		Apply: func(ctx context.Context, operand, input any, ec schema.EvalContext) (any, error) {
			resolved, err := ec.Apply(ctx, operand, input)
			if err != nil {
				return nil, err
			}
			spec, err := parseGetOperand(resolved)
			if err != nil {
				return nil, err
			}
			return traversePath(input, spec)
		},
		Evaluate: func(ctx context.Context, operand any, ec schema.EvalContext) (any, error) {
			resolved, err := ec.Evaluate(ctx, operand)
			if err != nil {
				return nil, err
			}
			m, err := requireMap(opGet, resolved)
			if err != nil {
				return nil, schema.NewError(schema.ErrCodeInvalidOperand,
					`evaluate mode requires an object operand {"path": ..., "from": ...}`).WithOp(opGet)
			}
			spec, err := parseGetOperand(m)
			if err != nil {
				return nil, err
			}
			root, ok := m["from"]
			if !ok {
				return nil, schema.NewError(schema.ErrCodeInvalidOperand,
					`evaluate mode requires a "from" value embedded in the operand`).WithOp(opGet)
			}
			return traversePath(root, spec)
		},
	}
}

type getSpec struct {
	path       string
	fallback   any
	hasDefault bool
}

func parseGetOperand(operand any) (getSpec, error) {
	switch v := operand.(type) {
	case string:
		return getSpec{path: v}, nil
	case map[string]any:
		path, ok := v["path"].(string)
		if !ok {
			return getSpec{}, schema.NewError(schema.ErrCodeInvalidOperand,
				`requires a string "path"`).WithOp(opGet)
		}
		fallback, hasDefault := v["default"]
		return getSpec{path: path, fallback: fallback, hasDefault: hasDefault}, nil
	default:
		return getSpec{}, schema.NewErrorf(schema.ErrCodeInvalidOperand,
			"requires a string path or object operand, got %T", operand).WithOp(opGet)
	}
}

// traversePath navigates nested maps and slices using a dot-delimited path.
// Numeric segments index into sequences. An empty path yields the root.
func traversePath(root any, spec getSpec) (any, error) {
	if spec.path == "" {
		return root, nil
	}

	current := root
	for _, seg := range strings.Split(spec.path, ".") {
		switch v := current.(type) {
		case map[string]any:
			val, ok := v[seg]
			if !ok {
				if spec.hasDefault {
					return spec.fallback, nil
				}
				return nil, schema.NewErrorf(schema.ErrCodeDomain,
					"field %q not found in path %q; available: [%s]",
					seg, spec.path, strings.Join(sortedKeys(v), ", ")).WithOp(opGet)
			}
			current = val
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(v) {
				if spec.hasDefault {
					return spec.fallback, nil
				}
				return nil, schema.NewErrorf(schema.ErrCodeDomain,
					"index %q out of range in path %q (length %d)", seg, spec.path, len(v)).WithOp(opGet)
			}
			current = v[idx]
		default:
			if spec.hasDefault {
				return spec.fallback, nil
			}
			return nil, schema.NewErrorf(schema.ErrCodeDomain,
				"cannot traverse into non-container at %q in path %q (type %T)",
				seg, spec.path, current).WithOp(opGet)
		}
	}
	return current, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
