// Package schemaval ships $conformsTo: JSON Schema (draft 2020-12)
// conformance as a boolean predicate. Apply mode validates the input data
// against the operand schema; evaluate mode validates an embedded
// {"value": ..., "schema": ...} pair.
package schemaval

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/jexpr/jexpr/pkg/schema"
)

const opConformsTo = schema.Sigil + "conformsTo"

// New returns the schema-validation pack.
func New() schema.Pack {
	op := (&validator{cache: make(map[string]*jsonschema.Schema)}).operation()
	return schema.Pack{op.Name: op}
}

// validator compiles JSON Schemas and caches them keyed by serialized schema.
// Safe for concurrent use.
type validator struct {
	mu    sync.RWMutex
	cache map[string]*jsonschema.Schema
}

func (v *validator) operation() schema.Operation {
	return schema.Operation{
		Name: opConformsTo,
		Apply: func(ctx context.Context, operand, input any, ec schema.EvalContext) (any, error) {
			resolved, err := ec.Apply(ctx, operand, input)
			if err != nil {
				return nil, err
			}
			return v.conforms(input, resolved)
		},
		Evaluate: func(ctx context.Context, operand any, ec schema.EvalContext) (any, error) {
			resolved, err := ec.Evaluate(ctx, operand)
			if err != nil {
				return nil, err
			}
			m, ok := resolved.(map[string]any)
			if !ok {
				return nil, schema.NewError(schema.ErrCodeInvalidOperand,
					`evaluate mode requires an object operand {"value": ..., "schema": ...}`).WithOp(opConformsTo)
			}
			value, hasValue := m["value"]
			schemaDoc, hasSchema := m["schema"]
			if !hasValue || !hasSchema {
				return nil, schema.NewError(schema.ErrCodeInvalidOperand,
					`evaluate mode requires both "value" and "schema" embedded in the operand`).WithOp(opConformsTo)
			}
			return v.conforms(value, schemaDoc)
		},
	}
}

// conforms reports whether value validates against schemaDoc. Validation
// failures are the false answer, not errors; only a malformed schema errors.
func (v *validator) conforms(value, schemaDoc any) (any, error) {
	compiled, err := v.getOrCompile(schemaDoc)
	if err != nil {
		return nil, err
	}

	doc, err := toJSONValue(value)
	if err != nil {
		return nil, schema.NewError(schema.ErrCodeDomain,
			"failed to serialize value for validation").WithOp(opConformsTo).WithCause(err)
	}

	return compiled.Validate(doc) == nil, nil
}

// getOrCompile returns a cached compiled schema or compiles and caches a new one.
func (v *validator) getOrCompile(schemaDoc any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(schemaDoc)
	if err != nil {
		return nil, schema.NewError(schema.ErrCodeValidation,
			"failed to serialize schema").WithOp(opConformsTo).WithCause(err)
	}
	key := string(raw)

	v.mu.RLock()
	if cached, ok := v.cache[key]; ok {
		v.mu.RUnlock()
		return cached, nil
	}
	v.mu.RUnlock()

	v.mu.Lock()
	defer v.mu.Unlock()

	// Double-check after acquiring write lock.
	if cached, ok := v.cache[key]; ok {
		return cached, nil
	}

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(key))
	if err != nil {
		return nil, schema.NewErrorf(schema.ErrCodeValidation,
			"invalid schema: %s", err.Error()).WithOp(opConformsTo).WithCause(err)
	}

	// Each schema gets a unique URL to avoid collisions in the compiler.
	url := fmt.Sprintf("jexpr://conforms-to/%d", len(v.cache))

	c := jsonschema.NewCompiler()
	c.AssertFormat()
	if err := c.AddResource(url, doc); err != nil {
		return nil, schema.NewErrorf(schema.ErrCodeValidation,
			"invalid schema: %s", err.Error()).WithOp(opConformsTo).WithCause(err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, schema.NewErrorf(schema.ErrCodeValidation,
			"invalid schema: %s", err.Error()).WithOp(opConformsTo).WithCause(err)
	}

	v.cache[key] = compiled
	return compiled, nil
}

// toJSONValue round-trips a Go value through JSON encoding/decoding so that
// numeric values become json.Number (required by the jsonschema library).
func toJSONValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(strings.NewReader(string(b)))
}
