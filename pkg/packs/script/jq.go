package script

import (
	"context"
	"sync"

	"github.com/itchyny/gojq"

	"github.com/jexpr/jexpr/pkg/schema"
)

const opJQ = schema.Sigil + "jq"

// jqOperation evaluates jq filters against the data as the input JSON value.
//
// jq filters can produce multiple outputs. When there is exactly one output it
// is returned directly; multiple outputs are collected into a sequence; zero
// outputs yield nil. Thread-safe: compiled *gojq.Code objects are cached and
// reused across goroutines.
type jqOperation struct {
	mu    sync.RWMutex
	cache map[string]*gojq.Code
}

func newJQOperation() *jqOperation {
	return &jqOperation{cache: make(map[string]*gojq.Code)}
}

func (j *jqOperation) name() string { return opJQ }

func (j *jqOperation) operation() schema.Operation { return bind(j) }

func (j *jqOperation) run(ctx context.Context, source string, data any) (any, error) {
	code, err := j.getOrCompile(source)
	if err != nil {
		return nil, err
	}

	// jq handles all numbers as float64.
	iter := code.RunWithContext(ctx, schema.Normalize(data))

	var results []any
	for {
		val, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := val.(error); isErr {
			return nil, schema.NewErrorf(schema.ErrCodeDomain,
				"evaluation failed for %q: %s", source, err.Error()).
				WithOp(opJQ).WithCause(err)
		}
		results = append(results, val)
	}

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}

// getOrCompile returns a cached compiled filter or compiles and caches a new one.
func (j *jqOperation) getOrCompile(source string) (*gojq.Code, error) {
	j.mu.RLock()
	if code, ok := j.cache[source]; ok {
		j.mu.RUnlock()
		return code, nil
	}
	j.mu.RUnlock()

	j.mu.Lock()
	defer j.mu.Unlock()

	// Double-check after acquiring write lock.
	if code, ok := j.cache[source]; ok {
		return code, nil
	}

	query, err := gojq.Parse(source)
	if err != nil {
		return nil, schema.NewErrorf(schema.ErrCodeValidation,
			"parse error in %q: %s", source, err.Error()).
			WithOp(opJQ).WithCause(err)
	}

	code, err := gojq.Compile(query,
		// Sandbox: return empty env to block $ENV and env access.
		gojq.WithEnvironLoader(func() []string { return nil }),
	)
	if err != nil {
		return nil, schema.NewErrorf(schema.ErrCodeValidation,
			"compile error in %q: %s", source, err.Error()).
			WithOp(opJQ).WithCause(err)
	}

	j.cache[source] = code
	return code, nil
}
