package script

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/jexpr/jexpr/pkg/schema"
)

const opCEL = schema.Sigil + "cel"

// celOperation evaluates Common Expression Language scripts in a sandboxed
// environment exposing one top-level variable:
//
//	input: dyn — the apply-mode input data, or evaluate-mode embedded data
//
// Thread-safe: compiled programs are cached and reused across goroutines.
type celOperation struct {
	env *cel.Env

	mu    sync.RWMutex
	cache map[string]cel.Program
}

func newCELOperation() (*celOperation, error) {
	env, err := cel.NewEnv(cel.Variable("input", cel.DynType))
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}
	return &celOperation{env: env, cache: make(map[string]cel.Program)}, nil
}

func (c *celOperation) name() string { return opCEL }

func (c *celOperation) operation() schema.Operation { return bind(c) }

func (c *celOperation) run(_ context.Context, source string, data any) (any, error) {
	prg, err := c.getOrCompile(source)
	if err != nil {
		return nil, err
	}

	// Default the variable to an empty map to avoid CEL nil-ref errors.
	if data == nil {
		data = map[string]any{}
	}

	out, _, err := prg.Eval(map[string]any{"input": data})
	if err != nil {
		return nil, schema.NewErrorf(schema.ErrCodeDomain,
			"evaluation failed for %q: %s", source, err.Error()).
			WithOp(opCEL).WithCause(err)
	}
	return out.Value(), nil
}

// getOrCompile returns a cached compiled program or compiles and caches a new one.
func (c *celOperation) getOrCompile(source string) (cel.Program, error) {
	c.mu.RLock()
	if prg, ok := c.cache[source]; ok {
		c.mu.RUnlock()
		return prg, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock.
	if prg, ok := c.cache[source]; ok {
		return prg, nil
	}

	ast, issues := c.env.Compile(source)
	if issues != nil && issues.Err() != nil {
		return nil, schema.NewErrorf(schema.ErrCodeValidation,
			"compile error in %q: %s", source, issues.Err().Error()).
			WithOp(opCEL).WithCause(issues.Err())
	}

	prg, err := c.env.Program(ast)
	if err != nil {
		return nil, schema.NewErrorf(schema.ErrCodeValidation,
			"program error for %q: %s", source, err.Error()).
			WithOp(opCEL).WithCause(err)
	}

	c.cache[source] = prg
	return prg, nil
}
