package script

import (
	"context"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/jexpr/jexpr/pkg/schema"
)

const opExpr = schema.Sigil + "expr"

// exprOperation evaluates expr-lang scripts. The data map is injected as the
// script environment, making all keys available as top-level variables.
// Thread-safe: compiled *vm.Program objects are cached and reused across
// goroutines.
type exprOperation struct {
	mu    sync.RWMutex
	cache map[string]*vm.Program
}

func newExprOperation() *exprOperation {
	return &exprOperation{cache: make(map[string]*vm.Program)}
}

func (e *exprOperation) name() string { return opExpr }

func (e *exprOperation) operation() schema.Operation { return bind(e) }

func (e *exprOperation) run(_ context.Context, source string, data any) (any, error) {
	env, err := environment(opExpr, data)
	if err != nil {
		return nil, err
	}

	prg, err := e.getOrCompile(source)
	if err != nil {
		return nil, err
	}

	out, err := vm.Run(prg, env)
	if err != nil {
		return nil, schema.NewErrorf(schema.ErrCodeDomain,
			"evaluation failed for %q: %s", source, err.Error()).
			WithOp(opExpr).WithCause(err)
	}
	return out, nil
}

// getOrCompile returns a cached compiled program or compiles and caches a new one.
func (e *exprOperation) getOrCompile(source string) (*vm.Program, error) {
	e.mu.RLock()
	if prg, ok := e.cache[source]; ok {
		e.mu.RUnlock()
		return prg, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Double-check after acquiring write lock.
	if prg, ok := e.cache[source]; ok {
		return prg, nil
	}

	prg, err := expr.Compile(source,
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, schema.NewErrorf(schema.ErrCodeValidation,
			"compile error in %q: %s", source, err.Error()).
			WithOp(opExpr).WithCause(err)
	}

	e.cache[source] = prg
	return prg, nil
}

// environment coerces the data value into the map environment expr-lang
// expects. Nil becomes an empty environment; anything else non-map is an error.
func environment(op string, data any) (map[string]any, error) {
	switch v := data.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	default:
		return nil, schema.NewErrorf(schema.ErrCodeInvalidOperand,
			"requires object data for the script environment, got %T", data).WithOp(op)
	}
}
