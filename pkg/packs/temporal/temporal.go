// Package temporal ships clock operations. All of them are generative: apply
// and evaluate behave identically and the input data is ignored, so values
// must not be expected to be referentially stable across calls.
package temporal

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jexpr/jexpr/pkg/schema"
)

const (
	opNow       = schema.Sigil + "now"
	opTimestamp = schema.Sigil + "timestamp"
	opToday     = schema.Sigil + "today"
	opCronNext  = schema.Sigil + "cronNext"
)

// New returns the temporal pack reading the system clock.
func New() schema.Pack {
	return newWithClock(time.Now)
}

// newWithClock injects the clock for tests.
func newWithClock(now func() time.Time) schema.Pack {
	pack := make(schema.Pack)
	for _, op := range []schema.Operation{
		generative(opNow, func() any { return now().UTC().Format(time.RFC3339) }),
		generative(opTimestamp, func() any { return now().UnixMilli() }),
		generative(opToday, func() any { return now().UTC().Format(time.DateOnly) }),
		cronNextOperation(now),
	} {
		pack[op.Name] = op
	}
	return pack
}

// generative wraps a zero-operand producer into both modes.
func generative(name string, produce func() any) schema.Operation {
	return schema.Operation{
		Name: name,
		Apply: func(_ context.Context, _, _ any, _ schema.EvalContext) (any, error) {
			return produce(), nil
		},
		Evaluate: func(_ context.Context, _ any, _ schema.EvalContext) (any, error) {
			return produce(), nil
		},
	}
}

// cronNextOperation computes the next activation of a cron schedule.
// Operand: {"schedule": "*/5 * * * *", "from": <RFC3339, optional>}; a plain
// string operand is the schedule with "from" defaulting to the current time.
// Returns the activation as RFC3339 in UTC.
func cronNextOperation(now func() time.Time) schema.Operation {
	run := func(ctx context.Context, operand any, resolve func(any) (any, error)) (any, error) {
		resolved, err := resolve(operand)
		if err != nil {
			return nil, err
		}

		var scheduleSpec string
		from := now()
		switch v := resolved.(type) {
		case string:
			scheduleSpec = v
		case map[string]any:
			s, ok := v["schedule"].(string)
			if !ok {
				return nil, schema.NewError(schema.ErrCodeInvalidOperand,
					`requires a string "schedule"`).WithOp(opCronNext)
			}
			scheduleSpec = s
			if raw, ok := v["from"]; ok {
				fromStr, ok := raw.(string)
				if !ok {
					return nil, schema.NewErrorf(schema.ErrCodeInvalidOperand,
						`"from" must be an RFC3339 string, got %T`, raw).WithOp(opCronNext)
				}
				parsed, err := time.Parse(time.RFC3339, fromStr)
				if err != nil {
					return nil, schema.NewErrorf(schema.ErrCodeInvalidOperand,
						"invalid \"from\" timestamp %q: %s", fromStr, err.Error()).
						WithOp(opCronNext).WithCause(err)
				}
				from = parsed
			}
		default:
			return nil, schema.NewErrorf(schema.ErrCodeInvalidOperand,
				"requires a string or object operand, got %T", resolved).WithOp(opCronNext)
		}

		schedule, err := cron.ParseStandard(scheduleSpec)
		if err != nil {
			return nil, schema.NewErrorf(schema.ErrCodeValidation,
				"invalid cron schedule %q: %s", scheduleSpec, err.Error()).
				WithOp(opCronNext).WithCause(err)
		}
		return schedule.Next(from).UTC().Format(time.RFC3339), nil
	}

	return schema.Operation{
		Name: opCronNext,
		Apply: func(ctx context.Context, operand, input any, ec schema.EvalContext) (any, error) {
			return run(ctx, operand, func(v any) (any, error) { return ec.Apply(ctx, v, input) })
		},
		Evaluate: func(ctx context.Context, operand any, ec schema.EvalContext) (any, error) {
			return run(ctx, operand, func(v any) (any, error) { return ec.Evaluate(ctx, v) })
		},
	}
}
