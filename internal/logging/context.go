package logging

import (
	"context"
	"log/slog"
)

type ctxKey int

const (
	operationKey ctxKey = iota
	modeKey
)

// WithOperation returns a context with the dispatched operation name set.
func WithOperation(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, operationKey, name)
}

// WithMode returns a context with the evaluation mode ("apply" or "evaluate") set.
func WithMode(ctx context.Context, mode string) context.Context {
	return context.WithValue(ctx, modeKey, mode)
}

// Operation extracts the operation name from the context, or "" if absent.
func Operation(ctx context.Context) string {
	v, _ := ctx.Value(operationKey).(string)
	return v
}

// Mode extracts the evaluation mode from the context, or "" if absent.
func Mode(ctx context.Context) string {
	v, _ := ctx.Value(modeKey).(string)
	return v
}

// LogWith returns a logger enriched with correlation attributes from the context.
// Only non-empty values are added.
func LogWith(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if op := Operation(ctx); op != "" {
		logger = logger.With(slog.String("op", op))
	}
	if mode := Mode(ctx); mode != "" {
		logger = logger.With(slog.String("mode", mode))
	}
	return logger
}

// CorrelationHandler wraps an slog.Handler, automatically injecting the
// dispatched operation and mode from the context into every log record.
// Use with slog.New(NewCorrelationHandler(inner)) so operation definitions can
// call logger.DebugContext(ctx, ...) and correlation appears automatically.
type CorrelationHandler struct {
	inner slog.Handler
}

// NewCorrelationHandler wraps the given handler with automatic correlation injection.
func NewCorrelationHandler(inner slog.Handler) *CorrelationHandler {
	return &CorrelationHandler{inner: inner}
}

func (h *CorrelationHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *CorrelationHandler) Handle(ctx context.Context, r slog.Record) error {
	if v := Operation(ctx); v != "" {
		r.AddAttrs(slog.String("op", v))
	}
	if v := Mode(ctx); v != "" {
		r.AddAttrs(slog.String("mode", v))
	}
	return h.inner.Handle(ctx, r)
}

func (h *CorrelationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CorrelationHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *CorrelationHandler) WithGroup(name string) slog.Handler {
	return &CorrelationHandler{inner: h.inner.WithGroup(name)}
}
