package schema

import "fmt"

// Error codes for structured error reporting.
const (
	ErrCodeUnrecognizedOperation = "UNRECOGNIZED_OPERATION"
	ErrCodeInvalidOperand        = "INVALID_OPERAND"
	ErrCodeDomain                = "DOMAIN_ERROR"
	ErrCodeValidation            = "VALIDATION_ERROR"
)

// Error is the structured error type for all jexpr evaluation failures.
// Errors propagate unmodified to the original caller: a failure anywhere in a
// nested sub-expression aborts the whole evaluation.
type Error struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Op      string         `json:"op,omitempty"`
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Op, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewErrorf creates a new Error with a formatted message.
func NewErrorf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithOp attaches the name of the operation that raised the error.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// WithCause attaches an underlying cause.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// WithDetails attaches key-value details.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}
