package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	err := NewError(ErrCodeDomain, "division by zero")
	assert.Equal(t, "[DOMAIN_ERROR] division by zero", err.Error())
}

func TestError_MessageWithOp(t *testing.T) {
	err := NewError(ErrCodeDomain, "division by zero").WithOp("$divide")
	assert.Equal(t, "[DOMAIN_ERROR] $divide: division by zero", err.Error())
}

func TestError_Formatted(t *testing.T) {
	err := NewErrorf(ErrCodeInvalidOperand, "requires array of length %d", 2)
	assert.Contains(t, err.Error(), "requires array of length 2")
	assert.Equal(t, ErrCodeInvalidOperand, err.Code)
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewError(ErrCodeValidation, "bad pattern").WithCause(cause)
	require.ErrorIs(t, err, cause)
}

func TestError_Details(t *testing.T) {
	err := NewError(ErrCodeUnrecognizedOperation, "unrecognized operation").
		WithDetails(map[string]any{"operation": "$gys"})
	assert.Equal(t, "$gys", err.Details["operation"])
}

func TestError_As(t *testing.T) {
	var wrapped error = NewError(ErrCodeDomain, "nope").WithOp("$mod")

	var e *Error
	require.True(t, errors.As(wrapped, &e))
	assert.Equal(t, "$mod", e.Op)
}
