package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "amount: must be positive", NewValidationError("amount", "must be positive").Error())
	assert.Equal(t, "must be positive", NewValidationError("", "must be positive").Error())
	assert.Equal(t, "slot taken 10:00-11:15", NewConflictError("slot taken %s-%s", "10:00", "11:15").Error())
	assert.Equal(t, "service not found: abc", NewNotFoundError("service", "abc").Error())
	assert.Equal(t, "staff not found", NewNotFoundError("staff", "").Error())
}

func TestPersistenceErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewPersistenceError("create invoice", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "create invoice")
}

func TestErrorsAsAcrossWrapping(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewConflictError("already open"))

	var conflict *ConflictError
	assert.True(t, errors.As(wrapped, &conflict))
	assert.Equal(t, "already open", conflict.Reason)
}
