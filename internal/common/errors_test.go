package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConflictError_Is(t *testing.T) {
	err := NewConflictError("email", "a@x.com")

	assert.True(t, errors.Is(err, ErrorConflict))
	assert.False(t, errors.Is(err, ErrorNotFound))
}

func TestConflictError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create user: %w", NewConflictError("email", "a@x.com"))

	assert.True(t, errors.Is(err, ErrorConflict))

	var ce *ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "email", ce.Field)
	assert.Equal(t, "a@x.com", ce.Value)
}

func TestConflictError_Message(t *testing.T) {
	err := NewConflictError("email", "a@x.com")
	assert.Equal(t, `conflict: email "a@x.com" already exists`, err.Error())
}
