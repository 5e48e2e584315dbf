package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("loading vehicle: %w", NewDomainError(CodeNotFound, "vehicle not found"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrAlreadyExists))
	assert.True(t, IsCode(err, CodeNotFound))
}

func TestPersistenceFailure_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewPersistenceFailure("save expense", cause)

	assert.Equal(t, CodePersistenceFailure, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "save expense failed: connection refused", err.Error())
}

func TestIsCode_NonDomainError(t *testing.T) {
	assert.False(t, IsCode(errors.New("plain"), CodeValidation))
	assert.False(t, IsCode(nil, CodeValidation))
}
