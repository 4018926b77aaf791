package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError(ErrUnknownFuelType, "fuel_type", "kerosene")
	assert.Equal(t, "unknown fuel type: fuel_type=kerosene", err.Error())
	assert.ErrorIs(t, err, ErrUnknownFuelType)
	assert.NotErrorIs(t, err, ErrUnknownTechnology)

	wrapped := fmt.Errorf("request 3: %w", err)
	var validationError *ValidationError
	require.True(t, errors.As(wrapped, &validationError))
	assert.Equal(t, "fuel_type", validationError.Field)
	assert.Equal(t, "kerosene", validationError.Value)
	assert.ErrorIs(t, wrapped, ErrUnknownFuelType)
}
