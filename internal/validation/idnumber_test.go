// server/internal/validation/idnumber_test.go
package validation_test

import (
	"testing"

	"asset-hub-api-server/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestValidateIDNumber(t *testing.T) {
	// Well-formed ID with a passing Luhn checksum.
	result := validation.ValidateIDNumber("8001015009087")
	assert.True(t, result.Valid, result.Message)

	// Same digits with the check digit off by one.
	result = validation.ValidateIDNumber("8001015009088")
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "checksum")

	// Wrong length.
	result = validation.ValidateIDNumber("12345")
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "13 digits")

	// Non-digit characters.
	result = validation.ValidateIDNumber("80010150090a7")
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "digits")

	// Implausible date segment.
	result = validation.ValidateIDNumber("8013015009087")
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "month")

	result = validation.ValidateIDNumber("8001325009087")
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "day")
}
