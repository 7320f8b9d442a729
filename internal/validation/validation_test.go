// server/internal/validation/validation_test.go
package validation_test

import (
	"testing"

	"asset-hub-api-server/internal/validation"

	"github.com/stretchr/testify/assert"
)

var allowedDomains = []string{"mlab.co.za", "mlab.org.za", "codetribe.co.za"}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		valid      bool
		normalized string
	}{
		{"local format", "0821234567", true, "+27821234567"},
		{"international format", "+27821234567", true, "+27821234567"},
		{"with spaces", "082 123 4567", true, "+27821234567"},
		{"with dashes", "082-123-4567", true, "+27821234567"},
		{"too short", "12345", false, ""},
		{"wrong country code", "+44821234567", false, ""},
		{"letters", "08212345ab", false, ""},
		{"empty", "", false, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := validation.ValidatePhone(tc.input)
			assert.Equal(t, tc.valid, result.Valid)
			if tc.valid {
				assert.Equal(t, tc.normalized, result.Normalized)
			} else {
				assert.NotEmpty(t, result.Message)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	result := validation.ValidateEmail("a@mlab.co.za", allowedDomains)
	assert.True(t, result.Valid)
	assert.Equal(t, "a@mlab.co.za", result.Normalized)

	result = validation.ValidateEmail("A@MLAB.CO.ZA", allowedDomains)
	assert.True(t, result.Valid)
	assert.Equal(t, "a@mlab.co.za", result.Normalized)

	result = validation.ValidateEmail("a@gmail.com", allowedDomains)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "domain")

	result = validation.ValidateEmail("not-an-email", allowedDomains)
	assert.False(t, result.Valid)

	result = validation.ValidateEmail("a@b@mlab.co.za", allowedDomains)
	assert.False(t, result.Valid)
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, validation.ValidatePassword("Str0ng!pass").Valid)

	tests := []struct {
		name  string
		input string
	}{
		{"too short", "S0r!t"},
		{"no upper case", "weak!pass1"},
		{"no lower case", "WEAK!PASS1"},
		{"no digit", "Weak!password"},
		{"no symbol", "Weakpass1234"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := validation.ValidatePassword(tc.input)
			assert.False(t, result.Valid)
			assert.NotEmpty(t, result.Message)
		})
	}
}
