// server/internal/validation/currency_test.go
package validation_test

import (
	"testing"

	"asset-hub-api-server/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatZAR(t *testing.T) {
	assert.Equal(t, "R12 345,67", validation.FormatZAR(12345.67))
	assert.Equal(t, "R0,50", validation.FormatZAR(0.5))
	assert.Equal(t, "R999,99", validation.FormatZAR(999.99))
	assert.Equal(t, "R1 000 000,00", validation.FormatZAR(1000000))
	assert.Equal(t, "-R1 234,50", validation.FormatZAR(-1234.5))
}

func TestParseZAR(t *testing.T) {
	value, err := validation.ParseZAR("R12 345,67")
	require.NoError(t, err)
	assert.InDelta(t, 12345.67, value, 0.001)

	value, err = validation.ParseZAR("12345.67")
	require.NoError(t, err)
	assert.InDelta(t, 12345.67, value, 0.001)

	value, err = validation.ParseZAR("-R1 234,50")
	require.NoError(t, err)
	assert.InDelta(t, -1234.5, value, 0.001)

	_, err = validation.ParseZAR("not money")
	assert.Error(t, err)
}

func TestZARRoundTrip(t *testing.T) {
	for _, amount := range []float64{0, 1, 999.99, 12345.67, 9876543.21} {
		parsed, err := validation.ParseZAR(validation.FormatZAR(amount))
		require.NoError(t, err)
		assert.InDelta(t, amount, parsed, 0.005)
	}
}
