// server/internal/validation/currency.go
package validation

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatZAR renders an amount in South African rand using the en-ZA
// convention: "R" prefix, space-grouped thousands, comma decimal separator.
// Example: 12345.67 -> "R12 345,67".
func FormatZAR(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	whole := fmt.Sprintf("%.2f", amount)
	intPart := whole[:len(whole)-3]
	decPart := whole[len(whole)-2:]

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(' ')
		}
		grouped.WriteRune(digit)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%sR%s,%s", sign, grouped.String(), decPart)
}

// ParseZAR parses a rand amount in either the formatted en-ZA form or a
// plain decimal string.
func ParseZAR(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	negative := strings.HasPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "R")
	cleaned = strings.NewReplacer(" ", "", " ", "", ",", ".").Replace(cleaned)

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid rand amount %q", s)
	}
	if negative {
		value = -value
	}
	return value, nil
}
