// server/internal/validation/idnumber.go
package validation

import "strconv"

// ValidateIDNumber checks a 13-digit South African national ID number:
// a plausible YYMMDD birth-date segment followed by a Luhn checksum over
// all thirteen digits. The century of the date segment is ambiguous, so
// only month and day are range-checked.
func ValidateIDNumber(id string) Result {
	if len(id) != 13 {
		return fail("ID number must be exactly 13 digits")
	}
	digits := make([]int, 13)
	for i, r := range id {
		if r < '0' || r > '9' {
			return fail("ID number must contain only digits")
		}
		digits[i] = int(r - '0')
	}

	month, _ := strconv.Atoi(id[2:4])
	day, _ := strconv.Atoi(id[4:6])
	if month < 1 || month > 12 {
		return fail("ID number has an invalid birth month")
	}
	if day < 1 || day > daysInMonth(month) {
		return fail("ID number has an invalid birth day")
	}

	// Luhn: double every second digit from the right, sum the digit sums,
	// total must be divisible by 10.
	sum := 0
	for i := 0; i < 13; i++ {
		d := digits[12-i]
		if i%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	if sum%10 != 0 {
		return fail("ID number failed checksum validation")
	}
	return ok(id)
}

// daysInMonth uses the leap-year maximum for February since the ID date
// segment does not disambiguate the century.
func daysInMonth(month int) int {
	switch month {
	case 2:
		return 29
	case 4, 6, 9, 11:
		return 30
	}
	return 31
}
