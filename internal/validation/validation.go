// server/internal/validation/validation.go
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Result is the structured outcome of a validation check. Helpers report
// failure through Result rather than an error so callers can aggregate
// messages across fields.
type Result struct {
	Valid      bool
	Message    string
	Normalized string // Canonical form of the input, when the check rewrites it
}

func ok(normalized string) Result {
	return Result{Valid: true, Normalized: normalized}
}

func fail(format string, args ...interface{}) Result {
	return Result{Valid: false, Message: fmt.Sprintf(format, args...)}
}

var (
	localPhonePattern = regexp.MustCompile(`^0\d{9}$`)
	intlPhonePattern  = regexp.MustCompile(`^\+27\d{9}$`)
	emailPattern      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidatePhone checks a South African phone number and normalizes it to
// the canonical +27 international form.
func ValidatePhone(phone string) Result {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	switch {
	case intlPhonePattern.MatchString(cleaned):
		return ok(cleaned)
	case localPhonePattern.MatchString(cleaned):
		return ok("+27" + cleaned[1:])
	}
	return fail("phone number must be a valid South African number, e.g. 0821234567 or +27821234567")
}

// ValidateEmail checks basic shape and that the domain belongs to the
// allow-list. The normalized form is lower-cased.
func ValidateEmail(email string, allowedDomains []string) Result {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(normalized) {
		return fail("email address is not valid")
	}
	domain := normalized[strings.LastIndex(normalized, "@")+1:]
	for _, d := range allowedDomains {
		if domain == strings.ToLower(d) {
			return ok(normalized)
		}
	}
	return fail("email domain %q is not allowed, use one of: %s", domain, strings.Join(allowedDomains, ", "))
}

// ValidatePassword enforces minimum strength: at least 8 characters with
// upper case, lower case, a digit and a symbol.
func ValidatePassword(password string) Result {
	if len(password) < 8 {
		return fail("password must be at least 8 characters long")
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if !hasUpper || !hasLower {
		return fail("password must contain both upper and lower case letters")
	}
	if !hasDigit {
		return fail("password must contain at least one digit")
	}
	if !hasSymbol {
		return fail("password must contain at least one symbol")
	}
	return ok(password)
}
