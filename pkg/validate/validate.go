// Package validate holds the input checks applied to operator-entered
// data before it reaches the sales state.
package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	emailRegex   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex   = regexp.MustCompile(`^\(?([0-9]{3})\)?[-. ]?([0-9]{3})[-. ]?([0-9]{4})$`)
	digitsRegex  = regexp.MustCompile(`^\d+$`)
	anglePattern = strings.NewReplacer("<", "", ">", "")
)

// Email reports whether s looks like a plausible address: a local part,
// an @, and a dotted domain. Not an RFC 5322 parser on purpose.
func Email(s string) bool {
	return emailRegex.MatchString(s)
}

// Phone accepts North-American 10-digit numbers with optional
// parentheses and -, . or space separators.
func Phone(s string) bool {
	return phoneRegex.MatchString(s)
}

// Price reports whether s parses as a non-negative decimal number.
func Price(s string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil && v >= 0
}

// Barcode requires at least 8 characters, all digits.
func Barcode(s string) bool {
	return len(s) >= 8 && digitsRegex.MatchString(s)
}

// SanitizeInput trims surrounding whitespace and strips angle brackets
// so stored text cannot smuggle markup into rendered output.
func SanitizeInput(s string) string {
	return anglePattern.Replace(strings.TrimSpace(s))
}

// CreditCard strips whitespace and applies the Luhn mod-10 checksum.
func CreditCard(cardNumber string) bool {
	num := strings.Join(strings.Fields(cardNumber), "")
	if num == "" {
		return false
	}
	if !digitsRegex.MatchString(num) {
		return false
	}

	sum := 0
	double := false
	for i := len(num) - 1; i >= 0; i-- {
		digit := int(num[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}
