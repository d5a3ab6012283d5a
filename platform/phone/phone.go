// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "US"

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns
// the input with formatting characters stripped.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return Digits(trimmed, true)
	}

	if !phonenumbers.IsValidNumber(number) {
		return Digits(trimmed, true)
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// Digits strips every character from the input that is not a digit.
// When keepPlus is true, a leading '+' survives.
func Digits(input string, keepPlus bool) string {
	var b strings.Builder
	for i, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if keepPlus && r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LastN returns the last n digits of the number, ignoring all non-digit
// characters. Returns the full digit string when it is shorter than n.
func LastN(input string, n int) string {
	digits := Digits(input, false)
	if len(digits) <= n {
		return digits
	}
	return digits[len(digits)-n:]
}

// SuffixMatch reports whether two numbers plausibly identify the same line:
// their last ten digits match, or one digit string is a suffix of the other.
// This tolerates differing country-code prefixes ("+15551234567" vs
// "5551234567") at the price of occasional false positives, so callers must
// treat it as a best-effort fallback, never a primary lookup.
func SuffixMatch(a, b string) bool {
	da := Digits(a, false)
	db := Digits(b, false)
	if da == "" || db == "" {
		return false
	}

	if LastN(da, 10) == LastN(db, 10) {
		return true
	}

	return strings.HasSuffix(da, db) || strings.HasSuffix(db, da)
}
