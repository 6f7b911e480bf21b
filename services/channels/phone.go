package channels

import "strings"

// DefaultCountryCode is prepended to bare ten-digit numbers.
const DefaultCountryCode = "91"

// NormalizePhone turns a user-entered phone number into an E.164-like string.
// All non-digits are dropped; when the input did not start with "+" and
// exactly ten digits remain, countryCode is prepended. Anything else passes
// through with only the "+" prefix added, so malformed input still yields
// some output and the provider is the one to reject it.
func NormalizePhone(raw, countryCode string) string {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}

	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if !strings.HasPrefix(raw, "+") && len(digits) == 10 {
		digits = countryCode + digits
	}
	return "+" + digits
}
