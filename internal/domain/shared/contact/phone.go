// Package contact normalizes customer contact details pulled from upstream
// records. Phone numbers in the ledger come in every imaginable shape
// ("098765 43210", "+91-98765-43210", "9876543210") and need one canonical
// digits-only form before they can be used for WhatsApp delivery.
package contact

import "strings"

// DefaultCountryCode is applied to bare 10-digit national numbers when the
// caller does not inject another one.
const DefaultCountryCode = "91"

const (
	minPhoneDigits = 8
	maxPhoneDigits = 15
)

// NormalizePhone canonicalizes a raw phone number into international
// digits-only form: non-digits are stripped, leading zeros removed, and
// countryCode prefixed when exactly 10 national digits remain. The second
// return is false when the result has fewer than 8 or more than 15 digits,
// in which case the number is unusable for delivery.
//
// Normalization is idempotent: feeding a previously normalized number back
// in returns it unchanged.
func NormalizePhone(raw, countryCode string) (string, bool) {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := strings.TrimLeft(b.String(), "0")
	if len(digits) == 10 && countryCode != "" {
		digits = countryCode + digits
	}
	if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
		return "", false
	}
	return digits, true
}
