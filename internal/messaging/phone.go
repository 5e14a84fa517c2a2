package messaging

import "strings"

// DefaultCountryCode is prepended to numbers that arrive without one.
// FarmFast onboards Indian farmers, so bare 10-digit numbers are +91.
const DefaultCountryCode = "91"

// NormalizePhone canonicalizes a raw WhatsApp sender identifier into
// +<countrycode><digits>. It strips the whatsapp: transport prefix, spacing
// and punctuation, drops a single leading zero, and assumes the default
// country code when none is present. Normalizing an already-canonical number
// returns it unchanged.
func NormalizePhone(value string) string {
	return NormalizePhoneWithCountry(value, DefaultCountryCode)
}

// NormalizePhoneWithCountry is NormalizePhone with an explicit country code.
func NormalizePhoneWithCountry(value, countryCode string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "whatsapp:")
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	hadPlus := strings.HasPrefix(value, "+")
	digits := sanitizePhone(value)
	if digits == "" {
		return ""
	}

	switch {
	case hadPlus:
		return "+" + digits
	case strings.HasPrefix(digits, "0"):
		return "+" + countryCode + strings.TrimPrefix(digits, "0")
	case strings.HasPrefix(digits, countryCode):
		return "+" + digits
	default:
		return "+" + countryCode + digits
	}
}

// sanitizePhone strips everything except digits.
func sanitizePhone(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
