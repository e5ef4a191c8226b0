package vies

import "strings"

// NormalizeVatNumber upper-cases the input and strips every character outside
// [A-Z0-9]. It always succeeds and is idempotent; an input with no
// alphanumeric characters normalizes to the empty string.
func NormalizeVatNumber(raw string) string {
	upper := strings.ToUpper(raw)
	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeCountryCode upper-cases and trims a country code for envelope use
// and cache keys. Validation of the two-letter shape happens at the transport
// boundary.
func NormalizeCountryCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
