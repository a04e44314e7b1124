package domain

import (
	"regexp"
	"strings"
)

// nonDigitRe strips everything but digits from a raw ZIP code, so inputs like
// "90210-1234" or "FL 32801" reduce to their numeric part.
var nonDigitRe = regexp.MustCompile(`\D`)

// NormalizeZip converts a raw ZIP code to its canonical 5-digit form.
// It returns false when the stripped input has fewer than 3 or more than 9
// digits. Inputs of 6-9 digits (ZIP+4 style) are zero-padded to 9 and
// truncated to the leading 5 digits. The result is idempotent: normalizing
// an already-normalized code returns it unchanged.
func NormalizeZip(raw string) (string, bool) {
	digits := nonDigitRe.ReplaceAllString(raw, "")
	if len(digits) < 3 || len(digits) > 9 {
		return "", false
	}
	if len(digits) <= 5 {
		return strings.Repeat("0", 5-len(digits)) + digits, true
	}
	padded := strings.Repeat("0", 9-len(digits)) + digits
	return padded[:5], true
}
