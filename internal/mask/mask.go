// Package mask hides sensitive roster fields for display and seals them with
// a local passphrase.
//
// Masking is cosmetic: it keeps resident IDs and account numbers off the
// screen and out of shared documents. It is not a security boundary.
package mask

import (
	"strings"
	"unicode/utf8"
)

// ResidentID masks a resident registration number.
//
// "900101-1234567" becomes "900101-1******": the birth date and the first
// digit of the second part stay visible. Without a single hyphen the first
// six characters stay visible. Values of six characters or fewer are
// returned unchanged.
func ResidentID(id string) string {
	if id == "" {
		return ""
	}
	if parts := strings.Split(id, "-"); len(parts) == 2 && parts[1] != "" {
		first, rest := splitFirstRune(parts[1])
		return parts[0] + "-" + first + stars(rest)
	}
	if utf8.RuneCountInString(id) > 6 {
		head, tail := splitRunes(id, 6)
		return head + stars(tail)
	}
	return id
}

// AccountNumber masks the middle of an account number, keeping the first
// three and last four characters. Values of six characters or fewer are
// returned unchanged; seven-character values keep only the first two.
func AccountNumber(account string) string {
	n := utf8.RuneCountInString(account)
	if n <= 6 {
		return account
	}
	const visibleStart, visibleEnd = 3, 4
	if n-visibleStart-visibleEnd <= 0 {
		head, tail := splitRunes(account, 2)
		return head + stars(tail)
	}
	head, rest := splitRunes(account, visibleStart)
	middle, end := splitRunes(rest, n-visibleStart-visibleEnd)
	return head + stars(middle) + end
}

func stars(s string) string {
	return strings.Repeat("*", utf8.RuneCountInString(s))
}

func splitFirstRune(s string) (string, string) {
	return splitRunes(s, 1)
}

// splitRunes splits s after n runes.
func splitRunes(s string, n int) (string, string) {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], s[pos:]
		}
		i++
	}
	return s, ""
}
