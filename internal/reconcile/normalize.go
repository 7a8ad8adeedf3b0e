// Package reconcile links roster entries to activity-log rows and derives
// per-person settlement records.
//
// Everything in this package is a pure function of its inputs: no I/O, no
// shared state, no generated identifiers. Callers re-run the whole pass when
// either input set changes.
package reconcile

import (
	"strings"
	"unicode"
)

// Normalize strips every character that is not an ASCII decimal digit.
// It is used for resident IDs, phone numbers and account numbers, where only
// the digits identify the value.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// NormalizeName keeps letters and digits of a name, lower-cased, and drops
// whitespace and punctuation. Names carry no digits in practice, so running
// them through Normalize would make every name compare as empty.
func NormalizeName(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}

// sameDigits reports whether a and b normalize to the same non-empty digits.
func sameDigits(a, b string) bool {
	na := Normalize(a)
	return na != "" && na == Normalize(b)
}

func sameName(a, b string) bool {
	na := NormalizeName(a)
	return na != "" && na == NormalizeName(b)
}
