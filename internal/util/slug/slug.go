// Package slug derives filesystem and branch friendly names from project names.
package slug

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxLen = 64

// Make lowercases name, replaces separator runs with single dashes, strips
// everything that is not a letter, digit or dash, and truncates to 64 bytes.
// Returns "project" when nothing usable survives.
func Make(name string) string {
	var b strings.Builder
	prevDash := true // swallow leading dashes

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		case r == '-' || r == '_' || r == ' ' || r == '.' || r == '/':
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}

	s := strings.TrimRight(b.String(), "-")
	if len(s) > maxLen {
		// Cut on a rune boundary; non-ASCII letters are multibyte.
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = strings.TrimRight(s[:cut], "-")
	}
	if s == "" {
		return "project"
	}
	return s
}
