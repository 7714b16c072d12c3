// Package slug turns titles and names into URL-safe identifiers.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes accented characters and drops the combining marks,
// so "Café" folds to "Cafe" before the ASCII filter runs.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make lowercases s, folds accents to ASCII and collapses every run of
// non-alphanumeric characters into a single hyphen. It can return "" when
// the input contains nothing usable; callers decide the fallback.
func Make(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err == nil {
		s = folded
	}
	s = strings.ToLower(s)

	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
