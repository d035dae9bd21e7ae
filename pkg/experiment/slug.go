package experiment

import (
	"strings"
	"unicode"
)

// Slugify lowercases the name, converts runs of whitespace and dashes to a
// single dash, and drops anything that is not an ASCII letter, digit,
// underscore, or dash. Leading and trailing dashes and underscores are
// stripped. The result is safe to use as a directory name.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsSpace(r) || r == '-':
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		case r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'):
			b.WriteRune(r)
			lastDash = false
		}
	}
	return strings.Trim(b.String(), "-_")
}
