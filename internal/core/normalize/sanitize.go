package normalize

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// unwanted matches C0 controls other than tab, newline and carriage return,
// DEL and C1 controls
func unwanted(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return false
	case r < 0x20, r == 0x7f:
		return true
	}
	return r >= 0x80 && r <= 0x9f
}

var sanitizer = runes.Remove(runes.Predicate(unwanted))

// Sanitize drops control characters and invalid UTF-8 from request text.
// Tab, newline, carriage return and an encoded U+FFFD survive. Clean input is returned as is
func Sanitize(s string) string {
	// runes.Remove reports ill formed bytes as U+FFFD, so strip them first
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	if strings.IndexFunc(s, unwanted) < 0 {
		return s
	}
	out, _, err := transform.String(sanitizer, s)
	if err != nil {
		return s
	}
	return out
}
