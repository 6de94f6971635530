// Package langtag splits BCP-47 style language tags into the subtags the
// transliteration engine cares about
//
// The split is deliberately permissive: it never fails, accepts "_" as a
// separator and keeps anything it does not interpret in Remainder
package langtag

import (
	"strings"

	"golang.org/x/text/language"
)

// Tag is a parsed language tag
type Tag struct {
	Language  string // primary subtag, lowercased
	Script    string // 4 letter titlecased subtag in position 2, if present
	Region    string // 2 letter uppercase subtag, if present
	Remainder string // remaining subtags joined with "-"
}

// Parse splits tag into language, script, region and remainder
func Parse(tag string) Tag {
	tag = strings.TrimSpace(strings.ReplaceAll(tag, "_", "-"))
	if tag == "" {
		return Tag{}
	}
	parts := strings.Split(tag, "-")
	t := Tag{Language: strings.ToLower(parts[0])}
	rest := parts[1:]

	if len(rest) > 0 && isScript(rest[0]) {
		t.Script = rest[0]
		rest = rest[1:]
	}
	if len(rest) > 0 && isRegion(rest[0]) {
		t.Region = rest[0]
		rest = rest[1:]
	}
	if len(rest) > 0 {
		t.Remainder = strings.Join(rest, "-")
	}
	return t
}

// Primary returns just the language subtag of tag
func Primary(tag string) string { return Parse(tag).Language }

// String reassembles the tag in canonical subtag order
func (t Tag) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{t.Language, t.Script, t.Region, t.Remainder} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "-")
}

// Locale returns the x/text language tag for the primary language
// Unknown or malformed languages map to language.Und (root)
func (t Tag) Locale() language.Tag {
	if t.Language == "" {
		return language.Und
	}
	base, err := language.ParseBase(t.Language)
	if err != nil {
		return language.Und
	}
	tag, err := language.Compose(base)
	if err != nil {
		return language.Und
	}
	return tag
}

// isScript reports a 4 letter titlecased ASCII subtag like "Laoo"
func isScript(s string) bool {
	if len(s) != 4 {
		return false
	}
	if s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	for i := 1; i < 4; i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// isRegion reports a 2 letter uppercase ASCII subtag like "LA"
func isRegion(s string) bool {
	return len(s) == 2 && s[0] >= 'A' && s[0] <= 'Z' && s[1] >= 'A' && s[1] <= 'Z'
}
