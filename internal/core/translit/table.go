package translit

import (
	"bytes"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"eltranslit/internal/core/collation"
	"eltranslit/internal/core/normalize"
	"eltranslit/internal/core/scheme"

	"golang.org/x/text/language"
)

// Entry is one substitution pair in working form
type Entry struct {
	Key   string
	Value string
}

// Table is a compiled, immutable substitution table for one language and direction
type Table struct {
	lang  string
	dir   scheme.Direction
	bicam scheme.Bicamerality
	label string
	loc   language.Tag

	entries []Entry
	index   map[string]string
	maxKey  int // longest key in bytes
}

// Language returns the primary subtag the table was built for
func (t *Table) Language() string { return t.lang }

// Direction returns the table direction
func (t *Table) Direction() scheme.Direction { return t.dir }

// Bicamerality returns the case class of the language
func (t *Table) Bicamerality() scheme.Bicamerality { return t.bicam }

// Label is the human readable registry label
func (t *Table) Label() string { return t.label }

// Locale is the collation locale used to order entries
func (t *Table) Locale() language.Tag { return t.loc }

// Len is the number of entries
func (t *Table) Len() int { return len(t.entries) }

// Entries returns a copy of the ordered entries
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Lookup finds the replacement for an exact key
func (t *Table) Lookup(key string) (string, bool) {
	v, ok := t.index[key]
	return v, ok
}

// tableSource is the raw input to compile
type tableSource struct {
	lang    string
	dir     scheme.Direction
	bicam   scheme.Bicamerality
	label   string
	locale  language.Tag
	entries map[string]string
}

// compile normalises entries to the working form and orders them by
// descending collation key, ties by descending key code points.
// Raw keys that share a normal form collapse into one entry: the raw key that
// sorts first byte-wise keeps its value and the rest are dropped
func compile(s tableSource, n *normalize.Normalizer, k collation.Keyer) *Table {
	raw := make([]string, 0, len(s.entries))
	for key := range s.entries {
		raw = append(raw, key)
	}
	sort.Strings(raw)

	t := &Table{
		lang:  s.lang,
		dir:   s.dir,
		bicam: s.bicam,
		label: s.label,
		loc:   collation.LocaleFor(k, s.locale, s.dir),
		index: make(map[string]string, len(raw)),
	}

	// raw is sorted, so the byte-wise smallest of colliding keys lands first
	for _, key := range raw {
		nk := n.Normalize(normalize.Default, key)
		if nk == "" {
			continue
		}
		if _, dup := t.index[nk]; dup {
			continue
		}
		t.index[nk] = n.Normalize(normalize.Default, s.entries[key])
		if len(nk) > t.maxKey {
			t.maxKey = len(nk)
		}
	}

	type keyed struct {
		e   Entry
		col []byte
	}
	ks := make([]keyed, 0, len(t.index))
	for key, val := range t.index {
		ks = append(ks, keyed{e: Entry{Key: key, Value: val}, col: k.Key(t.loc, key)})
	}
	sort.Slice(ks, func(i, j int) bool {
		if c := bytes.Compare(ks[i].col, ks[j].col); c != 0 {
			return c > 0
		}
		return ks[i].e.Key > ks[j].e.Key
	})

	t.entries = make([]Entry, len(ks))
	for i := range ks {
		t.entries[i] = ks[i].e
	}
	return t
}

// Apply runs the substitution for the table direction on already prepared text
// strict only affects Forward tables
func (t *Table) Apply(s string, strict bool) string {
	if s == "" || len(t.entries) == 0 {
		return s
	}
	if t.dir == scheme.Reverse {
		return t.replaceTokens(s)
	}
	if strict {
		return t.replaceLongest(s)
	}
	return t.rewrite(s)
}

// rewrite applies every entry to the whole string in table order
// Output of one pass is input to the next
func (t *Table) rewrite(s string) string {
	for _, e := range t.entries {
		if strings.Contains(s, e.Key) {
			s = strings.ReplaceAll(s, e.Key, e.Value)
		}
	}
	return s
}

// replaceTokens maps whole word tokens and single delimiter runes through the index
func (t *Table) replaceTokens(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	emit := func(tok string) {
		if v, ok := t.index[tok]; ok {
			b.WriteString(v)
			return
		}
		b.WriteString(tok)
	}

	start := -1
	for i := 0; i < len(s); {
		r, sz := utf8.DecodeRuneInString(s[i:])
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			i += sz
			continue
		}
		if start >= 0 {
			emit(s[start:i])
			start = -1
		}
		emit(s[i : i+sz])
		i += sz
	}
	if start >= 0 {
		emit(s[start:])
	}
	return b.String()
}

// replaceLongest is a single left to right scan taking the longest key at each position
func (t *Table) replaceLongest(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	ends := make([]int, 0, 8)

	for i := 0; i < len(s); {
		ends = ends[:0]
		for j := i; j < len(s) && j-i < t.maxKey; {
			_, sz := utf8.DecodeRuneInString(s[j:])
			j += sz
			if j-i > t.maxKey {
				break
			}
			ends = append(ends, j)
		}

		matched := false
		for e := len(ends) - 1; e >= 0; e-- {
			if v, ok := t.index[s[i:ends[e]]]; ok {
				b.WriteString(v)
				i = ends[e]
				matched = true
				break
			}
		}
		if !matched {
			_, sz := utf8.DecodeRuneInString(s[i:])
			b.WriteString(s[i : i+sz])
			i += sz
		}
	}
	return b.String()
}

// isWordRune: letters, marks, decimal digits, connector punctuation, ZWNJ and ZWJ
func isWordRune(r rune) bool {
	switch {
	case unicode.IsLetter(r):
		return true
	case unicode.In(r, unicode.Mn, unicode.Mc, unicode.Me):
		return true
	case unicode.Is(unicode.Nd, r), unicode.Is(unicode.Pc, r):
		return true
	case r == '\u200C' || r == '\u200D':
		return true
	}
	return false
}
