package translit

import (
	"testing"

	"eltranslit/internal/core/scheme"
)

func TestIsWordRune(t *testing.T) {
	word := []rune{'a', 'Z', '\u0EA5', '\u0301', '\u0E31', '7', '_', '\u200C', '\u200D', '\u0669'}
	for _, r := range word {
		if !isWordRune(r) {
			t.Fatalf("%U should be a word rune", r)
		}
	}
	sep := []rune{' ', ',', '-', '.', '\t', '\u00A0', '\u0E5A', '!', '\u2019'}
	for _, r := range sep {
		if isWordRune(r) {
			t.Fatalf("%U should split tokens", r)
		}
	}
}

func TestReplaceTokensInvalidUTF8(t *testing.T) {
	tb := &Table{index: map[string]string{"a": "X"}, entries: []Entry{{Key: "a", Value: "X"}}}
	if got := tb.replaceTokens("a\xffa"); got != "X\xffX" {
		t.Fatalf("got %q", got)
	}
}

func TestCompile_NormalFormCollisionKeepsFirstRawKey(t *testing.T) {
	cases := []struct {
		name    string
		entries map[string]string
		key     string
		want    string
		n       int
	}{
		{
			// e + combining acute sorts before precomposed U+00E9
			name:    "decomposed wins",
			entries: map[string]string{"e\u0301": "decomposed", "\u00e9": "precomposed"},
			key:     "\u00e9", want: "decomposed", n: 1,
		},
		{
			name:    "distinct forms both kept",
			entries: map[string]string{"e\u0301": "acute", "e\u0300": "grave"},
			key:     "\u00e8", want: "grave", n: 2,
		},
		{
			name:    "three way collision",
			entries: map[string]string{"\u212B": "angstrom", "A\u030A": "ring", "\u00C5": "precomposed"},
			key:     "\u00C5", want: "ring", n: 1,
		},
	}
	for _, tc := range cases {
		for i := 0; i < 5; i++ {
			tb := Compile("el", scheme.Forward, tc.entries)
			if tb.Len() != tc.n {
				t.Fatalf("%s: Len() = %d want %d", tc.name, tb.Len(), tc.n)
			}
			if got, ok := tb.Lookup(tc.key); !ok || got != tc.want {
				t.Fatalf("%s: Lookup(%q) = %q, %v want %q", tc.name, tc.key, got, ok, tc.want)
			}
		}
	}
}
