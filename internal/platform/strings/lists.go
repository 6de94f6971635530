package strings

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	std "strings"
)

// DefaultSep is the conventional list separator; callers pass it explicitly
const DefaultSep = ", "

// ListToString joins the printed form of items with sep; an empty sep concatenates
// With dropEmpty set, zero values (empty strings, 0, false, nil) are skipped
func ListToString[T any](items []T, sep string, dropEmpty bool) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if dropEmpty && isZero(it) {
			continue
		}
		parts = append(parts, fmt.Sprint(it))
	}
	return std.Join(parts, sep)
}

// StringToList splits s on sep and keeps only items without surrounding whitespace
// "one, two , three" with sep "," gives ["one"]; with sep ", " gives ["one", "three"]
// An empty sep splits after each rune, as strings.Split does
func StringToList(s, sep string) []string {
	var out []string
	for _, it := range std.Split(s, sep) {
		if it == std.TrimSpace(it) {
			out = append(out, it)
		}
	}
	return out
}

// PrintList writes items to w separated by sep and terminated by a newline
// Only a single space separator honours dropEmpty
func PrintList[T any](w io.Writer, items []T, sep string, dropEmpty bool) error {
	var line string
	if sep == " " {
		line = ListToString(items, sep, dropEmpty)
	} else {
		line = ListToString(items, sep, false)
	}
	_, err := io.WriteString(w, line+"\n")
	return err
}

// SearchValues returns the sorted keys of m whose value list has an element containing needle
func SearchValues[K cmp.Ordered](m map[K][]string, needle string) []K {
	var out []K
	for k, vals := range m {
		if slices.ContainsFunc(vals, func(v string) bool { return std.Contains(v, needle) }) {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// SearchKeys returns the values stored under key
// A missing key and a nil value both report false
func SearchKeys[K comparable](m map[K][]string, key K) ([]string, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func isZero(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case int:
		return x == 0
	case int64:
		return x == 0
	case float64:
		return x == 0
	case fmt.Stringer:
		return x.String() == ""
	}
	return false
}
