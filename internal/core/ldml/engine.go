package ldml

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"eltranslit/internal/core/normalize"
	"eltranslit/internal/core/scheme"
	"eltranslit/internal/core/translit"
	perr "eltranslit/internal/platform/errors"
)

// Transliterator runs a compiled transform
type Transliterator interface {
	Transliterate(s string) string
}

// Engine compiles transforms for one direction
type Engine interface {
	Compile(t Transform, dir scheme.Direction) (Transliterator, error)
}

// SimpleEngine accepts only context free conversion rules
//
//	a > b ;   forward
//	a < b ;   backward
//	a <> b ;  both
//
// Rule sides are literals: plain letters, quoted text and \u escapes.
// Compiled rules run as one left to right longest-match scan.
type SimpleEngine struct {
	norm *normalize.Normalizer
}

// NewSimpleEngine returns a SimpleEngine using the default normaliser
func NewSimpleEngine() *SimpleEngine {
	return &SimpleEngine{norm: normalize.New()}
}

type simpleTransliterator struct {
	table *translit.Table
	norm  *normalize.Normalizer
}

func (s simpleTransliterator) Transliterate(in string) string {
	return s.table.Apply(s.norm.Normalize(normalize.Default, in), true)
}

// Compile implements Engine
func (e *SimpleEngine) Compile(t Transform, dir scheme.Direction) (Transliterator, error) {
	if dir == scheme.Forward && !t.Forward() {
		return nil, perr.Wrapf(ErrUnavailable, perr.ErrorCodeUnavailable, "ldml: %s has no forward rules", t.Name)
	}
	if dir == scheme.Reverse && !t.Backward() {
		return nil, perr.Wrapf(ErrUnavailable, perr.ErrorCodeUnavailable, "ldml: %s has no backward rules", t.Name)
	}

	rules, err := ParseRules(t.Rules)
	if err != nil {
		return nil, perr.WithOp(err, t.Name)
	}

	entries := make(map[string]string, len(rules))
	for _, r := range rules {
		from, to, ok := r.For(dir)
		if !ok {
			continue
		}
		// earlier rules take precedence
		if _, seen := entries[from]; !seen {
			entries[from] = to
		}
	}

	n := e.norm
	if n == nil {
		n = normalize.New()
	}
	tbl := translit.Compile("und", scheme.Forward, entries, translit.WithNormalizer(n))
	return simpleTransliterator{table: tbl, norm: n}, nil
}

// Op is the conversion operator of a Rule
type Op uint8

const (
	// OpForward is a > b
	OpForward Op = iota + 1
	// OpBackward is a < b
	OpBackward
	// OpBoth is a <> b
	OpBoth
)

// Rule is one context free conversion rule
type Rule struct {
	Left  string
	Op    Op
	Right string
}

// For returns the key and replacement the rule contributes in dir
func (r Rule) For(dir scheme.Direction) (string, string, bool) {
	switch {
	case dir == scheme.Forward && (r.Op == OpForward || r.Op == OpBoth):
		return r.Left, r.Right, r.Left != ""
	case dir == scheme.Reverse && (r.Op == OpBackward || r.Op == OpBoth):
		return r.Right, r.Left, r.Right != ""
	}
	return "", "", false
}

// ParseRules splits cleaned rule text into conversion rules
// Any construct beyond plain conversion rules yields ErrUnavailable
func ParseRules(text string) ([]Rule, error) {
	var out []Rule
	for _, stmt := range splitStatements(text) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if strings.HasPrefix(stmt, "::") {
			return nil, unavailable("transform or filter rule %q", stmt)
		}
		if strings.HasPrefix(stmt, "$") {
			return nil, unavailable("variable definition %q", stmt)
		}

		lhs, op, rhs, ok := splitOperator(stmt)
		if !ok {
			return nil, unavailable("no conversion operator in %q", stmt)
		}
		left, err := literal(lhs)
		if err != nil {
			return nil, err
		}
		right, err := literal(rhs)
		if err != nil {
			return nil, err
		}
		if left == "" && op != OpBackward {
			return nil, perr.Wrapf(ErrMalformed, perr.ErrorCodeValidation, "ldml: empty left side in %q", stmt)
		}
		if right == "" && op != OpForward {
			return nil, perr.Wrapf(ErrMalformed, perr.ErrorCodeValidation, "ldml: empty right side in %q", stmt)
		}
		out = append(out, Rule{Left: left, Op: op, Right: right})
	}
	return out, nil
}

func unavailable(format string, a ...any) error {
	return perr.Wrapf(ErrUnavailable, perr.ErrorCodeUnavailable, "ldml: unsupported "+format, a...)
}

// splitStatements cuts on ; outside quotes and escapes
func splitStatements(text string) []string {
	var out []string
	start, quoted := 0, false
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '\'':
			quoted = !quoted
		case ';':
			if !quoted {
				out = append(out, text[start:i])
				start = i + 1
			}
		}
	}
	return append(out, text[start:])
}

// splitOperator finds the first unquoted conversion operator
func splitOperator(stmt string) (string, Op, string, bool) {
	quoted := false
	for i := 0; i < len(stmt); {
		r, sz := utf8.DecodeRuneInString(stmt[i:])
		switch {
		case r == '\\':
			_, esz := utf8.DecodeRuneInString(stmt[i+sz:])
			i += sz + esz
			continue
		case r == '\'':
			quoted = !quoted
		case quoted:
		case r == '<' && strings.HasPrefix(stmt[i:], "<>"):
			return stmt[:i], OpBoth, stmt[i+2:], true
		case r == '\u2194':
			return stmt[:i], OpBoth, stmt[i+sz:], true
		case r == '>' || r == '\u2192':
			return stmt[:i], OpForward, stmt[i+sz:], true
		case r == '<' || r == '\u2190':
			return stmt[:i], OpBackward, stmt[i+sz:], true
		}
		i += sz
	}
	return "", 0, "", false
}

// literal decodes one rule side; unquoted whitespace is ignored
func literal(side string) (string, error) {
	var b strings.Builder
	quoted := false
	for i := 0; i < len(side); {
		r, sz := utf8.DecodeRuneInString(side[i:])
		switch {
		case r == '\'':
			if strings.HasPrefix(side[i+1:], "'") {
				b.WriteByte('\'')
				i += 2
				continue
			}
			quoted = !quoted
			i++
			continue
		case quoted:
			b.WriteRune(r)
		case r == '\\':
			dr, n, err := unescape(side[i+1:])
			if err != nil {
				return "", err
			}
			b.WriteRune(dr)
			i += 1 + n
			continue
		case unicode.IsSpace(r):
		case isReserved(r):
			return "", unavailable("syntax %q in %q", string(r), strings.TrimSpace(side))
		default:
			b.WriteRune(r)
		}
		i += sz
	}
	if quoted {
		return "", perr.Wrapf(ErrMalformed, perr.ErrorCodeValidation, "ldml: unterminated quote in %q", side)
	}
	return b.String(), nil
}

// isReserved reports ASCII punctuation that must be quoted or escaped in rules
func isReserved(r rune) bool {
	return r < utf8.RuneSelf && (unicode.IsPunct(r) || unicode.IsSymbol(r))
}

// unescape decodes the text after a backslash, returning the rune and bytes consumed
func unescape(s string) (rune, int, error) {
	if s == "" {
		return 0, 0, perr.Wrap(ErrMalformed, perr.ErrorCodeValidation, "ldml: dangling backslash")
	}
	hex := func(digits string) (rune, error) {
		v, err := strconv.ParseUint(digits, 16, 32)
		if err != nil || !utf8.ValidRune(rune(v)) {
			return 0, perr.Wrapf(ErrMalformed, perr.ErrorCodeValidation, "ldml: bad escape %q", digits)
		}
		return rune(v), nil
	}
	switch s[0] {
	case 'u':
		if len(s) < 5 {
			return 0, 0, perr.Wrapf(ErrMalformed, perr.ErrorCodeValidation, "ldml: short \\u escape %q", s)
		}
		r, err := hex(s[1:5])
		return r, 5, err
	case 'U':
		if len(s) < 9 {
			return 0, 0, perr.Wrapf(ErrMalformed, perr.ErrorCodeValidation, "ldml: short \\U escape %q", s)
		}
		r, err := hex(s[1:9])
		return r, 9, err
	case 'x':
		if strings.HasPrefix(s, "x{") {
			end := strings.IndexByte(s, '}')
			if end < 0 {
				return 0, 0, perr.Wrapf(ErrMalformed, perr.ErrorCodeValidation, "ldml: unterminated \\x{ escape")
			}
			r, err := hex(s[2:end])
			return r, end + 1, err
		}
		if len(s) < 3 {
			return 0, 0, perr.Wrapf(ErrMalformed, perr.ErrorCodeValidation, "ldml: short \\x escape %q", s)
		}
		r, err := hex(s[1:3])
		return r, 3, err
	case 'n':
		return '\n', 1, nil
	case 't':
		return '\t', 1, nil
	}
	r, sz := utf8.DecodeRuneInString(s)
	return r, sz, nil
}
