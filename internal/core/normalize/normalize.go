// Package normalize prepares text for dictionary transliteration
// Preparation order
// 1 Reverse into a single-case script: lower case the whole input
// 2 Canonical decomposition
// 3 Reverse for Lao/Thai: fold U+0327 and U+031C to U+0328
// 4 Working form (NFM)
//
// Step 3 runs on decomposed text so precomposed letters carrying the marks
// (e.g. U+0229) are folded too
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"eltranslit/internal/core/scheme"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Form names a Unicode normalisation form accepted by the engine
type Form string

const (
	// NFC is canonical composition
	NFC Form = "NFC"
	// NFKC is compatibility composition
	NFKC Form = "NFKC"
	// NFKCCF is NFKC with case folding and default ignorables removed
	NFKCCF Form = "NFKC_CF"
	// NFD is canonical decomposition
	NFD Form = "NFD"
	// NFKD is compatibility decomposition
	NFKD Form = "NFKD"
	// NFM is the working form tables are stored in; see Profile
	NFM Form = "NFM"
)

// Default is the working form of every table
const Default = NFM

// Forms lists the allowed output forms
var Forms = []Form{NFC, NFKC, NFKCCF, NFD, NFKD, NFM}

// ParseForm matches s case-insensitively against Forms
// Unknown values return (Default, false)
func ParseForm(s string) (Form, bool) {
	u := Form(strings.ToUpper(strings.TrimSpace(s)))
	for _, f := range Forms {
		if u == f {
			return f, true
		}
	}
	return Default, false
}

// Profile is a pluggable normalisation, used for NFM
type Profile interface {
	String(s string) string
}

// ProfileFunc adapts a func to Profile
type ProfileFunc func(string) string

// String implements Profile
func (f ProfileFunc) String(s string) string { return f(s) }

// Option configures a Normalizer
type Option func(*Normalizer)

// WithNFM swaps the NFM profile; the default is canonical composition
func WithNFM(p Profile) Option {
	return func(n *Normalizer) {
		if p != nil {
			n.nfm = p
		}
	}
}

// Normalizer applies forms and preparation; safe for concurrent use
type Normalizer struct {
	nfm Profile
}

// New constructs a Normalizer
func New(opts ...Option) *Normalizer {
	n := &Normalizer{nfm: norm.NFC}
	for _, o := range opts {
		o(n)
	}
	return n
}

// pool of NFKC_CF chains; transform chains carry state
var casefoldPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
			runes.Remove(runes.Predicate(isDefaultIgnorable)),
			norm.NFKC,
		)
	},
}

// Normalize returns s in form f; unknown forms fall back to NFM
func (n *Normalizer) Normalize(f Form, s string) string {
	if s == "" {
		return s
	}
	switch f {
	case NFC:
		return norm.NFC.String(s)
	case NFD:
		return norm.NFD.String(s)
	case NFKC:
		return norm.NFKC.String(s)
	case NFKD:
		return norm.NFKD.String(s)
	case NFKCCF:
		tr := casefoldPool.Get().(transform.Transformer)
		out, _, err := transform.String(tr, s)
		tr.Reset()
		casefoldPool.Put(tr)
		if err != nil {
			return s
		}
		return out
	default:
		return n.nfm.String(s)
	}
}

// markFolder canonicalises the ambiguous below-marks in Lao/Thai romanisation
var markFolder = strings.NewReplacer("\u0327", "\u0328", "\u031C", "\u0328")

// Prepare readies s for matching against a table in dir for lang
// It never fails
func (n *Normalizer) Prepare(s string, dir scheme.Direction, lang string, b scheme.Bicamerality) string {
	if s == "" {
		return s
	}
	if dir == scheme.Reverse && b != scheme.Both {
		s = cases.Lower(language.Und).String(s)
	}
	if dir == scheme.Reverse && foldsMarks(lang) {
		s = markFolder.Replace(norm.NFD.String(s))
	}
	return n.Normalize(Default, s)
}

// foldsMarks reports languages whose romanisation tables key on U+0328 only
func foldsMarks(lang string) bool {
	return lang == "lo" || lang == "th"
}

// isDefaultIgnorable approximates Default_Ignorable_Code_Point for NFKC_CF
func isDefaultIgnorable(r rune) bool {
	switch {
	case unicode.Is(unicode.Other_Default_Ignorable_Code_Point, r):
		return true
	case unicode.Is(unicode.Variation_Selector, r):
		return true
	case unicode.Is(unicode.Cf, r):
		return !unicode.Is(unicode.Prepended_Concatenation_Mark, r)
	}
	return false
}
