package ldml

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"eltranslit/internal/core/scheme"
	perr "eltranslit/internal/platform/errors"
	"eltranslit/internal/platform/testkit"

	"github.com/rs/zerolog"
)

const demoFile = "../../../data/transforms/lo-Latn-demo.xml"

func quietRegistry(opts ...RegistryOption) *Registry {
	nop := zerolog.Nop()
	return NewRegistry(append([]RegistryOption{WithLogger(&nop)}, opts...)...)
}

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func doc(attrs, rules string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<supplementalData><transforms><transform ` + attrs + `><tRule><![CDATA[` + rules + `]]></tRule></transform></transforms></supplementalData>`
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	file := write(t, dir, "rules.xml", "<x/>")

	got, err := ResolvePath(file)
	if err != nil {
		t.Fatalf("ResolvePath(file): %v", err)
	}
	want, _ := filepath.EvalSymlinks(file)
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	link := filepath.Join(dir, "link.xml")
	if err := os.Symlink(file, link); err == nil {
		if got, err := ResolvePath(link); err != nil || got != want {
			t.Fatalf("symlink: %q %v", got, err)
		}
	}

	_, err = ResolvePath(filepath.Join(dir, "missing.xml"))
	if !errors.Is(err, ErrNotFound) || !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("missing: %v", err)
	}

	_, err = ResolvePath(dir)
	if !errors.Is(err, ErrNotRegularFile) || !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("directory: %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("directory reported as missing")
	}

	if _, err := ResolvePath("  "); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty: %v", err)
	}
}

func TestResolvePath_Tilde(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "r.xml", "<x/>")
	testkit.Swap(t, &userHomeDir, func() (string, error) { return dir, nil })

	got, err := ResolvePath("~/r.xml")
	if err != nil {
		t.Fatalf("ResolvePath(~): %v", err)
	}
	if filepath.Base(got) != "r.xml" {
		t.Fatalf("got %q", got)
	}

	testkit.Swap(t, &userHomeDir, func() (string, error) { return "", errors.New("no home") })
	if _, err := ResolvePath("~/r.xml"); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("home failure: %v", err)
	}
}

func TestParse_DemoFile(t *testing.T) {
	tr, err := ParseFile(demoFile)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if tr.Name != "lo-t-lo-latn-m0-demo" {
		t.Fatalf("name = %q", tr.Name)
	}
	if len(tr.Alias) != 2 || tr.Alias[1] != "Lao-Latin/demo" {
		t.Fatalf("alias = %v", tr.Alias)
	}
	if tr.Source != "Lao" || tr.Target != "Latin" || tr.Variant != "demo" || tr.Direction != "both" {
		t.Fatalf("attrs = %+v", tr)
	}
	if strings.Contains(tr.Rules, "#") || strings.Contains(tr.Rules, "aspirated") {
		t.Fatalf("comments survived: %q", tr.Rules)
	}
	if !filepath.IsAbs(tr.Path) {
		t.Fatalf("path not absolute: %q", tr.Path)
	}
}

func TestParse_Locations(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{"supplemental", doc(`alias="a-b c"`, "a > b ;"), true},
		{"bare transforms", `<transforms><transform alias="x"><tRule>a > b ;</tRule></transform></transforms>`, true},
		{"too deep", `<root><supplementalData><transforms><transform alias="x"><tRule>a</tRule></transform></transforms></supplementalData></root>`, false},
		{"no transform", `<supplementalData><transforms/></supplementalData>`, false},
		{"not xml", `a > b ;`, false},
		{"truncated", `<supplementalData><transforms>`, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.in))
			if tc.ok && err != nil {
				t.Fatalf("unexpected: %v", err)
			}
			if !tc.ok && !perr.IsCode(err, perr.ErrorCodeValidation) {
				t.Fatalf("want validation error, got %v", err)
			}
		})
	}
}

func TestParse_NameAndDirection(t *testing.T) {
	tr, err := Parse(strings.NewReader(doc(`source="Lao" target="Latin" variant="v"`, "a > b ;")))
	if err != nil {
		t.Fatal(err)
	}
	if tr.Name != "Lao-Latin/v" || tr.Direction != "forward" {
		t.Fatalf("fallback name/direction = %q %q", tr.Name, tr.Direction)
	}

	_, err = Parse(strings.NewReader(doc(`alias="x" direction="sideways"`, "a > b ;")))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("bad direction: %v", err)
	}

	_, err = Parse(strings.NewReader(doc(``, "a > b ;")))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("nameless: %v", err)
	}

	_, err = Parse(strings.NewReader(`<transforms><transform alias="x"/></transforms>`))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("no tRule: %v", err)
	}
}

func TestCleanRules(t *testing.T) {
	in := "  # header\r\n a > b ;   # trailing\n\n\tc\t\t> d ;\n'#' > hash ; \\# > esc ;\n"
	want := "a > b ;\nc> d ;\n'#' > hash ; \\# > esc ;"
	if got := CleanRules(in); got != want {
		t.Fatalf("CleanRules = %q, want %q", got, want)
	}
}

func TestParseRules(t *testing.T) {
	rules, err := ParseRules("a > b ; c < d ; e <> f ; 'x y' > z ; \\u0041 > q ; g \u2192 h ; it''s > its ;")
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	want := []Rule{
		{"a", OpForward, "b"},
		{"c", OpBackward, "d"},
		{"e", OpBoth, "f"},
		{"x y", OpForward, "z"},
		{"A", OpForward, "q"},
		{"g", OpForward, "h"},
		{"it's", OpForward, "its"},
	}
	if len(rules) != len(want) {
		t.Fatalf("rules = %+v", rules)
	}
	for i := range want {
		if rules[i] != want[i] {
			t.Fatalf("[%d] = %+v, want %+v", i, rules[i], want[i])
		}
	}
}

func TestParseRules_Unavailable(t *testing.T) {
	for _, in := range []string{
		":: NFD ;",
		"$vowel = [aeiou] ;",
		"a } b > c ;",
		"[abc] > x ;",
		"a > b | c ;",
		"just text ;",
	} {
		_, err := ParseRules(in)
		if !errors.Is(err, ErrUnavailable) || !perr.IsCode(err, perr.ErrorCodeUnavailable) {
			t.Fatalf("%q: %v", in, err)
		}
	}
	for _, in := range []string{"> b ;", "a <> ;", "a > 'open ;", "\\u00 > b ;"} {
		_, err := ParseRules(in)
		if !errors.Is(err, ErrMalformed) {
			t.Fatalf("%q: want malformed, got %v", in, err)
		}
	}
}

func TestRegistry_DemoRoundTrip(t *testing.T) {
	r := quietRegistry()
	tr, err := r.RegisterFile(demoFile)
	if err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}

	latin, err := r.Transliterate(tr.Name, "\u0E9E\u0EB2\u0EAA\u0EB2 \u0EA5\u0EB2\u0EA7", scheme.Forward)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if latin != "ph\u0101s\u0101 l\u0101v" {
		t.Fatalf("forward = %q", latin)
	}
	back, err := r.Transliterate(tr.Name, latin, scheme.Reverse)
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if back != "\u0E9E\u0EB2\u0EAA\u0EB2 \u0EA5\u0EB2\u0EA7" {
		t.Fatalf("reverse = %q", back)
	}

	out, _ := r.Transliterate(tr.Name, "\u0E81\u0EAF", scheme.Forward)
	if out != "k..." {
		t.Fatalf("quoted rhs = %q", out)
	}
}

func TestRegistry_Errors(t *testing.T) {
	r := quietRegistry()
	if _, err := r.Transliterate("nope", "x", scheme.Forward); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("unknown name: %v", err)
	}
	if err := r.Register(Transform{Name: "  "}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("empty name: %v", err)
	}

	if err := r.Register(Transform{Name: "fwd", Direction: "forward", Rules: "a > b ;"}); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Transliterate("fwd", "a", scheme.Reverse); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("reverse of forward-only: %v", err)
	}

	if err := r.Register(Transform{Name: "ctx", Direction: "both", Rules: "a } b > c ;"}); err != nil {
		t.Fatal(err)
	}
	out, err := r.Transliterate("ctx", "ab", scheme.Forward)
	if !errors.Is(err, ErrUnavailable) || out != "" {
		t.Fatalf("context rule: %q %v", out, err)
	}

	dir := t.TempDir()
	if _, err := r.RegisterFile(dir); !errors.Is(err, ErrNotRegularFile) {
		t.Fatalf("dir: %v", err)
	}
	bad := write(t, dir, "bad.xml", "<transforms>")
	if _, err := r.RegisterFile(bad); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("bad xml: %v", err)
	}
}

func TestRegistry_ReplaceInvalidatesCompiled(t *testing.T) {
	r := quietRegistry()
	_ = r.Register(Transform{Name: "x", Direction: "forward", Rules: "a > b ;"})
	if out, _ := r.Transliterate("x", "a", scheme.Forward); out != "b" {
		t.Fatalf("first = %q", out)
	}
	_ = r.Register(Transform{Name: "x", Direction: "forward", Rules: "a > c ;"})
	if out, _ := r.Transliterate("x", "a", scheme.Forward); out != "c" {
		t.Fatalf("after replace = %q", out)
	}
	if names := r.Names(); len(names) != 1 || names[0] != "x" {
		t.Fatalf("names = %v", names)
	}
	if _, ok := r.Get("x"); !ok {
		t.Fatalf("Get(x) missing")
	}
}

type countingEngine struct {
	mu    sync.Mutex
	calls int
}

func (c *countingEngine) Compile(Transform, scheme.Direction) (Transliterator, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return upper{}, nil
}

type upper struct{}

func (upper) Transliterate(s string) string { return strings.ToUpper(s) }

func TestRegistry_PluggableEngine(t *testing.T) {
	eng := &countingEngine{}
	r := quietRegistry(WithEngine(eng))
	_ = r.Register(Transform{Name: "u", Direction: "both", Rules: "anything { goes } here"})
	for i := 0; i < 3; i++ {
		if out, err := r.Transliterate("u", "abc", scheme.Forward); err != nil || out != "ABC" {
			t.Fatalf("out=%q err=%v", out, err)
		}
	}
	if eng.calls != 1 {
		t.Fatalf("compiled %d times, want 1", eng.calls)
	}
}
