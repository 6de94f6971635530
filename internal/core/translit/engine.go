// Package translit converts text between a Latin romanisation and a native
// script with per-language dictionary tables
//
// Forward rewrites the whole string once per table entry, in descending
// collation order of the keys. Reverse splits the string into word tokens and
// single delimiter runes and replaces tokens that match a key exactly.
// Strict mode replaces Forward rewriting with one longest-match scan.
//
// Languages missing from the registry pass through unchanged.
package translit

import (
	"sync"

	"eltranslit/internal/core/collation"
	"eltranslit/internal/core/langtag"
	"eltranslit/internal/core/normalize"
	"eltranslit/internal/core/registry"
	"eltranslit/internal/core/scheme"
	"eltranslit/internal/platform/logger"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Request carries the per-call parameters
type Request struct {
	Lang   string
	Dir    scheme.Direction
	Form   normalize.Form
	Strict bool
}

// Option configures an Engine
type Option func(*Engine)

// WithNormalizer swaps the preparation stage
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(e *Engine) {
		if n != nil {
			e.norm = n
		}
	}
}

// WithKeyer swaps the collation service
func WithKeyer(k collation.Keyer) Option {
	return func(e *Engine) {
		if k != nil {
			e.keyer = k
		}
	}
}

// WithLogger sets the engine logger
func WithLogger(l *zerolog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithCache toggles table caching; disabled, every call rebuilds its table
func WithCache(on bool) Option { return func(e *Engine) { e.cache = on } }

// WithStrict makes Forward calls use longest-match scanning by default
func WithStrict(on bool) Option { return func(e *Engine) { e.strict = on } }

type cacheKey struct {
	lang string
	dir  scheme.Direction
}

func (k cacheKey) String() string { return k.lang + "/" + k.dir.String() }

// Engine transliterates text against a Registry; safe for concurrent use
type Engine struct {
	reg    *registry.Registry
	norm   *normalize.Normalizer
	keyer  collation.Keyer
	log    *zerolog.Logger
	cache  bool
	strict bool

	mu     sync.RWMutex
	tables map[cacheKey]*Table
	group  singleflight.Group
}

// New builds an Engine over reg
func New(reg *registry.Registry, opts ...Option) *Engine {
	e := &Engine{
		reg:    reg,
		norm:   normalize.New(),
		keyer:  collation.New(),
		log:    logger.Named("translit"),
		cache:  true,
		tables: make(map[cacheKey]*Table, 8),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Registry returns the registry the engine reads from
func (e *Engine) Registry() *registry.Registry { return e.reg }

// Supported reports whether the primary subtag of lang has a table
func (e *Engine) Supported(lang string) bool {
	_, ok := e.reg.Lookup(langtag.Primary(lang))
	return ok
}

// Transliterate converts source for lang in dir and returns it in form nf
// Unknown forms fall back to the working form
func (e *Engine) Transliterate(source, lang string, dir scheme.Direction, nf normalize.Form) string {
	return e.Run(source, Request{Lang: lang, Dir: dir, Form: nf, Strict: e.strict})
}

// TransliterateBatch is Transliterate over each element of sources
func (e *Engine) TransliterateBatch(sources []string, lang string, dir scheme.Direction, nf normalize.Form) []string {
	return e.RunBatch(sources, Request{Lang: lang, Dir: dir, Form: nf, Strict: e.strict})
}

// Run is Transliterate with explicit per-call options
func (e *Engine) Run(source string, req Request) string {
	t, ok := e.Table(req.Lang, req.Dir)
	if !ok {
		return source
	}
	return e.run(t, source, req)
}

// RunBatch runs every source with the same table; output order matches input
func (e *Engine) RunBatch(sources []string, req Request) []string {
	out := make([]string, len(sources))
	t, ok := e.Table(req.Lang, req.Dir)
	if !ok {
		copy(out, sources)
		return out
	}
	for i, s := range sources {
		out[i] = e.run(t, s, req)
	}
	return out
}

func (e *Engine) run(t *Table, source string, req Request) string {
	nf, _ := normalize.ParseForm(string(req.Form))
	s := e.norm.Prepare(source, req.Dir, t.lang, t.bicam)
	s = t.Apply(s, req.Strict)
	if nf != normalize.NFM {
		s = e.norm.Normalize(nf, s)
	}
	return s
}

// Table returns the compiled table for lang and dir
// The table is shared and read only
func (e *Engine) Table(lang string, dir scheme.Direction) (*Table, bool) {
	tag := langtag.Parse(lang)
	l, entries, ok := e.reg.Entries(tag.Language, dir)
	if !ok {
		return nil, false
	}
	src := tableSource{
		lang:    tag.Language,
		dir:     dir,
		bicam:   l.Bicamerality,
		label:   l.Label,
		locale:  tag.Locale(),
		entries: entries,
	}
	if !e.cache {
		return e.build(src), true
	}

	k := cacheKey{lang: tag.Language, dir: dir}
	if t := e.cached(k); t != nil {
		return t, true
	}
	v, _, _ := e.group.Do(k.String(), func() (any, error) {
		if t := e.cached(k); t != nil {
			return t, nil
		}
		t := e.build(src)
		e.mu.Lock()
		e.tables[k] = t
		e.mu.Unlock()
		return t, nil
	})
	return v.(*Table), true
}

// Compile builds a standalone table outside any registry, for callers that
// produce their own entries. Only the normaliser and keyer options apply
func Compile(lang string, dir scheme.Direction, entries map[string]string, opts ...Option) *Table {
	e := New(nil, opts...)
	return compile(tableSource{
		lang:    lang,
		dir:     dir,
		bicam:   scheme.Both,
		locale:  langtag.Parse(lang).Locale(),
		entries: entries,
	}, e.norm, e.keyer)
}

func (e *Engine) cached(k cacheKey) *Table {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tables[k]
}

func (e *Engine) build(src tableSource) *Table {
	t := compile(src, e.norm, e.keyer)
	e.log.Debug().
		Str("lang", t.lang).
		Str("dir", t.dir.String()).
		Str("locale", t.loc.String()).
		Int("entries", t.Len()).
		Msg("translit: table built")
	return t
}
