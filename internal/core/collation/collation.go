// Package collation computes locale-aware sort keys for table ordering
package collation

import (
	"sync"

	"eltranslit/internal/core/scheme"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Keyer is the narrow collation capability the engine depends on
type Keyer interface {
	// Key returns a byte-comparable sort key for s under locale
	Key(locale language.Tag, s string) []byte
	// Supports reports whether locale has its own tailoring in the catalogue
	Supports(locale language.Tag) bool
}

// Collator implements Keyer over golang.org/x/text/collate
// collate.Collator is not safe for concurrent use, so instances are pooled per locale
type Collator struct {
	mu        sync.Mutex
	pools     map[language.Tag]*sync.Pool
	supported map[language.Base]struct{}
}

// New builds a Collator backed by the x/text catalogue
func New() *Collator {
	c := &Collator{
		pools:     make(map[language.Tag]*sync.Pool, 8),
		supported: make(map[language.Base]struct{}, 128),
	}
	for _, t := range collate.Supported() {
		b, conf := t.Base()
		if conf == language.No {
			continue
		}
		c.supported[b] = struct{}{}
	}
	return c
}

// Supports reports whether the base language of locale is in the catalogue
// The root locale is always supported
func (c *Collator) Supports(locale language.Tag) bool {
	if locale == language.Und {
		return true
	}
	b, conf := locale.Base()
	if conf == language.No {
		return false
	}
	_, ok := c.supported[b]
	return ok
}

// Key returns the collation key of s; the result is owned by the caller
func (c *Collator) Key(locale language.Tag, s string) []byte {
	p := c.pool(locale)
	col := p.Get().(*collate.Collator)
	var buf collate.Buffer
	k := col.KeyFromString(&buf, s)
	out := append([]byte(nil), k...)
	p.Put(col)
	return out
}

func (c *Collator) pool(locale language.Tag) *sync.Pool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.pools[locale]; ok {
		return p
	}
	p := &sync.Pool{New: func() any { return collate.New(locale) }}
	c.pools[locale] = p
	return p
}

// LocaleFor picks the collation locale for a table
// Reverse tables use the language's own locale when the catalogue has it,
// everything else collates under root
func LocaleFor(k Keyer, locale language.Tag, dir scheme.Direction) language.Tag {
	if dir == scheme.Reverse && k.Supports(locale) {
		return locale
	}
	return language.Und
}
