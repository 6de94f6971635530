package ldml

import (
	"sort"
	"strings"
	"sync"

	"eltranslit/internal/core/scheme"
	"eltranslit/internal/platform/logger"
	perr "eltranslit/internal/platform/errors"

	"github.com/rs/zerolog"
)

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithEngine swaps the rule engine; the default is SimpleEngine
func WithEngine(e Engine) RegistryOption {
	return func(r *Registry) {
		if e != nil {
			r.engine = e
		}
	}
}

// WithLogger sets the registry logger
func WithLogger(l *zerolog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

type compiledKey struct {
	name string
	dir  scheme.Direction
}

// Registry holds transforms by name; safe for concurrent use
type Registry struct {
	engine Engine
	log    *zerolog.Logger

	mu         sync.RWMutex
	transforms map[string]Transform
	compiled   map[compiledKey]Transliterator
}

// NewRegistry returns an empty Registry
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		engine:     NewSimpleEngine(),
		log:        logger.Named("ldml"),
		transforms: make(map[string]Transform),
		compiled:   make(map[compiledKey]Transliterator),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Register adds t under t.Name, replacing any transform of the same name
func (r *Registry) Register(t Transform) error {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return perr.WithField(perr.InvalidArgf("ldml: transform without a name"), "name")
	}
	t.Name = name

	r.mu.Lock()
	_, replaced := r.transforms[name]
	r.transforms[name] = t
	delete(r.compiled, compiledKey{name, scheme.Forward})
	delete(r.compiled, compiledKey{name, scheme.Reverse})
	r.mu.Unlock()

	r.log.Info().
		Str("name", name).
		Str("direction", t.Direction).
		Str("path", t.Path).
		Bool("replaced", replaced).
		Msg("ldml: transform registered")
	return nil
}

// RegisterFile parses the rule file at path and registers its transform
func (r *Registry) RegisterFile(path string) (Transform, error) {
	t, err := ParseFile(path)
	if err != nil {
		return Transform{}, err
	}
	if err := r.Register(t); err != nil {
		return Transform{}, err
	}
	return t, nil
}

// Get returns the transform registered under name
func (r *Registry) Get(name string) (Transform, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transforms[name]
	return t, ok
}

// Names lists registered transform names in order
func (r *Registry) Names() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.transforms))
	for n := range r.transforms {
		out = append(out, n)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

// Transliterate runs the named transform over text in dir
// Unknown names and compile failures are returned as errors
func (r *Registry) Transliterate(name, text string, dir scheme.Direction) (string, error) {
	tr, err := r.transliterator(name, dir)
	if err != nil {
		return "", err
	}
	return tr.Transliterate(text), nil
}

func (r *Registry) transliterator(name string, dir scheme.Direction) (Transliterator, error) {
	k := compiledKey{name, dir}

	r.mu.RLock()
	tr, ok := r.compiled[k]
	t, known := r.transforms[name]
	r.mu.RUnlock()
	if ok {
		return tr, nil
	}
	if !known {
		return nil, perr.WithField(perr.NotFoundf("ldml: no transform named %q", name), "name")
	}

	tr, err := r.engine.Compile(t, dir)
	if err != nil {
		r.log.Warn().Err(err).Str("name", name).Str("dir", dir.String()).Msg("ldml: compile failed")
		return nil, err
	}

	r.mu.Lock()
	// a concurrent Register may have replaced t; only cache if it is still current
	if cur, ok := r.transforms[name]; ok && cur.Rules == t.Rules && cur.Direction == t.Direction {
		r.compiled[k] = tr
	}
	r.mu.Unlock()
	return tr, nil
}
