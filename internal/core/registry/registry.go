// Package registry holds the supported-languages registry and the dictionary
// tables it points at. The default registry is compiled from the embedded
// registry.json produced by eltranslit-tablepacker
//
// A Registry is immutable after construction and safe for concurrent readers
package registry

import (
	"context"
	_ "embed"
	"encoding/json"
	"sort"
	"strings"

	"eltranslit/internal/core/scheme"
	perr "eltranslit/internal/platform/errors"
)

//go:embed registry.json
var embedded []byte

// Version is the registry document version this package understands
const Version = 1

// Language is one entry of the supported-languages registry
type Language struct {
	Code         string              `json:"code"`
	TableID      string              `json:"table"`
	Bicamerality scheme.Bicamerality `json:"bicamerality"`
	Label        string              `json:"label"`
}

// Table holds both directions of one substitution dictionary
type Table struct {
	ID      string
	Forward map[string]string
	Reverse map[string]string
}

// Entries returns the half of t used for dir
func (t Table) Entries(dir scheme.Direction) map[string]string {
	if dir == scheme.Reverse {
		return t.Reverse
	}
	return t.Forward
}

// Registry maps language subtags to tables
type Registry struct {
	Version int
	Meta    map[string]any

	langs  map[string]Language
	tables map[string]Table
}

// Source produces a Registry from some backing store
type Source interface {
	Load(ctx context.Context) (*Registry, error)
}

// SourceFunc adapts a func to Source
type SourceFunc func(ctx context.Context) (*Registry, error)

// Load implements Source
func (f SourceFunc) Load(ctx context.Context) (*Registry, error) { return f(ctx) }

// Embedded is the Source for the compiled-in registry.json
func Embedded() Source {
	return SourceFunc(func(context.Context) (*Registry, error) { return Load() })
}

// FromSource loads a Registry from src; nil means the embedded data
func FromSource(ctx context.Context, src Source) (*Registry, error) {
	if src == nil {
		src = Embedded()
	}
	r, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, perr.New(perr.ErrorCodeUnavailable, "registry: source returned no registry")
	}
	return r, nil
}

// Load returns the registry compiled from the embedded registry.json
func Load() (*Registry, error) { return Parse(embedded) }

// Parse decodes a registry document
func Parse(b []byte) (*Registry, error) {
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "registry: parse registry.json")
	}
	return FromDocument(doc)
}

// FromDocument validates doc and builds a Registry
func FromDocument(doc Document) (*Registry, error) {
	if doc.Version != Version {
		return nil, perr.Newf(perr.ErrorCodeValidation,
			"registry: unsupported registry version %d (want %d)", doc.Version, Version)
	}

	langs := make([]Language, 0, len(doc.Languages))
	for code, l := range doc.Languages {
		b, ok := scheme.ParseBicamerality(l.Bicamerality)
		if !ok && strings.TrimSpace(l.Bicamerality) != "" {
			return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation,
				"registry: language %q has unknown bicamerality %q", code, l.Bicamerality), "bicamerality")
		}
		langs = append(langs, Language{Code: code, TableID: l.Table, Bicamerality: b, Label: l.Label})
	}

	tables := make([]Table, 0, len(doc.Tables))
	for id, t := range doc.Tables {
		tables = append(tables, Table{ID: id, Forward: t.Forward, Reverse: t.Reverse})
	}

	r, err := New(langs, tables)
	if err != nil {
		return nil, err
	}
	r.Version = doc.Version
	r.Meta = doc.Meta
	return r, nil
}

// New validates and copies langs and tables into a Registry
// Every language must reference a known table; empty keys are dropped
func New(langs []Language, tables []Table) (*Registry, error) {
	r := &Registry{
		Version: Version,
		langs:   make(map[string]Language, len(langs)),
		tables:  make(map[string]Table, len(tables)),
	}

	for _, t := range tables {
		id := strings.TrimSpace(t.ID)
		if id == "" {
			return nil, perr.WithField(perr.New(perr.ErrorCodeValidation, "registry: table with empty id"), "table")
		}
		if _, dup := r.tables[id]; dup {
			return nil, perr.Newf(perr.ErrorCodeDuplicateKey, "registry: duplicate table %q", id)
		}
		r.tables[id] = Table{ID: id, Forward: copyEntries(t.Forward), Reverse: copyEntries(t.Reverse)}
	}

	for _, l := range langs {
		code := strings.ToLower(strings.TrimSpace(l.Code))
		if code == "" {
			return nil, perr.WithField(perr.New(perr.ErrorCodeValidation, "registry: language with empty code"), "code")
		}
		if _, dup := r.langs[code]; dup {
			return nil, perr.Newf(perr.ErrorCodeDuplicateKey, "registry: duplicate language %q", code)
		}
		if _, ok := r.tables[l.TableID]; !ok {
			return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation,
				"registry: language %q references unknown table %q", code, l.TableID), "table")
		}
		if l.Bicamerality == "" {
			l.Bicamerality = scheme.LatinOnly
		}
		l.Code = code
		r.langs[code] = l
	}

	return r, nil
}

// Lookup returns the registry entry for a primary language subtag
func (r *Registry) Lookup(code string) (Language, bool) {
	if r == nil {
		return Language{}, false
	}
	l, ok := r.langs[strings.ToLower(code)]
	return l, ok
}

// Table returns the table with the given id
func (r *Registry) Table(id string) (Table, bool) {
	if r == nil {
		return Table{}, false
	}
	t, ok := r.tables[id]
	return t, ok
}

// Entries resolves code to its language entry and the entries for dir
// The returned map is shared and must not be modified
func (r *Registry) Entries(code string, dir scheme.Direction) (Language, map[string]string, bool) {
	l, ok := r.Lookup(code)
	if !ok {
		return Language{}, nil, false
	}
	t := r.tables[l.TableID]
	return l, t.Entries(dir), true
}

// Languages returns all languages sorted by code
func (r *Registry) Languages() []Language {
	if r == nil {
		return nil
	}
	out := make([]Language, 0, len(r.langs))
	for _, l := range r.langs {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Tables returns all tables sorted by id; entry maps are shared
func (r *Registry) Tables() []Table {
	if r == nil {
		return nil
	}
	out := make([]Table, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func copyEntries(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		if k == "" {
			continue
		}
		out[k] = v
	}
	return out
}
