package tablestore

import (
	"context"
	"sort"
	"strings"

	"eltranslit/internal/core/registry"
	"eltranslit/internal/core/scheme"
	"eltranslit/internal/modkit/repokit"
	perr "eltranslit/internal/platform/errors"
	"eltranslit/internal/platform/logger"

	"github.com/rs/zerolog"
)

// Source reads a registry out of SQL and writes registries into it
// It implements registry.Source
type Source struct {
	db     repokit.TxRunner
	binder repokit.Binder[Repo]
	log    *zerolog.Logger
}

var _ registry.Source = (*Source)(nil)

// Option configures a Source
type Option func(*Source)

// WithLogger sets the source logger
func WithLogger(l *zerolog.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.log = l
		}
	}
}

// WithBinder swaps the repo binder
func WithBinder(b repokit.Binder[Repo]) Option {
	return func(s *Source) {
		if b != nil {
			s.binder = b
		}
	}
}

// New returns a Source over db; db must not be nil
func New(db repokit.TxRunner, opts ...Option) *Source {
	if db == nil {
		panic("tablestore.New requires a non nil TxRunner")
	}
	s := &Source{db: db, binder: NewSQL(), log: logger.Named("tablestore")}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Migrate creates the schema if missing
func (s *Source) Migrate(ctx context.Context) error {
	return repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		return s.binder.Bind(q).Migrate(ctx)
	})
}

// Load implements registry.Source
// Tables are known by their entries; a language whose table has none fails validation
func (s *Source) Load(ctx context.Context) (*registry.Registry, error) {
	repo := repokit.MustBind(s.binder, s.db)

	langRows, err := repo.Languages(ctx)
	if err != nil {
		return nil, err
	}
	entryRows, err := repo.Entries(ctx)
	if err != nil {
		return nil, err
	}

	tables := map[string]*registry.Table{}
	for _, e := range entryRows {
		t := tables[e.TableID]
		if t == nil {
			t = &registry.Table{ID: e.TableID, Forward: map[string]string{}, Reverse: map[string]string{}}
			tables[e.TableID] = t
		}
		switch strings.ToLower(e.Direction) {
		case "forward":
			t.Forward[e.Source] = e.Target
		case "reverse":
			t.Reverse[e.Source] = e.Target
		default:
			return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation,
				"tablestore: table %q has entry with direction %q", e.TableID, e.Direction), "direction")
		}
	}

	langs := make([]registry.Language, 0, len(langRows))
	for _, l := range langRows {
		b, ok := scheme.ParseBicamerality(l.Bicamerality)
		if !ok && strings.TrimSpace(l.Bicamerality) != "" {
			return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation,
				"tablestore: language %q has unknown bicamerality %q", l.Code, l.Bicamerality), "bicamerality")
		}
		langs = append(langs, registry.Language{Code: l.Code, TableID: l.TableID, Bicamerality: b, Label: l.Label})
	}

	ts := make([]registry.Table, 0, len(tables))
	for _, t := range tables {
		ts = append(ts, *t)
	}
	reg, err := registry.New(langs, ts)
	if err != nil {
		return nil, perr.WithOp(err, "tablestore load")
	}

	s.log.Debug().Int("languages", len(langs)).Int("tables", len(ts)).Int("entries", len(entryRows)).Msg("tablestore: registry loaded")
	return reg, nil
}

// Counts reports what Import wrote
type Counts struct {
	Languages int
	Entries   int
}

// Import replaces the stored tables with reg in one transaction
func (s *Source) Import(ctx context.Context, reg *registry.Registry) (Counts, error) {
	if reg == nil {
		return Counts{}, perr.InvalidArgf("tablestore: nil registry")
	}
	var c Counts
	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		repo := s.binder.Bind(q)
		if err := repo.Migrate(ctx); err != nil {
			return err
		}
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		for _, t := range reg.Tables() {
			for _, dir := range []scheme.Direction{scheme.Forward, scheme.Reverse} {
				entries := t.Entries(dir)
				keys := make([]string, 0, len(entries))
				for k := range entries {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					if err := repo.PutEntry(ctx, EntryRow{TableID: t.ID, Direction: dir.String(), Source: k, Target: entries[k]}); err != nil {
						return err
					}
					c.Entries++
				}
			}
		}
		for _, l := range reg.Languages() {
			row := LangRow{Code: l.Code, TableID: l.TableID, Bicamerality: string(l.Bicamerality), Label: l.Label}
			if err := repo.PutLanguage(ctx, row); err != nil {
				return err
			}
			c.Languages++
		}
		return nil
	})
	if err != nil {
		return Counts{}, err
	}
	s.log.Info().Int("languages", c.Languages).Int("entries", c.Entries).Msg("tablestore: registry imported")
	return c, nil
}
