// Package tablestore keeps transliteration tables in SQL
//
// The same schema and statements run on Postgres (pgx) and SQLite (modernc);
// both accept $n placeholders.
package tablestore

import (
	"context"

	"eltranslit/internal/modkit/repokit"
	perr "eltranslit/internal/platform/errors"
	"eltranslit/internal/platform/store"
)

// Schema creates the two tables a Source reads
var Schema = []string{
	`create table if not exists translit_languages (
	code         text primary key,
	table_id     text not null,
	bicamerality text not null default 'latin-only',
	label        text not null default ''
)`,
	`create table if not exists translit_entries (
	table_id  text not null,
	direction text not null check (direction in ('forward', 'reverse')),
	source    text not null,
	target    text not null,
	primary key (table_id, direction, source)
)`,
}

// LangRow is one translit_languages row
type LangRow struct {
	Code         string
	TableID      string
	Bicamerality string
	Label        string
}

// EntryRow is one translit_entries row
type EntryRow struct {
	TableID   string
	Direction string
	Source    string
	Target    string
}

// Repo is the SQL surface of the table store
type Repo interface {
	Migrate(ctx context.Context) error
	Languages(ctx context.Context) ([]LangRow, error)
	Entries(ctx context.Context) ([]EntryRow, error)
	Clear(ctx context.Context) error
	PutLanguage(ctx context.Context, l LangRow) error
	PutEntry(ctx context.Context, e EntryRow) error
}

type (
	// SQL binds Repo to any store.RowQuerier
	SQL struct{}

	queries struct{ q repokit.Queryer }
)

// NewSQL returns the Repo binder
func NewSQL() repokit.Binder[Repo] { return SQL{} }

// Bind implements repokit.Binder
func (SQL) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Migrate(ctx context.Context) error {
	for _, stmt := range Schema {
		if _, err := r.q.Exec(ctx, stmt); err != nil {
			return perr.FromPostgres(err, "tablestore: migrate")
		}
	}
	return nil
}

func (r *queries) Languages(ctx context.Context) ([]LangRow, error) {
	const sql = `
select code, table_id, bicamerality, label
from translit_languages
order by code
`
	out, err := store.Many(ctx, r.q, func(row store.Row) (LangRow, error) {
		var l LangRow
		err := row.Scan(&l.Code, &l.TableID, &l.Bicamerality, &l.Label)
		return l, err
	}, sql)
	if err != nil {
		return nil, perr.FromPostgres(err, "tablestore: read languages")
	}
	return out, nil
}

func (r *queries) Entries(ctx context.Context) ([]EntryRow, error) {
	const sql = `
select table_id, direction, source, target
from translit_entries
order by table_id, direction, source
`
	out, err := store.Many(ctx, r.q, func(row store.Row) (EntryRow, error) {
		var e EntryRow
		err := row.Scan(&e.TableID, &e.Direction, &e.Source, &e.Target)
		return e, err
	}, sql)
	if err != nil {
		return nil, perr.FromPostgres(err, "tablestore: read entries")
	}
	return out, nil
}

func (r *queries) Clear(ctx context.Context) error {
	for _, stmt := range []string{`delete from translit_entries`, `delete from translit_languages`} {
		if _, err := r.q.Exec(ctx, stmt); err != nil {
			return perr.FromPostgres(err, "tablestore: clear")
		}
	}
	return nil
}

func (r *queries) PutLanguage(ctx context.Context, l LangRow) error {
	const sql = `
insert into translit_languages (code, table_id, bicamerality, label)
values ($1, $2, $3, $4)
`
	if err := store.ExecOne(ctx, r.q, sql, l.Code, l.TableID, l.Bicamerality, l.Label); err != nil {
		return perr.WithField(perr.FromPostgresf(err, "tablestore: insert language %q", l.Code), "code")
	}
	return nil
}

func (r *queries) PutEntry(ctx context.Context, e EntryRow) error {
	const sql = `
insert into translit_entries (table_id, direction, source, target)
values ($1, $2, $3, $4)
`
	if err := store.ExecOne(ctx, r.q, sql, e.TableID, e.Direction, e.Source, e.Target); err != nil {
		return perr.FromPostgresf(err, "tablestore: insert %s entry %q of %s", e.Direction, e.Source, e.TableID)
	}
	return nil
}
