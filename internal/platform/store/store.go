// Package store opens the optional SQL backends that can hold transliteration
// tables and exposes them through one small query surface
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eltranslit/internal/platform/logger"
)

// Row is a single result row
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set; Close must be called
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports how many rows a write touched
type CommandTag interface {
	RowsAffected() int64
}

// RowQuerier is what the table repos run statements against.
// Both backends take $n placeholders
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner runs fn in a transaction, rolling back when fn fails
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger reports backend reachability
type Pinger interface{ Ping(context.Context) error }

// Store holds the backends enabled in Config; the others stay nil.
// The zero value has no backends
type Store struct {
	Log  logger.Logger
	PG   TxRunner
	Lite TxRunner

	sleep func(time.Duration)
}

// Open connects every enabled backend. Postgres is retried with backoff,
// sqlite fails at once. On error nothing stays open
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{sleep: time.Sleep}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Logger()

	var err error
	if cfg.PG.Enabled {
		if s.PG, err = openPG(ctx, cfg, s); err != nil {
			return nil, err
		}
	}
	if cfg.SQLite.Enabled {
		if s.Lite, err = openSQLite(ctx, cfg, s); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) backends() map[string]TxRunner {
	return map[string]TxRunner{"pg": s.PG, "sqlite": s.Lite}
}

// Guard pings each open backend and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil")
	}
	var errs []error
	for name, b := range s.backends() {
		p, ok := b.(Pinger)
		if !ok {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes the open backends; a nil Store is fine
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	for _, b := range s.backends() {
		if c, ok := b.(interface{ Close() error }); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
