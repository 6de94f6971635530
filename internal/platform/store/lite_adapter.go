package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eltranslit/internal/platform/store/sqlite"
	"eltranslit/internal/platform/store/trace"
)

// liteAdapter wraps sqlite.Lite and implements RowQuerier + TxRunner
type liteAdapter struct {
	l    *sqlite.Lite
	emit trace.Emitter
}

func newLiteAdapter(l *sqlite.Lite) *liteAdapter { return &liteAdapter{l: l, emit: l.Emitter()} }

func (a *liteAdapter) Ping(ctx context.Context) error {
	if a == nil || a.l == nil || a.l.DB == nil {
		return errors.New("sqlite: nil adapter")
	}
	return a.l.DB.PingContext(ctx)
}

func (a *liteAdapter) Close() error { return a.l.Close() }

func (a *liteAdapter) Exec(ctx context.Context, query string, args ...any) (CommandTag, error) {
	return liteExec(ctx, a.l.DB, a.emit, query, args)
}

func (a *liteAdapter) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return liteQuery(ctx, a.l.DB, a.emit, query, args)
}

func (a *liteAdapter) QueryRow(ctx context.Context, query string, args ...any) Row {
	return liteQueryRow(ctx, a.l.DB, a.emit, query, args)
}

func (a *liteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.l.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(liteTx{tx: tx, emit: a.emit}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// liteConn is the part of sql.DB and sql.Tx the adapter calls
type liteConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func liteExec(ctx context.Context, c liteConn, e trace.Emitter, query string, args []any) (CommandTag, error) {
	start := time.Now()
	res, err := c.ExecContext(ctx, query, args...)
	e.Emit(ctx, query, args, start, err)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	return liteTag(n), nil
}

func liteQuery(ctx context.Context, c liteConn, e trace.Emitter, query string, args []any) (Rows, error) {
	start := time.Now()
	rs, err := c.QueryContext(ctx, query, args...)
	e.Emit(ctx, query, args, start, err)
	if err != nil {
		return nil, err
	}
	return &liteRows{r: rs}, nil
}

func liteQueryRow(ctx context.Context, c liteConn, e trace.Emitter, query string, args []any) Row {
	start := time.Now()
	r := c.QueryRowContext(ctx, query, args...)
	return scanHook{
		r: r,
		after: func(scanErr error) {
			e.Emit(ctx, query, args, start, scanErr)
		},
	}
}

type liteTx struct {
	tx   *sql.Tx
	emit trace.Emitter
}

func (t liteTx) Exec(ctx context.Context, query string, args ...any) (CommandTag, error) {
	return liteExec(ctx, t.tx, t.emit, query, args)
}

func (t liteTx) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return liteQuery(ctx, t.tx, t.emit, query, args)
}

func (t liteTx) QueryRow(ctx context.Context, query string, args ...any) Row {
	return liteQueryRow(ctx, t.tx, t.emit, query, args)
}

type liteRows struct{ r *sql.Rows }

func (x *liteRows) Next() bool            { return x.r.Next() }
func (x *liteRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x *liteRows) Err() error            { return x.r.Err() }
func (x *liteRows) Close()                { _ = x.r.Close() }

// liteTag carries the affected count of a sqlite write
type liteTag int64

func (t liteTag) RowsAffected() int64 { return int64(t) }
