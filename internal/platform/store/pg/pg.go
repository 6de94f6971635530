// Package pg opens the Postgres pool behind the table store
package pg

import (
	"context"
	"fmt"

	"eltranslit/internal/platform/store/trace"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is the subset of pgxpool settings the table store exposes
type Config struct {
	URL      string
	AppName  string // application_name on every connection
	MaxConns int32  // 0 keeps the pgxpool default
	SlowMs   int
}

// PG is a pool plus the tracer its statements report to
type PG struct {
	Pool   *pgxpool.Pool
	Tracer trace.QueryTracer
	SlowMs int
}

var newPool = pgxpool.NewWithConfig

// poolConfig parses cfg.URL and layers the explicit settings over it
func poolConfig(cfg Config) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		if pc.ConnConfig.RuntimeParams == nil {
			pc.ConnConfig.RuntimeParams = map[string]string{}
		}
		pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	return pc, nil
}

// Open builds the pool without waiting for the server; callers ping
func Open(ctx context.Context, cfg Config, tracer trace.QueryTracer) (*PG, error) {
	pc, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := newPool(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("pg: new pool: %w", err)
	}
	return &PG{Pool: pool, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// Emitter returns the trace emitter for statements run on p
func (p *PG) Emitter() trace.Emitter {
	e := trace.Emitter{Backend: "pg"}
	if p != nil {
		e.Tracer, e.SlowMs = p.Tracer, p.SlowMs
	}
	return e
}

// Close closes the pool; nil and never opened values are fine
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
