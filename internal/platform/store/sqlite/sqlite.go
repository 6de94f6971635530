// Package sqlite opens SQLite table files through the pure Go modernc driver
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"eltranslit/internal/platform/store/trace"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite
const DriverName = "sqlite"

// Config configures a SQLite database
type Config struct {
	Path     string // file path or ":memory:"
	ReadOnly bool
	SlowMs   int
}

// Lite is an open SQLite database with an optional tracer
type Lite struct {
	DB     *sql.DB
	Tracer trace.QueryTracer
	SlowMs int
}

var openDB = sql.Open

// DSN builds the driver data source name for cfg
func DSN(cfg Config) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	if cfg.ReadOnly {
		q.Set("mode", "ro")
	}
	path := cfg.Path
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return path + "?" + q.Encode()
	}
	return "file:" + path + "?" + q.Encode()
}

// Open opens the database and checks it answers
func Open(ctx context.Context, cfg Config, tracer trace.QueryTracer) (*Lite, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, fmt.Errorf("sqlite: empty path")
	}
	db, err := openDB(DriverName, DSN(cfg))
	if err != nil {
		return nil, err
	}
	if cfg.Path == ":memory:" {
		// each connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping %s: %w", cfg.Path, err)
	}
	return &Lite{DB: db, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// Emitter returns the trace emitter for statements run on l
func (l *Lite) Emitter() trace.Emitter {
	if l == nil {
		return trace.Emitter{Backend: "sqlite"}
	}
	return trace.Emitter{Backend: "sqlite", Tracer: l.Tracer, SlowMs: l.SlowMs}
}

// Close closes the database
func (l *Lite) Close() error {
	if l == nil || l.DB == nil {
		return nil
	}
	return l.DB.Close()
}
