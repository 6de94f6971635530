// Command eltranslit-tablepacker assembles registry.json from per-language
// table fragments and can export the result to sqlite or postgres
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"eltranslit/internal/adapters/tablestore"
	"eltranslit/internal/core/registry"
	"eltranslit/internal/platform/logger"
	"eltranslit/internal/platform/store"
)

type options struct {
	root    string
	out     string
	pretty  bool
	verbose bool
	sqlite  string
	pg      string
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var o options
	fs := flag.NewFlagSet("eltranslit-tablepacker", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.root, "root", "", "path to a table version directory (e.g., ./data/tables/1 or ./data/tables). If empty, auto-discover") //nolint:lll
	fs.StringVar(&o.out, "out", "./internal/core/registry/registry.json", "output path or '-' for stdout")
	fs.BoolVar(&o.pretty, "pretty", true, "pretty-print JSON")
	fs.BoolVar(&o.verbose, "v", false, "verbose logging")
	fs.StringVar(&o.sqlite, "sqlite", "", "also import the tables into this sqlite file")
	fs.StringVar(&o.pg, "pg", "", "also import the tables into this postgres url")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	root, attempts, err := resolveRoot(strings.TrimSpace(o.root))
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to locate table root (looked in):\n")
		for _, a := range attempts {
			_, _ = fmt.Fprintf(stderr, "  - %s\n", a)
		}
		_, _ = fmt.Fprintf(stderr, "hint: mount ./data/tables into the container (e.g., - ./data/tables:/app/data/tables:ro) or set ELTRANSLIT_DATA_ROOT\n") //nolint:lll
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if o.verbose {
		_, _ = fmt.Fprintf(stderr, "using table root: %s\n", root)
	}

	if err := pack(ctx, o, root, stdout, stderr); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func pack(ctx context.Context, o options, root string, stdout, stderr io.Writer) error {
	doc, err := registry.LoadDir(ctx, root)
	if err != nil {
		return err
	}
	// refuse to write a document the library would reject
	reg, err := registry.FromDocument(doc)
	if err != nil {
		return err
	}

	var enc []byte
	if o.pretty {
		enc, err = json.MarshalIndent(doc, "", "  ")
	} else {
		enc, err = json.Marshal(doc)
	}
	if err != nil {
		return err
	}
	enc = append(enc, '\n')

	if o.out == "-" {
		if _, err := stdout.Write(enc); err != nil {
			return err
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(o.out), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(o.out, enc, 0o644); err != nil {
			return err
		}
		if o.verbose {
			_, _ = fmt.Fprintf(stderr, "wrote %s (%d bytes)\n", o.out, len(enc))
		}
	}

	if o.sqlite != "" {
		if err := export(ctx, store.Config{
			AppName: "eltranslit-tablepacker",
			SQLite:  store.SQLiteConfig{Enabled: true, Path: o.sqlite},
		}, reg, o.verbose, stderr); err != nil {
			return fmt.Errorf("sqlite export: %w", err)
		}
	}
	if o.pg != "" {
		if err := export(ctx, store.Config{
			AppName: "eltranslit-tablepacker",
			PG:      store.PGConfig{Enabled: true, URL: o.pg, MaxConns: 2, ConnectRetries: 5},
		}, reg, o.verbose, stderr); err != nil {
			return fmt.Errorf("postgres export: %w", err)
		}
	}
	return nil
}

// export replaces the tables held by the single backend enabled in cfg
func export(ctx context.Context, cfg store.Config, reg *registry.Registry, verbose bool, stderr io.Writer) error {
	log := logger.Named("tablepacker")
	st, err := store.Open(ctx, cfg, store.WithLogger(*log))
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	db := st.Lite
	if cfg.PG.Enabled {
		db = st.PG
	}
	c, err := tablestore.New(db, tablestore.WithLogger(log)).Import(ctx, reg)
	if err != nil {
		return err
	}
	if verbose {
		_, _ = fmt.Fprintf(stderr, "imported %d languages, %d entries\n", c.Languages, c.Entries)
	}
	return nil
}

// resolveRoot tries, in order: flag, env, common locations.
// - If you pass ./data/tables, it picks the latest numeric subdir containing core.json.
// - If you pass ./data/tables/1, it uses that.
// Returns chosen root and an ordered list of attempts (for error messages)
func resolveRoot(flagRoot string) (string, []string, error) {
	var attempts []string
	try := func(p string) (string, bool) {
		if p == "" {
			return "", false
		}
		attempts = append(attempts, p)
		return registry.VersionDir(p)
	}

	// explicit flag
	if root, ok := try(flagRoot); ok {
		return root, attempts, nil
	}
	// env
	if env := strings.TrimSpace(os.Getenv("ELTRANSLIT_DATA_ROOT")); env != "" {
		if root, ok := try(env); ok {
			return root, attempts, nil
		}
	}
	// common relative and absolute locations
	candidates := []string{
		"./data/tables",
		"/app/data/tables",
	}
	for _, c := range candidates {
		if root, ok := try(c); ok {
			return root, attempts, nil
		}
	}
	return "", attempts, errors.New("core.json not found in any known location")
}
