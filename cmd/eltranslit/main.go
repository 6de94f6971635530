// Command eltranslit transliterates text given as arguments or stdin lines
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"eltranslit/internal/adapters/tablestore"
	"eltranslit/internal/core/ldml"
	"eltranslit/internal/core/normalize"
	"eltranslit/internal/core/registry"
	"eltranslit/internal/core/scheme"
	"eltranslit/internal/core/translit"
	"eltranslit/internal/platform/config"
	"eltranslit/internal/platform/logger"
	"eltranslit/internal/platform/store"
	pstrings "eltranslit/internal/platform/strings"
)

type options struct {
	lang   string
	dir    string
	nf     string
	strict bool
	rules  string
	source string
	root   string
	dsn    string
	list   bool
}

// errUsage marks bad invocations, reported with exit code 2
var errUsage = errors.New("usage")

func main() {
	opt := logger.FromEnv()
	opt.Writer = os.Stderr
	if _, ok := os.LookupEnv("LOG_LEVEL"); !ok {
		opt.Level = "warn"
	}
	logger.Init(opt)

	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, texts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if err := execute(ctx, o, texts, stdin, stdout); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	cfg := config.New().Prefix("ELTRANSLIT_")

	var o options
	fs := flag.NewFlagSet("eltranslit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.lang, "lang", cfg.MayString("LANG", ""), "BCP 47 language tag, only the primary subtag selects a table")
	fs.StringVar(&o.dir, "dir", "forward", "forward or reverse")
	fs.StringVar(&o.nf, "nf", string(normalize.NFM), "output form: NFM, NFC, NFD, NFKC, NFKD or NFKC_CF")
	fs.BoolVar(&o.strict, "strict", cfg.MayBool("STRICT", false), "single pass longest match instead of ordered replacement")
	fs.StringVar(&o.rules, "rules", "", "LDML rule file; its transform is used instead of the table")
	fs.StringVar(&o.source, "source", cfg.MayEnum("SOURCE", "embedded", "embedded", "dir", "sqlite", "pg"), "table source: embedded, dir, sqlite or pg") //nolint:lll
	fs.StringVar(&o.root, "root", cfg.MayString("DATA_ROOT", "./data/tables"), "table data root for -source dir")
	fs.StringVar(&o.dsn, "dsn", cfg.MayString("DSN", ""), "sqlite file or postgres url for -source sqlite|pg")
	fs.BoolVar(&o.list, "list", false, "list supported languages and exit")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "usage: eltranslit -lang TAG [flags] [text ...]\n\nWithout text arguments each stdin line is transliterated.\n\n") //nolint:lll
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	return o, fs.Args(), nil
}

func execute(ctx context.Context, o options, args []string, stdin io.Reader, stdout io.Writer) error {
	dir := scheme.ParseDirection(o.dir)

	if o.rules != "" {
		return runRules(o, dir, args, stdin, stdout)
	}

	reg, closeFn, err := openRegistry(ctx, o)
	if err != nil {
		return err
	}
	defer closeFn()

	if o.list {
		return listLanguages(reg, stdout)
	}
	if strings.TrimSpace(o.lang) == "" {
		return fmt.Errorf("%w: -lang is required", errUsage)
	}

	form, ok := normalize.ParseForm(o.nf)
	if !ok {
		logger.Named("cli").Warn().Str("nf", o.nf).Str("using", string(form)).Msg("unknown output form")
	}

	eng := translit.New(reg, translit.WithLogger(logger.Named("translit")))
	req := translit.Request{Lang: o.lang, Dir: dir, Form: form, Strict: o.strict}

	texts, err := inputs(args, stdin)
	if err != nil {
		return err
	}
	if len(texts) == 0 {
		return nil
	}
	return pstrings.PrintList(stdout, eng.RunBatch(texts, req), "\n", false)
}

func runRules(o options, dir scheme.Direction, args []string, stdin io.Reader, stdout io.Writer) error {
	rules := ldml.NewRegistry(ldml.WithLogger(logger.Named("ldml")))
	t, err := rules.RegisterFile(o.rules)
	if err != nil {
		return err
	}

	texts, err := inputs(args, stdin)
	if err != nil {
		return err
	}
	out := make([]string, 0, len(texts))
	for _, s := range texts {
		r, err := rules.Transliterate(t.Name, normalize.Sanitize(s), dir)
		if err != nil {
			return err
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil
	}
	return pstrings.PrintList(stdout, out, "\n", false)
}

// inputs joins args into one text, or reads stdin one text per line
func inputs(args []string, stdin io.Reader) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}
	var texts []string
	sc := bufio.NewScanner(stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		texts = append(texts, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return texts, nil
}

func listLanguages(reg *registry.Registry, w io.Writer) error {
	rows := make([]string, 0, len(reg.Languages()))
	for _, l := range reg.Languages() {
		rows = append(rows, pstrings.ListToString([]string{l.Code, l.TableID, string(l.Bicamerality), l.Label}, "\t", true))
	}
	if len(rows) == 0 {
		return nil
	}
	return pstrings.PrintList(w, rows, "\n", false)
}

// openRegistry loads the tables from the selected source
// the returned func releases any store the source opened
func openRegistry(ctx context.Context, o options) (*registry.Registry, func(), error) {
	nop := func() {}
	log := logger.Named("store")

	var (
		src registry.Source
		st  *store.Store
		err error
	)
	switch strings.ToLower(o.source) {
	case "", "embedded":
		src = registry.Embedded()
	case "dir":
		src = registry.Dir(o.root)
	case "sqlite":
		if o.dsn == "" {
			return nil, nop, fmt.Errorf("%w: -source sqlite needs -dsn", errUsage)
		}
		st, err = store.OpenSQLite(ctx, o.dsn, true, store.WithLogger(*log))
		if err != nil {
			return nil, nop, err
		}
		src = tablestore.New(st.Lite, tablestore.WithLogger(log))
	case "pg":
		if o.dsn == "" {
			return nil, nop, fmt.Errorf("%w: -source pg needs -dsn", errUsage)
		}
		st, err = store.Open(ctx, store.Config{
			AppName: "eltranslit",
			PG:      store.PGConfig{Enabled: true, URL: o.dsn, MaxConns: 2, SlowQueryMs: 500, ConnectRetries: 3},
		}, store.WithLogger(*log))
		if err != nil {
			return nil, nop, err
		}
		src = tablestore.New(st.PG, tablestore.WithLogger(log))
	default:
		return nil, nop, fmt.Errorf("%w: unknown -source %q", errUsage, o.source)
	}

	closeFn := nop
	if st != nil {
		closeFn = func() {
			if err := st.Close(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to close store")
			}
		}
	}

	reg, err := registry.FromSource(ctx, src)
	if err != nil {
		closeFn()
		return nil, nop, err
	}
	return reg, closeFn, nil
}
