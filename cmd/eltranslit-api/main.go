// @title         eltranslit API
// @version       0.1.0
// @description   Table driven transliteration and LDML transforms over HTTP

package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"eltranslit/internal/adapters/tablestore"
	"eltranslit/internal/core/ldml"
	"eltranslit/internal/core/registry"
	"eltranslit/internal/core/translit"
	"eltranslit/internal/core/version"
	"eltranslit/internal/modkit/httpkit"
	"eltranslit/internal/modkit/repokit"
	"eltranslit/internal/platform/config"
	"eltranslit/internal/platform/logger"
	phttp "eltranslit/internal/platform/net/http"
	"eltranslit/internal/platform/net/middleware"
	"eltranslit/internal/platform/store"

	"eltranslit/internal/services/api"
)

func main() {
	version.SetService("eltranslit-api")

	// service-scoped config for HTTP etc (ELTRANSLIT_API_*)
	root := config.New().Prefix("ELTRANSLIT_")
	apiCfg := root.Prefix("API_")

	pgCfg := root.Prefix("PGSQL_")    // pgCfg lives under ELTRANSLIT_PGSQL_*
	liteCfg := root.Prefix("SQLITE_") // liteCfg lives under ELTRANSLIT_SQLITE_*
	// bring up logging early
	l := logger.Get()

	// open the optional table stores (postgres + sqlite)
	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "eltranslit-api",
			PG: store.PGConfig{
				Enabled:     pgCfg.MayString("DBURL", "") != "",
				URL:         pgCfg.MayString("DBURL", ""),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			SQLite: store.SQLiteConfig{
				Enabled:     liteCfg.MayString("PATH", "") != "",
				Path:        liteCfg.MayString("PATH", ""),
				ReadOnly:    liteCfg.MayBool("READ_ONLY", true),
				SlowQueryMs: liteCfg.MayInt("SLOW_MS", 200),
				LogSQL:      liteCfg.MayBool("LOG_SQL", false),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	// fail fast when a configured backend does not answer
	repokit.MustGuard(context.Background(), st)

	// tables come from the configured source, embedded by default
	src := tableSource(root.MayEnum("TABLE_SOURCE", "embedded", "embedded", "dir", "sqlite", "pg"), root, st)
	reg, err := registry.FromSource(context.Background(), src)
	if err != nil {
		l.Panic().Err(err).Msg("loading transliteration tables failed")
	}
	engine := translit.New(reg,
		translit.WithLogger(logger.Named("translit")),
		translit.WithStrict(apiCfg.MayBool("STRICT", false)),
	)

	// optional LDML rule files (ELTRANSLIT_RULES=a.xml,b.xml)
	rules := ldml.NewRegistry(ldml.WithLogger(logger.Named("ldml")))
	for _, p := range root.MayCSV("RULES", nil) {
		if _, err := rules.RegisterFile(p); err != nil {
			l.Panic().Err(err).Str("path", p).Msg("loading LDML rule file failed")
		}
	}

	// optional bearer tokens for the translit routes (ELTRANSLIT_API_TOKENS=name:secret,...)
	var auth middleware.AuthPort
	if tokens := apiCfg.MayCSV("TOKENS", nil); len(tokens) > 0 {
		auth = httpkit.NewPortFunc(httpkit.StaticTokens(tokens...))
	}

	// http server (listens on ELTRANSLIT_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			Engine:         engine,
			Rules:          rules,
			Auth:           auth,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

// tableSource picks where the registry is loaded from
// sqlite and pg read from the stores opened above
func tableSource(kind string, cfg config.Conf, st *store.Store) registry.Source {
	log := logger.Named("tablestore")
	switch strings.ToLower(kind) {
	case "dir":
		return registry.Dir(cfg.MayString("DATA_ROOT", "./data/tables"))
	case "sqlite":
		if st.Lite == nil {
			log.Panic().Msg("ELTRANSLIT_TABLE_SOURCE=sqlite needs ELTRANSLIT_SQLITE_PATH")
		}
		return tablestore.New(st.Lite, tablestore.WithLogger(log))
	case "pg":
		if st.PG == nil {
			log.Panic().Msg("ELTRANSLIT_TABLE_SOURCE=pg needs ELTRANSLIT_PGSQL_DBURL")
		}
		return tablestore.New(st.PG, tablestore.WithLogger(log))
	default:
		return registry.Embedded()
	}
}
