package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func header(name string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			w.Header().Add("X-Seen", name)
			next.ServeHTTP(w, r)
		})
	}
}

func text(s string) Handler {
	return func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { _, _ = w.Write([]byte(s)) }
}

// the same nesting the API builds: root mw, /api/v1 route, a protected group inside it
func TestAdaptChi_Nesting(t *testing.T) {
	t.Parallel()

	m := chi.NewRouter()
	r := AdaptChi(m)
	r.Use(header("root"))
	r.Get("/meta/health", text("ok"))
	r.Route("/api/v1", func(v1 Router) {
		v1.Use(header("v1"))
		v1.Get("/translit/languages", text("languages"))
		v1.Group(func(g Router) {
			g.Use(header("auth"))
			g.Post("/translit", text("translit"))
			g.Get("/translit/rules/{name}", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
				_, _ = w.Write([]byte("rule " + URLParam(req, "name")))
			})
		})
		if v1.Mux() == nil {
			t.Fatal("subrouter Mux is nil")
		}
	})
	r.Handle("/static/*", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		w.WriteHeader(stdhttp.StatusTeapot)
	}))

	cases := []struct {
		method string
		path   string
		status int
		body   string
		seen   []string
	}{
		{"GET", "/meta/health", 200, "ok", []string{"root"}},
		{"GET", "/api/v1/translit/languages", 200, "languages", []string{"root", "v1"}},
		{"POST", "/api/v1/translit", 200, "translit", []string{"root", "v1", "auth"}},
		{"GET", "/api/v1/translit/rules/Cyrl-Latn", 200, "rule Cyrl-Latn", []string{"root", "v1", "auth"}},
		{"GET", "/api/v1/translit", 405, "", nil},
		{"GET", "/translit/languages", 404, "", nil},
		{"PUT", "/static/x", 418, "", []string{"root"}},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != tc.status {
			t.Fatalf("%s %s = %d want %d", tc.method, tc.path, rec.Code, tc.status)
		}
		if tc.body != "" && rec.Body.String() != tc.body {
			t.Fatalf("%s %s body = %q", tc.method, tc.path, rec.Body.String())
		}
		if tc.seen == nil {
			continue
		}
		got := rec.Header().Values("X-Seen")
		if len(got) != len(tc.seen) {
			t.Fatalf("%s %s middleware = %v want %v", tc.method, tc.path, got, tc.seen)
		}
		for i := range got {
			if got[i] != tc.seen[i] {
				t.Fatalf("%s %s middleware = %v want %v", tc.method, tc.path, got, tc.seen)
			}
		}
	}
}
