package httpkit

import (
	"net/http"

	phttp "eltranslit/internal/platform/net/http"
)

type routeCall struct {
	verb string
	path string
	ph   phttp.Handler
	h    http.Handler
}

// fakeRouter records what gets mounted; subrouters are the router itself
type fakeRouter struct {
	prefixes  []string
	useCalls  int
	lastMWLen int
	calls     []routeCall
}

func (f *fakeRouter) add(verb, path string, ph phttp.Handler) {
	f.calls = append(f.calls, routeCall{verb: verb, path: path, ph: ph})
}

func (f *fakeRouter) Get(p string, h phttp.Handler)  { f.add("GET", p, h) }
func (f *fakeRouter) Post(p string, h phttp.Handler) { f.add("POST", p, h) }

func (f *fakeRouter) Handle(p string, h http.Handler) {
	f.calls = append(f.calls, routeCall{verb: "HANDLE", path: p, h: h})
}

func (f *fakeRouter) Use(mw ...func(http.Handler) http.Handler) {
	f.useCalls++
	f.lastMWLen = len(mw)
}

func (f *fakeRouter) Group(fn func(Router)) { fn(f) }

func (f *fakeRouter) Route(prefix string, fn func(Router)) {
	f.prefixes = append(f.prefixes, prefix)
	fn(f)
}

func (f *fakeRouter) Mux() http.Handler { return http.NewServeMux() }
