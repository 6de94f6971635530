package httpkit

import (
	"net/http"

	phttp "eltranslit/internal/platform/net/http"
)

// PostJSON mounts a handler that takes a validated JSON body of type T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// Get mounts a bodyless handler; the result is wrapped in the envelope
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.CallHandler(h))
}
