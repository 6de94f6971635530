package middleware

import (
	"net/http"

	"eltranslit/internal/platform/logger"
	pnet "eltranslit/internal/platform/net"
)

// AuthPort resolves the API client behind a request
type AuthPort interface {
	// Parse returns the client id for the request or an error
	Parse(r *http.Request) (clientID string, err error)
}

// Auth rejects requests the port cannot resolve; a nil port lets everything through
// The resolved client id lands on the context for handlers and request logs
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			cid, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithClient(r.Context(), cid)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), cid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
