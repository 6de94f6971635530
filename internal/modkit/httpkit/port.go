// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perrs "eltranslit/internal/platform/errors"
)

// TokenFunc resolves a bearer token to a client id
type TokenFunc func(token string) (clientID string, err error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a simple parser function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// Parse resolves the client behind "Authorization: Bearer <token>"
// Every failure is Unauthorized; the parser's own error is not echoed back
func (p *Port) Parse(r *http.Request) (string, error) {
	scheme, token, _ := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	token = strings.TrimSpace(token)
	if !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	if p.parse == nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	cid, err := p.parse(token)
	if err != nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	return cid, nil
}

// StaticTokens accepts a fixed set of "client:secret" entries
// An entry without a colon is a secret for the client named "client"
func StaticTokens(entries ...string) TokenFunc {
	type cred struct{ client, secret string }
	creds := make([]cred, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		name, secret, ok := strings.Cut(e, ":")
		if !ok {
			name, secret = "client", e
		}
		if secret == "" {
			continue
		}
		creds = append(creds, cred{client: strings.TrimSpace(name), secret: secret})
	}
	return func(token string) (string, error) {
		for _, c := range creds {
			if subtle.ConstantTimeCompare([]byte(token), []byte(c.secret)) == 1 {
				return c.client, nil
			}
		}
		return "", perrs.Unauthorizedf("unknown token")
	}
}
