package http

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const readyTimeout = 2 * time.Second

// Pinger is satisfied by the table stores
type Pinger interface {
	Ping(context.Context) error
}

// @Summary Readiness with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	checks := []func(context.Context) ReadyCheck{
		pingCheck("pg", h.deps.PG),
		pingCheck("sqlite", h.deps.Lite),
		h.registryCheck,
		h.translitCheck,
	}
	out := make([]ReadyCheck, len(checks))
	var g errgroup.Group
	for i, c := range checks {
		g.Go(func() error {
			out[i] = c(ctx)
			return nil
		})
	}
	_ = g.Wait()

	status := CheckOK
	for _, c := range out {
		if c.Status == CheckFail {
			status = CheckFail
		}
	}
	return ReadyResponse{Status: status, Checks: out, Now: time.Now().UTC().Format(time.RFC3339)}, nil
}

// pingCheck skips stores that are not configured
func pingCheck(name string, p Pinger) func(context.Context) ReadyCheck {
	return func(ctx context.Context) ReadyCheck {
		if p == nil {
			return ReadyCheck{Name: name, Status: CheckSkipped}
		}
		if err := p.Ping(ctx); err != nil {
			return ReadyCheck{Name: name, Status: CheckFail, Error: err.Error()}
		}
		return ReadyCheck{Name: name, Status: CheckOK}
	}
}

func (h *handlers) registryCheck(context.Context) ReadyCheck {
	if h.deps.Registry == nil {
		return ReadyCheck{Name: "registry", Status: CheckFail, Error: "no registry loaded"}
	}
	return ReadyCheck{Name: "registry", Status: CheckOK}
}

// translitCheck asks the mounted translit module for its languages
func (h *handlers) translitCheck(ctx context.Context) ReadyCheck {
	fail := func(msg string) ReadyCheck { return ReadyCheck{Name: "translit", Status: CheckFail, Error: msg} }
	if h.deps.Translit == nil {
		return ReadyCheck{Name: "translit", Status: CheckSkipped}
	}
	port, ok := h.deps.Translit()
	if !ok {
		return fail("translit module not mounted")
	}
	out, err := port.Languages(ctx)
	switch {
	case err != nil:
		return fail(err.Error())
	case len(out.Languages) == 0:
		return fail("no languages loaded")
	}
	return ReadyCheck{Name: "translit", Status: CheckOK}
}
