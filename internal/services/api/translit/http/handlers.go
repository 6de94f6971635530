// Package http provides http transport for translit
package http

import (
	stdhttp "net/http"

	"eltranslit/internal/modkit/httpkit"
	"eltranslit/internal/services/api/translit/domain"
	svc "eltranslit/internal/services/api/translit/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.TransliterateInput](r, "/", h.transliterate)
	httpkit.PostJSON[domain.BatchInput](r, "/batch", h.batch)
	httpkit.Get(r, "/languages", h.languages)
	httpkit.Get(r, "/rules", h.rules)
	httpkit.PostJSON[domain.RuleInput](r, "/rules/{name}", h.runRule)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /translit Translit transliterate
// @Summary Transliterate text
// @Description Unsupported languages return the text unchanged with supported=false
// @Tags translit
// @Accept json
// @Produce json
// @Param payload body domain.TransliterateInput true "Text"
// @Success 200 {object} domain.TransliterateOutput "ok"
// @Router /translit [post]
func (h *handlers) transliterate(r *stdhttp.Request, in domain.TransliterateInput) (any, error) {
	return h.svc.Transliterate(r.Context(), in)
}

// swagger:route POST /translit/batch Translit batch
// @Summary Transliterate many texts
// @Tags translit
// @Accept json
// @Produce json
// @Param payload body domain.BatchInput true "Texts"
// @Success 200 {object} domain.BatchOutput "ok"
// @Router /translit/batch [post]
func (h *handlers) batch(r *stdhttp.Request, in domain.BatchInput) (any, error) {
	return h.svc.Batch(r.Context(), in)
}

// swagger:route GET /translit/languages Translit languages
// @Summary Supported languages
// @Tags translit
// @Produce json
// @Success 200 {object} domain.LanguagesOutput "ok"
// @Router /translit/languages [get]
func (h *handlers) languages(r *stdhttp.Request) (any, error) {
	return h.svc.Languages(r.Context())
}

// swagger:route GET /translit/rules Translit rules
// @Summary Registered LDML transforms
// @Tags translit
// @Produce json
// @Success 200 {object} domain.RulesOutput "ok"
// @Router /translit/rules [get]
func (h *handlers) rules(r *stdhttp.Request) (any, error) {
	return h.svc.Rules(r.Context())
}

// swagger:route POST /translit/rules/{name} Translit runRule
// @Summary Run an LDML transform
// @Tags translit
// @Accept json
// @Produce json
// @Param name path string true "Transform name"
// @Param payload body domain.RuleInput true "Text"
// @Success 200 {object} domain.RuleOutput "ok"
// @Failure 404 {object} httpkit.Envelope "unknown transform"
// @Failure 503 {object} httpkit.Envelope "transform uses unsupported rules"
// @Router /translit/rules/{name} [post]
func (h *handlers) runRule(r *stdhttp.Request, in domain.RuleInput) (any, error) {
	return h.svc.RunRule(r.Context(), httpkit.URLParam(r, "name"), in)
}
