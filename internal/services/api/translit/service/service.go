// Package service contains translit workflows
package service

import (
	"context"
	"strings"

	"eltranslit/internal/core/langtag"
	"eltranslit/internal/core/ldml"
	"eltranslit/internal/core/normalize"
	"eltranslit/internal/core/scheme"
	"eltranslit/internal/core/translit"
	perr "eltranslit/internal/platform/errors"
	"eltranslit/internal/platform/logger"
	"eltranslit/internal/services/api/translit/domain"

	"github.com/rs/zerolog"
)

// Service defines the translit service contract
type Service interface {
	domain.ServicePort
}

// Options tune request handling
type Options struct {
	// MaxBatch caps texts per batch request; zero means no cap
	MaxBatch int
	// Strict turns on longest-match scanning for every Forward request
	Strict bool
	Log    *zerolog.Logger
}

// Svc implements the translit service
type Svc struct {
	engine *translit.Engine
	rules  *ldml.Registry
	opts   Options
	log    *zerolog.Logger
}

// New constructs a translit service; a nil rules registry serves no transforms
func New(engine *translit.Engine, rules *ldml.Registry, opts Options) *Svc {
	if engine == nil {
		panic("translit.Service requires a non nil Engine")
	}
	if rules == nil {
		rules = ldml.NewRegistry()
	}
	log := opts.Log
	if log == nil {
		log = logger.Named("translit-api")
	}
	return &Svc{engine: engine, rules: rules, opts: opts, log: log}
}

type resolved struct {
	req       translit.Request
	lang      string
	supported bool
}

func (s *Svc) resolve(lang, direction, form string, strict bool) resolved {
	nf, ok := normalize.ParseForm(form)
	if !ok && strings.TrimSpace(form) != "" {
		s.log.Debug().Str("form", form).Msg("unknown output form, using working form")
	}
	return resolved{
		req: translit.Request{
			Lang:   lang,
			Dir:    scheme.ParseDirection(direction),
			Form:   nf,
			Strict: strict || s.opts.Strict,
		},
		lang:      langtag.Primary(lang),
		supported: s.engine.Supported(lang),
	}
}

// Transliterate converts one text
func (s *Svc) Transliterate(_ context.Context, in domain.TransliterateInput) (domain.TransliterateOutput, error) {
	rv := s.resolve(in.Lang, in.Direction, in.Form, in.Strict)
	return domain.TransliterateOutput{
		Result:    s.engine.Run(normalize.Sanitize(in.Text), rv.req),
		Lang:      rv.lang,
		Direction: rv.req.Dir.String(),
		Form:      string(rv.req.Form),
		Supported: rv.supported,
	}, nil
}

// Batch converts every text with the same settings
func (s *Svc) Batch(ctx context.Context, in domain.BatchInput) (domain.BatchOutput, error) {
	if s.opts.MaxBatch > 0 && len(in.Texts) > s.opts.MaxBatch {
		return domain.BatchOutput{}, perr.WithField(
			perr.Newf(perr.ErrorCodeValidation, "texts must contain at most %d items", s.opts.MaxBatch), "texts")
	}
	if err := ctx.Err(); err != nil {
		return domain.BatchOutput{}, err
	}

	rv := s.resolve(in.Lang, in.Direction, in.Form, in.Strict)
	texts := make([]string, len(in.Texts))
	for i, t := range in.Texts {
		texts[i] = normalize.Sanitize(t)
	}
	return domain.BatchOutput{
		Results:   s.engine.RunBatch(texts, rv.req),
		Lang:      rv.lang,
		Direction: rv.req.Dir.String(),
		Form:      string(rv.req.Form),
		Supported: rv.supported,
	}, nil
}

// Languages lists the registry with entry counts per direction
func (s *Svc) Languages(_ context.Context) (domain.LanguagesOutput, error) {
	reg := s.engine.Registry()
	langs := reg.Languages()
	out := domain.LanguagesOutput{Languages: make([]domain.LanguageRow, 0, len(langs))}
	for _, l := range langs {
		t, _ := reg.Table(l.TableID)
		out.Languages = append(out.Languages, domain.LanguageRow{
			Code:         l.Code,
			Table:        l.TableID,
			Bicamerality: string(l.Bicamerality),
			Label:        l.Label,
			Forward:      len(t.Forward),
			Reverse:      len(t.Reverse),
		})
	}
	return out, nil
}

// Rules lists registered LDML transforms
func (s *Svc) Rules(_ context.Context) (domain.RulesOutput, error) {
	return domain.RulesOutput{Names: s.rules.Names()}, nil
}

// RunRule runs the named LDML transform
func (s *Svc) RunRule(_ context.Context, name string, in domain.RuleInput) (domain.RuleOutput, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.RuleOutput{}, perr.WithField(perr.InvalidArgf("transform name is required"), "name")
	}
	dir := scheme.ParseDirection(in.Direction)
	res, err := s.rules.Transliterate(name, normalize.Sanitize(in.Text), dir)
	if err != nil {
		return domain.RuleOutput{}, err
	}
	return domain.RuleOutput{Name: name, Direction: dir.String(), Result: res}, nil
}
