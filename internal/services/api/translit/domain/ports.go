package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Transliterate(ctx context.Context, in TransliterateInput) (TransliterateOutput, error)
	Batch(ctx context.Context, in BatchInput) (BatchOutput, error)
	Languages(ctx context.Context) (LanguagesOutput, error)
	Rules(ctx context.Context) (RulesOutput, error)
	RunRule(ctx context.Context, name string, in RuleInput) (RuleOutput, error)
}
