// Package domain holds DTOs for the translit http and service contracts
package domain

// TransliterateInput asks for one string to be converted
type TransliterateInput struct {
	Text      string `json:"text"      validate:"max=65536" example:"sabaidi"`
	Lang      string `json:"lang"      validate:"required,min=2,max=35" example:"lo"`
	Direction string `json:"direction" validate:"omitempty,max=16" example:"reverse"`
	Form      string `json:"form"      validate:"omitempty,max=16" example:"NFC"`
	Strict    bool   `json:"strict"    example:"false"`
}

// TransliterateOutput is the converted text plus how it was resolved
type TransliterateOutput struct {
	Result    string `json:"result"`
	Lang      string `json:"lang"      example:"lo"`
	Direction string `json:"direction" example:"reverse"`
	Form      string `json:"form"      example:"NFC"`
	Supported bool   `json:"supported" example:"true"`
}

// BatchInput converts many strings with the same settings
type BatchInput struct {
	Texts     []string `json:"texts"     validate:"required,min=1,max=1000,dive,max=65536"`
	Lang      string   `json:"lang"      validate:"required,min=2,max=35" example:"ru"`
	Direction string   `json:"direction" validate:"omitempty,max=16" example:"forward"`
	Form      string   `json:"form"      validate:"omitempty,max=16" example:"NFC"`
	Strict    bool     `json:"strict"    example:"false"`
}

// BatchOutput holds one result per input, in input order
type BatchOutput struct {
	Results   []string `json:"results"`
	Lang      string   `json:"lang"      example:"ru"`
	Direction string   `json:"direction" example:"forward"`
	Form      string   `json:"form"      example:"NFC"`
	Supported bool     `json:"supported" example:"true"`
}

// LanguageRow describes one supported language
type LanguageRow struct {
	Code         string `json:"code"         example:"lo"`
	Table        string `json:"table"        example:"lo-alalc"`
	Bicamerality string `json:"bicamerality" example:"latin-only"`
	Label        string `json:"label"        example:"Lao (ALA-LC)"`
	Forward      int    `json:"forward"      example:"7"`
	Reverse      int    `json:"reverse"      example:"7"`
}

// LanguagesOutput lists supported languages sorted by code
type LanguagesOutput struct {
	Languages []LanguageRow `json:"languages"`
}

// RuleInput runs a registered LDML transform
type RuleInput struct {
	Text      string `json:"text"      validate:"max=65536" example:"abc"`
	Direction string `json:"direction" validate:"omitempty,max=16" example:"forward"`
}

// RuleOutput is the transform result
type RuleOutput struct {
	Name      string `json:"name"      example:"lo-Latn-demo"`
	Direction string `json:"direction" example:"forward"`
	Result    string `json:"result"`
}

// RulesOutput lists registered LDML transforms
type RulesOutput struct {
	Names []string `json:"names"`
}
