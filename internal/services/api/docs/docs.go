// Package docs holds the swagger document served at /api/docs
// Regenerate with: swag init -g internal/services/api/api.go -o internal/services/api/docs --instanceName api
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/meta/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Meta"],
                "summary": "Health check",
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/http.HealthResponse"}}}
            }
        },
        "/meta/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Meta"],
                "summary": "Readiness check with dependency checks",
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/http.ReadyResponse"}}}
            }
        },
        "/meta/registry": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Meta"],
                "summary": "Loaded table registry and build",
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/http.RegistryResponse"}}}
            }
        },
        "/translit": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["translit"],
                "summary": "Transliterate text",
                "description": "Unsupported languages return the text unchanged with supported=false",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/domain.TransliterateInput"}}],
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/domain.TransliterateOutput"}}}
            }
        },
        "/translit/batch": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["translit"],
                "summary": "Transliterate many texts",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/domain.BatchInput"}}],
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/domain.BatchOutput"}}}
            }
        },
        "/translit/languages": {
            "get": {
                "produces": ["application/json"],
                "tags": ["translit"],
                "summary": "Supported languages",
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/domain.LanguagesOutput"}}}
            }
        },
        "/translit/rules": {
            "get": {
                "produces": ["application/json"],
                "tags": ["translit"],
                "summary": "Registered LDML transforms",
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/domain.RulesOutput"}}}
            }
        },
        "/translit/rules/{name}": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["translit"],
                "summary": "Run an LDML transform",
                "parameters": [
                    {"type": "string", "description": "Transform name", "name": "name", "in": "path", "required": true},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/domain.RuleInput"}}
                ],
                "responses": {
                    "200": {"description": "ok", "schema": {"$ref": "#/definitions/domain.RuleOutput"}},
                    "404": {"description": "unknown transform", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "503": {"description": "transform uses unsupported rules", "schema": {"$ref": "#/definitions/http.Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "domain.TransliterateInput": {
            "type": "object",
            "required": ["lang"],
            "properties": {
                "text": {"type": "string", "maxLength": 65536, "example": "sabaidi"},
                "lang": {"type": "string", "maxLength": 35, "minLength": 2, "example": "lo"},
                "direction": {"type": "string", "example": "reverse"},
                "form": {"type": "string", "example": "NFC"},
                "strict": {"type": "boolean", "example": false}
            }
        },
        "domain.TransliterateOutput": {
            "type": "object",
            "properties": {
                "result": {"type": "string"},
                "lang": {"type": "string", "example": "lo"},
                "direction": {"type": "string", "example": "reverse"},
                "form": {"type": "string", "example": "NFC"},
                "supported": {"type": "boolean", "example": true}
            }
        },
        "domain.BatchInput": {
            "type": "object",
            "required": ["lang", "texts"],
            "properties": {
                "texts": {"type": "array", "maxItems": 1000, "minItems": 1, "items": {"type": "string"}},
                "lang": {"type": "string", "example": "ru"},
                "direction": {"type": "string", "example": "forward"},
                "form": {"type": "string", "example": "NFC"},
                "strict": {"type": "boolean", "example": false}
            }
        },
        "domain.BatchOutput": {
            "type": "object",
            "properties": {
                "results": {"type": "array", "items": {"type": "string"}},
                "lang": {"type": "string", "example": "ru"},
                "direction": {"type": "string", "example": "forward"},
                "form": {"type": "string", "example": "NFC"},
                "supported": {"type": "boolean", "example": true}
            }
        },
        "domain.LanguageRow": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "lo"},
                "table": {"type": "string", "example": "lo-alalc"},
                "bicamerality": {"type": "string", "example": "latin-only"},
                "label": {"type": "string", "example": "Lao (ALA-LC)"},
                "forward": {"type": "integer", "example": 7},
                "reverse": {"type": "integer", "example": 7}
            }
        },
        "domain.LanguagesOutput": {
            "type": "object",
            "properties": {"languages": {"type": "array", "items": {"$ref": "#/definitions/domain.LanguageRow"}}}
        },
        "domain.RuleInput": {
            "type": "object",
            "properties": {
                "text": {"type": "string", "example": "abc"},
                "direction": {"type": "string", "example": "forward"}
            }
        },
        "domain.RuleOutput": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "lo-Latn-demo"},
                "direction": {"type": "string", "example": "forward"},
                "result": {"type": "string"}
            }
        },
        "domain.RulesOutput": {
            "type": "object",
            "properties": {"names": {"type": "array", "items": {"type": "string"}}}
        },
        "http.Envelope": {
            "type": "object",
            "properties": {
                "status_code": {"type": "integer"},
                "status": {"type": "string"},
                "code": {"type": "integer"},
                "error": {"type": "string"},
                "request_id": {"type": "string"},
                "data": {}
            }
        },
        "http.HealthResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean", "example": true},
                "service": {"type": "string", "example": "eltranslit-api"},
                "started": {"type": "string"},
                "now": {"type": "string"}
            }
        },
        "http.ReadyCheck": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "pg"},
                "status": {"type": "string", "example": "ok"},
                "error": {"type": "string"}
            }
        },
        "http.ReadyResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "checks": {"type": "array", "items": {"$ref": "#/definitions/http.ReadyCheck"}},
                "now": {"type": "string"}
            }
        },
        "http.RegistryResponse": {
            "type": "object",
            "properties": {
                "version": {"type": "integer", "example": 1},
                "languages": {"type": "array", "items": {"type": "string"}},
                "tables": {"type": "integer", "example": 3}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "eltranslit API",
	Description:      "Dictionary transliteration and LDML transforms",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
