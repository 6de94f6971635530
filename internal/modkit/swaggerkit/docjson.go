package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"eltranslit/internal/platform/config"
	perr "eltranslit/internal/platform/errors"

	docs "eltranslit/internal/services/api/docs"
)

// docReader is a seam for tests
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// serveDocJSON serves the generated document lifted to OAS 3.0.3, with the
// error envelope schema and default 400/500 answers on every operation
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		toOAS3(spec, "/api/v1")
		if v := config.New().Prefix("ELTRANSLIT_API_").MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + v
				}
			}
		}
		addErrorSchema(spec)
		addDefaultResponse(spec, http.StatusBadRequest, map[string]any{
			"status_code": 400,
			"status":      "Bad Request",
			"code":        perr.ErrorCodeValidation,
			"error":       "texts must be at most 1000",
			"field":       "texts",
		})
		addDefaultResponse(spec, http.StatusInternalServerError, map[string]any{
			"status_code": 500,
			"status":      "Internal Server Error",
			"code":        perr.ErrorCodePanic,
			"error":       "panic recovered",
		})

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// toOAS3 relabels swagger 2 and 3.1 documents as 3.0.3 (what swagger ui renders)
// and adds a servers entry when there is none
func toOAS3(spec map[string]any, url string) {
	delete(spec, "swagger")
	if v, ok := spec["openapi"].(string); !ok || !strings.HasPrefix(v, "3.0") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

// addErrorSchema declares ErrorResponse, the JSON shape of an error envelope
func addErrorSchema(spec map[string]any) {
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	str := map[string]any{"type": "string"}
	num := map[string]any{"type": "integer", "format": "int32"}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Error envelope",
		"properties": map[string]any{
			"status_code": num,
			"status":      str,
			"code":        num,
			"error":       str,
			"field":       str,
			"request_id":  str,
		},
		"required": []any{"status_code", "status"},
	}
}

// addDefaultResponse gives every operation a response for status unless it declares one
func addDefaultResponse(spec map[string]any, status int, example map[string]any) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	resp := map[string]any{
		"description": http.StatusText(status),
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": example,
			},
		},
	}
	sc := strconv.Itoa(status)
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			resps := child(op, "responses")
			if _, exists := resps[sc]; !exists {
				resps[sc] = resp
			}
		}
	}
}
