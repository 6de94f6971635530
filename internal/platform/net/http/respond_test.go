package http_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "eltranslit/internal/platform/errors"
	pnet "eltranslit/internal/platform/net"
	phttp "eltranslit/internal/platform/net/http"
	"eltranslit/internal/services/api/translit/domain"
)

func reqWithReqID(method, path, rid string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(pnet.WithRequest(req.Context(), rid))
}

func serve(resp phttp.Response, rid string) (*httptest.ResponseRecorder, phttp.Envelope) {
	rec := httptest.NewRecorder()
	phttp.Handle(func(*http.Request) phttp.Response { return resp })(rec, reqWithReqID(http.MethodPost, "/translit", rid))
	var env phttp.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestJSON_WritesContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.JSON(rec, http.StatusTeapot, map[string]any{"k": "v"})
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d want 418", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content-type = %q", ct)
	}
}

func TestHandle_OKCarriesOutput(t *testing.T) {
	out := domain.TransliterateOutput{Result: "Shchuka", Lang: "ru", Supported: true}
	rec, env := serve(phttp.OK(out), "rid-1")
	if rec.Code != http.StatusOK || env.StatusCode != http.StatusOK || env.Status != "OK" {
		t.Fatalf("bad status: %d %+v", rec.Code, env)
	}
	if env.RequestID != "rid-1" {
		t.Fatalf("request id = %q", env.RequestID)
	}
	data, ok := env.Data.(map[string]any)
	if !ok || data["result"] != "Shchuka" || data["supported"] != true {
		t.Fatalf("data = %#v", env.Data)
	}
	if env.Error != "" || env.Code != 0 {
		t.Fatalf("success envelope carries an error: %+v", env)
	}
}

func TestHandle_ErrorEnvelope(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   perr.ErrorCode
		msg    string
		field  string
	}{
		{
			name:   "batch over cap",
			err:    perr.WithField(perr.New(perr.ErrorCodeValidation, "texts must be at most 1000"), "texts"),
			status: http.StatusBadRequest,
			code:   perr.ErrorCodeValidation,
			msg:    "texts must be at most 1000",
			field:  "texts",
		},
		{
			name:   "unknown transform",
			err:    perr.NotFoundf("no transform named %q", "Latin-Foo"),
			status: http.StatusNotFound,
			code:   perr.ErrorCodeNotFound,
			msg:    `no transform named "Latin-Foo"`,
		},
		{
			name:   "unsupported rule construct",
			err:    fmt.Errorf("run: %w", perr.New(perr.ErrorCodeUnavailable, "transform uses unsupported rules")),
			status: http.StatusServiceUnavailable,
			code:   perr.ErrorCodeUnavailable,
			msg:    "transform uses unsupported rules",
		},
		{
			name:   "foreign error",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			code:   perr.ErrorCodeUnknown,
			msg:    "boom",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := serve(phttp.Error(tc.err), "rid-2")
			if rec.Code != tc.status || env.StatusCode != tc.status {
				t.Fatalf("status = %d/%d want %d", rec.Code, env.StatusCode, tc.status)
			}
			if env.Code != tc.code || env.Error != tc.msg || env.Field != tc.field {
				t.Fatalf("envelope = %+v", env)
			}
			if env.Data != nil {
				t.Fatalf("error envelope carries data: %#v", env.Data)
			}
		})
	}
}

func TestHandle_CustomStatusAndHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("X-Table", "ru-gost")
	rec, env := serve(phttp.Response{Status: http.StatusAccepted, Body: domain.RulesOutput{Names: []string{"Cyrl-Latn"}}, Header: h}, "")
	if rec.Code != http.StatusAccepted || env.StatusCode != http.StatusAccepted {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("X-Table"); got != "ru-gost" {
		t.Fatalf("header = %q", got)
	}

	rec, _ = serve(phttp.Response{Status: http.StatusNoContent, Body: "ignored"}, "")
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("204 wrote %d %q", rec.Code, rec.Body.String())
	}
}
