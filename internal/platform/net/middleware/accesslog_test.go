package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	pnet "eltranslit/internal/platform/net"
	"eltranslit/internal/platform/net/middleware"

	"github.com/rs/zerolog"
)

func TestAccessLogZerolog(t *testing.T) {
	cases := []struct {
		name   string
		slow   time.Duration
		client string
		h      http.HandlerFunc
		status int
		body   string
		level  string
	}{
		{
			name: "transliterated",
			h: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `{"text":"Athina"}`)
			},
			status: http.StatusOK, body: `{"text":"Athina"}`, level: "info",
		},
		{
			name:   "unknown language",
			client: "ops",
			h: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte("no"))
				_, _ = w.Write([]byte(" such"))
			},
			status: http.StatusNotFound, body: "no such", level: "info",
		},
		{
			name: "slow batch",
			slow: time.Nanosecond,
			h: func(w http.ResponseWriter, _ *http.Request) {
				time.Sleep(50 * time.Microsecond)
				w.WriteHeader(http.StatusAccepted)
			},
			status: http.StatusAccepted, level: "warn",
		},
		{
			name: "store down",
			slow: time.Nanosecond,
			h: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			status: http.StatusServiceUnavailable, level: "error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := zerolog.New(&buf)
			h := middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: tc.slow, Log: &log})(tc.h)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/translit/el", strings.NewReader("{}"))
			ctx := pnet.WithRequest(req.Context(), "req-7")
			ctx = pnet.WithClient(ctx, tc.client)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req.WithContext(ctx))

			if rec.Code != tc.status || rec.Body.String() != tc.body {
				t.Fatalf("response = %d %q", rec.Code, rec.Body.String())
			}
			var evt map[string]any
			if err := json.Unmarshal(buf.Bytes(), &evt); err != nil {
				t.Fatalf("log line %q: %v", buf.String(), err)
			}
			if evt["level"] != tc.level || evt["status"] != float64(tc.status) {
				t.Fatalf("event = %v", evt)
			}
			if evt["bytes"] != float64(len(tc.body)) || evt["request_id"] != "req-7" || evt["path"] != "/api/v1/translit/el" {
				t.Fatalf("event = %v", evt)
			}
			if got, _ := evt["client_id"].(string); got != tc.client {
				t.Fatalf("client_id = %q want %q", got, tc.client)
			}
		})
	}
}
