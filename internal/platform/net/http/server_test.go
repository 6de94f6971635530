package http_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eltranslit/internal/platform/config"
	phttp "eltranslit/internal/platform/net/http"
)

func TestNewServer_Addr(t *testing.T) {
	if got := phttp.NewServer(config.New().Prefix("ELTRANSLIT_API_")).Addr(); got != ":4000" {
		t.Fatalf("default addr = %q", got)
	}
	t.Setenv("ELTRANSLIT_API_ADDR", "127.0.0.1:8088")
	if got := phttp.NewServer(config.New().Prefix("ELTRANSLIT_API_")).Addr(); got != "127.0.0.1:8088" {
		t.Fatalf("addr = %q", got)
	}
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := l.Addr().String()
	_ = l.Close()
	return addr
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	addr := freeAddr(t)
	t.Setenv("ELTRANSLIT_API_ADDR", addr)
	srv := phttp.NewServer(config.New().Prefix("ELTRANSLIT_API_"))
	srv.Router().Get("/meta/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	rec := httptest.NewRecorder()
	srv.Router().Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta/health", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("mux: %d %q", rec.Code, rec.Body.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	// wait for the listener
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get("http://" + addr + "/meta/health")
		if err == nil {
			_ = resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never came up: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestServer_ShutdownEndsRun(t *testing.T) {
	t.Setenv("ELTRANSLIT_API_ADDR", freeAddr(t))
	srv := phttp.NewServer(config.New().Prefix("ELTRANSLIT_API_"))
	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background()) }()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown = %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}

func TestServer_RunReturnsListenError(t *testing.T) {
	t.Setenv("ELTRANSLIT_API_ADDR", "127.0.0.1:abc")
	if err := phttp.NewServer(config.New().Prefix("ELTRANSLIT_API_")).Run(context.Background()); err == nil {
		t.Fatal("expected a listen error")
	}
}
