package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestNewMetricsServer_DefaultAddr(t *testing.T) {
	s := NewMetricsServer("")
	if s.Addr() != DefaultMetricsAddr {
		t.Errorf("expected default addr %q, got %q", DefaultMetricsAddr, s.Addr())
	}

	s = NewMetricsServer(":9191")
	if s.Addr() != ":9191" {
		t.Errorf("expected addr ':9191', got %q", s.Addr())
	}
}

func TestMetricsServer_ServesMetricsAndHealth(t *testing.T) {
	s := NewMetricsServer("127.0.0.1:0")
	s.SetHealthChecker(NewHealthChecker(nil))

	ready := make(chan struct{})
	serveErr := make(chan error, 1)
	go func() {
		if err := s.StartWithReadySignal(ready); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ready:
	case err := <-serveErr:
		t.Fatalf("metrics server failed to start: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("metrics server startup timed out")
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			t.Errorf("shutdown failed: %v", err)
		}
		if err := <-serveErr; err != nil {
			t.Errorf("serve returned error: %v", err)
		}
	}()

	for _, path := range []string{"/metrics", "/healthz", "/readyz"} {
		resp, err := http.Get(fmt.Sprintf("http://%s%s", s.Addr(), path))
		if err != nil {
			t.Fatalf("request to %s failed: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected status 200 for %s, got %d", path, resp.StatusCode)
		}
	}
}

func TestMetricsServer_ShutdownWithoutStart(t *testing.T) {
	s := NewMetricsServer(":9090")
	if err := s.Shutdown(context.Background()); err != nil {
		t.Errorf("shutdown of unstarted server failed: %v", err)
	}
}
