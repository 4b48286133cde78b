package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coldrink/pwhl-data/internal/config"
	"github.com/coldrink/pwhl-data/internal/store"
)

func testRouter() http.Handler {
	cfg := &config.Config{CORSAllowOrigins: []string{"http://localhost:3000"}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(store.New(nil, logger), cfg, logger)
}

func TestRootServesServiceInfo(t *testing.T) {
	srv := httptest.NewServer(testRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("content type = %q", got)
	}
	if resp.Header.Get("X-Process-Time") == "" {
		t.Error("missing X-Process-Time header")
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "running" {
		t.Errorf("body = %v", body)
	}
}

func TestHealthCheck(t *testing.T) {
	srv := httptest.NewServer(testRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "healthy" || body["timestamp"] == "" {
		t.Errorf("body = %v", body)
	}
}
