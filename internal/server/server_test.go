package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.NBAAPI.Provider = "fixture"
	cfg.NBAAPI.RateLimitMS = 0
	cfg.Metrics.Enabled = false
	cfg.Database.Path = ":memory:"
	cfg.Cache.Dir = t.TempDir()
	return cfg
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := New(testConfig(t), nil, "test")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func TestServerServesAPI(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var env struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Success || env.Data["version"] != "test" {
		t.Fatalf("unexpected payload: %+v", env)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header from middleware")
	}
}

func TestServerServesBestGameFromFixture(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/best-game?days=1", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d, body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "fixture-1") {
		t.Fatalf("expected fixture game in response: %s", rec.Body.String())
	}
}

func TestServerServesWebUI(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/?days=1", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Most Engaging NBA Games") {
		t.Fatal("expected web page")
	}
}

func TestBuildCacheFallsBackToStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Enabled = false

	srv, err := New(cfg, nil, "test")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.store == nil {
		t.Fatal("expected store configured")
	}
	if got := cacheName(cfg.Cache, srv.store); got != "sqlite" {
		t.Fatalf("expected sqlite cache, got %s", got)
	}
}
