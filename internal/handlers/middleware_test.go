package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	env := setupHTTP(t)
	rec := env.do(t, http.MethodGet, "/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}

	env.h.DB = stubPinger{err: errors.New("connection refused")}
	rec = env.do(t, http.MethodGet, "/health", nil, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := setupHTTP(t)
	env.do(t, http.MethodGet, "/api/tasks", nil, env.alice)

	rec := env.do(t, http.MethodGet, "/metrics", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `path="/api/tasks"`) {
		t.Fatalf("metrics should be labelled with the route template")
	}
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	env := setupHTTP(t)

	rec := env.do(t, http.MethodGet, "/health", nil, nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected a generated X-Request-ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	out := httptest.NewRecorder()
	env.router.ServeHTTP(out, req)
	if got := out.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("X-Request-ID = %q, want abc-123", got)
	}
}

func TestCORSMiddleware(t *testing.T) {
	env := setupHTTP(t)

	allow := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	allow.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, allow)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight: want 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://app.example" {
		t.Fatalf("expected allowed origin to be echoed")
	}

	deny := httptest.NewRequest(http.MethodGet, "/health", nil)
	deny.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, deny)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("unexpected CORS header for unknown origin")
	}
}

func TestUnknownRoute(t *testing.T) {
	env := setupHTTP(t)
	rec := env.do(t, http.MethodGet, "/api/nope", nil, env.alice)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", rec.Code)
	}
}
