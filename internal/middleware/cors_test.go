package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func newCORSHandler(origins ...string) http.Handler {
	cfg := DefaultCORSConfig()
	cfg.AllowedOrigins = origins
	return CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORS_AllowedOrigin(t *testing.T) {
	t.Parallel()

	handler := newCORSHandler("https://example.com")

	req := httptest.NewRequest(http.MethodGet, "/octocat", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("expected origin echoed, got %q", got)
	}
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	t.Parallel()

	handler := newCORSHandler("https://example.com")

	req := httptest.NewRequest(http.MethodGet, "/octocat", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// Request still served; browser enforcement relies on the absent header.
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS header for unknown origin, got %q", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	t.Parallel()

	handler := newCORSHandler("https://example.com")

	req := httptest.NewRequest(http.MethodOptions, "/octocat", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status 204 for preflight, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, OPTIONS" {
		t.Errorf("expected GET, OPTIONS allowed, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "86400" {
		t.Errorf("expected max age 86400, got %q", got)
	}
}

func TestCORS_SameOriginSkipped(t *testing.T) {
	t.Parallel()

	handler := newCORSHandler("https://example.com")

	req := httptest.NewRequest(http.MethodGet, "/octocat", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS headers for same-origin request, got %q", got)
	}
}
