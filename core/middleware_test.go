package core

import (
	"net/http"
	"testing"
)

func TestOriginMiddleware_ReflectsAnyOriginByDefault(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/healthz", "", func(req *http.Request) {
		req.Header.Set("Origin", "https://anywhere.example.com")
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://anywhere.example.com" {
		t.Fatalf("Allow-Origin = %q", got)
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatalf("credentials not allowed")
	}
}

func TestOriginMiddleware_EnforcesAllowedList(t *testing.T) {
	repo := newFakeUserRepo()
	tokens, err := NewTokenService("test-secret")
	if err != nil {
		t.Fatalf("NewTokenService error: %v", err)
	}
	svc := NewRepositoryAuthService(repo, tokens)
	cfg := Config{CookieSameSite: "None", CookieSecure: true,
		AllowedOrigins: []string{"https://app.example.com"}}
	r := NewRouter(cfg, svc, tokens, repo)

	w := doJSON(t, r, http.MethodGet, "/healthz", "", func(req *http.Request) {
		req.Header.Set("Origin", "https://evil.example.com")
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("disallowed origin: status = %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/healthz", "", func(req *http.Request) {
		req.Header.Set("Origin", "https://app.example.com")
	})
	if w.Code != http.StatusOK {
		t.Fatalf("allowed origin: status = %d", w.Code)
	}

	// Preflight for an allowed origin short-circuits with 204.
	w = doJSON(t, r, http.MethodOptions, "/api/login", "", func(req *http.Request) {
		req.Header.Set("Origin", "https://app.example.com")
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight: status = %d, want 204", w.Code)
	}
}
