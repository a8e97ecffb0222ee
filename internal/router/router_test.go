// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the routing table and middleware chains
// over the bundled fallback catalog, so they need no backing services.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"mgepcar/internal/handlers"
	"mgepcar/internal/stock"
)

func testRouter(t *testing.T) chi.Router {
	t.Helper()
	public := handlers.NewPublic(stock.New(nil), nil, nil, nil)
	leads := handlers.NewLeads(nil, nil, nil, nil)
	auth := handlers.NewAuth(nil, nil, "test")
	r, limiters := New(nil, nil, auth, leads, public)
	t.Cleanup(func() {
		for _, l := range limiters {
			l.Stop()
		}
	})
	return r
}

func get(t *testing.T, r chi.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthRoute(t *testing.T) {
	r := testRouter(t)

	rec := get(t, r, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q", ct)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v", body["status"])
	}
}

func TestPublicCatalogRoutes(t *testing.T) {
	r := testRouter(t)

	if rec := get(t, r, "/api/listings"); rec.Code != http.StatusOK {
		t.Errorf("GET /api/listings = %d, want 200", rec.Code)
	}
	if rec := get(t, r, "/api/listings?q=bmw&page=1"); rec.Code != http.StatusOK {
		t.Errorf("GET /api/listings with query = %d, want 200", rec.Code)
	}
	if rec := get(t, r, "/api/listings/bmw-m4-competition"); rec.Code != http.StatusOK {
		t.Errorf("GET /api/listings/{slug} = %d, want 200", rec.Code)
	}
	if rec := get(t, r, "/api/listings/no-such-car"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown slug = %d, want 404", rec.Code)
	}
	if rec := get(t, r, "/api/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown route = %d, want 404", rec.Code)
	}
}

func TestSecureHeadersApplied(t *testing.T) {
	r := testRouter(t)

	rec := get(t, r, "/api/health")
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got == "" {
		t.Error("missing X-Frame-Options")
	}
}

func TestLeadRouteValidation(t *testing.T) {
	r := testRouter(t)

	// A malformed payload is rejected at the handler, proving the route
	// is wired through the limiter group.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("POST /api/contact = %d, want 400", rec.Code)
	}
}

func TestLeadRateLimit(t *testing.T) {
	r := testRouter(t)

	var last int
	for i := 0; i < leadLimit+1; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{"name":`))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "203.0.113.7:1234"
		r.ServeHTTP(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("request %d = %d, want 429", leadLimit+1, last)
	}
}

func TestAdminRequiresSession(t *testing.T) {
	// Without a session cookie the request is rejected before any admin
	// handler runs, so nil admin dependencies are safe here.
	r := testRouter(t)
	rec := get(t, r, "/api/admin/dashboard")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("GET /api/admin/dashboard = %d, want 401", rec.Code)
	}
}
