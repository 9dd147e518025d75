// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/nutriscope/internal/config"
)

func TestRequestIDWithLogging(t *testing.T) {
	tests := []struct {
		name       string
		incomingID string
		wantSameID bool
	}{
		{"generates request ID when absent", "", false},
		{"preserves client request ID", "client-supplied-id", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seenID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenID = r.Header.Get("X-Request-ID")
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incomingID != "" {
				req.Header.Set("X-Request-ID", tt.incomingID)
			}

			RequestIDWithLogging()(next).ServeHTTP(httptest.NewRecorder(), req)

			if seenID == "" {
				t.Fatal("no request ID reached the handler")
			}
			if tt.wantSameID && seenID != tt.incomingID {
				t.Errorf("request ID = %q, want %q", seenID, tt.incomingID)
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.CORSConfig
		origin     string
		wantHeader string
	}{
		{
			name:       "wildcard allows any origin",
			cfg:        config.CORSConfig{Enabled: true, Origins: []string{"*"}},
			origin:     "https://app.example.com",
			wantHeader: "*",
		},
		{
			name:       "explicit origin echoed",
			cfg:        config.CORSConfig{Enabled: true, Origins: []string{"https://app.example.com"}},
			origin:     "https://app.example.com",
			wantHeader: "https://app.example.com",
		},
		{
			name:       "disabled adds nothing",
			cfg:        config.CORSConfig{Enabled: false},
			origin:     "https://app.example.com",
			wantHeader: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()

			CORSMiddleware(tt.cfg)(next).ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantHeader {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantHeader)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, RequestsPerMinute: 2}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	limited := RateLimitMiddleware(cfg)(next)

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		limited.ServeHTTP(w, req)
		last = w.Code
	}

	if last != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want %d", last, http.StatusTooManyRequests)
	}
}

func TestRateLimitDisabledPassesThrough(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: false, RequestsPerMinute: 1}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	limited := RateLimitMiddleware(cfg)(next)

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		limited.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want %d", i, w.Code, http.StatusOK)
		}
	}
}

func TestRoutePatternFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/alice/health", nil)
	if got := routePattern(req); got != "/api/v1/users/alice/health" {
		t.Errorf("routePattern() = %q, want raw path outside chi", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "nutriscope_") {
		t.Error("metrics output does not contain nutriscope_ collectors")
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/api/v1/unknown")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestPrometheusMetricsCapturesStatus(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	PrometheusMetrics()(next).ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d passed through", w.Code, http.StatusTeapot)
	}
}
