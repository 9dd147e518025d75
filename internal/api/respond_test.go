// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/nutriscope/internal/models"
	"github.com/tomtom215/nutriscope/internal/nutrition"
)

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain string unchanged", "hello world", "hello world"},
		{"newline escaped", "line1\nline2", "line1\\x0aline2"},
		{"carriage return escaped", "a\rb", "a\\x0db"},
		{"tab escaped", "a\tb", "a\\x09b"},
		{"delete escaped", "a\x7fb", "a\\x7fb"},
		{"unicode preserved", "café", "café"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeLogValue(tt.input); got != tt.want {
				t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateETag(t *testing.T) {
	a := generateETag([]byte("payload-a"))
	b := generateETag([]byte("payload-b"))

	if a == "" || b == "" {
		t.Fatal("empty ETag")
	}
	if a == b {
		t.Errorf("distinct payloads produced identical ETag %q", a)
	}
	if again := generateETag([]byte("payload-a")); again != a {
		t.Errorf("ETag not deterministic: %q != %q", again, a)
	}
}

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   map[string]int{"n": 1},
	})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if w.Header().Get("ETag") == "" {
		t.Error("missing ETag header")
	}

	var env models.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if env.Status != "success" {
		t.Errorf("status field = %q, want success", env.Status)
	}
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()
	respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "bad input", errors.New("detail"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var env models.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if env.Status != "error" {
		t.Errorf("status field = %q, want error", env.Status)
	}
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", env.Error)
	}
}

func TestRespondDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation error maps to 400",
			err:        &nutrition.ValidationError{Field: "score", Message: "out of range"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "wrapped validation error maps to 400",
			err:        fmt.Errorf("append: %w", &nutrition.ValidationError{Field: "user_id", Message: "required"}),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "other errors map to 500",
			err:        errors.New("disk full"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "STORE_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			respondDomainError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var env models.APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
				t.Fatalf("body not JSON: %v", err)
			}
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %q", env.Error, tt.wantCode)
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	if apiErr := validateRequest(&AppendMealRequest{UserID: "u", MealID: "m", Score: 50}); apiErr != nil {
		t.Errorf("valid request rejected: %+v", apiErr)
	}

	apiErr := validateRequest(&AppendMealRequest{Score: 200})
	if apiErr == nil {
		t.Fatal("invalid request accepted")
	}
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
}

func TestGetIntParam(t *testing.T) {
	tests := []struct {
		name  string
		query string
		key   string
		def   int
		want  int
	}{
		{"present", "limit=5", "limit", 10, 5},
		{"absent uses default", "", "limit", 10, 10},
		{"non-numeric uses default", "limit=abc", "limit", 10, 10},
		{"negative parsed", "limit=-3", "limit", 10, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			if got := getIntParam(req, tt.key, tt.def); got != tt.want {
				t.Errorf("getIntParam(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}
