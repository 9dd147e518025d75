// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestGenerateRequestID(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()
	if len(a) != 36 {
		t.Errorf("len = %d, want 36 (full UUID)", len(a))
	}
	if a == b {
		t.Error("consecutive request IDs collide")
	}
}

func TestGenerateCorrelationID(t *testing.T) {
	a, b := GenerateCorrelationID(), GenerateCorrelationID()
	if len(a) != 8 {
		t.Errorf("len = %d, want 8", len(a))
	}
	if a == b {
		t.Error("consecutive correlation IDs collide")
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFrom(ctx); got != "" {
		t.Errorf("RequestIDFrom(empty ctx) = %q, want empty", got)
	}

	ctx = ContextWithRequestID(ctx, "req-123")
	if got := RequestIDFrom(ctx); got != "req-123" {
		t.Errorf("RequestIDFrom = %q, want req-123", got)
	}
}

func TestCorrelationIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	if got := CorrelationIDFrom(ctx); got != "" {
		t.Errorf("CorrelationIDFrom(empty ctx) = %q, want empty", got)
	}

	ctx = ContextWithNewCorrelationID(ctx)
	if got := CorrelationIDFrom(ctx); len(got) != 8 {
		t.Errorf("CorrelationIDFrom = %q, want generated 8-char ID", got)
	}
}

func TestCtxWithStampsIDs(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})

	ctx := ContextWithRequestID(context.Background(), "req-abc")
	ctx = ContextWithCorrelationID(ctx, "corr8888")

	logger := CtxWith(ctx).Str("component", "api").Logger()
	logger.Info().Msg("request completed")

	out := buf.String()
	for _, want := range []string{`"request_id":"req-abc"`, `"correlation_id":"corr8888"`, `"component":"api"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output = %s, want %s", out, want)
		}
	}
}

func TestCtxWithEmptyContext(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})

	logger := CtxWith(context.Background()).Logger()
	logger.Info().Msg("background job")

	out := buf.String()
	if strings.Contains(out, "request_id") || strings.Contains(out, "correlation_id") {
		t.Errorf("output = %s, want no ID fields without context values", out)
	}
}
