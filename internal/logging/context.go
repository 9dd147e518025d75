// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	requestIDKey     contextKey = "request_id"
	correlationIDKey contextKey = "correlation_id"
)

// GenerateRequestID returns a new request ID, a full UUID. The API
// request-ID middleware uses it when the client sent none.
func GenerateRequestID() string {
	return uuid.New().String()
}

// GenerateCorrelationID returns a new correlation ID. The first eight
// UUID characters keep log lines readable; request IDs carry the full
// entropy.
func GenerateCorrelationID() string {
	return uuid.New().String()[:8]
}

// ContextWithRequestID stores a request ID in the context.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// ContextWithCorrelationID stores a correlation ID in the context.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// ContextWithNewCorrelationID stores a freshly generated correlation
// ID in the context.
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, GenerateCorrelationID())
}

// RequestIDFrom returns the request ID stored in ctx, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// CorrelationIDFrom returns the correlation ID stored in ctx, or "".
func CorrelationIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// CtxWith starts a child-logger context from the global logger with
// any request and correlation IDs in ctx already stamped as fields:
//
//	logger := logging.CtxWith(r.Context()).Str("component", "api").Logger()
func CtxWith(ctx context.Context) zerolog.Context {
	logCtx := With()
	if id := RequestIDFrom(ctx); id != "" {
		logCtx = logCtx.Str("request_id", id)
	}
	if id := CorrelationIDFrom(ctx); id != "" {
		logCtx = logCtx.Str("correlation_id", id)
	}
	return logCtx
}
