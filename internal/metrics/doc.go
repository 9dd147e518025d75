// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package implements application instrumentation using the Prometheus client
library, exposing metrics for monitoring performance, errors, and system health.

# Overview

The package provides metrics for:
  - Nutrient normalization (requests, warnings by code, latency)
  - Ingredient matching outcomes (exact, alias, substitution, unmatched)
  - Recipe ranking latency and candidate counts
  - Meal scoring and score distribution
  - Health score aggregation (appends, rejections, retention pruning)
  - HTTP request latency and throughput
  - Badger store operation latency and errors

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Usage Example

Basic setup in main.go:

	import (
	    "github.com/tomtom215/nutriscope/internal/metrics"
	    "github.com/prometheus/client_golang/prometheus/promhttp"
	)

	func main() {
	    // Register metrics endpoint
	    http.Handle("/metrics", promhttp.Handler())

	    // Record metrics
	    metrics.RecordAPIRequest("POST", "/api/v1/recommendations", "200", duration)
	    metrics.RecordNormalize(duration, warningCodes)
	}

Recording HTTP metrics with middleware:

	func MetricsMiddleware(next http.Handler) http.Handler {
	    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	        start := time.Now()

	        // Wrap ResponseWriter to capture status code
	        rw := &responseWriter{ResponseWriter: w, statusCode: 200}

	        next.ServeHTTP(rw, r)

	        metrics.RecordAPIRequest(r.Method, r.URL.Path,
	            strconv.Itoa(rw.statusCode), time.Since(start))
	    })
	}

# Thread Safety

All metric recording functions are thread-safe and designed for concurrent use
from multiple goroutines. The Prometheus client library handles synchronization
internally.

# Cardinality Management

To prevent high cardinality issues:

  - Endpoint labels use chi route patterns, not raw paths
  - Warning and rejection codes are limited to predefined constants
  - User IDs and meal IDs are never used as labels

# See Also

  - internal/api: HTTP middleware with metrics integration
  - internal/nutrition: Pipeline components that record these metrics
  - https://prometheus.io/docs/practices/naming/: Metric naming conventions
  - https://prometheus.io/docs/practices/instrumentation/: Instrumentation guide
*/
package metrics
