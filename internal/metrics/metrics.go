// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the recommendation pipeline:
// - Normalization warnings and parse failures
// - Ingredient matching outcomes
// - Ranking latency and throughput
// - Meal scoring and health score aggregation
// - API endpoint latency and throughput
// - Badger store operations

var (
	// Normalization Metrics
	NormalizeRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutriscope_normalize_requests_total",
			Help: "Total number of nutrient normalization requests",
		},
	)

	NormalizeWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutriscope_normalize_warnings_total",
			Help: "Total number of normalization warnings by code",
		},
		[]string{"code"}, // "unit_unconvertible", "source_missing", "unparseable_line", "unknown_nutrient_key"
	)

	NormalizeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nutriscope_normalize_duration_seconds",
			Help:    "Duration of nutrient normalization in seconds",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		},
	)

	// Ingredient Matching Metrics
	MatchRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutriscope_match_requests_total",
			Help: "Total number of ingredient match requests",
		},
	)

	MatchOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutriscope_match_outcomes_total",
			Help: "Total number of ingredient match outcomes by kind",
		},
		[]string{"kind"}, // "exact", "substitution", "unmatched"
	)

	// Ranking Metrics
	RankRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutriscope_rank_requests_total",
			Help: "Total number of recipe ranking requests",
		},
	)

	RankDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nutriscope_rank_duration_seconds",
			Help:    "Duration of recipe ranking in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RankCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nutriscope_rank_candidates",
			Help:    "Number of candidate recipes per ranking request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		},
	)

	// Meal Scoring Metrics
	MealsScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutriscope_meals_scored_total",
			Help: "Total number of meals scored",
		},
	)

	MealScoreDistribution = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nutriscope_meal_score",
			Help:    "Distribution of meal scores on the 0-100 scale",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	// Health Score Aggregation Metrics
	HealthAppends = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutriscope_health_appends_total",
			Help: "Total number of meal scores appended to health histories",
		},
	)

	HealthAppendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nutriscope_health_append_duration_seconds",
			Help:    "Duration of health score append operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	HealthAppendRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutriscope_health_append_rejections_total",
			Help: "Total number of rejected health score appends",
		},
		[]string{"reason"}, // "user_id", "meal_id", "timestamp", "score"
	)

	HealthRecordsPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutriscope_health_records_pruned_total",
			Help: "Total number of health records removed by retention pruning",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutriscope_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nutriscope_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nutriscope_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutriscope_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nutriscope_store_operation_duration_seconds",
			Help:    "Duration of health store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "append", "records", "recent", "delete"
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutriscope_store_errors_total",
			Help: "Total number of health store errors",
		},
		[]string{"operation"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nutriscope_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nutriscope_app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordNormalize records a completed normalization request and its warnings.
func RecordNormalize(duration time.Duration, warningCodes []string) {
	NormalizeRequests.Inc()
	NormalizeDuration.Observe(duration.Seconds())
	for _, code := range warningCodes {
		NormalizeWarnings.WithLabelValues(code).Inc()
	}
}

// RecordMatch records an ingredient match outcome.
func RecordMatch(kind string) {
	MatchRequests.Inc()
	MatchOutcomes.WithLabelValues(kind).Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordStoreOperation records a health store operation metric.
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(operation).Inc()
	}
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
