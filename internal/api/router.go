// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/nutriscope/internal/config"
)

// Router assembles the HTTP surface from a handler and server
// configuration.
type Router struct {
	handler *Handler
	server  config.ServerConfig
}

// NewRouter creates a router for the given handler.
func NewRouter(handler *Handler, server config.ServerConfig) *Router {
	return &Router{handler: handler, server: server}
}

// Setup configures all HTTP routes using Chi.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(CORSMiddleware(router.server.CORS)) // global so OPTIONS preflight is handled
	r.Use(RequestLogging())

	// Probe endpoints: permissive rate limiting so monitoring tools
	// can poll frequently.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(rateLimitHealth(router.server.RateLimit))
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Engine endpoints: configured rate limit plus Prometheus
	// instrumentation keyed by route pattern.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimitMiddleware(router.server.RateLimit))
		r.Use(PrometheusMetrics())

		r.Post("/recommendations", router.handler.Recommend)
		r.Post("/meals/score", router.handler.ScoreMeal)
		r.Post("/meals", router.handler.AppendMeal)
		r.Get("/users/{userID}/health", router.handler.HealthScore)
		r.Get("/users/{userID}/meals/recent", router.handler.RecentMeals)
	})

	// Prometheus scrape endpoint, outside the API rate limit.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
