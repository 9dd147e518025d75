// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/tomtom215/nutriscope/internal/config"
	"github.com/tomtom215/nutriscope/internal/logging"
	"github.com/tomtom215/nutriscope/internal/models"
	"github.com/tomtom215/nutriscope/internal/nutrition"
	"github.com/tomtom215/nutriscope/internal/nutrition/advice"
	"github.com/tomtom215/nutriscope/internal/nutrition/health"
	"github.com/tomtom215/nutriscope/internal/nutrition/match"
	"github.com/tomtom215/nutriscope/internal/nutrition/mealscore"
	"github.com/tomtom215/nutriscope/internal/nutrition/normalize"
	"github.com/tomtom215/nutriscope/internal/nutrition/rank"
)

// readinessTimeout bounds the store probe in the readiness handler.
const readinessTimeout = 2 * time.Second

// defaultRecentLimit is the recent-meals page size when the client
// does not specify one.
const defaultRecentLimit = 20

// maxRecentLimit caps the recent-meals page size.
const maxRecentLimit = 100

// Handler wires the engine components behind the HTTP boundary. All
// components are constructed once and safe for concurrent use.
type Handler struct {
	cfg        *config.Config
	normalizer *normalize.Normalizer
	matcher    *match.Matcher
	ranker     *rank.Ranker
	scorer     *mealscore.Scorer
	advisor    *advice.Engine
	aggregator *health.Aggregator
	store      health.Store
	startTime  time.Time
	logger     zerolog.Logger
}

// NewHandler builds the engine components from configuration and
// returns the assembled handler. The store is owned by the caller;
// the handler never closes it.
func NewHandler(cfg *config.Config, store health.Store) (*Handler, error) {
	logger := logging.With().Str("component", "api").Logger()

	normalizer, err := normalize.NewNormalizer(cfg.Engine.Normalize)
	if err != nil {
		return nil, fmt.Errorf("normalizer: %w", err)
	}
	matcher, err := match.NewMatcher(cfg.Engine.Match)
	if err != nil {
		return nil, fmt.Errorf("matcher: %w", err)
	}
	ranker, err := rank.NewRanker(cfg.Engine.Rank, logger)
	if err != nil {
		return nil, fmt.Errorf("ranker: %w", err)
	}
	scorer, err := mealscore.NewScorer(cfg.Engine.MealScore)
	if err != nil {
		return nil, fmt.Errorf("scorer: %w", err)
	}

	var advisor *advice.Engine
	if cfg.Engine.Advice.Enabled {
		rules := cfg.Engine.Advice.Rules
		if len(rules) == 0 {
			rules = advice.DefaultRules()
		}
		advisor, err = advice.NewEngine(rules)
		if err != nil {
			return nil, fmt.Errorf("advice engine: %w", err)
		}
	}

	aggregator, err := health.NewAggregator(cfg.Engine.Health, store, logger)
	if err != nil {
		return nil, fmt.Errorf("aggregator: %w", err)
	}

	return &Handler{
		cfg:        cfg,
		normalizer: normalizer,
		matcher:    matcher,
		ranker:     ranker,
		scorer:     scorer,
		advisor:    advisor,
		aggregator: aggregator,
		store:      store,
		startTime:  time.Now(),
		logger:     logger,
	}, nil
}

// Aggregator exposes the handler's aggregator for background workers
// that share it (retention pruning).
func (h *Handler) Aggregator() *health.Aggregator {
	return h.aggregator
}

// Recommend ranks candidate recipes against a nutrient target and
// pantry. Candidates are normalized server-side from the submitted
// sources; an unnormalizable candidate fails the whole request since
// the batch is a single client input.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RecommendRequest
	if apiErr := decodeJSON(w, r, &req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	target, err := targetFromRanges(req.Target)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	pantry := nutrition.NewPantry(req.Pantry...)
	candidates := make([]rank.Candidate, 0, len(req.Candidates))
	var warnings []nutrition.Warning

	for _, in := range req.Candidates {
		result, err := h.normalizer.Normalize(in, req.Sources)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		warnings = append(warnings, result.Warnings...)

		candidate := rank.Candidate{Recipe: result.Recipe}
		if !pantry.IsEmpty() {
			matched := h.matcher.Match(result.Recipe, pantry)
			candidate.Match = &matched
		}
		candidates = append(candidates, candidate)
	}

	var ranking rank.Result
	if req.Limit > 0 {
		ranking = h.ranker.TopN(target, candidates, req.Limit)
	} else {
		ranking = h.ranker.Rank(target, candidates)
	}

	respondSuccess(w, http.StatusOK, RecommendResponse{
		Ranking:  ranking,
		Warnings: warnings,
	}, start)
}

// ScoreMeal scores one meal's nutrient vector, evaluating advisory
// rules when the rule engine is enabled. The adjusted value is
// reported only when adjustment application is configured; the base
// score is always the deviation score.
func (h *Handler) ScoreMeal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ScoreMealRequest
	if apiErr := decodeJSON(w, r, &req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	meal, err := vectorFromAmounts(req.Nutrients)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	var target *nutrition.Target
	if len(req.Target) > 0 {
		t, err := targetFromRanges(req.Target)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		target = &t
	}

	resp := ScoreMealResponse{Score: h.scorer.Score(meal, target)}

	if h.advisor != nil {
		resp.Advisories = h.advisor.Evaluate(meal, req.Profile)
		if h.cfg.Engine.MealScore.ApplyAdjustments {
			adjusted := advice.Apply(resp.Score.Value, resp.Advisories)
			resp.AdjustedValue = &adjusted
		}
	}

	respondSuccess(w, http.StatusOK, resp, start)
}

// AppendMeal folds one scored meal into the user's health history and
// returns the updated snapshot. Validation failures never touch
// stored state.
func (h *Handler) AppendMeal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req AppendMealRequest
	if apiErr := decodeJSON(w, r, &req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	timestamp := req.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	snapshot, err := h.aggregator.Append(r.Context(), req.UserID, health.MealScore{
		ID:        req.MealID,
		Timestamp: timestamp,
		Score:     req.Score,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, snapshot, start)
}

// HealthScore returns the user's rolling health snapshot. A user with
// no history gets the Uninitialized snapshot, not an error.
func (h *Handler) HealthScore(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "user ID is required", nil)
		return
	}

	snapshot, err := h.aggregator.Snapshot(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, snapshot, start)
}

// RecentMeals returns the user's scored meals, newest first. The limit
// query parameter pages the result, clamped to [1,100].
func (h *Handler) RecentMeals(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "user ID is required", nil)
		return
	}

	limit := getIntParam(r, "limit", defaultRecentLimit)
	if limit < 1 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	meals, err := h.aggregator.RecentMeals(r.Context(), userID, limit)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if meals == nil {
		meals = []health.Record{}
	}

	respondSuccess(w, http.StatusOK, RecentMealsResponse{
		UserID: userID,
		Meals:  meals,
	}, start)
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 200 OK only when the health store answers a probe query;
// 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if _, err := h.store.Users(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("Readiness probe failed")
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status: "error",
			Metadata: models.Metadata{
				Timestamp: time.Now(),
			},
			Error: &models.APIError{
				Code:    "NOT_READY",
				Message: "Health store is unavailable",
			},
		})
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"ready": true,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// targetFromRanges converts string-keyed ranges from a request into a
// validated Target.
func targetFromRanges(ranges map[string]nutrition.TargetRange) (nutrition.Target, error) {
	keyed := make(map[nutrition.Key]nutrition.TargetRange, len(ranges))
	for k, r := range ranges {
		keyed[nutrition.Key(k)] = r
	}
	return nutrition.NewTarget(keyed)
}

// vectorFromAmounts converts string-keyed amounts from a request into
// a validated Vector.
func vectorFromAmounts(amounts map[string]float64) (nutrition.Vector, error) {
	keyed := make(map[nutrition.Key]float64, len(amounts))
	for k, v := range amounts {
		keyed[nutrition.Key(k)] = v
	}
	return nutrition.NewVector(keyed)
}
