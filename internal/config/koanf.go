// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/nutriscope/config.yaml",
	"/etc/nutriscope/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "NUTRISCOPE_CONFIG"

// Load builds the configuration using koanf v2 with layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML file (if one exists)
//  3. Environment variables: NUTRISCOPE_* overrides
//
// Precedence is ENV > file > defaults. The result is validated before
// being returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths are parsed as
// comma-separated slices when supplied through the environment.
var sliceConfigPaths = []string{
	"server.cors.origins",
}

// processSliceFields converts comma-separated string values to slices
// for known slice fields. Env vars arrive as strings, but the config
// expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML file): skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps NUTRISCOPE_* environment variable names to
// koanf config paths. Unmapped variables are skipped so stray
// environment variables never pollute the configuration.
//
// Examples:
//   - NUTRISCOPE_LOG_LEVEL -> logging.level
//   - NUTRISCOPE_SERVER_PORT -> server.port
//   - NUTRISCOPE_STORE_BACKEND -> store.backend
//   - NUTRISCOPE_RANK_ALPHA -> engine.rank.alpha
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Logging
		"nutriscope_log_level":  "logging.level",
		"nutriscope_log_format": "logging.format",
		"nutriscope_log_caller": "logging.caller",

		// Server
		"nutriscope_server_host":             "server.host",
		"nutriscope_server_port":             "server.port",
		"nutriscope_server_read_timeout":     "server.read_timeout",
		"nutriscope_server_write_timeout":    "server.write_timeout",
		"nutriscope_server_shutdown_timeout": "server.shutdown_timeout",
		"nutriscope_cors_enabled":            "server.cors.enabled",
		"nutriscope_cors_origins":            "server.cors.origins",
		"nutriscope_rate_limit_enabled":      "server.rate_limit.enabled",
		"nutriscope_rate_limit_rpm":          "server.rate_limit.requests_per_minute",

		// Store
		"nutriscope_store_backend":      "store.backend",
		"nutriscope_badger_path":        "store.badger.path",
		"nutriscope_badger_gc_interval": "store.badger.gc_interval",

		// Ranking engine
		"nutriscope_rank_alpha":            "engine.rank.alpha",
		"nutriscope_rank_tie_epsilon":      "engine.rank.tie_epsilon",
		"nutriscope_rank_diversity_lambda": "engine.rank.diversity_lambda",
		"nutriscope_rank_max_results":      "engine.rank.max_results",

		// Ingredient matcher
		"nutriscope_match_substitution_weight": "engine.match.substitution_weight",

		// Meal scorer
		"nutriscope_mealscore_calorie_bound":     "engine.mealscore.calorie_bound",
		"nutriscope_mealscore_overeat_threshold": "engine.mealscore.overeat_threshold",
		"nutriscope_mealscore_overeat_penalty":   "engine.mealscore.overeat_penalty",
		"nutriscope_mealscore_apply_adjustments": "engine.mealscore.apply_adjustments",

		// Advisory rules
		"nutriscope_advice_enabled": "engine.advice.enabled",

		// Health score aggregator
		"nutriscope_health_half_life_days":     "engine.health.half_life_days",
		"nutriscope_health_trend_horizon_days": "engine.health.trend_horizon_days",
		"nutriscope_health_trend_min_delta":    "engine.health.trend_min_delta",
		"nutriscope_health_retention_days":     "engine.health.retention_days",
		"nutriscope_health_max_history":        "engine.health.max_history",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Skip unmapped keys
	return ""
}
