// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

/*
Package config provides centralized configuration management for Nutriscope.

Configuration is assembled with koanf v2 from three layered sources, in
ascending precedence:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML config file
 3. NUTRISCOPE_* environment variables

# Configuration Structure

The root Config groups settings by concern:

  - LoggingConfig: zerolog level, format, caller reporting
  - ServerConfig: HTTP listen address, timeouts, CORS, rate limiting
  - StoreConfig: health record store backend (memory or badger)
  - EngineConfig: the recommendation pipeline sections, each the owning
    package's own Config type (rank, match, normalize, mealscore,
    advice, health)

# Config File

The file is searched at config.yaml, config.yml,
/etc/nutriscope/config.yaml, /etc/nutriscope/config.yml, or the path in
NUTRISCOPE_CONFIG. Example:

	logging:
	  level: info
	  format: json
	server:
	  port: 8080
	  rate_limit:
	    requests_per_minute: 120
	store:
	  backend: badger
	  badger:
	    path: /data/nutriscope
	engine:
	  rank:
	    alpha: 0.7
	  health:
	    half_life_days: 7

# Environment Variables

Only explicitly mapped NUTRISCOPE_* variables are honored; stray
environment variables never leak into the configuration. The mapping
lives in envTransformFunc. Highlights:

  - NUTRISCOPE_LOG_LEVEL -> logging.level
  - NUTRISCOPE_SERVER_PORT -> server.port
  - NUTRISCOPE_STORE_BACKEND -> store.backend
  - NUTRISCOPE_RANK_ALPHA -> engine.rank.alpha
  - NUTRISCOPE_HEALTH_HALF_LIFE_DAYS -> engine.health.half_life_days

# Usage Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatalf("Failed to load config: %v", err)
	}
	fmt.Printf("Listening on %s\n", cfg.Server.Addr())

# Validation

Load validates before returning: log level and format, port range,
positive timeouts, a known store backend, and every engine section via
its owning package's Validate method. A config that loads is a config
the constructors will accept.

# Thread Safety

The Config struct is immutable after Load() returns, making it safe for
concurrent access from multiple goroutines without synchronization.
*/
package config
