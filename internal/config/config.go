// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/nutriscope/internal/nutrition/advice"
	"github.com/tomtom215/nutriscope/internal/nutrition/health"
	"github.com/tomtom215/nutriscope/internal/nutrition/match"
	"github.com/tomtom215/nutriscope/internal/nutrition/mealscore"
	"github.com/tomtom215/nutriscope/internal/nutrition/normalize"
	"github.com/tomtom215/nutriscope/internal/nutrition/rank"
)

// Config is the root application configuration, assembled from
// defaults, an optional YAML file, and NUTRISCOPE_* environment
// variables, in ascending precedence.
type Config struct {
	Logging LoggingConfig `koanf:"logging"`
	Server  ServerConfig  `koanf:"server"`
	Store   StoreConfig   `koanf:"store"`
	Engine  EngineConfig  `koanf:"engine"`
}

// LoggingConfig controls the zerolog global logger.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line in log output.
	Caller bool `koanf:"caller"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	CORS      CORSConfig      `koanf:"cors"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CORSConfig controls cross-origin request handling.
type CORSConfig struct {
	Enabled bool     `koanf:"enabled"`
	Origins []string `koanf:"origins"`
}

// RateLimitConfig controls per-client request throttling.
type RateLimitConfig struct {
	Enabled           bool `koanf:"enabled"`
	RequestsPerMinute int  `koanf:"requests_per_minute"`
}

// Store backends.
const (
	StoreMemory = "memory"
	StoreBadger = "badger"
)

// StoreConfig selects and configures the health record store.
type StoreConfig struct {
	// Backend is memory or badger.
	Backend string `koanf:"backend"`

	Badger BadgerConfig `koanf:"badger"`
}

// BadgerConfig configures the Badger-backed store.
type BadgerConfig struct {
	// Path is the on-disk database directory.
	Path string `koanf:"path"`

	// GCInterval is how often value-log garbage collection runs.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// AdviceConfig configures the advisory rule engine.
type AdviceConfig struct {
	// Enabled turns advisory evaluation on. Off by default.
	Enabled bool `koanf:"enabled"`

	// Rules replaces the built-in rule set when non-empty.
	Rules []advice.Rule `koanf:"rules"`
}

// EngineConfig groups the recommendation pipeline settings. Each
// section is the owning package's own Config type, so defaults and
// validation live next to the code they govern.
type EngineConfig struct {
	Rank      rank.Config      `koanf:"rank"`
	Match     match.Config     `koanf:"match"`
	Normalize normalize.Config `koanf:"normalize"`
	MealScore mealscore.Config `koanf:"mealscore"`
	Advice    AdviceConfig     `koanf:"advice"`
	Health    health.Config    `koanf:"health"`
}

// DefaultConfig returns a Config with production-ready defaults.
// These are applied first, then overridden by config file and env vars.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORS: CORSConfig{
				Enabled: true,
				Origins: []string{"*"},
			},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
			},
		},
		Store: StoreConfig{
			Backend: StoreMemory,
			Badger: BadgerConfig{
				Path:       "/data/nutriscope",
				GCInterval: 10 * time.Minute,
			},
		},
		Engine: EngineConfig{
			Rank:      rank.DefaultConfig(),
			Match:     match.DefaultConfig(),
			Normalize: normalize.DefaultConfig(),
			MealScore: mealscore.DefaultConfig(),
			Advice:    AdviceConfig{Enabled: false},
			Health:    health.DefaultConfig(),
		},
	}
}

// Validate checks the configuration for invalid values, delegating
// engine sections to their owning packages.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format: must be json or console, got %q", c.Logging.Format)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: must be in [1,65535], got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	if c.Server.RateLimit.Enabled && c.Server.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("server.rate_limit.requests_per_minute: must be positive, got %d",
			c.Server.RateLimit.RequestsPerMinute)
	}

	switch c.Store.Backend {
	case StoreMemory:
	case StoreBadger:
		if c.Store.Badger.Path == "" {
			return fmt.Errorf("store.badger.path: required for badger backend")
		}
		if c.Store.Badger.GCInterval <= 0 {
			return fmt.Errorf("store.badger.gc_interval: must be positive, got %s", c.Store.Badger.GCInterval)
		}
	default:
		return fmt.Errorf("store.backend: must be %s or %s, got %q", StoreMemory, StoreBadger, c.Store.Backend)
	}

	if err := c.Engine.Rank.Validate(); err != nil {
		return fmt.Errorf("engine.rank: %w", err)
	}
	if err := c.Engine.Match.Validate(); err != nil {
		return fmt.Errorf("engine.match: %w", err)
	}
	if err := c.Engine.Normalize.Validate(); err != nil {
		return fmt.Errorf("engine.normalize: %w", err)
	}
	if err := c.Engine.MealScore.Validate(); err != nil {
		return fmt.Errorf("engine.mealscore: %w", err)
	}
	if err := c.Engine.Health.Validate(); err != nil {
		return fmt.Errorf("engine.health: %w", err)
	}
	for _, r := range c.Engine.Advice.Rules {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("engine.advice: %w", err)
		}
	}

	return nil
}
