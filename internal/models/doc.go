// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

// Package models defines the shared HTTP response envelope used by all
// API endpoints.
//
// Every response, success or error, is wrapped in APIResponse so clients
// can handle both cases with one code path:
//
//	response := models.APIResponse{
//	    Status: "success",
//	    Data:   payload,
//	    Metadata: models.Metadata{
//	        Timestamp: time.Now(),
//	    },
//	}
//
// Domain payloads (rankings, meal scores, health snapshots) are defined
// by the packages that compute them; this package carries only the
// boundary envelope, keeping the engine packages free of HTTP concerns.
package models
