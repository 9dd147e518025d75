// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// HTTPServer matches the lifecycle surface of *http.Server, so the
// service can be exercised in tests without binding a port.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService bridges http.Server's blocking ListenAndServe to
// suture's context-driven Serve. On supervisor shutdown it drains
// in-flight requests via Shutdown, bounded by drainTimeout.
//
//	server := &http.Server{Addr: cfg.Server.Addr(), Handler: router}
//	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
type HTTPServerService struct {
	server       HTTPServer
	drainTimeout time.Duration
}

// NewHTTPServerService wraps server as a supervised service. A
// non-positive drainTimeout falls back to 10 seconds.
func NewHTTPServerService(server HTTPServer, drainTimeout time.Duration) *HTTPServerService {
	if drainTimeout <= 0 {
		drainTimeout = 10 * time.Second
	}
	return &HTTPServerService{
		server:       server,
		drainTimeout: drainTimeout,
	}
}

// Serve implements suture.Service. ListenAndServe runs in its own
// goroutine; a listener failure restarts the service through the
// supervisor, while context cancellation triggers a graceful drain.
// http.ErrServerClosed is the expected result of Shutdown and is not
// treated as a failure.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		err := h.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		// The parent context is already canceled; the drain needs
		// its own deadline.
		drainCtx, cancel := context.WithTimeout(context.Background(), h.drainTimeout)
		defer cancel()

		if err := h.server.Shutdown(drainCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-serveErr
		return ctx.Err()
	}
}

// String implements fmt.Stringer for supervisor logging.
func (h *HTTPServerService) String() string {
	return "http-server"
}
