// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/namechain/namechain-core/pkg/log"
	"github.com/namechain/namechain-core/pkg/util/httputil"
)

// Server exposes liveness, readiness and metrics endpoints for a node.
// Liveness reports success as soon as the server runs, readiness and health
// stay unavailable until Ready is called.
type Server struct {
	ready            atomic.Bool
	server           http.Server
	readinessHandler http.Handler
}

// Option is used to set probe server's options.
type Option interface {
	SetOption(*Server)
}

type readinessOption struct{ h http.Handler }

func (o *readinessOption) SetOption(s *Server) { s.readinessHandler = o.h }

// WithReadinessHandler overrides the handler serving readiness and health once
// the server is marked ready
func WithReadinessHandler(h http.Handler) interface{ Option } {
	return &readinessOption{h}
}

// New creates a new probe server.
func New(port int, opts ...Option) *Server {
	s := &Server{
		readinessHandler: http.HandlerFunc(ok),
	}
	for _, opt := range opts {
		opt.SetOption(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/liveness", ok)
	readiness := func(w http.ResponseWriter, r *http.Request) {
		if !s.ready.Load() {
			unavailable(w, r)
			return
		}
		s.readinessHandler.ServeHTTP(w, r)
	}
	mux.HandleFunc("/readiness", readiness)
	mux.HandleFunc("/health", readiness)
	mux.Handle("/metrics", promhttp.Handler())

	s.server = httputil.Server(fmt.Sprintf(":%d", port), mux)
	return s
}

// Start binds the probe port and begins serving, liveness reports success
// from here on
func (s *Server) Start(_ context.Context) error {
	ln, err := httputil.LimitListener(s.server.Addr)
	if err != nil {
		return errors.Wrap(err, "failed to listen on probe address")
	}
	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.L().Warn("Probe server stopped.", zap.Error(err))
		}
	}()
	return nil
}

// Ready marks the server ready, readiness and health begin to report success
func (s *Server) Ready() { s.ready.Store(true) }

// NotReady marks the server not ready, readiness and health report failure again
func (s *Server) NotReady() { s.ready.Store(false) }

// Stop shuts down the probe server.
func (s *Server) Stop(ctx context.Context) error { return s.server.Shutdown(ctx) }

func ok(w http.ResponseWriter, _ *http.Request) { respond(w, http.StatusOK, "OK") }

func unavailable(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusServiceUnavailable, "FAIL")
}

func respond(w http.ResponseWriter, status int, body string) {
	w.WriteHeader(status)
	if _, err := io.WriteString(w, body); err != nil {
		log.L().Warn("Failed to send probe response.", zap.Error(err))
	}
}
