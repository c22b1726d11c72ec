// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/namechain/namechain-core/pkg/log"
	"github.com/namechain/namechain-core/pkg/util/httputil"
)

// HTTPServer crates a http server
type HTTPServer struct {
	svr *http.Server
}

// NewHTTPServer creates a new http server serving the given handler
func NewHTTPServer(port int, handler http.Handler) *HTTPServer {
	if port == 0 {
		return nil
	}
	svr := httputil.NewServer(":"+strconv.Itoa(port), handler, httputil.ReadHeaderTimeout(10*time.Second))
	return &HTTPServer{
		svr: &svr,
	}
}

// Start starts the http server
func (hSvr *HTTPServer) Start(_ context.Context) error {
	go func() {
		if err := hSvr.svr.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L().Fatal("Node failed to serve.", zap.Error(err))
		}
	}()
	return nil
}

// Stop stops the http server
func (hSvr *HTTPServer) Stop(ctx context.Context) error {
	return hSvr.svr.Shutdown(ctx)
}
