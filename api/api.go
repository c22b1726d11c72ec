// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package api exposes the chain over JSON HTTP: action submission, receipts,
// accounts, the name registry, and a websocket stream of registration events.
package api

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/namechain/namechain-core/action/protocol"
	"github.com/namechain/namechain-core/actpool"
	"github.com/namechain/namechain-core/blockchain"
	"github.com/namechain/namechain-core/blockchain/block"
	"github.com/namechain/namechain-core/blockchain/blockdao"
	"github.com/namechain/namechain-core/state/factory"
)

// Server bundles the core service with its HTTP transport
type Server struct {
	core    CoreService
	httpSvr *HTTPServer
}

// NewServer creates a server over the chain components
func NewServer(
	cfg Config,
	chain blockchain.Blockchain,
	sf factory.Factory,
	dao blockdao.BlockDAO,
	ap actpool.ActPool,
	registry *protocol.Registry,
) (*Server, error) {
	core, err := newCoreService(cfg, chain, sf, dao, ap, registry)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create the core service")
	}
	mux := http.NewServeMux()
	mux.Handle("/v1/", newWebHandler(core, cfg.MaxConcurrentRequests))
	mux.Handle("GET /v1/events", NewWebsocketHandler(
		core.ChainListener(),
		rate.NewLimiter(rate.Limit(cfg.WebsocketRateLimit), cfg.WebsocketRateLimit),
	))
	return &Server{
		core:    core,
		httpSvr: NewHTTPServer(cfg.Port, mux),
	}, nil
}

// Start starts the core service and the HTTP server
func (svr *Server) Start(ctx context.Context) error {
	if err := svr.core.Start(ctx); err != nil {
		return err
	}
	if svr.httpSvr == nil {
		return nil
	}
	return svr.httpSvr.Start(ctx)
}

// Stop stops the HTTP server and the core service
func (svr *Server) Stop(ctx context.Context) error {
	if svr.httpSvr != nil {
		if err := svr.httpSvr.Stop(ctx); err != nil {
			return err
		}
	}
	return svr.core.Stop(ctx)
}

// CoreService returns the core service behind the transports
func (svr *Server) CoreService() CoreService {
	return svr.core
}

// HandleBlock feeds a committed block into the event streams, satisfying the
// chain's block creation subscriber interface
func (svr *Server) HandleBlock(blk *block.Block) error {
	return svr.core.ReceiveBlock(blk)
}
