// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package itx wires the chain components into a runnable node: state factory,
// block store, action pool, block producer and the API server.
package itx

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"runtime"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/namechain/namechain-core/action/protocol"
	"github.com/namechain/namechain-core/action/protocol/account"
	accountutil "github.com/namechain/namechain-core/action/protocol/account/util"
	"github.com/namechain/namechain-core/action/protocol/registrar"
	"github.com/namechain/namechain-core/actpool"
	"github.com/namechain/namechain-core/api"
	"github.com/namechain/namechain-core/blockchain"
	"github.com/namechain/namechain-core/blockchain/blockdao"
	"github.com/namechain/namechain-core/config"
	"github.com/namechain/namechain-core/db"
	"github.com/namechain/namechain-core/pkg/log"
	"github.com/namechain/namechain-core/pkg/probe"
	"github.com/namechain/namechain-core/pkg/routine"
	"github.com/namechain/namechain-core/pkg/util/httputil"
	"github.com/namechain/namechain-core/state/factory"
)

// Server is the namechain node instance containing all components.
type Server struct {
	cfg       config.Config
	registry  *protocol.Registry
	chain     blockchain.Blockchain
	sf        factory.Factory
	dao       blockdao.BlockDAO
	ap        actpool.ActPool
	apiServer *api.Server
	producer  *routine.RecurringTask
}

// NewServer creates a new server backed by the on-disk stores
func NewServer(cfg config.Config) (*Server, error) {
	return newServer(cfg, false)
}

// NewInMemTestServer creates a test server in memory
func NewInMemTestServer(cfg config.Config) (*Server, error) {
	return newServer(cfg, true)
}

func newServer(cfg config.Config, testing bool) (*Server, error) {
	registry := protocol.NewRegistry()
	if err := account.NewProtocol().Register(registry); err != nil {
		return nil, errors.Wrap(err, "failed to register the account protocol")
	}
	if err := registrar.NewProtocol(cfg.Genesis.Registrar).Register(registry); err != nil {
		return nil, errors.Wrap(err, "failed to register the registrar protocol")
	}
	var (
		sf      factory.Factory
		kvStore db.KVStore
		err     error
	)
	if testing {
		sf, err = factory.NewStateDB(cfg.Genesis.ChainID, factory.InMemStateDBOption())
	} else {
		sf, err = factory.NewStateDB(cfg.Genesis.ChainID, factory.DefaultStateDBOption(cfg.DB, cfg.Chain.StateDBPath))
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create state factory")
	}
	if testing {
		kvStore = db.NewMemKVStore()
	} else {
		kvStore, err = db.CreateKVStoreWithCache(cfg.DB, cfg.Chain.ChainDBPath, cfg.DB.MaxCacheSize)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create chain db")
		}
	}
	dao := blockdao.NewBlockDAO(kvStore, cfg.DB.Compressor)
	chain := blockchain.NewBlockchain(cfg.Chain, cfg.Genesis, dao, sf, registry)
	ap, err := actpool.NewActPool(cfg.Genesis, sf, cfg.ActPool)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create actpool")
	}
	ap.AddActionEnvelopeValidators(protocol.NewGenericValidator(sf, accountutil.LoadAccount))
	apiServer, err := api.NewServer(cfg.API, chain, sf, dao, ap, registry)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create api server")
	}
	if err := chain.AddSubscriber(apiServer); err != nil {
		return nil, errors.Wrap(err, "failed to subscribe the api server to new blocks")
	}
	svr := Server{
		cfg:       cfg,
		registry:  registry,
		chain:     chain,
		sf:        sf,
		dao:       dao,
		ap:        ap,
		apiServer: apiServer,
	}
	svr.producer = routine.NewRecurringTask(newBlockProducer(chain, ap).Produce, cfg.Genesis.BlockInterval)
	return &svr, nil
}

// Start starts the server
func (s *Server) Start(ctx context.Context) error {
	if err := s.chain.Start(ctx); err != nil {
		return errors.Wrap(err, "error when starting blockchain")
	}
	if err := s.apiServer.Start(ctx); err != nil {
		return errors.Wrap(err, "error when starting api server")
	}
	if err := s.producer.Start(ctx); err != nil {
		return errors.Wrap(err, "error when starting block producer")
	}
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	if err := s.producer.Stop(ctx); err != nil {
		return errors.Wrap(err, "error when stopping block producer")
	}
	if err := s.apiServer.Stop(ctx); err != nil {
		return errors.Wrap(err, "error when stopping api server")
	}
	if err := s.chain.Stop(ctx); err != nil {
		return errors.Wrap(err, "error when stopping blockchain")
	}
	return nil
}

// Blockchain returns the chain
func (s *Server) Blockchain() blockchain.Blockchain {
	return s.chain
}

// ActionPool returns the action pool
func (s *Server) ActionPool() actpool.ActPool {
	return s.ap
}

// StateFactory returns the state factory
func (s *Server) StateFactory() factory.Factory {
	return s.sf
}

// BlockDAO returns the block store
func (s *Server) BlockDAO() blockdao.BlockDAO {
	return s.dao
}

// APIServer returns the API server
func (s *Server) APIServer() *api.Server {
	return s.apiServer
}

// StartServer starts a node server and blocks until the context is canceled
func StartServer(ctx context.Context, svr *Server, probeSvr *probe.Server, cfg config.Config) {
	if err := svr.Start(ctx); err != nil {
		log.L().Fatal("Failed to start server.", zap.Error(err))
		return
	}
	probeSvr.Ready()

	if cfg.System.HeartbeatInterval > 0 {
		task := routine.NewRecurringTask(NewHeartbeatHandler(svr).Log, cfg.System.HeartbeatInterval)
		if err := task.Start(ctx); err != nil {
			log.L().Panic("Failed to start heartbeat routine.", zap.Error(err))
		}
		defer func() {
			if err := task.Stop(ctx); err != nil {
				log.L().Panic("Failed to stop heartbeat routine.", zap.Error(err))
			}
		}()
	}

	var adminserv http.Server
	if cfg.System.HTTPAdminPort > 0 {
		mux := http.NewServeMux()
		log.RegisterLevelConfigMux(mux)
		mux.Handle("/debug/pprof/", http.HandlerFunc(pprof.Index))
		mux.Handle("/debug/pprof/cmdline", http.HandlerFunc(pprof.Cmdline))
		mux.Handle("/debug/pprof/profile", http.HandlerFunc(pprof.Profile))
		mux.Handle("/debug/pprof/symbol", http.HandlerFunc(pprof.Symbol))
		mux.Handle("/debug/pprof/trace", http.HandlerFunc(pprof.Trace))

		port := fmt.Sprintf(":%d", cfg.System.HTTPAdminPort)
		adminserv = httputil.Server(port, mux)
		go func() {
			runtime.SetMutexProfileFraction(1)
			runtime.SetBlockProfileRate(1)
			ln, err := httputil.LimitListener(adminserv.Addr)
			if err != nil {
				log.L().Error("Error when listen to profiling port.", zap.Error(err))
				return
			}
			if err := adminserv.Serve(ln); err != nil {
				log.L().Error("Error when serving performance profiling data.", zap.Error(err))
			}
		}()
	}

	<-ctx.Done()
	probeSvr.NotReady()
	if err := adminserv.Shutdown(ctx); err != nil {
		log.L().Error("Error when shutting down the admin server.", zap.Error(err))
	}
	if err := svr.Stop(ctx); err != nil {
		log.L().Panic("Failed to stop server.", zap.Error(err))
	}
}
