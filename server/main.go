// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Usage:
//   make build
//   ./bin/server -config-path=./config.yaml -genesis-path=./genesis.yaml
//

package main

import (
	"context"
	"flag"
	"fmt"
	glog "log"
	"os"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"github.com/namechain/namechain-core/blockchain/genesis"
	"github.com/namechain/namechain-core/config"
	"github.com/namechain/namechain-core/pkg/log"
	"github.com/namechain/namechain-core/pkg/probe"
	"github.com/namechain/namechain-core/pkg/tracer"
	"github.com/namechain/namechain-core/server/itx"
)

var (
	_overwritePath string
	_secretPath    string
	_genesisPath   string
)

func init() {
	flag.StringVar(&_overwritePath, "config-path", "", "config path")
	flag.StringVar(&_secretPath, "secret-path", "", "secret config path")
	flag.StringVar(&_genesisPath, "genesis-path", "", "genesis config path")
	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr,
			"usage: server -config-path=[string] -genesis-path=[string]\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
}

func main() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	signal.Notify(stop, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	livenessCtx, livenessCancel := context.WithCancel(context.Background())

	genesisCfg, err := genesis.New(_genesisPath)
	if err != nil {
		glog.Fatalln("Failed to new genesis config.", zap.Error(err))
	}
	cfg, err := config.New([]string{_overwritePath, _secretPath})
	if err != nil {
		glog.Fatalln("Failed to new config.", zap.Error(err))
	}
	cfg.Genesis = genesisCfg
	if err := cfg.Genesis.Validate(); err != nil {
		glog.Fatalln("Invalid genesis config.", zap.Error(err))
	}

	initLogger(cfg)

	cfgToLog := cfg
	cfgToLog.Chain.ProducerPrivKey = ""
	log.S().Infof("Config in use: %+v", cfgToLog)
	log.S().Infof("Genesis hash: %x", cfg.Genesis.Hash())

	tp, err := tracer.NewProvider(
		tracer.WithServiceName(cfg.API.Tracer.ServiceName),
		tracer.WithEndpoint(cfg.API.Tracer.EndPoint),
		tracer.WithInstanceID(cfg.API.Tracer.InstanceID),
		tracer.WithSamplingRatio(cfg.API.Tracer.SamplingRatio),
	)
	if err != nil {
		log.L().Error("Cannot config tracer provider.", zap.Error(err))
	}
	if tp != nil {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.L().Error("Error when shutting down tracer provider.", zap.Error(err))
			}
		}()
	}

	svr, err := itx.NewServer(cfg)
	if err != nil {
		log.L().Fatal("Failed to create server.", zap.Error(err))
	}

	probeSvr := probe.New(cfg.System.HTTPStatsPort)
	if err := probeSvr.Start(ctx); err != nil {
		log.L().Fatal("Failed to start probe server.", zap.Error(err))
	}
	go func() {
		<-stop
		// start stopping the server
		cancel()
		<-stopped
		// liveness stays up until the server has fully stopped
		if err := probeSvr.Stop(livenessCtx); err != nil {
			log.L().Error("Error when stopping probe server.", zap.Error(err))
		}
		livenessCancel()
	}()

	go func() {
		itx.StartServer(ctx, svr, probeSvr, cfg)
		close(stopped)
	}()
	<-livenessCtx.Done()
}

func initLogger(cfg config.Config) {
	if err := log.InitLoggers(cfg.Log, cfg.SubLogs); err != nil {
		glog.Println("Cannot config global logger, use default one: ", err)
	}
}
