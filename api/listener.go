// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package api

import (
	"github.com/iotexproject/go-pkgs/cache/ttl"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/namechain/namechain-core/blockchain/block"
	"github.com/namechain/namechain-core/pkg/log"
)

var (
	errorResponderAdded    = errors.New("Responder already added")
	errorKeyIsNotResponder = errors.New("key does not implement Responder interface")
	errorCapacityReached   = errors.New("capacity has been reached")
)

type (
	// Responder consumes blocks handed over by the listener until Exit
	Responder interface {
		Respond(*block.Block) error
		Exit()
	}

	// Listener passes committed blocks to all registered responders
	Listener interface {
		Start() error
		Stop() error
		ReceiveBlock(*block.Block) error
		AddResponder(Responder) error
	}

	// chainListener keeps responders as cache keys so a responder whose
	// callback errors is evicted right inside Range
	chainListener struct {
		capacity   int
		responders *ttl.Cache
	}
)

// NewChainListener returns a listener accepting at most capacity responders
func NewChainListener(capacity int) Listener {
	c, _ := ttl.NewCache(ttl.EvictOnErrorOption())
	return &chainListener{
		capacity:   capacity,
		responders: c,
	}
}

// Start starts the listener
func (cl *chainListener) Start() error { return nil }

// Stop tells every responder to exit and drops them all
func (cl *chainListener) Stop() error {
	cl.forEach(func(r Responder) error {
		r.Exit()
		return nil
	})
	cl.responders.Reset()
	return nil
}

// ReceiveBlock hands the block to every responder, a responder that fails is
// evicted so it cannot stall later blocks
func (cl *chainListener) ReceiveBlock(blk *block.Block) error {
	cl.forEach(func(r Responder) error {
		if err := r.Respond(blk); err != nil {
			log.L().Error("Responder failed to process the block.", zap.Error(err))
			return err
		}
		return nil
	})
	return nil
}

// AddResponder registers a new responder
func (cl *chainListener) AddResponder(r Responder) error {
	if _, loaded := cl.responders.Get(r); loaded {
		return errorResponderAdded
	}
	if cl.responders.Count() >= cl.capacity {
		return errorCapacityReached
	}
	cl.responders.Set(r, struct{}{})
	return nil
}

func (cl *chainListener) forEach(fn func(Responder) error) {
	cl.responders.Range(func(key, _ interface{}) error {
		r, ok := key.(Responder)
		if !ok {
			log.L().Error("Responder map stores a key of the wrong type.")
			return errorKeyIsNotResponder
		}
		return fn(r)
	})
}
