// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package blockchain

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/namechain/namechain-core/blockchain/block"
	"github.com/namechain/namechain-core/pkg/log"
)

type (
	// BlockCreationSubscriber is notified of every block committed by this node
	BlockCreationSubscriber interface {
		HandleBlock(*block.Block) error
	}

	// PubSubManager fans committed blocks out to subscribers, each behind its
	// own buffered queue so a slow subscriber cannot stall the others
	PubSubManager interface {
		AddBlockListener(BlockCreationSubscriber) error
		RemoveBlockListener(BlockCreationSubscriber) error
		SendBlockToSubscribers(*block.Block)
		Stop()
	}

	// subscription holds one subscriber, its pending block queue and the
	// cancel channel of its drain goroutine
	subscription struct {
		listener BlockCreationSubscriber
		pending  chan *block.Block
		cancel   chan struct{}
	}

	pubSub struct {
		mu         sync.RWMutex
		subs       []*subscription
		bufferSize uint64
		wg         sync.WaitGroup
	}
)

// NewPubSub creates a PubSubManager with the given per-subscriber queue size
func NewPubSub(bufferSize uint64) PubSubManager {
	return &pubSub{bufferSize: bufferSize}
}

// AddBlockListener starts a drain goroutine for the subscriber and registers it
func (ps *pubSub) AddBlockListener(s BlockCreationSubscriber) error {
	sub := &subscription{
		listener: s,
		pending:  make(chan *block.Block, ps.bufferSize),
		cancel:   make(chan struct{}),
	}
	ps.wg.Add(1)
	go ps.drain(sub)

	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.subs = append(ps.subs, sub)
	return nil
}

// RemoveBlockListener cancels the subscriber's drain goroutine and unregisters it
func (ps *pubSub) RemoveBlockListener(s BlockCreationSubscriber) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for i, sub := range ps.subs {
		if sub.listener == s {
			close(sub.cancel)
			ps.subs = append(ps.subs[:i], ps.subs[i+1:]...)
			log.L().Info("Successfully unsubscribe block creation.")
			return nil
		}
	}
	return errors.New("cannot find subscription")
}

// SendBlockToSubscribers queues the block for every subscriber
func (ps *pubSub) SendBlockToSubscribers(blk *block.Block) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	for _, sub := range ps.subs {
		sub.pending <- blk
	}
}

// Stop cancels every subscriber and waits for the drain goroutines to exit
func (ps *pubSub) Stop() {
	ps.mu.Lock()
	for _, sub := range ps.subs {
		close(sub.cancel)
	}
	ps.subs = nil
	ps.mu.Unlock()
	ps.wg.Wait()
}

func (ps *pubSub) drain(sub *subscription) {
	defer ps.wg.Done()
	for {
		select {
		case <-sub.cancel:
			return
		case blk := <-sub.pending:
			if err := sub.listener.HandleBlock(blk); err != nil {
				log.L().Error("Failed to handle new block.", zap.Error(err))
			}
		}
	}
}
