// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package itx

import (
	"context"

	"go.uber.org/zap"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/actpool"
	"github.com/namechain/namechain-core/blockchain"
	"github.com/namechain/namechain-core/pkg/log"
)

// blockProducer periodically drains the action pool into a new block. The
// chain has a single producer, so minting a block is the whole of block
// production and no consensus round runs before the commit.
type blockProducer struct {
	chain blockchain.Blockchain
	ap    actpool.ActPool
}

func newBlockProducer(chain blockchain.Blockchain, ap actpool.ActPool) *blockProducer {
	return &blockProducer{
		chain: chain,
		ap:    ap,
	}
}

// Produce mints one block from the pending actions and feeds the committed
// block back to the pool so the confirmed actions are evicted
func (p *blockProducer) Produce() {
	var actions []*action.SealedEnvelope
	for _, acts := range p.ap.PendingActionMap() {
		actions = append(actions, acts...)
	}
	blk, err := p.chain.MintAndCommit(context.Background(), actions)
	if err != nil {
		log.L().Error("Failed to mint the block.", zap.Error(err))
		return
	}
	if err := p.ap.ReceiveBlock(blk); err != nil {
		log.L().Error("Failed to refresh the action pool.", zap.Error(err))
	}
}
