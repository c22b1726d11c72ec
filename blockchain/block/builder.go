// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package block

import (
	"time"

	"github.com/iotexproject/go-pkgs/crypto"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/pkg/errors"

	"github.com/namechain/namechain-core/action"
)

// Builder is used to construct Block
type Builder struct{ blk Block }

// NewBuilder creates a Builder
func NewBuilder() *Builder {
	return &Builder{}
}

// SetChainID sets the chain ID for the block which is building
func (b *Builder) SetChainID(c uint32) *Builder {
	b.blk.Header.chainID = c
	return b
}

// SetHeight sets the height for the block which is building
func (b *Builder) SetHeight(h uint64) *Builder {
	b.blk.Header.height = h
	return b
}

// SetTimestamp sets the timestamp for the block which is building
func (b *Builder) SetTimestamp(ts time.Time) *Builder {
	b.blk.Header.timestamp = ts
	return b
}

// SetPrevBlockHash sets the previous block hash for the block which is building
func (b *Builder) SetPrevBlockHash(h hash.Hash256) *Builder {
	b.blk.Header.prevBlockHash = h
	return b
}

// SetActions sets the actions included in the block which is building
func (b *Builder) SetActions(acts []*action.SealedEnvelope) *Builder {
	b.blk.Actions = acts
	return b
}

// SetReceipts sets the receipts of running the included actions
func (b *Builder) SetReceipts(receipts []*action.Receipt) *Builder {
	b.blk.Receipts = receipts
	return b
}

// SignAndBuild seals the roots into the header, signs it and builds the block
func (b *Builder) SignAndBuild(signerPriKey crypto.PrivateKey) (Block, error) {
	txRoot, err := b.blk.CalculateTxRoot()
	if err != nil {
		return Block{}, errors.Wrap(err, "failed to calculate the action digest")
	}
	b.blk.Header.txRoot = txRoot
	b.blk.Header.receiptRoot = CalculateReceiptRoot(b.blk.Receipts)
	b.blk.Header.pubkey = signerPriKey.PublicKey()
	digest, err := b.blk.Header.HashHeaderCore()
	if err != nil {
		return Block{}, err
	}
	sig, err := signerPriKey.Sign(digest[:])
	if err != nil {
		return Block{}, errors.New("failed to sign block")
	}
	b.blk.Header.blockSig = sig
	return b.blk, nil
}
