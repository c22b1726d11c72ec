// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"math/big"
)

// EnvelopeBuilder is the builder to build Envelope
type EnvelopeBuilder struct {
	elp envelope
}

// SetVersion sets the version
func (b *EnvelopeBuilder) SetVersion(v uint32) *EnvelopeBuilder {
	b.elp.version = v
	return b
}

// SetNonce sets the nonce
func (b *EnvelopeBuilder) SetNonce(n uint64) *EnvelopeBuilder {
	b.elp.nonce = n
	return b
}

// SetGasLimit sets the gas limit
func (b *EnvelopeBuilder) SetGasLimit(l uint64) *EnvelopeBuilder {
	b.elp.gasLimit = l
	return b
}

// SetGasPrice sets the gas price
func (b *EnvelopeBuilder) SetGasPrice(p *big.Int) *EnvelopeBuilder {
	if p == nil {
		return b
	}
	b.elp.gasPrice = &big.Int{}
	b.elp.gasPrice.Set(p)
	return b
}

// SetChainID sets the chainID
func (b *EnvelopeBuilder) SetChainID(chainID uint32) *EnvelopeBuilder {
	b.elp.chainID = chainID
	return b
}

// SetAction sets the action payload to wrap
func (b *EnvelopeBuilder) SetAction(action actionPayload) *EnvelopeBuilder {
	b.elp.payload = action
	return b
}

// Build builds a new envelope
func (b *EnvelopeBuilder) Build() Envelope {
	if b.elp.payload == nil {
		panic("cannot build an envelope without an action payload")
	}
	if b.elp.version == 0 {
		b.elp.version = 1
	}
	if b.elp.gasPrice == nil {
		b.elp.gasPrice = big.NewInt(0)
	}
	return &b.elp
}
