// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"math/big"

	"github.com/pkg/errors"
)

// AbstractAction is the envelope metadata shared by all actions
type AbstractAction struct {
	version  uint32
	chainID  uint32
	nonce    uint64
	gasLimit uint64
	gasPrice *big.Int
}

// Version returns the version
func (act *AbstractAction) Version() uint32 { return act.version }

// ChainID returns the chainID
func (act *AbstractAction) ChainID() uint32 { return act.chainID }

// Nonce returns the nonce
func (act *AbstractAction) Nonce() uint64 { return act.nonce }

// GasLimit returns the gas limit
func (act *AbstractAction) GasLimit() uint64 { return act.gasLimit }

// GasPrice returns the gas price
func (act *AbstractAction) GasPrice() *big.Int {
	p := &big.Int{}
	if act.gasPrice == nil {
		return p
	}
	return p.Set(act.gasPrice)
}

// SetNonce sets the nonce
func (act *AbstractAction) SetNonce(n uint64) { act.nonce = n }

// SetChainID sets the chainID
func (act *AbstractAction) SetChainID(chainID uint32) { act.chainID = chainID }

// SanityCheck validates the common envelope fields
func (act *AbstractAction) SanityCheck() error {
	if act.GasPrice().Sign() < 0 {
		return errors.Wrap(ErrGasPrice, "negative value")
	}
	return nil
}
