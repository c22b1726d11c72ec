// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/pkg/errors"
)

const (
	// NameRevealBaseIntrinsicGas represents the base intrinsic gas for a name reveal
	NameRevealBaseIntrinsicGas = uint64(10000)
	// NameRevealPayloadGas represents the name reveal payload gas per byte of name
	NameRevealPayloadGas = uint64(100)
	// MaxNameLength bounds the byte length of a name on the wire
	MaxNameLength = 255
)

type (
	// NameReveal discloses the name and blinding nonce behind an open
	// commitment, and settles the registration
	NameReveal struct {
		name   string
		nonce  hash.Hash256
		amount *big.Int
	}

	nameRevealRLP struct {
		Name   string
		Nonce  hash.Hash256
		Amount *big.Int
	}
)

// NewNameReveal returns a NameReveal instance
func NewNameReveal(name string, nonce hash.Hash256, amount *big.Int) *NameReveal {
	return &NameReveal{
		name:   name,
		nonce:  nonce,
		amount: amount,
	}
}

// Name returns the name being revealed
func (nr *NameReveal) Name() string { return nr.name }

// Nonce returns the 32-byte blinding nonce used in the commitment
func (nr *NameReveal) Nonce() hash.Hash256 { return nr.nonce }

// Amount returns the amount sent along with the reveal
func (nr *NameReveal) Amount() *big.Int { return nr.amount }

// IntrinsicGas returns the intrinsic gas of a name reveal
func (nr *NameReveal) IntrinsicGas() (uint64, error) {
	nameSize := uint64(len(nr.name))
	return CalculateIntrinsicGas(NameRevealBaseIntrinsicGas, NameRevealPayloadGas, nameSize)
}

// SanityCheck validates the variables in the action
func (nr *NameReveal) SanityCheck() error {
	if nr.Amount().Sign() < 0 {
		return ErrNegativeValue
	}
	// An empty name is rejected at execution, not here, so that the failure
	// carries a receipt
	if len(nr.name) > MaxNameLength {
		return errors.Wrapf(ErrOversizedData, "name of %d bytes exceeds limit %d", len(nr.name), MaxNameLength)
	}
	return nil
}

// Serialize returns the RLP byte stream of the reveal
func (nr *NameReveal) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(&nameRevealRLP{
		Name:   nr.name,
		Nonce:  nr.nonce,
		Amount: nr.amount,
	})
}

// LoadSerialized fills the reveal from its RLP byte stream
func (nr *NameReveal) LoadSerialized(data []byte) error {
	var wire nameRevealRLP
	if err := rlp.DecodeBytes(data, &wire); err != nil {
		return errors.Wrap(ErrInvalidAct, err.Error())
	}
	nr.name = wire.Name
	nr.nonce = wire.Nonce
	nr.amount = wire.Amount
	return nil
}
