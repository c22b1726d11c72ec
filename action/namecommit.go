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

// NameCommitBaseIntrinsicGas represents the base intrinsic gas for a name commitment
const NameCommitBaseIntrinsicGas = uint64(10000)

type (
	// NameCommit opens a registration slot by escrowing the deposit behind a
	// blinded commitment to the name being claimed
	NameCommit struct {
		commitment hash.Hash256
		amount     *big.Int
	}

	nameCommitRLP struct {
		Commitment hash.Hash256
		Amount     *big.Int
	}
)

// NewNameCommit returns a NameCommit instance
func NewNameCommit(commitment hash.Hash256, amount *big.Int) *NameCommit {
	return &NameCommit{
		commitment: commitment,
		amount:     amount,
	}
}

// Commitment returns the blinded commitment hash
func (nc *NameCommit) Commitment() hash.Hash256 { return nc.commitment }

// Amount returns the escrowed amount
func (nc *NameCommit) Amount() *big.Int { return nc.amount }

// IntrinsicGas returns the intrinsic gas of a name commitment
func (nc *NameCommit) IntrinsicGas() (uint64, error) {
	return NameCommitBaseIntrinsicGas, nil
}

// SanityCheck validates the variables in the action
func (nc *NameCommit) SanityCheck() error {
	if nc.Amount().Sign() < 0 {
		return ErrNegativeValue
	}
	if nc.commitment == hash.ZeroHash256 {
		return errors.Wrap(ErrInvalidAct, "empty commitment")
	}
	return nil
}

// Serialize returns the RLP byte stream of the commitment
func (nc *NameCommit) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(&nameCommitRLP{
		Commitment: nc.commitment,
		Amount:     nc.amount,
	})
}

// LoadSerialized fills the commitment from its RLP byte stream
func (nc *NameCommit) LoadSerialized(data []byte) error {
	var wire nameCommitRLP
	if err := rlp.DecodeBytes(data, &wire); err != nil {
		return errors.Wrap(ErrInvalidAct, err.Error())
	}
	nc.commitment = wire.Commitment
	nc.amount = wire.Amount
	return nil
}
