// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// NameWithdrawBaseIntrinsicGas represents the base intrinsic gas for a name withdrawal
const NameWithdrawBaseIntrinsicGas = uint64(10000)

type (
	// NameWithdraw cancels the sender's open registration slot and reclaims
	// the escrowed deposit once its time lock expires
	NameWithdraw struct{}

	nameWithdrawRLP struct{}
)

// NewNameWithdraw returns a NameWithdraw instance
func NewNameWithdraw() *NameWithdraw {
	return &NameWithdraw{}
}

// IntrinsicGas returns the intrinsic gas of a name withdrawal
func (nw *NameWithdraw) IntrinsicGas() (uint64, error) {
	return NameWithdrawBaseIntrinsicGas, nil
}

// SanityCheck validates the variables in the action
func (nw *NameWithdraw) SanityCheck() error { return nil }

// Serialize returns the RLP byte stream of the withdrawal
func (nw *NameWithdraw) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(&nameWithdrawRLP{})
}

// LoadSerialized fills the withdrawal from its RLP byte stream
func (nw *NameWithdraw) LoadSerialized(data []byte) error {
	var wire nameWithdrawRLP
	if err := rlp.DecodeBytes(data, &wire); err != nil {
		return errors.Wrap(ErrInvalidAct, err.Error())
	}
	return nil
}
