// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

const (
	// TransferBaseIntrinsicGas represents the base intrinsic gas for transfer
	TransferBaseIntrinsicGas = uint64(10000)
	// TransferPayloadGas represents the transfer payload gas per byte
	TransferPayloadGas = uint64(100)
)

type (
	// Transfer defines the struct of account-based transfer
	Transfer struct {
		amount    *big.Int
		recipient string
		payload   []byte
	}

	transferRLP struct {
		Amount    *big.Int
		Recipient string
		Payload   []byte
	}
)

// NewTransfer returns a Transfer instance
func NewTransfer(amount *big.Int, recipient string, payload []byte) *Transfer {
	return &Transfer{
		amount:    amount,
		recipient: recipient,
		payload:   payload,
	}
}

// Amount returns the amount
func (tsf *Transfer) Amount() *big.Int { return tsf.amount }

// Payload returns the payload bytes
func (tsf *Transfer) Payload() []byte { return tsf.payload }

// Recipient returns the recipient address
func (tsf *Transfer) Recipient() string { return tsf.recipient }

// Destination returns the recipient address as the destination
func (tsf *Transfer) Destination() string { return tsf.recipient }

// IntrinsicGas returns the intrinsic gas of a transfer
func (tsf *Transfer) IntrinsicGas() (uint64, error) {
	payloadSize := uint64(len(tsf.Payload()))
	return CalculateIntrinsicGas(TransferBaseIntrinsicGas, TransferPayloadGas, payloadSize)
}

// SanityCheck validates the variables in the action
func (tsf *Transfer) SanityCheck() error {
	// Reject transfer of negative amount
	if tsf.Amount().Sign() < 0 {
		return ErrNegativeValue
	}
	return nil
}

// Serialize returns the RLP byte stream of the transfer
func (tsf *Transfer) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(&transferRLP{
		Amount:    tsf.amount,
		Recipient: tsf.recipient,
		Payload:   tsf.payload,
	})
}

// LoadSerialized fills the transfer from its RLP byte stream
func (tsf *Transfer) LoadSerialized(data []byte) error {
	var wire transferRLP
	if err := rlp.DecodeBytes(data, &wire); err != nil {
		return errors.Wrap(ErrInvalidAct, err.Error())
	}
	tsf.amount = wire.Amount
	tsf.recipient = wire.Recipient
	tsf.payload = wire.Payload
	return nil
}
