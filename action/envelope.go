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

// wire tags of the embedded action payload
const (
	_transferTag uint8 = iota + 1
	_nameCommitTag
	_nameRevealTag
	_nameWithdrawTag
)

type (
	// Envelope defines an envelope wrapped on action with some envelope metadata
	Envelope interface {
		Version() uint32
		ChainID() uint32
		Nonce() uint64
		GasLimit() uint64
		GasPrice() *big.Int
		Destination() (string, bool)
		Cost() (*big.Int, error)
		IntrinsicGas() (uint64, error)
		Action() Action
		Serialize() ([]byte, error)
		SetNonce(n uint64)
		SetChainID(chainID uint32)
		SanityCheck() error
	}

	envelope struct {
		AbstractAction
		payload actionPayload
	}

	// envelopeRLP is the wire form of an unsigned envelope, the payload rides as
	// opaque bytes behind a type tag
	envelopeRLP struct {
		Version  uint32
		ChainID  uint32
		Nonce    uint64
		GasLimit uint64
		GasPrice *big.Int
		ActType  uint8
		Payload  []byte
	}
)

// Destination returns the destination address
func (elp *envelope) Destination() (string, bool) {
	r, ok := elp.payload.(hasDestination)
	if !ok {
		return "", false
	}
	return r.Destination(), true
}

// Cost returns the total cost of the action, the maximum gas fee plus the amount it moves
func (elp *envelope) Cost() (*big.Int, error) {
	cost := big.NewInt(0).Mul(elp.GasPrice(), big.NewInt(0).SetUint64(elp.GasLimit()))
	if acct, ok := elp.payload.(amountForCost); ok && acct.Amount() != nil {
		cost.Add(cost, acct.Amount())
	}
	return cost, nil
}

// IntrinsicGas returns the intrinsic gas of the action
func (elp *envelope) IntrinsicGas() (uint64, error) {
	return elp.payload.IntrinsicGas()
}

// Action returns the action payload
func (elp *envelope) Action() Action { return elp.payload }

// Serialize returns the RLP byte stream of the envelope
func (elp *envelope) Serialize() ([]byte, error) {
	actType, err := payloadTag(elp.payload)
	if err != nil {
		return nil, err
	}
	data, err := elp.payload.Serialize()
	if err != nil {
		return nil, err
	}
	return rlp.EncodeToBytes(&envelopeRLP{
		Version:  elp.version,
		ChainID:  elp.chainID,
		Nonce:    elp.nonce,
		GasLimit: elp.gasLimit,
		GasPrice: elp.gasPrice,
		ActType:  actType,
		Payload:  data,
	})
}

// SanityCheck does the sanity check
func (elp *envelope) SanityCheck() error {
	if err := elp.payload.SanityCheck(); err != nil {
		return err
	}
	return elp.AbstractAction.SanityCheck()
}

func (elp *envelope) load(core *envelopeRLP) error {
	if core == nil {
		return ErrNilAction
	}
	payload, err := payloadFromTag(core.ActType)
	if err != nil {
		return err
	}
	if err := payload.LoadSerialized(core.Payload); err != nil {
		return err
	}
	elp.version = core.Version
	elp.chainID = core.ChainID
	elp.nonce = core.Nonce
	elp.gasLimit = core.GasLimit
	elp.gasPrice = &big.Int{}
	if core.GasPrice != nil {
		elp.gasPrice.Set(core.GasPrice)
	}
	elp.payload = payload
	return nil
}

func payloadTag(payload actionPayload) (uint8, error) {
	switch payload.(type) {
	case *Transfer:
		return _transferTag, nil
	case *NameCommit:
		return _nameCommitTag, nil
	case *NameReveal:
		return _nameRevealTag, nil
	case *NameWithdraw:
		return _nameWithdrawTag, nil
	default:
		return 0, errors.Wrapf(ErrInvalidAct, "unknown action type %T", payload)
	}
}

func payloadFromTag(actType uint8) (actionPayload, error) {
	switch actType {
	case _transferTag:
		return &Transfer{}, nil
	case _nameCommitTag:
		return &NameCommit{}, nil
	case _nameRevealTag:
		return &NameReveal{}, nil
	case _nameWithdrawTag:
		return &NameWithdraw{}, nil
	default:
		return nil, errors.Wrapf(ErrInvalidAct, "unknown action type tag %d", actType)
	}
}
