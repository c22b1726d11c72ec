// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/iotexproject/go-pkgs/crypto"
	"github.com/pkg/errors"
)

// Deserializer decodes envelopes and sealed envelopes from their wire form
type Deserializer struct{}

// EnvelopeFromBytes decodes an unsigned envelope
func (ad *Deserializer) EnvelopeFromBytes(data []byte) (Envelope, error) {
	var core envelopeRLP
	if err := rlp.DecodeBytes(data, &core); err != nil {
		return nil, errors.Wrap(ErrInvalidAct, err.Error())
	}
	elp := &envelope{}
	if err := elp.load(&core); err != nil {
		return nil, err
	}
	return elp, nil
}

// SealedEnvelopeFromBytes decodes a signed envelope
func (ad *Deserializer) SealedEnvelopeFromBytes(data []byte) (*SealedEnvelope, error) {
	var raw sealedEnvelopeRLP
	if err := rlp.DecodeBytes(data, &raw); err != nil {
		return nil, errors.Wrap(ErrInvalidAct, err.Error())
	}
	elp, err := ad.EnvelopeFromBytes(raw.Core)
	if err != nil {
		return nil, err
	}
	pubkey, err := crypto.BytesToPublicKey(raw.SrcPubkey)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSender, err.Error())
	}
	return &SealedEnvelope{
		Envelope:  elp,
		srcPubkey: pubkey,
		signature: raw.Signature,
	}, nil
}
