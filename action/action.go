// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"math"
	"math/big"

	"github.com/iotexproject/go-pkgs/crypto"
	"github.com/pkg/errors"
)

type (
	// Action is an action that can be executed by a protocol. The method is added to
	// avoid mistakenly using an empty interface as action.
	Action interface {
		SanityCheck() error
	}

	// actionPayload is the codec surface every concrete action implements so it can
	// ride in an envelope
	actionPayload interface {
		IntrinsicGas() (uint64, error)
		SanityCheck() error
		Serialize() ([]byte, error)
		LoadSerialized([]byte) error
	}

	hasDestination interface{ Destination() string }

	amountForCost interface{ Amount() *big.Int }
)

// Sign signs the action using the sender's private key
func Sign(act Envelope, sk crypto.PrivateKey) (*SealedEnvelope, error) {
	sealed := &SealedEnvelope{
		Envelope:  act,
		srcPubkey: sk.PublicKey(),
	}

	h, err := sealed.envelopeHash()
	if err != nil {
		return sealed, errors.Wrap(err, "failed to generate envelope hash")
	}
	sig, err := sk.Sign(h[:])
	if err != nil {
		return sealed, ErrInvalidSender
	}
	sealed.signature = sig
	return sealed, nil
}

// FakeSeal creates a SealedEnvelope without a signature.
// This method should be only used in tests.
func FakeSeal(act Envelope, pubk crypto.PublicKey) *SealedEnvelope {
	return &SealedEnvelope{
		Envelope:  act,
		srcPubkey: pubk,
	}
}

// AssembleSealedEnvelope assembles a SealedEnvelope from an Envelope, a sender public key and a signature.
// This method should be only used in tests.
func AssembleSealedEnvelope(act Envelope, pk crypto.PublicKey, sig []byte) *SealedEnvelope {
	return &SealedEnvelope{
		Envelope:  act,
		srcPubkey: pk,
		signature: sig,
	}
}

// CalculateIntrinsicGas returns the intrinsic gas of an action
func CalculateIntrinsicGas(baseIntrinsicGas uint64, payloadGas uint64, payloadSize uint64) (uint64, error) {
	if payloadGas == 0 || payloadSize == 0 {
		return baseIntrinsicGas, nil
	}
	if (math.MaxUint64-baseIntrinsicGas)/payloadGas < payloadSize {
		return 0, ErrInsufficientFunds
	}
	return payloadSize*payloadGas + baseIntrinsicGas, nil
}
