// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/iotexproject/go-pkgs/crypto"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"
)

type (
	// SealedEnvelope is a signed action envelope
	SealedEnvelope struct {
		Envelope
		srcPubkey crypto.PublicKey
		signature []byte
		srcAddr   address.Address
		hash      hash.Hash256
	}

	// sealedEnvelopeRLP is the wire form of a signed envelope
	sealedEnvelopeRLP struct {
		Core      []byte
		SrcPubkey []byte
		Signature []byte
	}
)

// envelopeHash returns the hash of the unsigned envelope, the digest that gets signed
func (sealed *SealedEnvelope) envelopeHash() (hash.Hash256, error) {
	data, err := sealed.Envelope.Serialize()
	if err != nil {
		return hash.ZeroHash256, err
	}
	return hash.BytesToHash256(ethcrypto.Keccak256(data)), nil
}

// Hash returns the hash value of the sealed envelope
func (sealed *SealedEnvelope) Hash() (hash.Hash256, error) {
	if sealed.hash == hash.ZeroHash256 {
		data, err := sealed.Serialize()
		if err != nil {
			return hash.ZeroHash256, err
		}
		sealed.hash = hash.BytesToHash256(ethcrypto.Keccak256(data))
	}
	return sealed.hash, nil
}

// SrcPubkey returns the source public key
func (sealed *SealedEnvelope) SrcPubkey() crypto.PublicKey { return sealed.srcPubkey }

// Signature returns a copy of the signature
func (sealed *SealedEnvelope) Signature() []byte {
	sig := make([]byte, len(sealed.signature))
	copy(sig, sealed.signature)
	return sig
}

// SenderAddress returns the sender's address
func (sealed *SealedEnvelope) SenderAddress() address.Address {
	if sealed.srcAddr == nil {
		sealed.srcAddr = sealed.srcPubkey.Address()
	}
	return sealed.srcAddr
}

// VerifySignature verifies the action using the sender's public key
func (sealed *SealedEnvelope) VerifySignature() error {
	if sealed.srcPubkey == nil {
		return errors.Wrap(ErrInvalidSender, "empty public key")
	}
	h, err := sealed.envelopeHash()
	if err != nil {
		return errors.Wrap(err, "failed to generate envelope hash")
	}
	if !sealed.srcPubkey.Verify(h[:], sealed.signature) {
		return errors.Wrapf(ErrInvalidSender, "failed to verify action hash = %x", h)
	}
	return nil
}

// Serialize returns the RLP byte stream of the sealed envelope
func (sealed *SealedEnvelope) Serialize() ([]byte, error) {
	core, err := sealed.Envelope.Serialize()
	if err != nil {
		return nil, err
	}
	return rlp.EncodeToBytes(&sealedEnvelopeRLP{
		Core:      core,
		SrcPubkey: sealed.srcPubkey.Bytes(),
		Signature: sealed.signature,
	})
}
