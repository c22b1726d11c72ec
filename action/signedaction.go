// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"encoding/hex"
	"math/big"

	"github.com/iotexproject/go-pkgs/crypto"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/pkg/errors"
)

// ValidSig is a well-formed secp256k1 signature for assembling fake seals in tests
var ValidSig, _ = hex.DecodeString("15e73ad521ec9e06600c59e49b127c9dee114ad64fb2fcbe5e0d9f4c8d2b766e73d708cca1dc050dd27b20f2ee607f30428bf035f45d4da8ec2fb04a90c2c30901")

// SignedActionOption customizes the envelope before signing
type SignedActionOption func(*EnvelopeBuilder)

// WithChainID sets the chain ID on the envelope
func WithChainID(chainID uint32) SignedActionOption {
	return func(b *EnvelopeBuilder) {
		b.SetChainID(chainID)
	}
}

// SignedTransfer returns a signed transfer
func SignedTransfer(recipientAddr string, senderPriKey crypto.PrivateKey, nonce uint64, amount *big.Int, payload []byte, gasLimit uint64, gasPrice *big.Int, options ...SignedActionOption) (*SealedEnvelope, error) {
	bd := &EnvelopeBuilder{}
	bd = bd.SetNonce(nonce).
		SetGasPrice(gasPrice).
		SetGasLimit(gasLimit).
		SetAction(NewTransfer(amount, recipientAddr, payload))
	for _, opt := range options {
		opt(bd)
	}
	elp := bd.Build()
	selp, err := Sign(elp, senderPriKey)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to sign transfer %v", elp)
	}
	return selp, nil
}

// SignedNameCommit returns a signed name commitment
func SignedNameCommit(senderPriKey crypto.PrivateKey, nonce uint64, commitment hash.Hash256, amount *big.Int, gasLimit uint64, gasPrice *big.Int, options ...SignedActionOption) (*SealedEnvelope, error) {
	bd := &EnvelopeBuilder{}
	bd = bd.SetNonce(nonce).
		SetGasPrice(gasPrice).
		SetGasLimit(gasLimit).
		SetAction(NewNameCommit(commitment, amount))
	for _, opt := range options {
		opt(bd)
	}
	elp := bd.Build()
	selp, err := Sign(elp, senderPriKey)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to sign name commit %v", elp)
	}
	return selp, nil
}

// SignedNameReveal returns a signed name reveal
func SignedNameReveal(senderPriKey crypto.PrivateKey, nonce uint64, name string, secret hash.Hash256, amount *big.Int, gasLimit uint64, gasPrice *big.Int, options ...SignedActionOption) (*SealedEnvelope, error) {
	bd := &EnvelopeBuilder{}
	bd = bd.SetNonce(nonce).
		SetGasPrice(gasPrice).
		SetGasLimit(gasLimit).
		SetAction(NewNameReveal(name, secret, amount))
	for _, opt := range options {
		opt(bd)
	}
	elp := bd.Build()
	selp, err := Sign(elp, senderPriKey)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to sign name reveal %v", elp)
	}
	return selp, nil
}

// SignedNameWithdraw returns a signed name withdrawal
func SignedNameWithdraw(senderPriKey crypto.PrivateKey, nonce uint64, gasLimit uint64, gasPrice *big.Int, options ...SignedActionOption) (*SealedEnvelope, error) {
	bd := &EnvelopeBuilder{}
	bd = bd.SetNonce(nonce).
		SetGasPrice(gasPrice).
		SetGasLimit(gasLimit).
		SetAction(NewNameWithdraw())
	for _, opt := range options {
		opt(bd)
	}
	elp := bd.Build()
	selp, err := Sign(elp, senderPriKey)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to sign name withdraw %v", elp)
	}
	return selp, nil
}
