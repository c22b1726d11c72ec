// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package block

import (
	"bytes"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/pkg/errors"

	"github.com/namechain/namechain-core/action"
)

type (
	// Body defines the struct of block body
	Body struct {
		Actions []*action.SealedEnvelope
	}

	// Block defines the struct of block
	Block struct {
		Header
		Body

		Receipts []*action.Receipt
	}

	// blockRLP is the block on the wire
	blockRLP struct {
		Header   []byte
		Actions  [][]byte
		Receipts [][]byte
	}
)

// CalculateTxRoot returns the digest of all actions, keccak over the
// concatenated action hashes
func CalculateTxRoot(acts []*action.SealedEnvelope) (hash.Hash256, error) {
	if len(acts) == 0 {
		return hash.ZeroHash256, nil
	}
	leaves := make([]byte, 0, len(acts)*len(hash.ZeroHash256))
	for _, act := range acts {
		h, err := act.Hash()
		if err != nil {
			return hash.ZeroHash256, err
		}
		leaves = append(leaves, h[:]...)
	}
	return hash.BytesToHash256(ethcrypto.Keccak256(leaves)), nil
}

// CalculateReceiptRoot returns the digest of all receipts, keccak over the
// concatenated receipt hashes
func CalculateReceiptRoot(receipts []*action.Receipt) hash.Hash256 {
	if len(receipts) == 0 {
		return hash.ZeroHash256
	}
	leaves := make([]byte, 0, len(receipts)*len(hash.ZeroHash256))
	for _, receipt := range receipts {
		h := receipt.Hash()
		leaves = append(leaves, h[:]...)
	}
	return hash.BytesToHash256(ethcrypto.Keccak256(leaves))
}

// CalculateTxRoot returns the digest of the body's actions
func (b *Body) CalculateTxRoot() (hash.Hash256, error) {
	return CalculateTxRoot(b.Actions)
}

// Serialize returns the serialized byte stream of the block
func (b *Block) Serialize() ([]byte, error) {
	header, err := b.Header.Serialize()
	if err != nil {
		return nil, err
	}
	acts := make([][]byte, 0, len(b.Actions))
	for _, act := range b.Actions {
		s, err := act.Serialize()
		if err != nil {
			return nil, err
		}
		acts = append(acts, s)
	}
	receipts := make([][]byte, 0, len(b.Receipts))
	for _, receipt := range b.Receipts {
		s, err := receipt.Serialize()
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, s)
	}
	return rlp.EncodeToBytes(&blockRLP{
		Header:   header,
		Actions:  acts,
		Receipts: receipts,
	})
}

// Deserialize parses the byte stream into a Block and checks the action
// digest against the header
func (b *Block) Deserialize(buf []byte) error {
	var raw blockRLP
	if err := rlp.DecodeBytes(buf, &raw); err != nil {
		return errors.Wrap(err, "failed to decode block")
	}
	b.Header = Header{}
	if err := b.Header.Deserialize(raw.Header); err != nil {
		return err
	}
	ad := &action.Deserializer{}
	b.Actions = make([]*action.SealedEnvelope, 0, len(raw.Actions))
	for _, s := range raw.Actions {
		act, err := ad.SealedEnvelopeFromBytes(s)
		if err != nil {
			return err
		}
		b.Actions = append(b.Actions, act)
	}
	b.Receipts = make([]*action.Receipt, 0, len(raw.Receipts))
	for _, s := range raw.Receipts {
		receipt := &action.Receipt{}
		if err := receipt.Deserialize(s); err != nil {
			return err
		}
		b.Receipts = append(b.Receipts, receipt)
	}

	txRoot, err := b.CalculateTxRoot()
	if err != nil {
		return err
	}
	if !bytes.Equal(b.Header.txRoot[:], txRoot[:]) {
		return errors.New("action digest doesn't match the block header")
	}
	return nil
}

// VerifyReceiptRoot checks the receipt digest against the header
func (b *Block) VerifyReceiptRoot() error {
	root := CalculateReceiptRoot(b.Receipts)
	if !bytes.Equal(b.Header.receiptRoot[:], root[:]) {
		return errors.New("receipt digest doesn't match the block header")
	}
	return nil
}
