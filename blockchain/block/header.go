// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package block

import (
	"time"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/iotexproject/go-pkgs/crypto"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/namechain/namechain-core/pkg/log"
)

type (
	// Header defines the struct of block header
	Header struct {
		chainID       uint32
		height        uint64
		timestamp     time.Time
		prevBlockHash hash.Hash256
		txRoot        hash.Hash256
		receiptRoot   hash.Hash256
		blockSig      []byte
		pubkey        crypto.PublicKey
	}

	// headerCoreRLP is the signed portion of the header on the wire
	headerCoreRLP struct {
		ChainID       uint32
		Height        uint64
		Timestamp     uint64
		PrevBlockHash hash.Hash256
		TxRoot        hash.Hash256
		ReceiptRoot   hash.Hash256
		Pubkey        []byte
	}

	// headerRLP is the full header on the wire
	headerRLP struct {
		Core      []byte
		Signature []byte
	}
)

// ChainID returns the chain ID of this block
func (h *Header) ChainID() uint32 { return h.chainID }

// Height returns the height of this block
func (h *Header) Height() uint64 { return h.height }

// Timestamp returns the timestamp of this block
func (h *Header) Timestamp() time.Time { return h.timestamp }

// PrevHash returns the hash of the previous block
func (h *Header) PrevHash() hash.Hash256 { return h.prevBlockHash }

// TxRoot returns the digest of all actions in this block
func (h *Header) TxRoot() hash.Hash256 { return h.txRoot }

// ReceiptRoot returns the digest of all receipts in this block
func (h *Header) ReceiptRoot() hash.Hash256 { return h.receiptRoot }

// PublicKey returns the producer public key of this header
func (h *Header) PublicKey() crypto.PublicKey { return h.pubkey }

// Signature returns a copy of the producer signature
func (h *Header) Signature() []byte {
	sig := make([]byte, len(h.blockSig))
	copy(sig, h.blockSig)
	return sig
}

// ProducerAddress returns the address of the block producer
func (h *Header) ProducerAddress() string {
	addr := h.pubkey.Address()
	return addr.String()
}

// SerializeCore returns the byte stream of the signed portion of the header
func (h *Header) SerializeCore() ([]byte, error) {
	var pubkey []byte
	if h.pubkey != nil {
		pubkey = h.pubkey.Bytes()
	}
	return rlp.EncodeToBytes(&headerCoreRLP{
		ChainID:       h.chainID,
		Height:        h.height,
		Timestamp:     uint64(h.timestamp.Unix()),
		PrevBlockHash: h.prevBlockHash,
		TxRoot:        h.txRoot,
		ReceiptRoot:   h.receiptRoot,
		Pubkey:        pubkey,
	})
}

// Serialize returns the byte stream of the whole header
func (h *Header) Serialize() ([]byte, error) {
	core, err := h.SerializeCore()
	if err != nil {
		return nil, err
	}
	return rlp.EncodeToBytes(&headerRLP{
		Core:      core,
		Signature: h.blockSig,
	})
}

// Deserialize parses the byte stream into the header
func (h *Header) Deserialize(buf []byte) error {
	var raw headerRLP
	if err := rlp.DecodeBytes(buf, &raw); err != nil {
		return errors.Wrap(err, "failed to decode block header")
	}
	if err := h.loadCore(raw.Core); err != nil {
		return err
	}
	h.blockSig = raw.Signature
	return nil
}

func (h *Header) loadCore(buf []byte) error {
	var core headerCoreRLP
	if err := rlp.DecodeBytes(buf, &core); err != nil {
		return errors.Wrap(err, "failed to decode block header core")
	}
	h.chainID = core.ChainID
	h.height = core.Height
	h.timestamp = time.Unix(int64(core.Timestamp), 0)
	h.prevBlockHash = core.PrevBlockHash
	h.txRoot = core.TxRoot
	h.receiptRoot = core.ReceiptRoot
	h.pubkey = nil
	if len(core.Pubkey) > 0 {
		pubkey, err := crypto.BytesToPublicKey(core.Pubkey)
		if err != nil {
			return errors.Wrap(err, "failed to decode producer public key")
		}
		h.pubkey = pubkey
	}
	return nil
}

// HashHeaderCore returns the digest the producer signs
func (h *Header) HashHeaderCore() (hash.Hash256, error) {
	core, err := h.SerializeCore()
	if err != nil {
		return hash.ZeroHash256, err
	}
	return hash.BytesToHash256(ethcrypto.Keccak256(core)), nil
}

// HashHeader returns the hash of the whole header, signature included
func (h *Header) HashHeader() (hash.Hash256, error) {
	s, err := h.Serialize()
	if err != nil {
		return hash.ZeroHash256, err
	}
	return hash.BytesToHash256(ethcrypto.Keccak256(s)), nil
}

// HashBlock returns the hash of this block, which is the hash of its header
func (h *Header) HashBlock() (hash.Hash256, error) { return h.HashHeader() }

// VerifySignature verifies the producer signature saved in the header
func (h *Header) VerifySignature() bool {
	if h.pubkey == nil {
		return false
	}
	digest, err := h.HashHeaderCore()
	if err != nil {
		return false
	}
	return h.pubkey.Verify(digest[:], h.blockSig)
}

// HeaderLogger returns a new logger annotated with the header fields
func (h *Header) HeaderLogger(l *zap.Logger) *zap.Logger {
	return l.With(zap.Uint32("chainID", h.chainID),
		zap.Uint64("height", h.height),
		zap.String("timestamp", h.timestamp.String()),
		log.Hex("prevBlockHash", h.prevBlockHash[:]),
		log.Hex("txRoot", h.txRoot[:]),
		log.Hex("receiptRoot", h.receiptRoot[:]),
	)
}
