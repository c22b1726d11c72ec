// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registrar

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/pkg/errors"

	"github.com/namechain/namechain-core/state"
)

// RegistrationRequest is the one in-flight registration attempt of an account.
// A stored request means the account is awaiting reveal; an absent one means
// the account is idle. The request is created by a commitment and destroyed by
// the reveal or withdrawal that resolves it, never left dangling.
type RegistrationRequest struct {
	// Commitment is the blinded hash set at commit time, immutable until the slot clears
	Commitment hash.Hash256
	// RevealDeadline is the block height at which the reveal becomes legal
	RevealDeadline uint64
	// UnlockTime is the unix second at which a withdrawal becomes legal
	UnlockTime uint64
}

// Serialize serializes the registration request into bytes
func (r *RegistrationRequest) Serialize() ([]byte, error) {
	data, err := rlp.EncodeToBytes(r)
	if err != nil {
		return nil, errors.Wrap(state.ErrStateSerializationFailed, err.Error())
	}
	return data, nil
}

// Deserialize deserializes bytes into the registration request
func (r *RegistrationRequest) Deserialize(data []byte) error {
	if err := rlp.DecodeBytes(data, r); err != nil {
		return errors.Wrap(state.ErrStateDeserializationFailed, err.Error())
	}
	return nil
}
