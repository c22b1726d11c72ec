// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registrar

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/namechain/namechain-core/pkg/util/byteutil"
	"github.com/namechain/namechain-core/state"
)

type (
	// RegistryEntry is one registered name. Entries are append only and keyed by
	// their registration index, which is the name's permanent identifier.
	RegistryEntry struct {
		// Name is the registered plaintext name
		Name string
		// Owner is the raw address bytes of the registering account
		Owner []byte
	}

	// IndexList is the set of registry indices owned by one account. It is an
	// informational ownership record, not an access control structure.
	IndexList struct {
		Indices []uint64
	}

	// Fund is the registrar's book of record: how many names have been
	// registered and the registration fees accumulated so far
	Fund struct {
		EntryCount uint64
		TotalFees  *big.Int
	}
)

// Serialize serializes the registry entry into bytes
func (e *RegistryEntry) Serialize() ([]byte, error) {
	data, err := rlp.EncodeToBytes(e)
	if err != nil {
		return nil, errors.Wrap(state.ErrStateSerializationFailed, err.Error())
	}
	return data, nil
}

// Deserialize deserializes bytes into the registry entry
func (e *RegistryEntry) Deserialize(data []byte) error {
	if err := rlp.DecodeBytes(data, e); err != nil {
		return errors.Wrap(state.ErrStateDeserializationFailed, err.Error())
	}
	return nil
}

// Serialize serializes the index list into bytes
func (l *IndexList) Serialize() ([]byte, error) {
	data, err := rlp.EncodeToBytes(l)
	if err != nil {
		return nil, errors.Wrap(state.ErrStateSerializationFailed, err.Error())
	}
	return data, nil
}

// Deserialize deserializes bytes into the index list
func (l *IndexList) Deserialize(data []byte) error {
	if err := rlp.DecodeBytes(data, l); err != nil {
		return errors.Wrap(state.ErrStateDeserializationFailed, err.Error())
	}
	return nil
}

// Serialize serializes the fund into bytes
func (f *Fund) Serialize() ([]byte, error) {
	data, err := rlp.EncodeToBytes(f)
	if err != nil {
		return nil, errors.Wrap(state.ErrStateSerializationFailed, err.Error())
	}
	return data, nil
}

// Deserialize deserializes bytes into the fund
func (f *Fund) Deserialize(data []byte) error {
	if err := rlp.DecodeBytes(data, f); err != nil {
		return errors.Wrap(state.ErrStateDeserializationFailed, err.Error())
	}
	return nil
}

// entryKey is the storage key of the registry entry at the given index
func entryKey(index uint64) []byte {
	return byteutil.Uint64ToBytes(index)
}
