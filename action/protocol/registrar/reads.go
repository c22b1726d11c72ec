// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registrar

import (
	"math/big"

	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"

	"github.com/namechain/namechain-core/action/protocol"
)

// Price returns the registration price of a name, the name's length times the
// per-byte cost
func (p *Protocol) Price(name string) *big.Int {
	return big.NewInt(0).Mul(big.NewInt(int64(len(name))), p.cfg.NameCostAmount())
}

// IsDuplicate reports whether the name is already registered
func (p *Protocol) IsDuplicate(sr protocol.StateReader, name string) (bool, error) {
	_, dup, err := getNameIndex(sr, NameHash(name))
	return dup, err
}

// Request returns the caller's open registration request, or nil when the
// account has none
func (p *Protocol) Request(sr protocol.StateReader, addr address.Address) (*RegistrationRequest, error) {
	return getRequest(sr, addr)
}

// EntryCount returns the number of registered names
func (p *Protocol) EntryCount(sr protocol.StateReader) (uint64, error) {
	fund, err := getFund(sr)
	if err != nil {
		return 0, err
	}
	return fund.EntryCount, nil
}

// TotalFees returns the cumulative registration fees the registrar has retained
func (p *Protocol) TotalFees(sr protocol.StateReader) (*big.Int, error) {
	fund, err := getFund(sr)
	if err != nil {
		return nil, err
	}
	return fund.TotalFees, nil
}

// EntryByIndex returns the registry entry at the given registration index
func (p *Protocol) EntryByIndex(sr protocol.StateReader, index uint64) (*RegistryEntry, error) {
	entry, err := getEntry(sr, index)
	if err != nil {
		return nil, errors.Wrapf(err, "no registry entry at index %d", index)
	}
	return entry, nil
}

// Entries returns up to limit registry entries starting at offset, in
// registration order
func (p *Protocol) Entries(sr protocol.StateReader, offset, limit uint64) ([]*RegistryEntry, error) {
	fund, err := getFund(sr)
	if err != nil {
		return nil, err
	}
	if offset >= fund.EntryCount {
		return nil, nil
	}
	end := offset + limit
	if end > fund.EntryCount || end < offset {
		end = fund.EntryCount
	}
	entries := make([]*RegistryEntry, 0, end-offset)
	for i := offset; i < end; i++ {
		entry, err := getEntry(sr, i)
		if err != nil {
			return nil, errors.Wrapf(err, "no registry entry at index %d", i)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// OwnedIndices returns the registration indices of the names the account
// revealed successfully
func (p *Protocol) OwnedIndices(sr protocol.StateReader, addr address.Address) ([]uint64, error) {
	owned, err := getOwned(sr, addr)
	if err != nil {
		return nil, err
	}
	return owned.Indices, nil
}

// OwnedEntries returns the registry entries the account owns
func (p *Protocol) OwnedEntries(sr protocol.StateReader, addr address.Address) ([]*RegistryEntry, error) {
	owned, err := getOwned(sr, addr)
	if err != nil {
		return nil, err
	}
	entries := make([]*RegistryEntry, 0, len(owned.Indices))
	for _, idx := range owned.Indices {
		entry, err := getEntry(sr, idx)
		if err != nil {
			return nil, errors.Wrapf(err, "no registry entry at index %d", idx)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
