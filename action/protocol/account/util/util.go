// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package accountutil

import (
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"

	"github.com/namechain/namechain-core/action/protocol"
	"github.com/namechain/namechain-core/state"
)

type noncer interface {
	Nonce() uint64
}

// SetNonce bumps the account nonce to the executed action's nonce
func SetNonce(i noncer, account *state.Account) {
	account.SetNonce(i.Nonce())
}

// LoadOrCreateAccount either loads an account state or creates one with zero balance
func LoadOrCreateAccount(sm protocol.StateManager, addr address.Address) (*state.Account, error) {
	account := state.EmptyAccount()
	addrHash := hash.BytesToHash160(addr.Bytes())
	_, err := sm.State(&account, protocol.LegacyKeyOption(addrHash))
	if err == nil {
		return &account, nil
	}
	if errors.Cause(err) == state.ErrStateNotExist {
		if _, err := sm.PutState(&account, protocol.LegacyKeyOption(addrHash)); err != nil {
			return nil, errors.Wrapf(err, "failed to put state for account %x", addrHash)
		}
		return &account, nil
	}
	return nil, err
}

// LoadAccount loads an account state by address, falling back to an empty
// account if none is recorded
func LoadAccount(sr protocol.StateReader, addr address.Address) (*state.Account, error) {
	account := state.EmptyAccount()
	addrHash := hash.BytesToHash160(addr.Bytes())
	if _, err := sr.State(&account, protocol.LegacyKeyOption(addrHash)); err != nil {
		if errors.Cause(err) == state.ErrStateNotExist {
			return &account, nil
		}
		return nil, err
	}
	return &account, nil
}

// StoreAccount puts an updated account state to the stateDB
func StoreAccount(sm protocol.StateManager, addr address.Address, account *state.Account) error {
	addrHash := hash.BytesToHash160(addr.Bytes())
	_, err := sm.PutState(account, protocol.LegacyKeyOption(addrHash))
	return err
}

// Recorded tests if an account has been actually stored
func Recorded(sr protocol.StateReader, addr address.Address) (bool, error) {
	account := state.EmptyAccount()
	_, err := sr.State(&account, protocol.LegacyKeyOption(hash.BytesToHash160(addr.Bytes())))
	if err == nil {
		return true, nil
	}
	if errors.Cause(err) == state.ErrStateNotExist {
		return false, nil
	}
	return false, err
}
