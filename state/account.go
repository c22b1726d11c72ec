// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

var (
	// ErrNotEnoughBalance is the error that the balance is not enough
	ErrNotEnoughBalance = errors.New("not enough balance")

	// ErrInvalidAmount is the error that the amount is negative or nil
	ErrInvalidAmount = errors.New("invalid amount")
)

// Account is the canonical representation of an account
type Account struct {
	// Nonce is the largest nonce among executed actions of the account,
	// action nonces start from 1
	Nonce   uint64
	Balance *big.Int
}

// EmptyAccount returns an empty account
func EmptyAccount() Account {
	return Account{
		Balance: big.NewInt(0),
	}
}

// Serialize serializes account state into bytes
func (st *Account) Serialize() ([]byte, error) {
	data, err := rlp.EncodeToBytes(st)
	if err != nil {
		return nil, errors.Wrap(ErrStateSerializationFailed, err.Error())
	}
	return data, nil
}

// Deserialize deserializes bytes into account state
func (st *Account) Deserialize(data []byte) error {
	var acct Account
	if err := rlp.DecodeBytes(data, &acct); err != nil {
		return errors.Wrap(ErrStateDeserializationFailed, err.Error())
	}
	*st = acct
	return nil
}

// PendingNonce returns the nonce the next action of the account is expected to carry
func (st *Account) PendingNonce() uint64 {
	return st.Nonce + 1
}

// SetNonce bumps the account nonce, a nonce at or below the current one is a no-op
func (st *Account) SetNonce(nonce uint64) {
	if nonce > st.Nonce {
		st.Nonce = nonce
	}
}

// AddBalance adds balance to the account
func (st *Account) AddBalance(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return errors.Wrapf(ErrInvalidAmount, "amount %s shouldn't be negative", amount.String())
	}
	if st.Balance != nil {
		st.Balance = new(big.Int).Add(st.Balance, amount)
	} else {
		st.Balance = new(big.Int).Set(amount)
	}
	return nil
}

// SubBalance subtracts balance from the account
func (st *Account) SubBalance(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return errors.Wrapf(ErrInvalidAmount, "amount %s shouldn't be negative", amount.String())
	}
	if st.Balance == nil || amount.Cmp(st.Balance) == 1 {
		return ErrNotEnoughBalance
	}
	st.Balance = new(big.Int).Sub(st.Balance, amount)
	return nil
}

// HasSufficientBalance returns true if the balance covers the amount
func (st *Account) HasSufficientBalance(amount *big.Int) bool {
	if amount == nil {
		return true
	}
	return st.Balance != nil && amount.Cmp(st.Balance) <= 0
}

// Clone clones the account state
func (st *Account) Clone() *Account {
	s := *st
	s.Balance = new(big.Int)
	if st.Balance != nil {
		s.Balance.Set(st.Balance)
	}
	return &s
}
