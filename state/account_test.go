// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package state

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	require := require.New(t)

	s1 := Account{
		Nonce:   0x10,
		Balance: big.NewInt(20000000),
	}
	ss, err := s1.Serialize()
	require.NoError(err)
	require.NotEmpty(ss)

	s2 := Account{}
	require.NoError(s2.Deserialize(ss))
	require.Equal(uint64(0x10), s2.Nonce)
	require.Equal(big.NewInt(20000000), s2.Balance)

	require.Error(s2.Deserialize([]byte("not RLP")))

	// zero-value account survives a round trip
	s3 := EmptyAccount()
	ss, err = s3.Serialize()
	require.NoError(err)
	s4 := Account{}
	require.NoError(s4.Deserialize(ss))
	require.Equal(uint64(0), s4.Nonce)
	require.Equal(0, s4.Balance.Sign())
}

func TestBalance(t *testing.T) {
	require := require.New(t)

	state := &Account{Balance: big.NewInt(20)}
	require.NoError(state.AddBalance(big.NewInt(10)))
	require.Equal(0, state.Balance.Cmp(big.NewInt(30)))

	require.NoError(state.SubBalance(big.NewInt(25)))
	require.Equal(0, state.Balance.Cmp(big.NewInt(5)))

	err := state.SubBalance(big.NewInt(6))
	require.Equal(ErrNotEnoughBalance, err)
	require.Equal(0, state.Balance.Cmp(big.NewInt(5)))

	err = state.AddBalance(big.NewInt(-1))
	require.Equal(ErrInvalidAmount, errors.Cause(err))
	err = state.AddBalance(nil)
	require.Equal(ErrInvalidAmount, errors.Cause(err))
	err = state.SubBalance(big.NewInt(-1))
	require.Equal(ErrInvalidAmount, errors.Cause(err))

	require.True(state.HasSufficientBalance(big.NewInt(5)))
	require.False(state.HasSufficientBalance(big.NewInt(6)))
	require.True(state.HasSufficientBalance(nil))
}

func TestNonce(t *testing.T) {
	require := require.New(t)

	state := EmptyAccount()
	require.Equal(uint64(1), state.PendingNonce())
	state.SetNonce(1)
	require.Equal(uint64(1), state.Nonce)
	require.Equal(uint64(2), state.PendingNonce())
	// stale nonce is a no-op
	state.SetNonce(1)
	require.Equal(uint64(1), state.Nonce)
	state.SetNonce(5)
	require.Equal(uint64(6), state.PendingNonce())
}

func TestClone(t *testing.T) {
	require := require.New(t)

	ss := &Account{
		Nonce:   0x10,
		Balance: big.NewInt(200),
	}
	account := ss.Clone()
	require.Equal(big.NewInt(200), account.Balance)

	require.NoError(account.AddBalance(big.NewInt(100)))
	require.Equal(big.NewInt(200), ss.Balance)
	require.Equal(big.NewInt(200+100), account.Balance)
}
