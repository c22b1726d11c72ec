// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package account

import (
	"context"
	"math/big"
	"testing"

	"github.com/iotexproject/go-pkgs/hash"
	"github.com/iotexproject/iotex-address/address"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/action/protocol"
	accountutil "github.com/namechain/namechain-core/action/protocol/account/util"
	"github.com/namechain/namechain-core/test/identityset"
	"github.com/namechain/namechain-core/test/mock/mock_chainmanager"
	"github.com/namechain/namechain-core/testutil"
)

func runTransfer(t *testing.T, p *Protocol, sm *mock_chainmanager.MockStateManager, caller address.Address, nonce uint64, amount *big.Int, recipient string, gasPrice *big.Int) *action.Receipt {
	elp := (&action.EnvelopeBuilder{}).SetNonce(nonce).SetGasLimit(100000).SetGasPrice(gasPrice).
		SetAction(action.NewTransfer(amount, recipient, nil)).Build()
	gas, err := elp.IntrinsicGas()
	require.NoError(t, err)
	ctx := protocol.WithBlockCtx(context.Background(), protocol.BlockCtx{
		BlockHeight: 1,
		Producer:    identityset.Address(27),
		GasLimit:    1000000,
	})
	ctx = protocol.WithActionCtx(ctx, protocol.ActionCtx{
		Caller:       caller,
		ActionHash:   hash.Hash256b([]byte(recipient)),
		GasPrice:     gasPrice,
		IntrinsicGas: gas,
		Nonce:        nonce,
	})
	receipt, err := p.Handle(ctx, elp, sm)
	require.NoError(t, err)
	require.NotNil(t, receipt)
	return receipt
}

func TestHandleTransfer(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	sm := testutil.NewMockStateManager(ctrl)
	p := NewProtocol()

	var (
		alice = identityset.Address(28)
		bob   = identityset.Address(29)
	)
	acct, err := accountutil.LoadOrCreateAccount(sm, alice)
	require.NoError(err)
	require.NoError(acct.AddBalance(big.NewInt(200000)))
	require.NoError(accountutil.StoreAccount(sm, alice, acct))

	// bob's account springs into existence on first receipt
	recorded, err := accountutil.Recorded(sm, bob)
	require.NoError(err)
	require.False(recorded)
	r := runTransfer(t, p, sm, alice, 1, big.NewInt(200), bob.String(), big.NewInt(1))
	require.Equal(action.StatusSuccess, r.Status)
	require.Equal(uint64(10000), r.GasConsumed)
	aliceAcct, err := accountutil.LoadAccount(sm, alice)
	require.NoError(err)
	require.Equal("199800", aliceAcct.Balance.String())
	require.Equal(uint64(1), aliceAcct.Nonce)
	bobAcct, err := accountutil.LoadAccount(sm, bob)
	require.NoError(err)
	require.Equal("200", bobAcct.Balance.String())
	tLogs := r.TransactionLogs()
	require.Len(tLogs, 1)
	require.Equal(action.NativeTransferLog, tLogs[0].Type)
	require.Equal("200", tLogs[0].Amount.String())
	require.Equal(alice.String(), tLogs[0].Sender)
	require.Equal(bob.String(), tLogs[0].Recipient)

	// amount plus gas beyond the balance
	r = runTransfer(t, p, sm, alice, 2, big.NewInt(500000), bob.String(), big.NewInt(1))
	require.Equal(action.StatusErrInsufficientFunds, r.Status)
	require.Empty(r.TransactionLogs())
	aliceAcct, err = accountutil.LoadAccount(sm, alice)
	require.NoError(err)
	require.Equal("199800", aliceAcct.Balance.String())
	// the nonce still advances
	require.Equal(uint64(2), aliceAcct.Nonce)

	// an unparseable recipient
	r = runTransfer(t, p, sm, alice, 3, big.NewInt(200), "not an address", big.NewInt(1))
	require.Equal(action.StatusErrTransferFailure, r.Status)
	aliceAcct, err = accountutil.LoadAccount(sm, alice)
	require.NoError(err)
	require.Equal("199800", aliceAcct.Balance.String())
	require.Equal(uint64(3), aliceAcct.Nonce)

	// a transfer to oneself moves nothing
	r = runTransfer(t, p, sm, alice, 4, big.NewInt(300), alice.String(), big.NewInt(0))
	require.Equal(action.StatusSuccess, r.Status)
	aliceAcct, err = accountutil.LoadAccount(sm, alice)
	require.NoError(err)
	require.Equal("199800", aliceAcct.Balance.String())
	require.Equal(uint64(4), aliceAcct.Nonce)
}
