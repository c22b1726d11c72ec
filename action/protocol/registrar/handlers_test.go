// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registrar

import (
	"context"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/iotexproject/go-pkgs/hash"
	"github.com/iotexproject/iotex-address/address"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/action/protocol"
	accountutil "github.com/namechain/namechain-core/action/protocol/account/util"
	"github.com/namechain/namechain-core/blockchain/genesis"
	"github.com/namechain/namechain-core/state"
	"github.com/namechain/namechain-core/test/identityset"
	"github.com/namechain/namechain-core/test/mock/mock_chainmanager"
	"github.com/namechain/namechain-core/testutil"
)

var (
	_testGasLimit = uint64(1000000)
	_testBaseTime = time.Unix(1767225600, 0)
)

type testEnv struct {
	p  *Protocol
	sm *mock_chainmanager.MockStateManager
}

// newTestEnv spins up the registrar over an in-memory state, with accounts
// 28, 29 and 30 funded with 1000 each. A zero gas price keeps the escrow
// arithmetic exact.
func newTestEnv(t *testing.T, ctrl *gomock.Controller, cfg genesis.Registrar) *testEnv {
	env := &testEnv{
		p:  NewProtocol(cfg),
		sm: testutil.NewMockStateManager(ctrl),
	}
	require.NoError(t, env.p.CreateGenesisStates(context.Background(), env.sm))
	for i := 28; i <= 30; i++ {
		acct, err := accountutil.LoadOrCreateAccount(env.sm, identityset.Address(i))
		require.NoError(t, err)
		require.NoError(t, acct.AddBalance(big.NewInt(1000)))
		require.NoError(t, accountutil.StoreAccount(env.sm, identityset.Address(i), acct))
	}
	return env
}

func (env *testEnv) run(t *testing.T, height uint64, ts time.Time, caller address.Address, nonce uint64, elp action.Envelope) *action.Receipt {
	gas, err := elp.IntrinsicGas()
	require.NoError(t, err)
	ctx := protocol.WithBlockCtx(context.Background(), protocol.BlockCtx{
		BlockHeight:    height,
		BlockTimeStamp: ts,
		GasLimit:       _testGasLimit,
		Producer:       identityset.Address(27),
	})
	ctx = protocol.WithActionCtx(ctx, protocol.ActionCtx{
		Caller:       caller,
		ActionHash:   testActionHash(caller, nonce),
		GasPrice:     big.NewInt(0),
		IntrinsicGas: gas,
		Nonce:        nonce,
	})
	receipt, err := env.p.Handle(ctx, elp, env.sm)
	require.NoError(t, err)
	require.NotNil(t, receipt)
	require.Equal(t, gas, receipt.GasConsumed)
	return receipt
}

func (env *testEnv) commit(t *testing.T, height uint64, ts time.Time, caller address.Address, nonce uint64, commitment hash.Hash256, amount *big.Int) *action.Receipt {
	elp := (&action.EnvelopeBuilder{}).SetNonce(nonce).SetGasLimit(_testGasLimit).
		SetAction(action.NewNameCommit(commitment, amount)).Build()
	return env.run(t, height, ts, caller, nonce, elp)
}

func (env *testEnv) reveal(t *testing.T, height uint64, ts time.Time, caller address.Address, nonce uint64, name string, secret hash.Hash256, amount *big.Int) *action.Receipt {
	elp := (&action.EnvelopeBuilder{}).SetNonce(nonce).SetGasLimit(_testGasLimit).
		SetAction(action.NewNameReveal(name, secret, amount)).Build()
	return env.run(t, height, ts, caller, nonce, elp)
}

func (env *testEnv) withdraw(t *testing.T, height uint64, ts time.Time, caller address.Address, nonce uint64) *action.Receipt {
	elp := (&action.EnvelopeBuilder{}).SetNonce(nonce).SetGasLimit(_testGasLimit).
		SetAction(action.NewNameWithdraw()).Build()
	return env.run(t, height, ts, caller, nonce, elp)
}

func (env *testEnv) balance(t *testing.T, addr address.Address) *big.Int {
	acct, err := accountutil.LoadAccount(env.sm, addr)
	require.NoError(t, err)
	return acct.Balance
}

func (env *testEnv) account(t *testing.T, addr address.Address) *state.Account {
	acct, err := accountutil.LoadAccount(env.sm, addr)
	require.NoError(t, err)
	return acct
}

func testActionHash(caller address.Address, nonce uint64) hash.Hash256 {
	return hash.Hash256b(append(caller.Bytes(), byte(nonce), byte(nonce>>8)))
}

func TestHandleCommit(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	env := newTestEnv(t, ctrl, genesis.Default.Registrar)

	var (
		alice  = identityset.Address(28)
		secret = hash.Hash256b([]byte("alice secret"))
		comm   = Commitment(alice, "ann", secret)
	)

	// the escrow must be the exact deposit
	r := env.commit(t, 1, _testBaseTime, alice, 1, comm, big.NewInt(50))
	require.Equal(action.StatusErrInvalidDeposit, r.Status)
	req, err := env.p.Request(env.sm, alice)
	require.NoError(err)
	require.Nil(req)
	require.Equal("1000", env.balance(t, alice).String())
	// a rejected action still advances the nonce
	require.Equal(uint64(1), env.account(t, alice).Nonce)

	r = env.commit(t, 1, _testBaseTime, alice, 2, comm, big.NewInt(100))
	require.Equal(action.StatusSuccess, r.Status)
	require.Equal(env.p.Addr().String(), r.ContractAddress)
	req, err = env.p.Request(env.sm, alice)
	require.NoError(err)
	require.NotNil(req)
	require.Equal(comm, req.Commitment)
	require.Equal(uint64(33), req.RevealDeadline)
	require.Equal(uint64(_testBaseTime.Add(10*time.Second).Unix()), req.UnlockTime)
	require.Equal("900", env.balance(t, alice).String())
	require.Equal("100", env.balance(t, env.p.Addr()).String())
	tLogs := r.TransactionLogs()
	require.Len(tLogs, 1)
	require.Equal(action.DepositLog, tLogs[0].Type)
	require.Equal("100", tLogs[0].Amount.String())
	require.Equal(alice.String(), tLogs[0].Sender)
	require.Equal(env.p.Addr().String(), tLogs[0].Recipient)

	// only one request may be open at a time
	r = env.commit(t, 2, _testBaseTime, alice, 3, comm, big.NewInt(100))
	require.Equal(action.StatusErrInvalidStage, r.Status)
	require.Equal("900", env.balance(t, alice).String())
	require.Equal(uint64(3), env.account(t, alice).Nonce)

	// an unfunded account cannot escrow the deposit
	pauper := identityset.Address(31)
	r = env.commit(t, 2, _testBaseTime, pauper, 1, Commitment(pauper, "bob", secret), big.NewInt(100))
	require.Equal(action.StatusErrInsufficientFunds, r.Status)
	req, err = env.p.Request(env.sm, pauper)
	require.NoError(err)
	require.Nil(req)
}

func TestHandleCommitGasCharge(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	env := newTestEnv(t, ctrl, genesis.Default.Registrar)

	alice := identityset.Address(28)
	elp := (&action.EnvelopeBuilder{}).SetNonce(1).SetGasLimit(_testGasLimit).SetGasPrice(big.NewInt(1)).
		SetAction(action.NewNameCommit(Commitment(alice, "ann", hash.ZeroHash256), big.NewInt(100))).Build()
	gas, err := elp.IntrinsicGas()
	require.NoError(err)
	ctx := protocol.WithBlockCtx(context.Background(), protocol.BlockCtx{
		BlockHeight:    1,
		BlockTimeStamp: _testBaseTime,
		GasLimit:       _testGasLimit,
		Producer:       identityset.Address(27),
	})
	ctx = protocol.WithActionCtx(ctx, protocol.ActionCtx{
		Caller:       alice,
		ActionHash:   hash.Hash256b([]byte("gas charge")),
		GasPrice:     big.NewInt(1),
		IntrinsicGas: gas,
		Nonce:        1,
	})

	// deposit plus gas exceeds the balance of 1000
	receipt, err := env.p.Handle(ctx, elp, env.sm)
	require.NoError(err)
	require.Equal(action.StatusErrInsufficientFunds, receipt.Status)
	require.Equal("1000", env.balance(t, alice).String())
}

func TestHandleReveal(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	env := newTestEnv(t, ctrl, genesis.Default.Registrar)

	var (
		alice  = identityset.Address(28)
		secret = hash.Hash256b([]byte("alice secret"))
		comm   = Commitment(alice, "ann", secret)
	)

	// reveal with no open request
	r := env.reveal(t, 1, _testBaseTime, alice, 1, "ann", secret, big.NewInt(0))
	require.Equal(action.StatusErrInvalidStage, r.Status)

	r = env.commit(t, 0, _testBaseTime, alice, 2, comm, big.NewInt(100))
	require.Equal(action.StatusSuccess, r.Status)

	// the reveal window opens at the deadline, not before
	r = env.reveal(t, 31, _testBaseTime, alice, 3, "ann", secret, big.NewInt(0))
	require.Equal(action.StatusErrNotYetRevealable, r.Status)
	req, err := env.p.Request(env.sm, alice)
	require.NoError(err)
	require.NotNil(req)

	// a wrong secret cannot open the commitment
	r = env.reveal(t, 32, _testBaseTime, alice, 4, "ann", hash.Hash256b([]byte("wrong")), big.NewInt(0))
	require.Equal(action.StatusErrCommitmentMismatch, r.Status)

	// a wrong name cannot either
	r = env.reveal(t, 32, _testBaseTime, alice, 5, "bob", secret, big.NewInt(0))
	require.Equal(action.StatusErrCommitmentMismatch, r.Status)

	r = env.reveal(t, 32, _testBaseTime, alice, 6, "ann", secret, big.NewInt(0))
	require.Equal(action.StatusSuccess, r.Status)
	// price 15 for a 3-byte name, 85 of the deposit refunded
	require.Equal("985", env.balance(t, alice).String())
	require.Equal("15", env.balance(t, env.p.Addr()).String())
	count, err := env.p.EntryCount(env.sm)
	require.NoError(err)
	require.Equal(uint64(1), count)
	fees, err := env.p.TotalFees(env.sm)
	require.NoError(err)
	require.Equal("15", fees.String())
	entry, err := env.p.EntryByIndex(env.sm, 0)
	require.NoError(err)
	require.Equal("ann", entry.Name)
	require.Equal(alice.Bytes(), entry.Owner)
	dup, err := env.p.IsDuplicate(env.sm, "ann")
	require.NoError(err)
	require.True(dup)
	owned, err := env.p.OwnedIndices(env.sm, alice)
	require.NoError(err)
	require.Equal([]uint64{0}, owned)
	req, err = env.p.Request(env.sm, alice)
	require.NoError(err)
	require.Nil(req)

	logs := r.Logs()
	require.Len(logs, 1)
	require.Equal(env.p.Addr().String(), logs[0].Address)
	require.Equal([]hash.Hash256{NameRegisteredTopic, hash.BytesToHash256(alice.Bytes())}, logs[0].Topics)
	require.Equal([]byte("ann"), logs[0].Data)
	tLogs := r.TransactionLogs()
	require.Len(tLogs, 2)
	require.Equal(action.RefundLog, tLogs[0].Type)
	require.Equal("85", tLogs[0].Amount.String())
	require.Equal(action.RegistrationFeeLog, tLogs[1].Type)
	require.Equal("15", tLogs[1].Amount.String())

	// the slot is idle again
	r = env.reveal(t, 33, _testBaseTime, alice, 7, "ann", secret, big.NewInt(0))
	require.Equal(action.StatusErrInvalidStage, r.Status)
}

func TestHandleRevealDuplicate(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	env := newTestEnv(t, ctrl, genesis.Default.Registrar)

	var (
		alice       = identityset.Address(28)
		bob         = identityset.Address(29)
		aliceSecret = hash.Hash256b([]byte("alice secret"))
		bobSecret   = hash.Hash256b([]byte("bob secret"))
	)
	r := env.commit(t, 0, _testBaseTime, alice, 1, Commitment(alice, "ann", aliceSecret), big.NewInt(100))
	require.Equal(action.StatusSuccess, r.Status)
	r = env.reveal(t, 32, _testBaseTime, alice, 2, "ann", aliceSecret, big.NewInt(0))
	require.Equal(action.StatusSuccess, r.Status)

	r = env.commit(t, 40, _testBaseTime, bob, 1, Commitment(bob, "ann", bobSecret), big.NewInt(100))
	require.Equal(action.StatusSuccess, r.Status)
	require.Equal("900", env.balance(t, bob).String())
	require.Equal("115", env.balance(t, env.p.Addr()).String())

	// the name is taken, so the attached value and the deposit come back in full
	r = env.reveal(t, 72, _testBaseTime, bob, 2, "ann", bobSecret, big.NewInt(50))
	require.Equal(action.StatusSuccess, r.Status)
	require.Equal("1000", env.balance(t, bob).String())
	require.Equal("15", env.balance(t, env.p.Addr()).String())

	// no registry mutation of any kind
	count, err := env.p.EntryCount(env.sm)
	require.NoError(err)
	require.Equal(uint64(1), count)
	fees, err := env.p.TotalFees(env.sm)
	require.NoError(err)
	require.Equal("15", fees.String())
	entry, err := env.p.EntryByIndex(env.sm, 0)
	require.NoError(err)
	require.Equal(alice.Bytes(), entry.Owner)
	owned, err := env.p.OwnedIndices(env.sm, bob)
	require.NoError(err)
	require.Empty(owned)
	req, err := env.p.Request(env.sm, bob)
	require.NoError(err)
	require.Nil(req)

	logs := r.Logs()
	require.Len(logs, 1)
	require.Equal([]hash.Hash256{NameAlreadyRegisteredTopic, hash.BytesToHash256(bob.Bytes())}, logs[0].Topics)
	require.Equal([]byte("ann"), logs[0].Data)
	tLogs := r.TransactionLogs()
	require.Len(tLogs, 2)
	require.Equal(action.DepositLog, tLogs[0].Type)
	require.Equal("50", tLogs[0].Amount.String())
	require.Equal(action.RefundLog, tLogs[1].Type)
	require.Equal("150", tLogs[1].Amount.String())
}

func TestHandleRevealInsufficientFunds(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	env := newTestEnv(t, ctrl, genesis.Default.Registrar)

	var (
		alice  = identityset.Address(28)
		bob    = identityset.Address(29)
		secret = hash.Hash256b([]byte("secret"))
		// 30 bytes, priced at 150 against a deposit of 100
		long = strings.Repeat("ab", 15)
	)
	r := env.commit(t, 0, _testBaseTime, alice, 1, Commitment(alice, long, secret), big.NewInt(100))
	require.Equal(action.StatusSuccess, r.Status)

	// deposit alone cannot cover the price, and the request survives the failure
	r = env.reveal(t, 32, _testBaseTime, alice, 2, long, secret, big.NewInt(0))
	require.Equal(action.StatusErrInsufficientFunds, r.Status)
	req, err := env.p.Request(env.sm, alice)
	require.NoError(err)
	require.NotNil(req)
	require.Equal("900", env.balance(t, alice).String())
	require.Equal("100", env.balance(t, env.p.Addr()).String())
	count, err := env.p.EntryCount(env.sm)
	require.NoError(err)
	require.Zero(count)

	// topped up with enough value, the same reveal goes through
	r = env.reveal(t, 33, _testBaseTime, alice, 3, long, secret, big.NewInt(50))
	require.Equal(action.StatusSuccess, r.Status)
	require.Equal("850", env.balance(t, alice).String())
	require.Equal("150", env.balance(t, env.p.Addr()).String())
	tLogs := r.TransactionLogs()
	require.Len(tLogs, 2)
	require.Equal(action.DepositLog, tLogs[0].Type)
	require.Equal("50", tLogs[0].Amount.String())
	require.Equal(action.RegistrationFeeLog, tLogs[1].Type)
	require.Equal("150", tLogs[1].Amount.String())

	// a value the sender cannot pay fails before the duplicate lookup
	r = env.commit(t, 40, _testBaseTime, bob, 1, Commitment(bob, "ann", secret), big.NewInt(100))
	require.Equal(action.StatusSuccess, r.Status)
	r = env.reveal(t, 72, _testBaseTime, bob, 2, "ann", secret, big.NewInt(950))
	require.Equal(action.StatusErrInsufficientFunds, r.Status)
	require.Equal("900", env.balance(t, bob).String())
	req, err = env.p.Request(env.sm, bob)
	require.NoError(err)
	require.NotNil(req)
}

func TestHandleRevealInvalidName(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	t.Run("emptyName", func(t *testing.T) {
		env := newTestEnv(t, ctrl, genesis.Default.Registrar)
		var (
			alice  = identityset.Address(28)
			secret = hash.Hash256b([]byte("secret"))
		)
		r := env.commit(t, 0, _testBaseTime, alice, 1, Commitment(alice, "", secret), big.NewInt(100))
		require.Equal(action.StatusSuccess, r.Status)

		r = env.reveal(t, 32, _testBaseTime, alice, 2, "", secret, big.NewInt(0))
		require.Equal(action.StatusErrInvalidName, r.Status)
		req, err := env.p.Request(env.sm, alice)
		require.NoError(err)
		require.NotNil(req)

		// the deposit is still recoverable through a withdrawal
		r = env.withdraw(t, 33, _testBaseTime.Add(10*time.Second), alice, 3)
		require.Equal(action.StatusSuccess, r.Status)
		require.Equal("1000", env.balance(t, alice).String())
	})

	t.Run("freeName", func(t *testing.T) {
		cfg := genesis.Default.Registrar
		cfg.NameCost = "0"
		env := newTestEnv(t, ctrl, cfg)
		var (
			alice  = identityset.Address(28)
			secret = hash.Hash256b([]byte("secret"))
		)
		r := env.commit(t, 0, _testBaseTime, alice, 1, Commitment(alice, "ann", secret), big.NewInt(100))
		require.Equal(action.StatusSuccess, r.Status)

		// a zero-priced name is rejected even though the hash matches
		r = env.reveal(t, 32, _testBaseTime, alice, 2, "ann", secret, big.NewInt(0))
		require.Equal(action.StatusErrInvalidName, r.Status)
		count, err := env.p.EntryCount(env.sm)
		require.NoError(err)
		require.Zero(count)
	})
}

func TestHandleRevealFrontRunning(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	env := newTestEnv(t, ctrl, genesis.Default.Registrar)

	var (
		alice  = identityset.Address(28)
		eve    = identityset.Address(29)
		secret = hash.Hash256b([]byte("alice secret"))
		comm   = Commitment(alice, "ann", secret)
	)
	// eve copies alice's pending commitment verbatim
	r := env.commit(t, 0, _testBaseTime, eve, 1, comm, big.NewInt(100))
	require.Equal(action.StatusSuccess, r.Status)

	// the stolen commitment does not open from eve's account, even with the
	// leaked name and secret
	r = env.reveal(t, 32, _testBaseTime, eve, 2, "ann", secret, big.NewInt(0))
	require.Equal(action.StatusErrCommitmentMismatch, r.Status)
	dup, err := env.p.IsDuplicate(env.sm, "ann")
	require.NoError(err)
	require.False(dup)
}

func TestHandleWithdraw(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	env := newTestEnv(t, ctrl, genesis.Default.Registrar)

	carol := identityset.Address(30)

	// withdraw with no open request
	r := env.withdraw(t, 1, _testBaseTime, carol, 1)
	require.Equal(action.StatusErrInvalidStage, r.Status)

	r = env.commit(t, 5, _testBaseTime, carol, 2, Commitment(carol, "carol", hash.ZeroHash256), big.NewInt(100))
	require.Equal(action.StatusSuccess, r.Status)

	// one second short of the unlock time
	r = env.withdraw(t, 6, _testBaseTime.Add(9*time.Second), carol, 3)
	require.Equal(action.StatusErrFundsLocked, r.Status)
	req, err := env.p.Request(env.sm, carol)
	require.NoError(err)
	require.NotNil(req)
	require.Equal("900", env.balance(t, carol).String())

	// at the unlock time the deposit comes back, well before the reveal
	// deadline of height 37
	r = env.withdraw(t, 6, _testBaseTime.Add(10*time.Second), carol, 4)
	require.Equal(action.StatusSuccess, r.Status)
	require.Equal("1000", env.balance(t, carol).String())
	require.Equal("0", env.balance(t, env.p.Addr()).String())
	req, err = env.p.Request(env.sm, carol)
	require.NoError(err)
	require.Nil(req)
	tLogs := r.TransactionLogs()
	require.Len(tLogs, 1)
	require.Equal(action.RefundLog, tLogs[0].Type)
	require.Equal("100", tLogs[0].Amount.String())
	require.Equal(env.p.Addr().String(), tLogs[0].Sender)
	require.Equal(carol.String(), tLogs[0].Recipient)

	// the slot is idle again
	r = env.withdraw(t, 7, _testBaseTime.Add(11*time.Second), carol, 5)
	require.Equal(action.StatusErrInvalidStage, r.Status)
}

func TestSlotCycle(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	env := newTestEnv(t, ctrl, genesis.Default.Registrar)

	var (
		alice  = identityset.Address(28)
		secret = hash.Hash256b([]byte("secret"))
	)
	r := env.commit(t, 0, _testBaseTime, alice, 1, Commitment(alice, "ann", secret), big.NewInt(100))
	require.Equal(action.StatusSuccess, r.Status)
	r = env.withdraw(t, 2, _testBaseTime.Add(10*time.Second), alice, 2)
	require.Equal(action.StatusSuccess, r.Status)
	require.Equal("1000", env.balance(t, alice).String())

	// a withdrawn slot accepts a fresh commitment
	ts := _testBaseTime.Add(30 * time.Second)
	r = env.commit(t, 3, ts, alice, 3, Commitment(alice, "bo", secret), big.NewInt(100))
	require.Equal(action.StatusSuccess, r.Status)
	req, err := env.p.Request(env.sm, alice)
	require.NoError(err)
	require.Equal(uint64(35), req.RevealDeadline)
	require.Equal(uint64(ts.Add(10*time.Second).Unix()), req.UnlockTime)

	r = env.reveal(t, 35, ts, alice, 4, "bo", secret, big.NewInt(0))
	require.Equal(action.StatusSuccess, r.Status)
	require.Equal("990", env.balance(t, alice).String())
	entry, err := env.p.EntryByIndex(env.sm, 0)
	require.NoError(err)
	require.Equal("bo", entry.Name)
}

func TestHandleTransferFailure(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	env := newTestEnv(t, ctrl, genesis.Default.Registrar)

	var (
		alice       = identityset.Address(28)
		bob         = identityset.Address(29)
		aliceSecret = hash.Hash256b([]byte("alice secret"))
		bobSecret   = hash.Hash256b([]byte("bob secret"))
	)
	r := env.commit(t, 0, _testBaseTime, alice, 1, Commitment(alice, "ann", aliceSecret), big.NewInt(100))
	require.Equal(action.StatusSuccess, r.Status)
	r = env.reveal(t, 32, _testBaseTime, alice, 2, "ann", aliceSecret, big.NewInt(0))
	require.Equal(action.StatusSuccess, r.Status)
	r = env.commit(t, 40, _testBaseTime, bob, 1, Commitment(bob, "ann", bobSecret), big.NewInt(100))
	require.Equal(action.StatusSuccess, r.Status)

	// drain the escrow account behind the protocol's back
	escrow := env.account(t, env.p.Addr())
	require.NoError(escrow.SubBalance(escrow.Balance))
	require.NoError(accountutil.StoreAccount(env.sm, env.p.Addr(), escrow))

	// the duplicate refund cannot be paid, and the partial value movement
	// must unwind with it
	r = env.reveal(t, 72, _testBaseTime, bob, 2, "ann", bobSecret, big.NewInt(50))
	require.Equal(action.StatusErrTransferFailure, r.Status)
	require.Equal("900", env.balance(t, bob).String())
	require.Equal("0", env.balance(t, env.p.Addr()).String())
	req, err := env.p.Request(env.sm, bob)
	require.NoError(err)
	require.NotNil(req)
	require.Equal(uint64(2), env.account(t, bob).Nonce)

	// a withdrawal against the drained escrow fails the same way
	r = env.withdraw(t, 73, _testBaseTime.Add(20*time.Second), bob, 3)
	require.Equal(action.StatusErrTransferFailure, r.Status)
	req, err = env.p.Request(env.sm, bob)
	require.NoError(err)
	require.NotNil(req)
}

func TestEscrowConservation(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	env := newTestEnv(t, ctrl, genesis.Default.Registrar)

	var (
		alice       = identityset.Address(28)
		bob         = identityset.Address(29)
		carol       = identityset.Address(30)
		aliceSecret = hash.Hash256b([]byte("alice secret"))
		bobSecret   = hash.Hash256b([]byte("bob secret"))
		carolSecret = hash.Hash256b([]byte("carol secret"))
	)
	env.commit(t, 0, _testBaseTime, alice, 1, Commitment(alice, "ann", aliceSecret), big.NewInt(100))
	env.reveal(t, 32, _testBaseTime, alice, 2, "ann", aliceSecret, big.NewInt(0))
	env.commit(t, 40, _testBaseTime, bob, 1, Commitment(bob, "ann", bobSecret), big.NewInt(100))
	env.reveal(t, 72, _testBaseTime, bob, 2, "ann", bobSecret, big.NewInt(50))
	env.commit(t, 80, _testBaseTime, carol, 1, Commitment(carol, "carol", carolSecret), big.NewInt(100))
	env.withdraw(t, 81, _testBaseTime.Add(10*time.Second), carol, 2)

	// with every slot resolved, the escrow holds exactly the retained fees
	fees, err := env.p.TotalFees(env.sm)
	require.NoError(err)
	require.Equal(fees.String(), env.balance(t, env.p.Addr()).String())
	require.Equal("15", fees.String())
	require.Equal("985", env.balance(t, alice).String())
	require.Equal("1000", env.balance(t, bob).String())
	require.Equal("1000", env.balance(t, carol).String())
}
