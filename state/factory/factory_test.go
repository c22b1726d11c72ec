// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package factory

import (
	"context"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/namechain/namechain-core/action/protocol"
	"github.com/namechain/namechain-core/action/protocol/account"
	accountutil "github.com/namechain/namechain-core/action/protocol/account/util"
	"github.com/namechain/namechain-core/action/protocol/registrar"
	"github.com/namechain/namechain-core/blockchain/genesis"
	"github.com/namechain/namechain-core/db"
	"github.com/namechain/namechain-core/state"
	"github.com/namechain/namechain-core/test/identityset"
	"github.com/namechain/namechain-core/testutil"
)

func newTestRegistry(t *testing.T, cfg genesis.Genesis) *protocol.Registry {
	reg := protocol.NewRegistry()
	require.NoError(t, account.NewProtocol().Register(reg))
	require.NoError(t, registrar.NewProtocol(cfg.Registrar).Register(reg))
	return reg
}

func newTestContext(cfg genesis.Genesis, reg *protocol.Registry) context.Context {
	ctx := protocol.WithRegistry(context.Background(), reg)
	return genesis.WithGenesisContext(ctx, cfg)
}

func TestNewStateDB(t *testing.T) {
	r := require.New(t)

	_, err := NewStateDB(1)
	r.Error(err)

	_, err = NewStateDB(1, DefaultStateDBOption(db.DefaultConfig, ""))
	r.Error(err)

	sdb, err := NewStateDB(1, InMemStateDBOption())
	r.NoError(err)
	r.NotNil(sdb)
}

func TestStateDBGenesis(t *testing.T) {
	r := require.New(t)
	cfg := genesis.Default
	reg := newTestRegistry(t, cfg)
	ctx := newTestContext(cfg, reg)

	sdb, err := NewStateDB(cfg.ChainID, InMemStateDBOption())
	r.NoError(err)
	r.NoError(sdb.Start(ctx))
	defer func() {
		r.NoError(sdb.Stop(ctx))
	}()

	height, err := sdb.Height()
	r.NoError(err)
	r.Zero(height)

	// the account protocol seeded the initial balances
	balance := big.NewInt(0).Mul(big.NewInt(200000000), big.NewInt(1000000))
	for _, i := range []int{0, 13, identityset.Size() - 1} {
		acct, err := accountutil.LoadAccount(sdb, identityset.Address(i))
		r.NoError(err)
		r.Equal(balance, acct.Balance)
		r.Zero(acct.Nonce)
	}

	// the registrar protocol seeded an empty fund
	p := registrar.FindProtocol(reg)
	r.NotNil(p)
	count, err := p.EntryCount(sdb)
	r.NoError(err)
	r.Zero(count)
	fees, err := p.TotalFees(sdb)
	r.NoError(err)
	r.Zero(fees.Sign())

	// a second factory on the same store picks the committed height up and
	// leaves the genesis alone
	reopened := &stateDB{dao: sdb.(*stateDB).dao}
	r.NoError(reopened.Start(ctx))
	height, err = reopened.Height()
	r.NoError(err)
	r.Zero(height)
	acct, err := accountutil.LoadAccount(reopened, identityset.Address(0))
	r.NoError(err)
	r.Equal(balance, acct.Balance)
}

func TestStateDBGenesisWithoutRegistry(t *testing.T) {
	r := require.New(t)
	sdb, err := NewStateDB(1, InMemStateDBOption())
	r.NoError(err)
	ctx := genesis.WithGenesisContext(context.Background(), genesis.Default)
	r.Error(sdb.Start(ctx))
}

func TestStateDBState(t *testing.T) {
	r := require.New(t)
	cfg := genesis.Default
	reg := newTestRegistry(t, cfg)
	ctx := newTestContext(cfg, reg)

	sdb, err := NewStateDB(cfg.ChainID, InMemStateDBOption())
	r.NoError(err)
	r.NoError(sdb.Start(ctx))
	defer func() {
		r.NoError(sdb.Stop(ctx))
	}()

	var acct state.Account
	_, err = sdb.State(&acct, protocol.KeyOption([]byte("no such key")))
	r.Equal(state.ErrStateNotExist, errors.Cause(err))

	// listing the account namespace covers every seeded account and the height key
	_, iter, err := sdb.States(protocol.NamespaceOption(AccountKVNamespace))
	r.NoError(err)
	r.True(iter.Size() > identityset.Size())

	_, _, err = sdb.States(protocol.NamespaceOption(AccountKVNamespace), protocol.KeyOption([]byte("k")))
	r.Equal(ErrNotSupported, errors.Cause(err))

	_, _, err = sdb.States(protocol.NamespaceOption("no such namespace"))
	r.Equal(state.ErrStateNotExist, errors.Cause(err))
}

func TestStateDBCommit(t *testing.T) {
	r := require.New(t)
	cfg := genesis.Default
	reg := newTestRegistry(t, cfg)
	ctx := newTestContext(cfg, reg)

	sdb, err := NewStateDB(cfg.ChainID, InMemStateDBOption())
	r.NoError(err)
	r.NoError(sdb.Start(ctx))
	defer func() {
		r.NoError(sdb.Stop(ctx))
	}()

	r.Error(sdb.Commit(nil))

	ws, err := sdb.NewWorkingSet(ctx)
	r.NoError(err)
	r.Equal(uint64(1), ws.Version())
	r.NoError(ws.Finalize())
	r.NoError(sdb.Commit(ws))

	height, err := sdb.Height()
	r.NoError(err)
	r.Equal(uint64(1), height)

	// a stale working set cannot commit a second time
	r.Error(sdb.Commit(ws))

	ws, err = sdb.NewWorkingSet(ctx)
	r.NoError(err)
	r.Equal(uint64(2), ws.Version())
}

func TestStateDBPebble(t *testing.T) {
	r := require.New(t)
	dbPath, err := testutil.PathOfTempFile("statedb")
	r.NoError(err)
	defer testutil.CleanupPath(dbPath)

	cfg := genesis.Default
	reg := newTestRegistry(t, cfg)
	ctx := newTestContext(cfg, reg)

	sdb, err := NewStateDB(cfg.ChainID, DefaultStateDBOption(db.DefaultConfig, dbPath))
	r.NoError(err)
	r.NoError(sdb.Start(ctx))

	ws, err := sdb.NewWorkingSet(ctx)
	r.NoError(err)
	r.NoError(ws.Finalize())
	r.NoError(sdb.Commit(ws))
	r.NoError(sdb.Stop(ctx))

	// the committed height survives a restart
	sdb, err = NewStateDB(cfg.ChainID, DefaultStateDBOption(db.DefaultConfig, dbPath))
	r.NoError(err)
	r.NoError(sdb.Start(ctx))
	defer func() {
		r.NoError(sdb.Stop(ctx))
	}()
	height, err := sdb.Height()
	r.NoError(err)
	r.Equal(uint64(1), height)

	balance := big.NewInt(0).Mul(big.NewInt(200000000), big.NewInt(1000000))
	acct, err := accountutil.LoadAccount(sdb, identityset.Address(5))
	r.NoError(err)
	r.Equal(balance, acct.Balance)
}
