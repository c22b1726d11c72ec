// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package e2etest drives a full in-process node through its HTTP API, the way
// an external client would.
package e2etest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mohae/deepcopy"
	"github.com/stretchr/testify/require"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/config"
	"github.com/namechain/namechain-core/namectl/client"
	"github.com/namechain/namechain-core/server/itx"
	"github.com/namechain/namechain-core/test/identityset"
	"github.com/namechain/namechain-core/testutil"
)

const (
	_blockInterval = 50 * time.Millisecond
	_revealSpan    = uint64(4)
)

// testConfig shrinks the chain timings so a registration round trip fits in a
// test run
func testConfig() config.Config {
	cfg := deepcopy.Copy(config.Default).(config.Config)
	cfg.Chain.ProducerPrivKey = identityset.PrivateKey(27).HexString()
	cfg.Genesis.BlockInterval = _blockInterval
	cfg.Genesis.Registrar.RevealSpan = _revealSpan
	cfg.Genesis.Registrar.LockTime = time.Second
	cfg.API.Port = testutil.RandomPort()
	cfg.System.HTTPAdminPort = 0
	cfg.System.HeartbeatInterval = 0
	return cfg
}

// startNode brings up an in-memory node and a client pointed at its API
func startNode(t *testing.T, cfg config.Config) *client.Client {
	r := require.New(t)
	svr, err := itx.NewInMemTestServer(cfg)
	r.NoError(err)
	r.NoError(svr.Start(context.Background()))
	t.Cleanup(func() {
		require.NoError(t, svr.Stop(context.Background()))
	})
	cli := client.New(fmt.Sprintf("http://localhost:%d", cfg.API.Port))
	r.NoError(testutil.WaitUntil(20*time.Millisecond, 5*time.Second, func() (bool, error) {
		_, err := cli.ChainMeta()
		return err == nil, nil
	}))
	return cli
}

// mineAction submits the action and blocks until its receipt lands
func mineAction(t *testing.T, cli *client.Client, selp *action.SealedEnvelope) *client.Receipt {
	r := require.New(t)
	actHash, err := cli.SendAction(selp)
	r.NoError(err)
	var receipt *client.Receipt
	r.NoError(testutil.WaitUntil(_blockInterval, 10*time.Second, func() (bool, error) {
		receipt, err = cli.Receipt(actHash)
		if err == client.ErrReceiptNotFound {
			return false, nil
		}
		return err == nil, err
	}))
	r.Equal(actHash, receipt.ActionHash)
	return receipt
}

// waitHeight blocks until the chain tip reaches the height
func waitHeight(t *testing.T, cli *client.Client, height uint64) {
	require.NoError(t, testutil.WaitUntil(_blockInterval, 30*time.Second, func() (bool, error) {
		meta, err := cli.ChainMeta()
		if err != nil {
			return false, err
		}
		return meta.TipHeight >= height, nil
	}))
}

func TestLocalChainMeta(t *testing.T) {
	require := require.New(t)
	cfg := testConfig()
	cli := startNode(t, cfg)

	meta, err := cli.ChainMeta()
	require.NoError(err)
	require.Equal(cfg.Genesis.ChainID, meta.ChainID)
	require.NotEmpty(meta.GenesisHash)

	// the lone producer keeps minting without any action traffic
	waitHeight(t, cli, 3)
	meta, err = cli.ChainMeta()
	require.NoError(err)
	require.NotEmpty(meta.TipHash)
	require.NotZero(meta.TipTimestamp)

	registry, err := cli.RegistryMeta()
	require.NoError(err)
	require.Equal("100", registry.Deposit)
	require.Equal(int64(1), registry.LockTime)
	require.Equal(_revealSpan, registry.RevealSpan)
	require.Equal("5", registry.NameCost)
	require.Zero(registry.Entries)
	require.Equal("0", registry.TotalFees)
}
