// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package e2etest

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/iotexproject/go-pkgs/hash"
	"github.com/stretchr/testify/require"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/action/protocol/registrar"
	"github.com/namechain/namechain-core/namectl/client"
	"github.com/namechain/namechain-core/test/identityset"
	"github.com/namechain/namechain-core/testutil"
)

// commitName escrows the deposit behind a commitment to the name and returns
// the receipt
func commitName(t *testing.T, cli *client.Client, signer int, nonce uint64, name string, secret hash.Hash256, chainID uint32) *client.Receipt {
	require := require.New(t)
	commit, err := action.SignedNameCommit(
		identityset.PrivateKey(signer),
		nonce,
		registrar.Commitment(identityset.Address(signer), name, secret),
		big.NewInt(100),
		20000,
		big.NewInt(1),
		action.WithChainID(chainID),
	)
	require.NoError(err)
	receipt := mineAction(t, cli, commit)
	require.Equal(action.StatusSuccess, receipt.StatusCode)
	return receipt
}

// revealName waits out the reveal span and discloses the name
func revealName(t *testing.T, cli *client.Client, signer int, nonce uint64, name string, secret hash.Hash256, value *big.Int, chainID uint32) *client.Receipt {
	require := require.New(t)
	meta, err := cli.Account(identityset.Address(signer).String())
	require.NoError(err)
	require.NotNil(meta.Request)
	waitHeight(t, cli, meta.Request.RevealDeadline)

	reveal, err := action.SignedNameReveal(
		identityset.PrivateKey(signer),
		nonce,
		name,
		secret,
		value,
		20000,
		big.NewInt(1),
		action.WithChainID(chainID),
	)
	require.NoError(err)
	return mineAction(t, cli, reveal)
}

func TestLocalNameLifecycle(t *testing.T) {
	require := require.New(t)
	cfg := testConfig()
	cli := startNode(t, cfg)
	var (
		owner   = identityset.Address(30)
		secret  = hash.Hash256b([]byte("a blinding nonce"))
		chainID = cfg.Genesis.ChainID
	)
	before, err := cli.Account(owner.String())
	require.NoError(err)
	balance, ok := new(big.Int).SetString(before.Balance, 10)
	require.True(ok)

	commitReceipt := commitName(t, cli, 30, 1, "alice", secret, chainID)
	require.Equal(uint64(10000), commitReceipt.GasConsumed)
	require.Len(commitReceipt.TransactionLogs, 1)
	escrow := commitReceipt.ContractAddress
	require.NotEmpty(escrow)
	require.Equal("DEPOSIT", commitReceipt.TransactionLogs[0].Type)
	require.Equal("100", commitReceipt.TransactionLogs[0].Amount)
	require.Equal(owner.String(), commitReceipt.TransactionLogs[0].Sender)
	require.Equal(escrow, commitReceipt.TransactionLogs[0].Recipient)

	// the open request is visible through the account endpoint
	meta, err := cli.Account(owner.String())
	require.NoError(err)
	require.NotNil(meta.Request)
	require.Equal(commitReceipt.BlockHeight+_revealSpan, meta.Request.RevealDeadline)
	commitment := registrar.Commitment(owner, "alice", secret)
	require.Equal(hex.EncodeToString(commitment[:]), meta.Request.Commitment)
	require.NotZero(meta.Request.UnlockTime)

	revealReceipt := revealName(t, cli, 30, 2, "alice", secret, big.NewInt(0), chainID)
	require.Equal(action.StatusSuccess, revealReceipt.StatusCode)
	require.Equal(uint64(10500), revealReceipt.GasConsumed)
	require.Len(revealReceipt.Logs, 1)
	topic := registrar.NameRegisteredTopic
	ownerTopic := hash.BytesToHash256(owner.Bytes())
	require.Equal(hex.EncodeToString(topic[:]), revealReceipt.Logs[0].Topics[0])
	require.Equal(hex.EncodeToString(ownerTopic[:]), revealReceipt.Logs[0].Topics[1])
	require.Equal(hex.EncodeToString([]byte("alice")), revealReceipt.Logs[0].Data)
	// the deposit covered the price of the name, the rest came back
	require.Len(revealReceipt.TransactionLogs, 2)
	require.Equal("REFUND", revealReceipt.TransactionLogs[0].Type)
	require.Equal("75", revealReceipt.TransactionLogs[0].Amount)
	require.Equal(owner.String(), revealReceipt.TransactionLogs[0].Recipient)
	require.Equal("REGISTRATION_FEE", revealReceipt.TransactionLogs[1].Type)
	require.Equal("25", revealReceipt.TransactionLogs[1].Amount)

	registry, err := cli.RegistryMeta()
	require.NoError(err)
	require.Equal(uint64(1), registry.Entries)
	require.Equal("25", registry.TotalFees)

	page, err := cli.RegistryEntries(0, 10)
	require.NoError(err)
	require.Equal(uint64(1), page.Total)
	require.Len(page.Entries, 1)
	require.Equal(uint64(0), page.Entries[0].Index)
	require.Equal("alice", page.Entries[0].Name)
	require.Equal(owner.String(), page.Entries[0].Owner)

	entry, err := cli.RegistryEntry(0)
	require.NoError(err)
	require.Equal("alice", entry.Name)

	dup, err := cli.IsDuplicate("alice")
	require.NoError(err)
	require.True(dup)
	free, err := cli.IsDuplicate("bob")
	require.NoError(err)
	require.False(free)

	// the slot is gone and the name shows up among the owned ones
	after, err := cli.Account(owner.String())
	require.NoError(err)
	require.Nil(after.Request)
	require.Equal([]uint64{0}, after.OwnedIndices)
	spent := big.NewInt(25 + 10000 + 10500)
	require.Equal(new(big.Int).Sub(balance, spent).String(), after.Balance)
}

func TestLocalNameTopUp(t *testing.T) {
	require := require.New(t)
	cfg := testConfig()
	cli := startNode(t, cfg)
	var (
		name    = strings.Repeat("n", 30)
		secret  = hash.Hash256b([]byte("a pricey name"))
		chainID = cfg.Genesis.ChainID
	)
	commitName(t, cli, 31, 1, name, secret, chainID)

	// a 30 byte name costs 150, the reveal must attach what the deposit misses
	short := revealName(t, cli, 31, 2, name, secret, big.NewInt(49), chainID)
	require.Equal(action.StatusErrInsufficientFunds, short.StatusCode)
	require.Equal("ErrInsufficientFunds", short.Status)

	receipt := revealName(t, cli, 31, 3, name, secret, big.NewInt(50), chainID)
	require.Equal(action.StatusSuccess, receipt.StatusCode)
	require.Equal(uint64(13000), receipt.GasConsumed)
	require.Len(receipt.TransactionLogs, 2)
	require.Equal("DEPOSIT", receipt.TransactionLogs[0].Type)
	require.Equal("50", receipt.TransactionLogs[0].Amount)
	require.Equal("REGISTRATION_FEE", receipt.TransactionLogs[1].Type)
	require.Equal("150", receipt.TransactionLogs[1].Amount)

	registry, err := cli.RegistryMeta()
	require.NoError(err)
	require.Equal("150", registry.TotalFees)
}

func TestLocalNameDuplicate(t *testing.T) {
	require := require.New(t)
	cfg := testConfig()
	cli := startNode(t, cfg)
	var (
		loser   = identityset.Address(33)
		secret1 = hash.Hash256b([]byte("the winner"))
		secret2 = hash.Hash256b([]byte("the loser"))
		chainID = cfg.Genesis.ChainID
	)
	commitName(t, cli, 32, 1, "carol", secret1, chainID)
	winner := revealName(t, cli, 32, 2, "carol", secret1, big.NewInt(0), chainID)
	require.Equal(action.StatusSuccess, winner.StatusCode)

	before, err := cli.Account(loser.String())
	require.NoError(err)
	balance, ok := new(big.Int).SetString(before.Balance, 10)
	require.True(ok)

	// the second reveal of the same name resolves with a full refund
	commitName(t, cli, 33, 1, "carol", secret2, chainID)
	receipt := revealName(t, cli, 33, 2, "carol", secret2, big.NewInt(0), chainID)
	require.Equal(action.StatusSuccess, receipt.StatusCode)
	require.Len(receipt.Logs, 1)
	topic := registrar.NameAlreadyRegisteredTopic
	require.Equal(hex.EncodeToString(topic[:]), receipt.Logs[0].Topics[0])
	require.Len(receipt.TransactionLogs, 1)
	require.Equal("REFUND", receipt.TransactionLogs[0].Type)
	require.Equal("100", receipt.TransactionLogs[0].Amount)
	require.Equal(loser.String(), receipt.TransactionLogs[0].Recipient)

	// the registry kept the first owner and charged no second fee
	registry, err := cli.RegistryMeta()
	require.NoError(err)
	require.Equal(uint64(1), registry.Entries)
	require.Equal("25", registry.TotalFees)

	after, err := cli.Account(loser.String())
	require.NoError(err)
	require.Nil(after.Request)
	require.Empty(after.OwnedIndices)
	spent := big.NewInt(10000 + 10500)
	require.Equal(new(big.Int).Sub(balance, spent).String(), after.Balance)
}

func TestLocalNameWithdraw(t *testing.T) {
	require := require.New(t)
	cfg := testConfig()
	cfg.Genesis.Registrar.LockTime = 3 * time.Second
	cli := startNode(t, cfg)
	var (
		owner   = identityset.Address(34)
		secret  = hash.Hash256b([]byte("changed my mind"))
		chainID = cfg.Genesis.ChainID
	)
	before, err := cli.Account(owner.String())
	require.NoError(err)
	balance, ok := new(big.Int).SetString(before.Balance, 10)
	require.True(ok)

	commitName(t, cli, 34, 1, "dave", secret, chainID)
	meta, err := cli.Account(owner.String())
	require.NoError(err)
	require.NotNil(meta.Request)
	unlockTime := meta.Request.UnlockTime

	// the deposit stays locked for lockTime past the commitment
	early, err := action.SignedNameWithdraw(identityset.PrivateKey(34), 2, 20000, big.NewInt(1), action.WithChainID(chainID))
	require.NoError(err)
	earlyReceipt := mineAction(t, cli, early)
	require.Equal(action.StatusErrFundsLocked, earlyReceipt.StatusCode)
	require.Equal("ErrFundsLocked", earlyReceipt.Status)
	require.Empty(earlyReceipt.TransactionLogs)

	require.NoError(testutil.WaitUntil(_blockInterval, 10*time.Second, func() (bool, error) {
		chainMeta, err := cli.ChainMeta()
		if err != nil {
			return false, err
		}
		return uint64(chainMeta.TipTimestamp) >= unlockTime, nil
	}))

	withdraw, err := action.SignedNameWithdraw(identityset.PrivateKey(34), 3, 20000, big.NewInt(1), action.WithChainID(chainID))
	require.NoError(err)
	receipt := mineAction(t, cli, withdraw)
	require.Equal(action.StatusSuccess, receipt.StatusCode)
	require.Len(receipt.TransactionLogs, 1)
	require.Equal("REFUND", receipt.TransactionLogs[0].Type)
	require.Equal("100", receipt.TransactionLogs[0].Amount)
	require.Equal(owner.String(), receipt.TransactionLogs[0].Recipient)

	// the slot is free again and only gas was spent
	after, err := cli.Account(owner.String())
	require.NoError(err)
	require.Nil(after.Request)
	spent := big.NewInt(3 * 10000)
	require.Equal(new(big.Int).Sub(balance, spent).String(), after.Balance)

	dup, err := cli.IsDuplicate("dave")
	require.NoError(err)
	require.False(dup)
}
