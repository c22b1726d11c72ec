// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package api

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/facebookgo/clock"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/stretchr/testify/require"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/action/protocol"
	"github.com/namechain/namechain-core/action/protocol/account"
	"github.com/namechain/namechain-core/action/protocol/registrar"
	"github.com/namechain/namechain-core/actpool"
	"github.com/namechain/namechain-core/blockchain"
	"github.com/namechain/namechain-core/blockchain/block"
	"github.com/namechain/namechain-core/blockchain/blockdao"
	"github.com/namechain/namechain-core/blockchain/genesis"
	"github.com/namechain/namechain-core/db"
	"github.com/namechain/namechain-core/state/factory"
	"github.com/namechain/namechain-core/test/identityset"
)

type testEnv struct {
	chain   blockchain.Blockchain
	ap      actpool.ActPool
	core    CoreService
	handler http.Handler
	clock   *clock.Mock
}

// newTestEnv wires the web handler over a chain running on in-memory stores
func newTestEnv(t *testing.T) *testEnv {
	r := require.New(t)
	g := genesis.Default
	reg := protocol.NewRegistry()
	r.NoError(account.NewProtocol().Register(reg))
	r.NoError(registrar.NewProtocol(g.Registrar).Register(reg))
	sf, err := factory.NewStateDB(g.ChainID, factory.InMemStateDBOption())
	r.NoError(err)
	dao := blockdao.NewBlockDAO(db.NewMemKVStore(), "")
	cfg := blockchain.DefaultConfig
	cfg.ProducerPrivKey = identityset.PrivateKey(27).HexString()
	mck := clock.NewMock()
	mck.Add(time.Duration(g.Timestamp) * time.Second)
	chain := blockchain.NewBlockchain(cfg, g, dao, sf, reg, blockchain.ClockOption(mck))
	r.NoError(chain.Start(context.Background()))
	t.Cleanup(func() {
		r.NoError(chain.Stop(context.Background()))
	})
	ap, err := actpool.NewActPool(g, sf, actpool.DefaultConfig)
	r.NoError(err)
	core, err := newCoreService(DefaultConfig, chain, sf, dao, ap, reg)
	r.NoError(err)
	return &testEnv{
		chain:   chain,
		ap:      ap,
		core:    core,
		handler: newWebHandler(core, DefaultConfig.MaxConcurrentRequests),
		clock:   mck,
	}
}

// mintFromPool drains the pool into the next block, the way the producer does
func (env *testEnv) mintFromPool(t *testing.T) *block.Block {
	var acts []*action.SealedEnvelope
	for _, queue := range env.ap.PendingActionMap() {
		acts = append(acts, queue...)
	}
	env.clock.Add(genesis.Default.BlockInterval)
	blk, err := env.chain.MintAndCommit(context.Background(), acts)
	require.NoError(t, err)
	require.NoError(t, env.ap.ReceiveBlock(blk))
	return blk
}

func (env *testEnv) serve(t *testing.T, method, target string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	require.NoError(t, json.NewDecoder(w.Result().Body).Decode(out))
}

func (env *testEnv) submit(t *testing.T, selp *action.SealedEnvelope) string {
	r := require.New(t)
	raw, err := selp.Serialize()
	r.NoError(err)
	w := env.serve(t, http.MethodPost, "/v1/actions", &SendActionRequest{Action: hex.EncodeToString(raw)})
	r.Equal(http.StatusOK, w.Code)
	var resp SendActionResponse
	decodeBody(t, w, &resp)
	selpHash, err := selp.Hash()
	r.NoError(err)
	r.Equal(hex.EncodeToString(selpHash[:]), resp.ActionHash)
	return resp.ActionHash
}

func TestWebChainMeta(t *testing.T) {
	r := require.New(t)
	env := newTestEnv(t)
	g := genesis.Default
	genesisHash := g.Hash()

	w := env.serve(t, http.MethodGet, "/v1/chain", nil)
	r.Equal(http.StatusOK, w.Code)
	r.Equal("application/json; charset=UTF-8", w.Header().Get("Content-Type"))
	var meta ChainMeta
	decodeBody(t, w, &meta)
	r.Equal(g.ChainID, meta.ChainID)
	r.Zero(meta.TipHeight)
	r.Equal(hex.EncodeToString(genesisHash[:]), meta.TipHash)
	r.Equal(hex.EncodeToString(genesisHash[:]), meta.GenesisHash)
	r.Equal(g.Timestamp, meta.TipTimestamp)

	blk := env.mintFromPool(t)
	w = env.serve(t, http.MethodGet, "/v1/chain", nil)
	r.Equal(http.StatusOK, w.Code)
	decodeBody(t, w, &meta)
	r.Equal(uint64(1), meta.TipHeight)
	blkHash, err := blk.HashBlock()
	r.NoError(err)
	r.Equal(hex.EncodeToString(blkHash[:]), meta.TipHash)
	r.Equal(blk.Timestamp().Unix(), meta.TipTimestamp)
}

func TestWebRegistrationRoundTrip(t *testing.T) {
	r := require.New(t)
	env := newTestEnv(t)
	g := genesis.Default
	alice := identityset.Address(28)
	secret := hash.Hash256b([]byte("only alice knows"))

	commit, err := action.SignedNameCommit(
		identityset.PrivateKey(28),
		1,
		registrar.Commitment(alice, "ann", secret),
		big.NewInt(100),
		20000,
		big.NewInt(1),
	)
	r.NoError(err)
	commitHash := env.submit(t, commit)

	// no receipt until the action is committed
	w := env.serve(t, http.MethodGet, "/v1/actions/"+commitHash+"/receipt", nil)
	r.Equal(http.StatusNotFound, w.Code)

	blk := env.mintFromPool(t)
	r.Equal(1, len(blk.Actions))
	w = env.serve(t, http.MethodGet, "/v1/actions/"+commitHash+"/receipt", nil)
	r.Equal(http.StatusOK, w.Code)
	var receipt ReceiptMeta
	decodeBody(t, w, &receipt)
	r.Equal("Success", receipt.Status)
	r.Equal(uint64(action.StatusSuccess), receipt.StatusCode)
	r.Equal(uint64(1), receipt.BlockHeight)
	r.Equal(commitHash, receipt.ActionHash)
	r.Equal(1, len(receipt.TransactionLogs))
	r.Equal("100", receipt.TransactionLogs[0].Amount)

	// the open request shows up on the account
	w = env.serve(t, http.MethodGet, "/v1/accounts/"+alice.String(), nil)
	r.Equal(http.StatusOK, w.Code)
	var acct AccountMeta
	decodeBody(t, w, &acct)
	r.Equal(alice.String(), acct.Address)
	r.Equal(uint64(1), acct.Nonce)
	r.Equal(uint64(2), acct.PendingNonce)
	r.NotNil(acct.Request)
	r.Equal(uint64(1+g.RevealSpan), acct.Request.RevealDeadline)
	r.Empty(acct.OwnedIndices)

	for env.chain.TipHeight() < g.RevealSpan {
		env.mintFromPool(t)
	}

	reveal, err := action.SignedNameReveal(identityset.PrivateKey(28), 2, "ann", secret, big.NewInt(0), 20000, big.NewInt(1))
	r.NoError(err)
	revealHash := env.submit(t, reveal)
	env.mintFromPool(t)
	w = env.serve(t, http.MethodGet, "/v1/actions/"+revealHash+"/receipt", nil)
	r.Equal(http.StatusOK, w.Code)
	decodeBody(t, w, &receipt)
	r.Equal("Success", receipt.Status)
	r.Equal(1, len(receipt.Logs))

	w = env.serve(t, http.MethodGet, "/v1/registry", nil)
	r.Equal(http.StatusOK, w.Code)
	var registry RegistryMeta
	decodeBody(t, w, &registry)
	r.Equal("100", registry.Deposit)
	r.Equal(int64(g.Registrar.LockTime.Seconds()), registry.LockTime)
	r.Equal(g.RevealSpan, registry.RevealSpan)
	r.Equal("5", registry.NameCost)
	r.Equal(uint64(1), registry.Entries)
	r.Equal("15", registry.TotalFees)

	w = env.serve(t, http.MethodGet, "/v1/registry/names", nil)
	r.Equal(http.StatusOK, w.Code)
	var page RegistryEntriesResponse
	decodeBody(t, w, &page)
	r.Equal(uint64(1), page.Total)
	r.Equal(1, len(page.Entries))
	r.Equal("ann", page.Entries[0].Name)
	r.Equal(alice.String(), page.Entries[0].Owner)

	w = env.serve(t, http.MethodGet, "/v1/registry/names/0", nil)
	r.Equal(http.StatusOK, w.Code)
	var entry RegistryEntryMeta
	decodeBody(t, w, &entry)
	r.Equal(uint64(0), entry.Index)
	r.Equal("ann", entry.Name)
	r.Equal(alice.String(), entry.Owner)

	w = env.serve(t, http.MethodGet, "/v1/registry/duplicate?name=ann", nil)
	r.Equal(http.StatusOK, w.Code)
	var dup DuplicateResponse
	decodeBody(t, w, &dup)
	r.Equal("ann", dup.Name)
	r.True(dup.Duplicate)

	w = env.serve(t, http.MethodGet, "/v1/registry/duplicate?name=bob", nil)
	r.Equal(http.StatusOK, w.Code)
	decodeBody(t, w, &dup)
	r.False(dup.Duplicate)

	// the registered name shows up under the owner
	w = env.serve(t, http.MethodGet, "/v1/accounts/"+alice.String(), nil)
	r.Equal(http.StatusOK, w.Code)
	decodeBody(t, w, &acct)
	r.Nil(acct.Request)
	r.Equal([]uint64{0}, acct.OwnedIndices)
}

func TestWebRegistryPaging(t *testing.T) {
	r := require.New(t)
	env := newTestEnv(t)
	g := genesis.Default
	names := []string{"ann", "bob", "carol"}

	for i, name := range names {
		owner := identityset.Address(28 + i)
		secret := hash.Hash256b([]byte(name))
		commit, err := action.SignedNameCommit(
			identityset.PrivateKey(28+i),
			1,
			registrar.Commitment(owner, name, secret),
			big.NewInt(100),
			20000,
			big.NewInt(1),
		)
		r.NoError(err)
		env.submit(t, commit)
	}
	for env.chain.TipHeight() <= g.RevealSpan {
		env.mintFromPool(t)
	}
	// one reveal per block keeps the registration order deterministic
	for i, name := range names {
		secret := hash.Hash256b([]byte(name))
		reveal, err := action.SignedNameReveal(identityset.PrivateKey(28+i), 2, name, secret, big.NewInt(0), 20000, big.NewInt(1))
		r.NoError(err)
		env.submit(t, reveal)
		blk := env.mintFromPool(t)
		r.Equal(1, len(blk.Actions))
		r.Equal(uint64(action.StatusSuccess), blk.Receipts[0].Status)
	}

	w := env.serve(t, http.MethodGet, "/v1/registry/names?offset=1&limit=1", nil)
	r.Equal(http.StatusOK, w.Code)
	var page RegistryEntriesResponse
	decodeBody(t, w, &page)
	r.Equal(uint64(3), page.Total)
	r.Equal(1, len(page.Entries))
	r.Equal(uint64(1), page.Entries[0].Index)
	r.Equal("bob", page.Entries[0].Name)

	// a page past the end is empty, not an error
	w = env.serve(t, http.MethodGet, "/v1/registry/names?offset=5", nil)
	r.Equal(http.StatusOK, w.Code)
	decodeBody(t, w, &page)
	r.Equal(uint64(3), page.Total)
	r.Empty(page.Entries)
}

func TestWebBadRequests(t *testing.T) {
	env := newTestEnv(t)

	for _, tc := range []struct {
		name   string
		method string
		target string
		body   io.Reader
		code   int
	}{
		{"brokenJSON", http.MethodPost, "/v1/actions", bytes.NewReader([]byte("{")), http.StatusBadRequest},
		{"notHex", http.MethodPost, "/v1/actions", bytes.NewReader([]byte(`{"action":"zz"}`)), http.StatusBadRequest},
		{"emptyAction", http.MethodPost, "/v1/actions", bytes.NewReader([]byte(`{"action":""}`)), http.StatusBadRequest},
		{"shortHash", http.MethodGet, "/v1/actions/abcd/receipt", nil, http.StatusBadRequest},
		{"badAddress", http.MethodGet, "/v1/accounts/not-an-address", nil, http.StatusBadRequest},
		{"badIndex", http.MethodGet, "/v1/registry/names/x", nil, http.StatusBadRequest},
		{"missingEntry", http.MethodGet, "/v1/registry/names/99", nil, http.StatusNotFound},
		{"badOffset", http.MethodGet, "/v1/registry/names?offset=-1", nil, http.StatusBadRequest},
		{"badLimit", http.MethodGet, "/v1/registry/names?limit=ten", nil, http.StatusBadRequest},
		{"missingName", http.MethodGet, "/v1/registry/duplicate", nil, http.StatusBadRequest},
		{"wrongMethod", http.MethodGet, "/v1/actions", nil, http.StatusMethodNotAllowed},
		{"unknownRoute", http.MethodGet, "/v1/nothing", nil, http.StatusNotFound},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, tc.body)
			w := httptest.NewRecorder()
			env.handler.ServeHTTP(w, req)
			require.Equal(t, tc.code, w.Code)
			if tc.code == http.StatusBadRequest || tc.code == http.StatusNotFound {
				if w.Header().Get("Content-Type") != "" {
					var resp ErrorResponse
					decodeBody(t, w, &resp)
					require.NotEmpty(t, resp.Error)
				}
			}
		})
	}
}

func TestWebSendActionRejected(t *testing.T) {
	r := require.New(t)
	env := newTestEnv(t)

	// an action the sender cannot cover never makes it into the pool
	tooBig := big.NewInt(0).Mul(big.NewInt(300000000), big.NewInt(1000000))
	broke, err := action.SignedTransfer(
		identityset.Address(29).String(), identityset.PrivateKey(28), 1, tooBig, nil, 20000, big.NewInt(1))
	r.NoError(err)
	raw, err := broke.Serialize()
	r.NoError(err)
	w := env.serve(t, http.MethodPost, "/v1/actions", &SendActionRequest{Action: hex.EncodeToString(raw)})
	r.Equal(http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	decodeBody(t, w, &resp)
	r.NotEmpty(resp.Error)
	r.Zero(env.ap.GetSize())
}
