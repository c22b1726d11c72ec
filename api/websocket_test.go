// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package api

import (
	"encoding/hex"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/action/protocol/registrar"
	"github.com/namechain/namechain-core/blockchain/block"
	"github.com/namechain/namechain-core/blockchain/genesis"
	"github.com/namechain/namechain-core/test/identityset"
)

func TestRegistrationEvents(t *testing.T) {
	r := require.New(t)
	env := newTestEnv(t)
	g := genesis.Default
	alice := identityset.Address(28)
	bob := identityset.Address(29)
	secretA := hash.Hash256b([]byte("alice nonce"))
	secretB := hash.Hash256b([]byte("bob nonce"))

	commitA, err := action.SignedNameCommit(
		identityset.PrivateKey(28), 1, registrar.Commitment(alice, "ann", secretA), big.NewInt(100), 20000, big.NewInt(1))
	r.NoError(err)
	commitB, err := action.SignedNameCommit(
		identityset.PrivateKey(29), 1, registrar.Commitment(bob, "ann", secretB), big.NewInt(100), 20000, big.NewInt(1))
	r.NoError(err)
	env.submit(t, commitA)
	env.submit(t, commitB)

	// commitments are silent, only reveals emit events
	blk := env.mintFromPool(t)
	r.Equal(2, len(blk.Receipts))
	r.Empty(RegistrationEvents(blk))

	for env.chain.TipHeight() <= g.RevealSpan {
		env.mintFromPool(t)
	}

	revealA, err := action.SignedNameReveal(identityset.PrivateKey(28), 2, "ann", secretA, big.NewInt(0), 20000, big.NewInt(1))
	r.NoError(err)
	env.submit(t, revealA)
	blkA := env.mintFromPool(t)
	events := RegistrationEvents(blkA)
	r.Equal(1, len(events))
	r.Equal("NameRegistered", events[0].Event)
	r.Equal(alice.String(), events[0].Account)
	r.Equal("ann", events[0].Name)
	r.Equal(blkA.Height(), events[0].BlockHeight)
	hashA, err := revealA.Hash()
	r.NoError(err)
	r.Equal(hex.EncodeToString(hashA[:]), events[0].ActionHash)

	// a reveal that loses the name still emits an event, with its own topic
	revealB, err := action.SignedNameReveal(identityset.PrivateKey(29), 2, "ann", secretB, big.NewInt(0), 20000, big.NewInt(1))
	r.NoError(err)
	env.submit(t, revealB)
	blkB := env.mintFromPool(t)
	r.Equal(uint64(action.StatusSuccess), blkB.Receipts[0].Status)
	events = RegistrationEvents(blkB)
	r.Equal(1, len(events))
	r.Equal("NameAlreadyRegistered", events[0].Event)
	r.Equal(bob.String(), events[0].Account)
	r.Equal("ann", events[0].Name)
}

// eventBlock builds a signed block whose only receipt carries one
// registration log owned by identityset 28
func eventBlock(t *testing.T, height uint64, topic hash.Hash256, name string) *block.Block {
	r := require.New(t)
	ownerAddr := identityset.Address(28)
	actHash := hash.Hash256b([]byte(name))
	receipt := &action.Receipt{
		Status:      action.StatusSuccess,
		BlockHeight: height,
		ActionHash:  actHash,
		GasConsumed: 10300,
	}
	receipt.AddLogs(&action.Log{
		Address:     registrar.NewProtocol(genesis.Default.Registrar).Addr().String(),
		Topics:      []hash.Hash256{topic, hash.BytesToHash256(ownerAddr.Bytes())},
		Data:        []byte(name),
		BlockHeight: height,
		ActionHash:  actHash,
	})
	blk, err := block.NewBuilder().
		SetChainID(genesis.Default.ChainID).
		SetHeight(height).
		SetTimestamp(time.Now()).
		SetPrevBlockHash(hash.Hash256b([]byte("prev"))).
		SetReceipts([]*action.Receipt{receipt}).
		SignAndBuild(identityset.PrivateKey(27))
	r.NoError(err)
	return &blk
}

// signalListener flags when a stream has registered, the upgrade handshake
// finishes before the responder is added
type signalListener struct {
	Listener
	added chan struct{}
}

func (sl *signalListener) AddResponder(r Responder) error {
	err := sl.Listener.AddResponder(r)
	if err == nil {
		close(sl.added)
	}
	return err
}

func TestWebsocketStream(t *testing.T) {
	r := require.New(t)
	listener := &signalListener{
		Listener: NewChainListener(5),
		added:    make(chan struct{}),
	}
	r.NoError(listener.Start())
	defer func() {
		r.NoError(listener.Stop())
	}()
	svr := httptest.NewServer(NewWebsocketHandler(listener, nil))
	defer svr.Close()

	url := "ws" + strings.TrimPrefix(svr.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	r.NoError(err)
	defer conn.Close()
	select {
	case <-listener.added:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the stream to register")
	}

	owner := identityset.Address(28).String()
	blk := eventBlock(t, 7, registrar.NameRegisteredTopic, "ann")
	r.NoError(listener.ReceiveBlock(blk))

	r.NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	var msg EventMessage
	r.NoError(conn.ReadJSON(&msg))
	r.Equal("NameRegistered", msg.Event)
	r.Equal(owner, msg.Account)
	r.Equal("ann", msg.Name)
	r.Equal(uint64(7), msg.BlockHeight)
}

func TestWebsocketRateLimit(t *testing.T) {
	r := require.New(t)
	listener := NewChainListener(5)
	r.NoError(listener.Start())
	defer func() {
		r.NoError(listener.Stop())
	}()
	svr := httptest.NewServer(NewWebsocketHandler(listener, rate.NewLimiter(rate.Limit(1), 1)))
	defer svr.Close()

	// the first request eats the only token, a plain GET fails the upgrade
	resp, err := http.Get(svr.URL)
	r.NoError(err)
	resp.Body.Close()
	r.Equal(http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(svr.URL)
	r.NoError(err)
	resp.Body.Close()
	r.Equal(http.StatusTooManyRequests, resp.StatusCode)
}

func TestWebsocketStreamCapacity(t *testing.T) {
	r := require.New(t)
	listener := NewChainListener(0)
	r.NoError(listener.Start())
	defer func() {
		r.NoError(listener.Stop())
	}()
	svr := httptest.NewServer(NewWebsocketHandler(listener, nil))
	defer svr.Close()

	// a full listener turns the connection away with an error payload
	url := "ws" + strings.TrimPrefix(svr.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	r.NoError(err)
	defer conn.Close()
	var resp ErrorResponse
	r.NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	r.NoError(conn.ReadJSON(&resp))
	r.NotEmpty(resp.Error)
}
