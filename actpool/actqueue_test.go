// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package actpool

import (
	"math/big"
	"testing"
	"time"

	"github.com/facebookgo/clock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/test/identityset"
)

func TestActQueuePut(t *testing.T) {
	r := require.New(t)
	ap, _, _ := newTestPool(t, DefaultConfig)
	q := NewActQueue(ap.(*actPool), identityset.Address(28).String()).(*actQueue)

	tsf2 := signedTransfer(t, 28, 2, big.NewInt(10), big.NewInt(1))
	r.NoError(q.Put(tsf2))
	r.Equal(uint64(2), q.index[0].nonce)
	r.Equal(1, q.Len())

	tsf1 := signedTransfer(t, 28, 1, big.NewInt(10), big.NewInt(1))
	r.NoError(q.Put(tsf1))
	r.Equal(uint64(1), q.index[0].nonce)
	r.Equal(2, q.Len())

	// a same or lower gas price cannot replace the queued action
	err := q.Put(signedTransfer(t, 28, 1, big.NewInt(20), big.NewInt(1)))
	r.Equal(action.ErrReplaceUnderpriced, errors.Cause(err))
	r.Equal(tsf1, q.items[1])

	// a higher gas price replaces it in place
	replacement := signedTransfer(t, 28, 1, big.NewInt(20), big.NewInt(2))
	r.NoError(q.Put(replacement))
	r.Equal(replacement, q.items[1])
	r.Equal(2, q.Len())
}

func TestActQueueFilterNonce(t *testing.T) {
	r := require.New(t)
	ap, _, _ := newTestPool(t, DefaultConfig)
	q := NewActQueue(ap.(*actPool), identityset.Address(28).String()).(*actQueue)

	tsf1 := signedTransfer(t, 28, 1, big.NewInt(1), big.NewInt(0))
	tsf2 := signedTransfer(t, 28, 2, big.NewInt(1), big.NewInt(0))
	tsf3 := signedTransfer(t, 28, 3, big.NewInt(1), big.NewInt(0))
	r.NoError(q.Put(tsf1))
	r.NoError(q.Put(tsf2))
	r.NoError(q.Put(tsf3))

	removed := q.FilterNonce(3)
	r.Equal([]*action.SealedEnvelope{tsf1, tsf2}, removed)
	r.Equal(1, q.Len())
	r.Equal(tsf3, q.items[3])
	r.Equal(uint64(3), q.index[0].nonce)
}

func TestActQueueUpdateQueue(t *testing.T) {
	r := require.New(t)
	ap, _, _ := newTestPool(t, DefaultConfig)
	q := NewActQueue(ap.(*actPool), identityset.Address(28).String()).(*actQueue)
	q.SetPendingNonce(1)
	q.SetPendingBalance(big.NewInt(25))

	// costs of 10 each against a balance of 25, the third cannot be paid
	for i := uint64(1); i <= 3; i++ {
		r.NoError(q.Put(signedTransfer(t, 28, i, big.NewInt(10), big.NewInt(0))))
	}
	removed := q.UpdateQueue(q.PendingNonce())
	r.Empty(removed)
	r.Equal(uint64(3), q.PendingNonce())
	r.Equal(big.NewInt(5), q.PendingBalance())
	// the unpayable action stays queued until a reset refreshes the balance
	r.Equal(3, q.Len())
}

func TestActQueueTimeOut(t *testing.T) {
	r := require.New(t)
	ap, _, _ := newTestPool(t, DefaultConfig)
	mck := clock.NewMock()
	q := NewActQueue(ap.(*actPool), identityset.Address(28).String(),
		WithClock(mck), WithTimeOut(10*time.Minute)).(*actQueue)
	q.SetPendingNonce(1)
	q.SetPendingBalance(big.NewInt(1000))

	tsf1 := signedTransfer(t, 28, 1, big.NewInt(1), big.NewInt(0))
	tsf3 := signedTransfer(t, 28, 3, big.NewInt(1), big.NewInt(0))
	r.NoError(q.Put(tsf1))
	r.NoError(q.Put(tsf3))

	// the pending prefix never expires, the gapped action does
	mck.Add(11 * time.Minute)
	removed := q.UpdateQueue(q.PendingNonce())
	r.Equal([]*action.SealedEnvelope{tsf3}, removed)
	r.Equal(1, q.Len())
	r.Equal(tsf1, q.items[1])
	r.Equal(uint64(2), q.PendingNonce())
}

func TestActQueuePendingActs(t *testing.T) {
	r := require.New(t)
	ap, _, _ := newTestPool(t, DefaultConfig)
	q := NewActQueue(ap.(*actPool), identityset.Address(28).String()).(*actQueue)
	r.Nil(q.PendingActs())

	tsf1 := signedTransfer(t, 28, 1, big.NewInt(1), big.NewInt(0))
	tsf2 := signedTransfer(t, 28, 2, big.NewInt(1), big.NewInt(0))
	tsf4 := signedTransfer(t, 28, 4, big.NewInt(1), big.NewInt(0))
	r.NoError(q.Put(tsf1))
	r.NoError(q.Put(tsf2))
	r.NoError(q.Put(tsf4))

	// the run stops at the nonce gap
	r.Equal([]*action.SealedEnvelope{tsf1, tsf2}, q.PendingActs())
	r.Equal([]*action.SealedEnvelope{tsf1, tsf2, tsf4}, q.AllActs())
}
