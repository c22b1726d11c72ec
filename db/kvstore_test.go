// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package db

import (
	"bytes"
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/namechain/namechain-core/db/batch"
)

var (
	_namespace = "ns"

	_k1 = []byte("key_1")
	_k2 = []byte("key_2")
	_k3 = []byte("key_3")
	_k4 = []byte("key_4")

	_v1 = []byte("value_1")
	_v2 = []byte("value_2")
	_v3 = []byte("value_3")
	_v4 = []byte("value_4")
)

func TestMemKVStore(t *testing.T) {
	r := require.New(t)

	s := NewMemKVStore()
	ctx := context.Background()
	r.NoError(s.Start(ctx))
	defer func() {
		r.NoError(s.Stop(ctx))
	}()

	// an empty store misses on any namespace
	v, err := s.Get(_namespace, _k1)
	r.True(errors.Is(err, ErrNotExist))
	r.Nil(v)

	// a live namespace still misses on an unwritten key
	r.NoError(s.Put(_namespace, _k1, _v1))
	v, err = s.Get(_namespace, _k2)
	r.True(errors.Is(err, ErrNotExist))
	r.Nil(v)

	// the latest write to a key wins
	for _, val := range [][]byte{_v1, _v2, _v3} {
		r.NoError(s.Put(_namespace, _k1, val))
		v, err = s.Get(_namespace, _k1)
		r.NoError(err)
		r.Equal(val, v)
	}

	// delete is idempotent, on live and missing keys alike
	r.NoError(s.Delete(_namespace, _k2))
	r.NoError(s.Delete(_namespace, _k1))
	r.NoError(s.Delete(_namespace, _k1))
	v, err = s.Get(_namespace, _k1)
	r.True(errors.Is(err, ErrNotExist))
	r.Nil(v)

	// a deleted key takes new writes
	r.NoError(s.Put(_namespace, _k1, _v1))
	v, err = s.Get(_namespace, _k1)
	r.NoError(err)
	r.Equal(_v1, v)

	for _, e := range []kvTest{
		{_namespace, _k2, _v2},
		{_namespace, _k3, _v3},
	} {
		r.NoError(s.Put(e.ns, e.k, e.v))
		v, err = s.Get(e.ns, e.k)
		r.NoError(err)
		r.Equal(e.v, v)
	}

	// batch write replays the queue in order
	b := batch.NewBatch()
	b.Put(_namespace, _k2, _v3, "failed to put k2")
	b.Put(_namespace, _k3, _v2, "failed to put k3")
	b.Put(_namespace, _k4, _v1, "failed to put k4")
	b.Put(_namespace, _k4, _v4, "failed to put k4")
	b.Delete(_namespace, _k1, "failed to delete k1")
	r.NoError(s.WriteBatch(b))
	// the batch is intact after the write
	r.Equal(5, b.Size())

	for _, e := range []kvTest{
		{_namespace, _k2, _v3},
		{_namespace, _k3, _v2},
		{_namespace, _k4, _v4},
	} {
		v, err = s.Get(e.ns, e.k)
		r.NoError(err)
		r.Equal(e.v, v)
	}
	v, err = s.Get(_namespace, _k1)
	r.True(errors.Is(err, ErrNotExist))
	r.Nil(v)
}

func TestMemKVStoreFilter(t *testing.T) {
	r := require.New(t)

	s := NewMemKVStore()
	for _, e := range []kvTest{
		{_namespace, _k1, _v1},
		{_namespace, _k2, _v2},
		{_namespace, _k3, _v3},
		{_namespace, _k4, _v4},
	} {
		r.NoError(s.Put(e.ns, e.k, e.v))
	}

	// whole bucket, sorted by key
	keys, vals, err := s.Filter(_namespace, func([]byte, []byte) bool { return true }, nil, nil)
	r.NoError(err)
	r.Equal([][]byte{_k1, _k2, _k3, _k4}, keys)
	r.Equal([][]byte{_v1, _v2, _v3, _v4}, vals)

	// bounded scan
	keys, vals, err = s.Filter(_namespace, func([]byte, []byte) bool { return true }, _k2, _k3)
	r.NoError(err)
	r.Equal([][]byte{_k2, _k3}, keys)
	r.Equal([][]byte{_v2, _v3}, vals)

	// condition on value
	keys, vals, err = s.Filter(_namespace, func(_, v []byte) bool { return bytes.Equal(v, _v1) }, nil, nil)
	r.NoError(err)
	r.Equal([][]byte{_k1}, keys)
	r.Equal([][]byte{_v1}, vals)

	// no match
	keys, vals, err = s.Filter(_namespace, func([]byte, []byte) bool { return false }, nil, nil)
	r.True(errors.Is(err, ErrNotExist))
	r.Nil(keys)
	r.Nil(vals)

	// nonexistent bucket
	keys, vals, err = s.Filter("ns-missing", func([]byte, []byte) bool { return true }, nil, nil)
	r.True(errors.Is(err, ErrBucketNotExist))
	r.Nil(keys)
	r.Nil(vals)
}
