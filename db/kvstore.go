// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package db

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/namechain/namechain-core/db/batch"
	"github.com/namechain/namechain-core/pkg/lifecycle"
)

var (
	// ErrBucketNotExist indicates certain bucket does not exist in db
	ErrBucketNotExist = errors.New("bucket not exist in DB")
	// ErrNotExist indicates certain item does not exist in Blockchain database
	ErrNotExist = errors.New("not exist in DB")
	// ErrIO indicates the generic error of DB I/O operation
	ErrIO = errors.New("DB I/O operation error")
	// ErrDBNotStarted indicates the db has not started
	ErrDBNotStarted = errors.New("db has not started")
)

type (
	// Condition spells the condition for <k, v> to be filtered out
	Condition func(k, v []byte) bool

	// KVStoreBasic is the interface of basic KV store.
	KVStoreBasic interface {
		lifecycle.StartStopper

		// Put insert or update a record identified by (namespace, key)
		Put(string, []byte, []byte) error
		// Get gets a record by (namespace, key)
		Get(string, []byte) ([]byte, error)
		// Delete deletes a record by (namespace, key)
		Delete(string, []byte) error
	}

	// KVStore is a KVStore with WriteBatch API
	KVStore interface {
		KVStoreBasic
		// WriteBatch commits a batch into underlying DB, the batch is kept intact afterwards
		WriteBatch(batch.KVStoreBatch) error
		// Filter returns <k, v> pair in a bucket that meet the condition
		Filter(string, Condition, []byte, []byte) ([][]byte, [][]byte, error)
	}
)

const _keyDelimiter = "."

// memKVStore is the in-memory implementation of KVStore for testing purpose
type memKVStore struct {
	data   *sync.Map
	bucket *sync.Map
}

// NewMemKVStore instantiates an in-memory KV store
func NewMemKVStore() KVStore {
	return &memKVStore{
		bucket: &sync.Map{},
		data:   &sync.Map{},
	}
}

func (m *memKVStore) Start(_ context.Context) error { return nil }

func (m *memKVStore) Stop(_ context.Context) error { return nil }

// Put inserts a <key, value> record
func (m *memKVStore) Put(namespace string, key, value []byte) error {
	_, _ = m.bucket.LoadOrStore(namespace, struct{}{})
	m.data.Store(namespace+_keyDelimiter+string(key), value)
	return nil
}

// Get retrieves a record
func (m *memKVStore) Get(namespace string, key []byte) ([]byte, error) {
	if _, ok := m.bucket.Load(namespace); !ok {
		return nil, errors.Wrapf(ErrNotExist, "namespace = %x doesn't exist", []byte(namespace))
	}
	value, _ := m.data.Load(namespace + _keyDelimiter + string(key))
	if value != nil {
		return value.([]byte), nil
	}
	return nil, errors.Wrapf(ErrNotExist, "key = %x doesn't exist", key)
}

// Delete deletes a record
func (m *memKVStore) Delete(namespace string, key []byte) error {
	m.data.Delete(namespace + _keyDelimiter + string(key))
	return nil
}

// WriteBatch commits a batch
func (m *memKVStore) WriteBatch(b batch.KVStoreBatch) (err error) {
	b.Lock()
	defer b.Unlock()
	for i := 0; i < b.Size(); i++ {
		write, err := b.Entry(i)
		if err != nil {
			return err
		}
		switch write.WriteType() {
		case batch.Put:
			if err := m.Put(write.Namespace(), write.Key(), write.Value()); err != nil {
				return err
			}
		case batch.Delete:
			if err := m.Delete(write.Namespace(), write.Key()); err != nil {
				return err
			}
		}
	}
	return nil
}

// Filter returns <k, v> pair in a bucket that meet the condition
func (m *memKVStore) Filter(namespace string, cond Condition, minKey, maxKey []byte) ([][]byte, [][]byte, error) {
	if _, ok := m.bucket.Load(namespace); !ok {
		return nil, nil, errors.Wrapf(ErrBucketNotExist, "namespace = %x doesn't exist", []byte(namespace))
	}
	var keys [][]byte
	prefix := namespace + _keyDelimiter
	m.data.Range(func(k, _ interface{}) bool {
		ks := k.(string)
		if !strings.HasPrefix(ks, prefix) {
			return true
		}
		key := []byte(ks[len(prefix):])
		if len(minKey) > 0 && bytes.Compare(key, minKey) < 0 {
			return true
		}
		if len(maxKey) > 0 && bytes.Compare(key, maxKey) > 0 {
			return true
		}
		keys = append(keys, key)
		return true
	})
	// sync.Map iterates in random order, sort for a deterministic scan
	sort.Slice(keys, func(i, j int) bool { return bytes.Compare(keys[i], keys[j]) < 0 })
	var fk, fv [][]byte
	for _, key := range keys {
		value, _ := m.data.Load(prefix + string(key))
		if value == nil {
			continue
		}
		v := value.([]byte)
		if !cond(key, v) {
			continue
		}
		fk = append(fk, key)
		fv = append(fv, v)
	}
	if len(fk) == 0 {
		return nil, nil, errors.Wrap(ErrNotExist, "filter returns no match")
	}
	return fk, fv, nil
}
