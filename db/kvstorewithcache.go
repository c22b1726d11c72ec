// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package db

import (
	"context"
	"encoding/hex"
	"sync"

	"github.com/iotexproject/go-pkgs/cache"

	"github.com/namechain/namechain-core/db/batch"
)

// kvStoreWithCache wraps a KVStore with per-namespace LRU read caches. The
// block store is append-heavy and read-mostly, so keeping the hot keys in
// memory takes API reads off the disk store.
type kvStoreWithCache struct {
	store  KVStore
	mutex  sync.RWMutex // guards caches
	caches map[string]cache.LRUCache
	size   int
}

// NewKvStoreWithCache wraps the store with LRU read caches holding up to
// cacheSize entries per namespace. A non-positive size returns the store
// untouched.
func NewKvStoreWithCache(kvstore KVStore, cacheSize int) KVStore {
	if cacheSize <= 0 {
		return kvstore
	}
	return &kvStoreWithCache{
		store:  kvstore,
		caches: make(map[string]cache.LRUCache),
		size:   cacheSize,
	}
}

func (kvc *kvStoreWithCache) Start(ctx context.Context) error {
	return kvc.store.Start(ctx)
}

func (kvc *kvStoreWithCache) Stop(ctx context.Context) error {
	kvc.mutex.Lock()
	defer kvc.mutex.Unlock()
	for _, c := range kvc.caches {
		c.Clear()
	}
	return kvc.store.Stop(ctx)
}

// Put writes through to the store and refreshes the key when it is cached
func (kvc *kvStoreWithCache) Put(namespace string, key, value []byte) error {
	if err := kvc.store.Put(namespace, key, value); err != nil {
		return err
	}
	kvc.refresh(namespace, key, value)
	return nil
}

// Get serves cached keys from memory and fills the cache on a miss
func (kvc *kvStoreWithCache) Get(namespace string, key []byte) ([]byte, error) {
	if value, ok := kvc.lookup(namespace, key); ok {
		return value, nil
	}
	value, err := kvc.store.Get(namespace, key)
	if err != nil {
		return nil, err
	}
	kvc.fill(namespace, key, value)
	return value, nil
}

// Filter passes through, range reads bypass the caches
func (kvc *kvStoreWithCache) Filter(namespace string, cond Condition, minKey, maxKey []byte) ([][]byte, [][]byte, error) {
	return kvc.store.Filter(namespace, cond, minKey, maxKey)
}

// Delete removes the record from the store and evicts it from the cache
func (kvc *kvStoreWithCache) Delete(namespace string, key []byte) error {
	if err := kvc.store.Delete(namespace, key); err != nil {
		return err
	}
	kvc.evict(namespace, key)
	return nil
}

// WriteBatch commits the batch to the store, then replays its writes onto the
// caches so cached keys never go stale
func (kvc *kvStoreWithCache) WriteBatch(kvsb batch.KVStoreBatch) error {
	if err := kvc.store.WriteBatch(kvsb); err != nil {
		return err
	}
	kvsb.Lock()
	defer kvsb.Unlock()
	for i := 0; i < kvsb.Size(); i++ {
		write, err := kvsb.Entry(i)
		if err != nil {
			return err
		}
		switch write.WriteType() {
		case batch.Put:
			kvc.refresh(write.Namespace(), write.Key(), write.Value())
		case batch.Delete:
			kvc.evict(write.Namespace(), write.Key())
		}
	}
	return nil
}

func (kvc *kvStoreWithCache) lookup(namespace string, key []byte) ([]byte, bool) {
	kvc.mutex.RLock()
	defer kvc.mutex.RUnlock()
	c, ok := kvc.caches[namespace]
	if !ok {
		return nil, false
	}
	data, ok := c.Get(hex.EncodeToString(key))
	if !ok {
		return nil, false
	}
	value, ok := data.([]byte)
	return value, ok
}

func (kvc *kvStoreWithCache) fill(namespace string, key, value []byte) {
	kvc.mutex.Lock()
	defer kvc.mutex.Unlock()
	c, ok := kvc.caches[namespace]
	if !ok {
		c = cache.NewThreadSafeLruCache(kvc.size)
		kvc.caches[namespace] = c
	}
	c.Add(hex.EncodeToString(key), value)
}

// refresh overwrites the cached value only when the key is already cached, a
// plain write must not grow the cache with keys nobody reads
func (kvc *kvStoreWithCache) refresh(namespace string, key, value []byte) {
	kvc.mutex.Lock()
	defer kvc.mutex.Unlock()
	c, ok := kvc.caches[namespace]
	if !ok {
		return
	}
	k := hex.EncodeToString(key)
	if _, ok := c.Get(k); ok {
		c.Add(k, value)
	}
}

func (kvc *kvStoreWithCache) evict(namespace string, key []byte) {
	kvc.mutex.Lock()
	defer kvc.mutex.Unlock()
	if c, ok := kvc.caches[namespace]; ok {
		c.Remove(hex.EncodeToString(key))
	}
}
