// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package batch

import (
	"sync"

	"github.com/pkg/errors"
)

type (
	// baseKVStoreBatch is the base implementation of KVStoreBatch
	baseKVStoreBatch struct {
		mutex       sync.RWMutex
		fillPercent map[string]float64
		writeQueue  []*WriteInfo
	}

	// cachedBatch implements the CachedBatch interface
	cachedBatch struct {
		lock         sync.RWMutex
		kvStoreBatch *baseKVStoreBatch
		tag          int            // latest snapshot + 1
		batchShots   []int          // write queue size at each snapshot
		caches       []KVStoreCache // snapshot stack of cached <k, v>
		keyTags      map[kvCacheKey]*kvCacheValue
		tagKeys      [][]kvCacheKey
	}
)

// NewBatch returns a batch
func NewBatch() KVStoreBatch {
	return &baseKVStoreBatch{
		fillPercent: make(map[string]float64),
	}
}

// Lock locks the batch
func (b *baseKVStoreBatch) Lock() {
	b.mutex.Lock()
}

// Unlock unlocks the batch
func (b *baseKVStoreBatch) Unlock() {
	b.mutex.Unlock()
}

// ClearAndUnlock clears the write queue and unlocks the batch
func (b *baseKVStoreBatch) ClearAndUnlock() {
	defer b.mutex.Unlock()
	b.writeQueue = nil
}

// Put inserts a <key, value> record
func (b *baseKVStoreBatch) Put(namespace string, key, value []byte, errorFormat string, errorArgs ...interface{}) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.batch(Put, namespace, key, value, errorFormat, errorArgs)
}

// Delete deletes a record
func (b *baseKVStoreBatch) Delete(namespace string, key []byte, errorFormat string, errorArgs ...interface{}) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.batch(Delete, namespace, key, nil, errorFormat, errorArgs)
}

// Size returns the size of batch
func (b *baseKVStoreBatch) Size() int {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return len(b.writeQueue)
}

// Entry returns the entry at the index
func (b *baseKVStoreBatch) Entry(index int) (*WriteInfo, error) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	if index < 0 || index >= len(b.writeQueue) {
		return nil, errors.Wrap(ErrOutOfBound, "index out of range")
	}
	return b.writeQueue[index], nil
}

// SerializeQueue serializes the whole write queue, skipping the filtered writes
func (b *baseKVStoreBatch) SerializeQueue(filter WriteInfoFilter) []byte {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	bytes := make([]byte, 0)
	for _, wi := range b.writeQueue {
		if filter != nil && filter(wi) {
			continue
		}
		bytes = append(bytes, wi.Serialize()...)
	}
	return bytes
}

// ExcludeEntries returns a new batch with the entries of the given write type in the
// given namespace excluded
func (b *baseKVStoreBatch) ExcludeEntries(namespace string, wt WriteType) KVStoreBatch {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	c := &baseKVStoreBatch{
		fillPercent: make(map[string]float64),
		writeQueue:  make([]*WriteInfo, 0, len(b.writeQueue)),
	}
	for k, v := range b.fillPercent {
		c.fillPercent[k] = v
	}
	for _, wi := range b.writeQueue {
		if (namespace == "" || namespace == wi.namespace) && wi.writeType == wt {
			continue
		}
		c.writeQueue = append(c.writeQueue, wi)
	}
	return c
}

// Clear clear write queue
func (b *baseKVStoreBatch) Clear() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.writeQueue = nil
	b.fillPercent = make(map[string]float64)
}

// CheckFillPercent returns the fill percent of a namespace
func (b *baseKVStoreBatch) CheckFillPercent(ns string) (float64, bool) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	p, ok := b.fillPercent[ns]
	return p, ok
}

// AddFillPercent sets the fill percent of a namespace
func (b *baseKVStoreBatch) AddFillPercent(ns string, percent float64) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.fillPercent[ns] = percent
}

// batch puts an entry into the write queue, not thread safe
func (b *baseKVStoreBatch) batch(op WriteType, namespace string, key, value []byte, errorFormat string, errorArgs interface{}) {
	b.writeQueue = append(b.writeQueue, NewWriteInfo(op, namespace, key, value, errorFormat, errorArgs))
}

// truncate resets the write queue to the given size, not thread safe
func (b *baseKVStoreBatch) truncate(size int) {
	b.writeQueue = b.writeQueue[:size]
}

// NewCachedBatch returns a new cached batch buffer
func NewCachedBatch() CachedBatch {
	cb := &cachedBatch{
		kvStoreBatch: &baseKVStoreBatch{
			fillPercent: make(map[string]float64),
		},
	}
	cb.clear()
	return cb
}

// Lock locks the batch
func (cb *cachedBatch) Lock() {
	cb.lock.Lock()
}

// Unlock unlocks the batch
func (cb *cachedBatch) Unlock() {
	cb.lock.Unlock()
}

// ClearAndUnlock clears the write queue and unlocks the batch
func (cb *cachedBatch) ClearAndUnlock() {
	defer cb.lock.Unlock()
	cb.clear()
}

// Put inserts a <key, value> record
func (cb *cachedBatch) Put(namespace string, key, value []byte, errorFormat string, errorArgs ...interface{}) {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	kvk := kvCacheKey{namespace, string(key)}
	cb.touchKey(kvk)
	cb.currentCache().Write(&kvk, value)
	cb.kvStoreBatch.batch(Put, namespace, key, value, errorFormat, errorArgs)
}

// Delete deletes a record
func (cb *cachedBatch) Delete(namespace string, key []byte, errorFormat string, errorArgs ...interface{}) {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	kvk := kvCacheKey{namespace, string(key)}
	cb.touchKey(kvk)
	cb.currentCache().Evict(&kvk)
	cb.kvStoreBatch.batch(Delete, namespace, key, nil, errorFormat, errorArgs)
}

// Get retrieves a record from the batch-local cache
func (cb *cachedBatch) Get(namespace string, key []byte) ([]byte, error) {
	cb.lock.RLock()
	defer cb.lock.RUnlock()
	kvk := kvCacheKey{namespace, string(key)}
	if tags, ok := cb.keyTags[kvk]; ok {
		for i := tags.len() - 1; i >= 0; i-- {
			v, err := cb.caches[tags.getAt(i)].Read(&kvk)
			if err == ErrNotExist {
				continue
			}
			return v, err
		}
	}
	return nil, ErrNotExist
}

// Snapshot takes a snapshot of current cached batch
func (cb *cachedBatch) Snapshot() int {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	cb.batchShots = append(cb.batchShots, len(cb.kvStoreBatch.writeQueue))
	cb.caches = append(cb.caches, NewKVCache())
	cb.tagKeys = append(cb.tagKeys, nil)
	cb.tag++
	return cb.tag - 1
}

// Revert sets the cached batch to the state at the given snapshot
func (cb *cachedBatch) Revert(snapshot int) error {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	if snapshot < 0 || snapshot >= cb.tag {
		return errors.Wrapf(ErrOutOfBound, "invalid snapshot number = %d", snapshot)
	}
	// untag keys touched after the snapshot
	for t := snapshot + 1; t <= cb.tag; t++ {
		for _, kvk := range cb.tagKeys[t] {
			if tags, ok := cb.keyTags[kvk]; ok {
				tags.pop()
				if tags.len() == 0 {
					delete(cb.keyTags, kvk)
				}
			}
		}
	}
	cb.tag = snapshot + 1
	cb.batchShots = cb.batchShots[:cb.tag]
	cb.caches = cb.caches[:cb.tag+1]
	cb.caches[cb.tag].Clear()
	cb.tagKeys = cb.tagKeys[:cb.tag+1]
	cb.tagKeys[cb.tag] = nil
	cb.kvStoreBatch.truncate(cb.batchShots[snapshot])
	return nil
}

// ResetSnapshots() clears all snapshots and collapses the cache stack into one layer
func (cb *cachedBatch) ResetSnapshots() {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	collapsed := NewKVCache()
	for kvk, tags := range cb.keyTags {
		k := kvk
		v, err := cb.caches[tags.last()].Read(&k)
		switch err {
		case nil:
			collapsed.Write(&k, v)
		case ErrAlreadyDeleted:
			collapsed.Evict(&k)
		}
		tags.reset()
	}
	cb.tag = 0
	cb.batchShots = nil
	cb.caches = []KVStoreCache{collapsed}
	cb.tagKeys = [][]kvCacheKey{nil}
}

// Size returns the size of batch
func (cb *cachedBatch) Size() int {
	return cb.kvStoreBatch.Size()
}

// Entry returns the entry at the index
func (cb *cachedBatch) Entry(i int) (*WriteInfo, error) {
	return cb.kvStoreBatch.Entry(i)
}

// SerializeQueue serializes the whole write queue, skipping the filtered writes
func (cb *cachedBatch) SerializeQueue(filter WriteInfoFilter) []byte {
	return cb.kvStoreBatch.SerializeQueue(filter)
}

// ExcludeEntries returns a new batch with the entries of the given write type in the
// given namespace excluded
func (cb *cachedBatch) ExcludeEntries(namespace string, wt WriteType) KVStoreBatch {
	return cb.kvStoreBatch.ExcludeEntries(namespace, wt)
}

// Clear clears the cached batch
func (cb *cachedBatch) Clear() {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	cb.clear()
}

// CheckFillPercent returns the fill percent of a namespace
func (cb *cachedBatch) CheckFillPercent(ns string) (float64, bool) {
	return cb.kvStoreBatch.CheckFillPercent(ns)
}

// AddFillPercent sets the fill percent of a namespace
func (cb *cachedBatch) AddFillPercent(ns string, percent float64) {
	cb.kvStoreBatch.AddFillPercent(ns, percent)
}

// clear resets the cached batch, not thread safe
func (cb *cachedBatch) clear() {
	cb.kvStoreBatch.Clear()
	cb.tag = 0
	cb.batchShots = nil
	cb.caches = []KVStoreCache{NewKVCache()}
	cb.keyTags = make(map[kvCacheKey]*kvCacheValue)
	cb.tagKeys = [][]kvCacheKey{nil}
}

// currentCache returns the most recent cache layer, not thread safe
func (cb *cachedBatch) currentCache() KVStoreCache {
	return cb.caches[cb.tag]
}

// touchKey tags the key as written in the current batch segment, not thread safe
func (cb *cachedBatch) touchKey(kvk kvCacheKey) {
	tags, ok := cb.keyTags[kvk]
	if !ok {
		cb.keyTags[kvk] = newkvCacheValue([]int{cb.tag})
		cb.tagKeys[cb.tag] = append(cb.tagKeys[cb.tag], kvk)
		return
	}
	if tags.last() != cb.tag {
		tags.append(cb.tag)
		cb.tagKeys[cb.tag] = append(cb.tagKeys[cb.tag], kvk)
	}
}
