// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package blockdao

import (
	"bytes"
	"context"
	"sync"

	"github.com/iotexproject/go-pkgs/hash"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/blockchain/block"
	"github.com/namechain/namechain-core/db"
	"github.com/namechain/namechain-core/db/batch"
	"github.com/namechain/namechain-core/pkg/compress"
	"github.com/namechain/namechain-core/pkg/lifecycle"
	"github.com/namechain/namechain-core/pkg/util/byteutil"
)

const (
	blockNS      = "Block"
	hashHeightNS = "BlockHashHeight"
	actionHashNS = "ActionHashHeight"
)

var (
	tipHeightKey = []byte("tipHeight")
	heightPrefix = []byte("height.")
	hashPrefix   = []byte("hash.")
)

// ErrNotFound is the error when the block or receipt is not found
var ErrNotFound = errors.New("not found in block DAO")

var blockDAOMtc = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "namechain_block_dao",
		Help: "Namechain block DAO",
	},
	[]string{"type"},
)

func init() {
	prometheus.MustRegister(blockDAOMtc)
}

// BlockDAO defines an interface to persist blocks. Blocks are stored by hash,
// with a two-way hash and height index, and the receipts travel inside the
// stored block.
type BlockDAO interface {
	lifecycle.StartStopper
	Height() (uint64, error)
	GetBlockHash(uint64) (hash.Hash256, error)
	GetBlockHeight(hash.Hash256) (uint64, error)
	GetBlock(hash.Hash256) (*block.Block, error)
	GetBlockByHeight(uint64) (*block.Block, error)
	GetReceipt(hash.Hash256) (*action.Receipt, error)
	PutBlock(*block.Block) error
}

// blockDAO compresses the stored block bodies when the config carries a
// compressor. The compressor must stay the same for the life of the DB.
type blockDAO struct {
	mutex      sync.RWMutex
	kvStore    db.KVStore
	compressor string
	lifecycle  lifecycle.Lifecycle
}

// NewBlockDAO creates a block DAO on top of a KVStore
func NewBlockDAO(kvStore db.KVStore, compressor string) BlockDAO {
	dao := &blockDAO{
		kvStore:    kvStore,
		compressor: compressor,
	}
	dao.lifecycle.Add(kvStore)
	return dao
}

// Start starts the block DAO and writes the initial tip height on a fresh DB
func (dao *blockDAO) Start(ctx context.Context) error {
	dao.mutex.Lock()
	defer dao.mutex.Unlock()
	if err := dao.lifecycle.OnStart(ctx); err != nil {
		return errors.Wrap(err, "failed to start block DAO")
	}
	_, err := dao.kvStore.Get(blockNS, tipHeightKey)
	switch errors.Cause(err) {
	case nil:
		return nil
	case db.ErrNotExist, db.ErrBucketNotExist:
		return dao.kvStore.Put(blockNS, tipHeightKey, byteutil.Uint64ToBytes(0))
	default:
		return err
	}
}

func (dao *blockDAO) Stop(ctx context.Context) error {
	dao.mutex.Lock()
	defer dao.mutex.Unlock()
	return dao.lifecycle.OnStop(ctx)
}

// Height returns the height of the newest stored block
func (dao *blockDAO) Height() (uint64, error) {
	dao.mutex.RLock()
	defer dao.mutex.RUnlock()
	value, err := dao.kvStore.Get(blockNS, tipHeightKey)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get the tip height")
	}
	return byteutil.BytesToUint64(value), nil
}

// GetBlockHash returns the hash of the block at the given height
func (dao *blockDAO) GetBlockHash(height uint64) (hash.Hash256, error) {
	dao.mutex.RLock()
	defer dao.mutex.RUnlock()
	return dao.getBlockHash(height)
}

func (dao *blockDAO) getBlockHash(height uint64) (hash.Hash256, error) {
	key := append(heightPrefix, byteutil.Uint64ToBytes(height)...)
	value, err := dao.kvStore.Get(hashHeightNS, key)
	if err != nil {
		return hash.ZeroHash256, errors.Wrapf(ErrNotFound, "no block at height %d", height)
	}
	if len(value) != len(hash.ZeroHash256) {
		return hash.ZeroHash256, errors.Errorf("corrupted block hash at height %d", height)
	}
	return hash.BytesToHash256(value), nil
}

// GetBlockHeight returns the height of the block with the given hash
func (dao *blockDAO) GetBlockHeight(h hash.Hash256) (uint64, error) {
	dao.mutex.RLock()
	defer dao.mutex.RUnlock()
	key := append(hashPrefix, h[:]...)
	value, err := dao.kvStore.Get(hashHeightNS, key)
	if err != nil {
		return 0, errors.Wrapf(ErrNotFound, "no block with hash %x", h)
	}
	return byteutil.BytesToUint64(value), nil
}

// GetBlock returns the block with the given hash
func (dao *blockDAO) GetBlock(h hash.Hash256) (*block.Block, error) {
	dao.mutex.RLock()
	defer dao.mutex.RUnlock()
	return dao.getBlock(h)
}

// GetBlockByHeight returns the block at the given height
func (dao *blockDAO) GetBlockByHeight(height uint64) (*block.Block, error) {
	dao.mutex.RLock()
	defer dao.mutex.RUnlock()
	h, err := dao.getBlockHash(height)
	if err != nil {
		return nil, err
	}
	return dao.getBlock(h)
}

func (dao *blockDAO) getBlock(h hash.Hash256) (*block.Block, error) {
	blockDAOMtc.WithLabelValues("get_block").Inc()
	value, err := dao.kvStore.Get(blockNS, h[:])
	if err != nil {
		return nil, errors.Wrapf(ErrNotFound, "no block with hash %x", h)
	}
	if dao.compressor != "" {
		if value, err = compress.Decompress(value, dao.compressor); err != nil {
			return nil, errors.Wrapf(err, "failed to decompress block %x", h)
		}
	}
	blk := &block.Block{}
	if err := blk.Deserialize(value); err != nil {
		return nil, errors.Wrapf(err, "failed to deserialize block %x", h)
	}
	return blk, nil
}

// GetReceipt returns the receipt of the action with the given hash
func (dao *blockDAO) GetReceipt(actHash hash.Hash256) (*action.Receipt, error) {
	dao.mutex.RLock()
	defer dao.mutex.RUnlock()
	value, err := dao.kvStore.Get(actionHashNS, actHash[:])
	if err != nil {
		return nil, errors.Wrapf(ErrNotFound, "no action with hash %x", actHash)
	}
	h, err := dao.getBlockHash(byteutil.BytesToUint64(value))
	if err != nil {
		return nil, err
	}
	blk, err := dao.getBlock(h)
	if err != nil {
		return nil, err
	}
	for _, receipt := range blk.Receipts {
		if bytes.Equal(receipt.ActionHash[:], actHash[:]) {
			return receipt, nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "no receipt for action %x", actHash)
}

// PutBlock stores the block and its indexes in one batch
func (dao *blockDAO) PutBlock(blk *block.Block) error {
	dao.mutex.Lock()
	defer dao.mutex.Unlock()
	blockDAOMtc.WithLabelValues("put_block").Inc()

	serialized, err := blk.Serialize()
	if err != nil {
		return errors.Wrap(err, "failed to serialize block")
	}
	if dao.compressor != "" {
		if serialized, err = compress.Compress(serialized, dao.compressor); err != nil {
			return errors.Wrap(err, "failed to compress block")
		}
	}
	h, err := blk.HashBlock()
	if err != nil {
		return err
	}
	height := byteutil.Uint64ToBytes(blk.Height())

	b := batch.NewBatch()
	b.Put(blockNS, h[:], serialized, "failed to put block")
	b.Put(hashHeightNS, append(hashPrefix, h[:]...), height, "failed to put hash -> height index")
	b.Put(hashHeightNS, append(heightPrefix, height...), h[:], "failed to put height -> hash index")
	for _, act := range blk.Actions {
		actHash, err := act.Hash()
		if err != nil {
			return err
		}
		b.Put(actionHashNS, actHash[:], height, "failed to put action -> height index")
	}

	value, err := dao.kvStore.Get(blockNS, tipHeightKey)
	if err != nil {
		return errors.Wrap(err, "failed to get the tip height")
	}
	if blk.Height() > byteutil.BytesToUint64(value) {
		b.Put(blockNS, tipHeightKey, height, "failed to put the tip height")
	}
	return dao.kvStore.WriteBatch(b)
}
