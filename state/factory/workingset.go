// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package factory

import (
	"context"
	"math/big"
	"sort"

	"github.com/iotexproject/go-pkgs/hash"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/action/protocol"
	accountutil "github.com/namechain/namechain-core/action/protocol/account/util"
	"github.com/namechain/namechain-core/db"
	"github.com/namechain/namechain-core/db/batch"
	"github.com/namechain/namechain-core/pkg/util/byteutil"
	"github.com/namechain/namechain-core/state"
)

var (
	stateDBMtc = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namechain_state_db",
			Help: "Namechain state DB",
		},
		[]string{"type"},
	)
	dbBatchSizeMtc = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "namechain_db_batch_size",
			Help: "DB batch size",
		},
		[]string{},
	)
)

func init() {
	prometheus.MustRegister(stateDBMtc)
	prometheus.MustRegister(dbBatchSizeMtc)
}

type (
	// WorkingSet defines an interface for the state changes of one block. It is
	// born one block past the committed height, collects the writes of the
	// block's actions, and commits them to the underlying DB in one batch.
	WorkingSet interface {
		protocol.StateManager
		// RunAction runs one action on top of the pending writes and returns
		// its receipt
		RunAction(context.Context, *action.SealedEnvelope) (*action.Receipt, error)
		// RunActions runs the block's actions in order
		RunActions(context.Context, []*action.SealedEnvelope) ([]*action.Receipt, error)
		// Finalize stamps the working set with its block height, no state can
		// change afterwards
		Finalize() error
		// Digest summarizes the pending writes
		Digest() (hash.Hash256, error)
		// Version is the height the working set builds
		Version() uint64
		commit() error
	}

	workingSet struct {
		blockHeight uint64
		finalized   bool
		cb          batch.CachedBatch
		dao         db.KVStore
	}
)

func newWorkingSet(height uint64, dao db.KVStore) *workingSet {
	return &workingSet{
		blockHeight: height,
		cb:          batch.NewCachedBatch(),
		dao:         dao,
	}
}

func (ws *workingSet) Version() uint64 {
	return ws.blockHeight
}

// Height returns the height the working set builds
func (ws *workingSet) Height() (uint64, error) {
	return ws.blockHeight, nil
}

// Digest returns the hash of the pending write queue
func (ws *workingSet) Digest() (hash.Hash256, error) {
	if !ws.finalized {
		return hash.ZeroHash256, errors.New("working set has not been finalized")
	}
	return hash.Hash256b(ws.cb.SerializeQueue(nil)), nil
}

// RunActions runs the block's actions in order
func (ws *workingSet) RunActions(ctx context.Context, elps []*action.SealedEnvelope) ([]*action.Receipt, error) {
	receipts := make([]*action.Receipt, 0, len(elps))
	for _, elp := range elps {
		receipt, err := ws.RunAction(ctx, elp)
		if err != nil {
			return nil, errors.Wrap(err, "error when run action")
		}
		receipts = append(receipts, receipt)
	}
	return receipts, nil
}

// RunAction runs one action on top of the pending writes and returns its
// receipt. An error means the action cannot be part of the block at all, a
// failure of the action itself comes back as a failure receipt.
func (ws *workingSet) RunAction(ctx context.Context, elp *action.SealedEnvelope) (*action.Receipt, error) {
	if ws.finalized {
		return nil, errors.Errorf("cannot run action on a finalized working set of height %d", ws.blockHeight)
	}
	blkCtx := protocol.MustGetBlockCtx(ctx)
	if blkCtx.BlockHeight != ws.blockHeight {
		return nil, errors.Errorf("invalid block height %d, %d expected", blkCtx.BlockHeight, ws.blockHeight)
	}
	caller := elp.SenderAddress()
	if caller == nil {
		return nil, errors.New("failed to get the sender address")
	}
	sender, err := accountutil.LoadAccount(ws, caller)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load the account of %s", caller.String())
	}
	// the action must spend the sender's exact pending nonce
	if pending := sender.PendingNonce(); elp.Nonce() != pending {
		if elp.Nonce() < pending {
			return nil, errors.Wrapf(action.ErrNonceTooLow, "nonce %d, pending nonce %d", elp.Nonce(), pending)
		}
		return nil, errors.Wrapf(action.ErrNonceTooHigh, "nonce %d, pending nonce %d", elp.Nonce(), pending)
	}
	actHash, err := elp.Hash()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get hash")
	}
	intrinsicGas, err := elp.IntrinsicGas()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get the intrinsic gas")
	}
	ctx = protocol.WithActionCtx(ctx, protocol.ActionCtx{
		Caller:       caller,
		ActionHash:   actHash,
		GasPrice:     elp.GasPrice(),
		IntrinsicGas: intrinsicGas,
		Nonce:        elp.Nonce(),
	})
	reg, ok := protocol.GetRegistry(ctx)
	if !ok {
		return nil, errors.New("registry is not found in context")
	}
	for _, p := range reg.All() {
		receipt, err := p.Handle(ctx, elp, ws)
		if err != nil {
			return nil, errors.Wrapf(err, "error when action %x mutates states", actHash)
		}
		if receipt != nil {
			return ws.chargeGasFee(ctx, receipt)
		}
	}
	return nil, errors.Errorf("the action type %T is not handled by any protocol", elp.Action())
}

// chargeGasFee moves the action's gas fee from the sender to the block
// producer. Running out of balance here invalidates the whole block, the
// sender's funds were checked when the receipt was made.
func (ws *workingSet) chargeGasFee(ctx context.Context, receipt *action.Receipt) (*action.Receipt, error) {
	actionCtx := protocol.MustGetActionCtx(ctx)
	blkCtx := protocol.MustGetBlockCtx(ctx)
	gasFee := new(big.Int).Mul(actionCtx.GasPrice, new(big.Int).SetUint64(receipt.GasConsumed))
	if gasFee.Sign() <= 0 {
		return receipt, nil
	}
	if blkCtx.Producer == nil {
		return nil, errors.New("no block producer to receive the gas fee")
	}
	sender, err := accountutil.LoadOrCreateAccount(ws, actionCtx.Caller)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load the account of %s", actionCtx.Caller.String())
	}
	if err := sender.SubBalance(gasFee); err != nil {
		return nil, errors.Wrapf(err, "failed to charge the gas fee of action %x", receipt.ActionHash)
	}
	if err := accountutil.StoreAccount(ws, actionCtx.Caller, sender); err != nil {
		return nil, errors.Wrap(err, "failed to update the sender")
	}
	producer, err := accountutil.LoadOrCreateAccount(ws, blkCtx.Producer)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load the account of %s", blkCtx.Producer.String())
	}
	if err := producer.AddBalance(gasFee); err != nil {
		return nil, errors.Wrap(err, "failed to credit the producer")
	}
	if err := accountutil.StoreAccount(ws, blkCtx.Producer, producer); err != nil {
		return nil, errors.Wrap(err, "failed to update the producer")
	}
	receipt.AddTransactionLogs(&action.TransactionLog{
		Type:      action.GasFeeLog,
		Sender:    actionCtx.Caller.String(),
		Recipient: blkCtx.Producer.String(),
		Amount:    gasFee,
	})
	return receipt, nil
}

// Finalize stamps the working set with its block height
func (ws *workingSet) Finalize() error {
	if ws.finalized {
		return errors.New("working set has been finalized")
	}
	ws.finalized = true
	ws.cb.Put(AccountKVNamespace, []byte(CurrentHeightKey), byteutil.Uint64ToBytes(ws.blockHeight), "failed to store the block height")
	return nil
}

func (ws *workingSet) Snapshot() int {
	return ws.cb.Snapshot()
}

func (ws *workingSet) Revert(snapshot int) error {
	return ws.cb.Revert(snapshot)
}

// commit writes the pending writes into the DB in one batch
func (ws *workingSet) commit() error {
	if !ws.finalized {
		return errors.New("cannot commit a working set that has not been finalized")
	}
	dbBatchSizeMtc.WithLabelValues().Set(float64(ws.cb.Size()))
	if err := ws.dao.WriteBatch(ws.cb); err != nil {
		return errors.Wrap(err, "failed to write the pending writes into the underlying DB")
	}
	ws.cb.Clear()
	return nil
}

// State reads a state, the pending writes shadow the committed store
func (ws *workingSet) State(s interface{}, opts ...protocol.StateOption) (uint64, error) {
	stateDBMtc.WithLabelValues("get").Inc()
	cfg, err := processOptions(opts...)
	if err != nil {
		return ws.blockHeight, err
	}
	value, err := ws.cb.Get(cfg.Namespace, cfg.Key)
	switch {
	case err == nil:
		return ws.blockHeight, state.Deserialize(s, value)
	case errors.Cause(err) == batch.ErrAlreadyDeleted:
		return ws.blockHeight, errors.Wrapf(state.ErrStateNotExist, "state of %x was deleted in this block", cfg.Key)
	}
	value, err = ws.dao.Get(cfg.Namespace, cfg.Key)
	if err != nil {
		if errors.Cause(err) == db.ErrNotExist || errors.Cause(err) == db.ErrBucketNotExist {
			return ws.blockHeight, errors.Wrapf(state.ErrStateNotExist, "state of %x doesn't exist", cfg.Key)
		}
		return ws.blockHeight, errors.Wrapf(err, "error when getting the state of %x", cfg.Key)
	}
	return ws.blockHeight, state.Deserialize(s, value)
}

// States lists the states under one namespace, pending writes included
func (ws *workingSet) States(opts ...protocol.StateOption) (uint64, state.Iterator, error) {
	cfg, err := processOptions(opts...)
	if err != nil {
		return ws.blockHeight, nil, err
	}
	if cfg.Key != nil {
		return ws.blockHeight, nil, errors.Wrap(ErrNotSupported, "key option is not supported for listing states")
	}
	merged := make(map[string][]byte)
	keys, values, err := ws.dao.Filter(cfg.Namespace, func(k, v []byte) bool { return true }, nil, nil)
	switch {
	case err == nil:
		for i := range keys {
			merged[string(keys[i])] = values[i]
		}
	case errors.Cause(err) == db.ErrNotExist, errors.Cause(err) == db.ErrBucketNotExist:
		// nothing committed under the namespace yet
	default:
		return ws.blockHeight, nil, err
	}
	// replay the pending writes of the namespace in queue order
	for i := 0; i < ws.cb.Size(); i++ {
		e, err := ws.cb.Entry(i)
		if err != nil {
			return ws.blockHeight, nil, err
		}
		if e.Namespace() != cfg.Namespace {
			continue
		}
		switch e.WriteType() {
		case batch.Put:
			merged[string(e.Key())] = e.Value()
		case batch.Delete:
			delete(merged, string(e.Key()))
		}
	}
	if len(merged) == 0 {
		return ws.blockHeight, nil, errors.Wrapf(state.ErrStateNotExist, "namespace %s", cfg.Namespace)
	}
	sortedKeys := make([]string, 0, len(merged))
	for k := range merged {
		sortedKeys = append(sortedKeys, k)
	}
	sort.Strings(sortedKeys)
	iterKeys := make([][]byte, 0, len(sortedKeys))
	iterValues := make([][]byte, 0, len(sortedKeys))
	for _, k := range sortedKeys {
		iterKeys = append(iterKeys, []byte(k))
		iterValues = append(iterValues, merged[k])
	}
	iter, err := state.NewIterator(iterKeys, iterValues)
	if err != nil {
		return ws.blockHeight, nil, err
	}
	return ws.blockHeight, iter, nil
}

// PutState buffers a state write
func (ws *workingSet) PutState(s interface{}, opts ...protocol.StateOption) (uint64, error) {
	stateDBMtc.WithLabelValues("put").Inc()
	cfg, err := processOptions(opts...)
	if err != nil {
		return ws.blockHeight, err
	}
	value, err := state.Serialize(s)
	if err != nil {
		return ws.blockHeight, errors.Wrapf(err, "failed to convert account %v to bytes", s)
	}
	ws.cb.Put(cfg.Namespace, cfg.Key, value, "error when putting k = %x", cfg.Key)
	return ws.blockHeight, nil
}

// DelState buffers a state deletion
func (ws *workingSet) DelState(opts ...protocol.StateOption) (uint64, error) {
	stateDBMtc.WithLabelValues("delete").Inc()
	cfg, err := processOptions(opts...)
	if err != nil {
		return ws.blockHeight, err
	}
	ws.cb.Delete(cfg.Namespace, cfg.Key, "error when deleting k = %x", cfg.Key)
	return ws.blockHeight, nil
}
