// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package actpool

import (
	"context"
	"encoding/hex"
	"math/big"
	"sort"
	"strings"
	"sync"

	"github.com/iotexproject/go-pkgs/hash"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/action/protocol"
	accountutil "github.com/namechain/namechain-core/action/protocol/account/util"
	"github.com/namechain/namechain-core/blockchain/block"
	"github.com/namechain/namechain-core/blockchain/genesis"
	"github.com/namechain/namechain-core/pkg/log"
	"github.com/namechain/namechain-core/pkg/prometheustimer"
	"github.com/namechain/namechain-core/pkg/tracer"
)

var (
	_actpoolMtc = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "namechain_actpool_rejection_metrics",
		Help: "actpool rejection metrics.",
	}, []string{"type"})

	_actpoolSizeMtc = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "namechain_actpool_size_metrics",
		Help: "actpool size metrics.",
	}, []string{"type"})
)

func init() {
	prometheus.MustRegister(_actpoolMtc)
	prometheus.MustRegister(_actpoolSizeMtc)
}

// ActPool is the interface of actpool
type ActPool interface {
	action.SealedEnvelopeValidator
	// Reset resets actpool state
	Reset()
	// PendingActionMap returns an action map with all accepted actions
	PendingActionMap() map[string][]*action.SealedEnvelope
	// Add adds an action into the pool after passing validation
	Add(ctx context.Context, act *action.SealedEnvelope) error
	// GetPendingNonce returns pending nonce in pool given an account address
	GetPendingNonce(addr string) (uint64, error)
	// GetUnconfirmedActs returns unconfirmed actions in pool given an account address
	GetUnconfirmedActs(addr string) []*action.SealedEnvelope
	// GetActionByHash returns the pending action in pool given action's hash
	GetActionByHash(hash hash.Hash256) (*action.SealedEnvelope, error)
	// GetSize returns the act pool size
	GetSize() uint64
	// GetCapacity returns the act pool capacity
	GetCapacity() uint64
	// GetGasSize returns the act pool gas size
	GetGasSize() uint64
	// GetGasCapacity returns the act pool gas capacity
	GetGasCapacity() uint64
	// DeleteAction deletes an invalid action from pool
	DeleteAction(address.Address)
	// ReceiveBlock will be called when a new block is committed
	ReceiveBlock(*block.Block) error

	AddActionEnvelopeValidators(...action.SealedEnvelopeValidator)
}

// SortedActions is a slice of actions that implements sort.Interface to sort by nonce
type SortedActions []*action.SealedEnvelope

func (p SortedActions) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }
func (p SortedActions) Len() int           { return len(p) }
func (p SortedActions) Less(i, j int) bool { return p[i].Nonce() < p[j].Nonce() }

// actPool implements ActPool interface
type actPool struct {
	mutex                    sync.RWMutex
	cfg                      Config
	g                        genesis.Genesis
	sf                       protocol.StateReader
	accountActs              map[string]ActQueue
	accountDesActs           map[string]map[hash.Hash256]*action.SealedEnvelope
	allActions               map[hash.Hash256]*action.SealedEnvelope
	gasInPool                uint64
	minGasPrice              *big.Int
	actionEnvelopeValidators []action.SealedEnvelopeValidator
	timerFactory             *prometheustimer.TimerFactory
	senderBlackList          map[string]bool
}

// NewActPool constructs a new actpool
func NewActPool(g genesis.Genesis, sf protocol.StateReader, cfg Config) (ActPool, error) {
	if sf == nil {
		return nil, errors.New("try to attach a nil state reader")
	}

	senderBlackList := make(map[string]bool)
	for _, bannedSender := range cfg.BlackList {
		senderBlackList[bannedSender] = true
	}

	ap := &actPool{
		cfg:             cfg,
		g:               g,
		sf:              sf,
		minGasPrice:     cfg.MinGasPrice(),
		senderBlackList: senderBlackList,
		accountActs:     make(map[string]ActQueue),
		accountDesActs:  make(map[string]map[hash.Hash256]*action.SealedEnvelope),
		allActions:      make(map[hash.Hash256]*action.SealedEnvelope),
	}
	timerFactory, err := prometheustimer.New(
		"namechain_actpool_perf",
		"Performance of the action pool",
		[]string{"type"},
		[]string{"default"},
	)
	if err != nil {
		return nil, err
	}
	ap.timerFactory = timerFactory
	return ap, nil
}

func (ap *actPool) AddActionEnvelopeValidators(fs ...action.SealedEnvelopeValidator) {
	ap.actionEnvelopeValidators = append(ap.actionEnvelopeValidators, fs...)
}

// Reset resets actpool state
// Step I: remove all the actions in actpool that have already been committed to block
// Step II: update pending balance of each account if it still exists in pool
// Step III: update queue's status in each account and remove invalid actions following queue's update
// Specifically, first reset the pending nonce based on confirmed nonce in order to prevent omitting reevaluation of
// unconfirmed but pending actions in pool after update of pending balance
// Then starting from the current confirmed nonce, iteratively update pending nonce if nonces are consecutive and pending
// balance is sufficient, and remove all the subsequent actions once the pending balance becomes insufficient
func (ap *actPool) Reset() {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	ap.reset()
}

func (ap *actPool) ReceiveBlock(*block.Block) error {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	ap.reset()
	return nil
}

// PendingActionMap returns an action map with all accepted actions, in nonce order per account
func (ap *actPool) PendingActionMap() map[string][]*action.SealedEnvelope {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	// Remove the actions that are already timed out
	ap.reset()

	actionMap := make(map[string][]*action.SealedEnvelope)
	for from, queue := range ap.accountActs {
		actionMap[from] = append(actionMap[from], queue.PendingActs()...)
	}
	return actionMap
}

func (ap *actPool) Add(ctx context.Context, act *action.SealedEnvelope) error {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	ctx, span := tracer.NewSpan(ap.context(ctx), "actPool.Add")
	defer span.End()

	// Reject action if pool space is full
	if uint64(len(ap.allActions)) >= ap.cfg.MaxNumActsPerPool {
		_actpoolMtc.WithLabelValues("overMaxNumActsPerPool").Inc()
		return action.ErrTxPoolOverflow
	}
	span.AddEvent("act.IntrinsicGas")
	intrinsicGas, err := act.IntrinsicGas()
	if err != nil {
		_actpoolMtc.WithLabelValues("failedGetIntrinsicGas").Inc()
		return err
	}
	if ap.gasInPool+intrinsicGas > ap.cfg.MaxGasLimitPerPool {
		_actpoolMtc.WithLabelValues("overMaxGasLimitPerPool").Inc()
		return action.ErrGasLimit
	}
	hash, err := act.Hash()
	if err != nil {
		return err
	}
	// Reject action if it already exists in pool
	if _, exist := ap.allActions[hash]; exist {
		_actpoolMtc.WithLabelValues("existedAction").Inc()
		return action.ErrExistedInPool
	}
	// Reject action with a mismatching chain ID, zero is tolerated for legacy signers
	if cid := act.ChainID(); cid != ap.g.ChainID && cid != 0 {
		_actpoolMtc.WithLabelValues("wrongChainID").Inc()
		return errors.Wrapf(action.ErrChainID, "invalid chainID %d, expecting %d", cid, ap.g.ChainID)
	}
	// Reject action if the gas price is lower than the threshold
	if act.GasPrice().Cmp(ap.minGasPrice) < 0 {
		_actpoolMtc.WithLabelValues("gasPriceLower").Inc()
		log.L().Info("action rejected due to low gas price",
			zap.String("actionHash", hex.EncodeToString(hash[:])),
			zap.String("gasPrice", act.GasPrice().String()))
		return action.ErrUnderpriced
	}
	span.AddEvent("act.SanityCheck")
	if err := act.SanityCheck(); err != nil {
		_actpoolMtc.WithLabelValues("failedSanityCheck").Inc()
		return err
	}
	if err := ap.validate(ctx, act); err != nil {
		return err
	}

	caller := act.SenderAddress()
	if caller == nil {
		return action.ErrAddress
	}
	if err := ap.enqueueAction(ctx, caller, act, hash, act.Nonce()); err != nil {
		return err
	}
	ap.updateSizeMetrics()
	return nil
}

// GetPendingNonce returns pending nonce in pool or confirmed nonce given an account address
func (ap *actPool) GetPendingNonce(addr string) (uint64, error) {
	addrStr, err := address.FromString(addr)
	if err != nil {
		return 0, err
	}
	ap.mutex.RLock()
	defer ap.mutex.RUnlock()

	if queue, ok := ap.accountActs[addr]; ok {
		return queue.PendingNonce(), nil
	}
	confirmedState, err := accountutil.LoadAccount(ap.sf, addrStr)
	if err != nil {
		return 0, err
	}
	return confirmedState.PendingNonce(), nil
}

// GetUnconfirmedActs returns unconfirmed actions in pool given an account address
func (ap *actPool) GetUnconfirmedActs(addr string) []*action.SealedEnvelope {
	ap.mutex.RLock()
	defer ap.mutex.RUnlock()

	var ret []*action.SealedEnvelope
	if queue, ok := ap.accountActs[addr]; ok {
		ret = queue.AllActs()
	}
	if desMap, ok := ap.accountDesActs[addr]; ok && desMap != nil {
		sortActions := make(SortedActions, 0, len(desMap))
		for _, v := range desMap {
			sortActions = append(sortActions, v)
		}
		sort.Stable(sortActions)
		ret = append(ret, sortActions...)
	}
	return ret
}

// GetActionByHash returns the pending action in pool given action's hash
func (ap *actPool) GetActionByHash(hash hash.Hash256) (*action.SealedEnvelope, error) {
	ap.mutex.RLock()
	defer ap.mutex.RUnlock()

	act, ok := ap.allActions[hash]
	if !ok {
		return nil, errors.Wrapf(action.ErrNotFound, "action hash %x does not exist in pool", hash)
	}
	return act, nil
}

// GetSize returns the act pool size
func (ap *actPool) GetSize() uint64 {
	ap.mutex.RLock()
	defer ap.mutex.RUnlock()

	return uint64(len(ap.allActions))
}

// GetCapacity returns the act pool capacity
func (ap *actPool) GetCapacity() uint64 {
	return ap.cfg.MaxNumActsPerPool
}

// GetGasSize returns the act pool gas size
func (ap *actPool) GetGasSize() uint64 {
	ap.mutex.RLock()
	defer ap.mutex.RUnlock()

	return ap.gasInPool
}

// GetGasCapacity returns the act pool gas capacity
func (ap *actPool) GetGasCapacity() uint64 {
	return ap.cfg.MaxGasLimitPerPool
}

func (ap *actPool) Validate(ctx context.Context, selp *action.SealedEnvelope) error {
	ap.mutex.RLock()
	defer ap.mutex.RUnlock()

	return ap.validate(ap.context(ctx), selp)
}

func (ap *actPool) DeleteAction(caller address.Address) {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	queue := ap.accountActs[caller.String()]
	if queue == nil {
		return
	}
	ap.removeInvalidActs(queue.AllActs())
	delete(ap.accountActs, caller.String())
	ap.updateSizeMetrics()
}

// context injects the genesis so that validators can read the chain constants
func (ap *actPool) context(ctx context.Context) context.Context {
	return genesis.WithGenesisContext(ctx, ap.g)
}

func (ap *actPool) validate(ctx context.Context, selp *action.SealedEnvelope) error {
	span := tracer.SpanFromContext(ctx)
	span.AddEvent("actPool.validate")

	caller := selp.SenderAddress()
	if caller == nil {
		return errors.New("failed to get address")
	}
	if _, ok := ap.senderBlackList[caller.String()]; ok {
		_actpoolMtc.WithLabelValues("blacklisted").Inc()
		return errors.Wrap(action.ErrAddress, "action source address is blacklisted")
	}
	// if already validated
	selpHash, err := selp.Hash()
	if err != nil {
		return err
	}
	if _, ok := ap.allActions[selpHash]; ok {
		return nil
	}
	for _, ev := range ap.actionEnvelopeValidators {
		span.AddEvent("ev.Validate")
		if err := ev.Validate(ctx, selp); err != nil {
			return err
		}
	}
	return nil
}

func (ap *actPool) enqueueAction(ctx context.Context, addr address.Address, act *action.SealedEnvelope, actHash hash.Hash256, actNonce uint64) error {
	span := tracer.SpanFromContext(ctx)
	confirmedState, err := accountutil.LoadAccount(ap.sf, addr)
	if err != nil {
		_actpoolMtc.WithLabelValues("failedToGetNonce").Inc()
		return errors.Wrapf(err, "failed to get sender's nonce for action %x", actHash)
	}
	pendingNonce := confirmedState.PendingNonce()
	if actNonce < pendingNonce {
		return action.ErrNonceTooLow
	}
	sender := addr.String()
	queue := ap.accountActs[sender]
	if queue == nil {
		span.AddEvent("new queue")
		queue = NewActQueue(ap, sender, WithTimeOut(ap.cfg.ActionExpiry))
		ap.accountActs[sender] = queue
		// Initialize pending nonce and balance for new account
		queue.SetPendingNonce(pendingNonce)
		queue.SetPendingBalance(confirmedState.Balance)
	}

	if actNonce-pendingNonce >= ap.cfg.MaxNumActsPerAcct {
		// Nonce exceeds current range
		log.L().Debug("Rejecting action because nonce is too large.",
			log.Hex("hash", actHash[:]),
			zap.Uint64("startNonce", pendingNonce),
			zap.Uint64("actNonce", actNonce))
		_actpoolMtc.WithLabelValues("nonceTooLarge").Inc()
		return action.ErrNonceTooHigh
	}

	span.AddEvent("act cost")
	cost, err := act.Cost()
	if err != nil {
		_actpoolMtc.WithLabelValues("failedToGetCost").Inc()
		return errors.Wrapf(err, "failed to get cost of action %x", actHash)
	}
	if queue.PendingBalance().Cmp(cost) < 0 {
		// Pending balance is insufficient
		_actpoolMtc.WithLabelValues("insufficientBalance").Inc()
		log.L().Info("insufficient balance for action",
			zap.String("actionHash", hex.EncodeToString(actHash[:])),
			zap.String("cost", cost.String()),
			zap.String("pendingBalance", queue.PendingBalance().String()),
			zap.String("sender", sender))
		return action.ErrInsufficientFunds
	}

	span.AddEvent("queue put")
	if err := queue.Put(act); err != nil {
		_actpoolMtc.WithLabelValues("failedPutActQueue").Inc()
		log.L().Info("failed to put action into the queue",
			zap.String("actionHash", hex.EncodeToString(actHash[:])))
		return err
	}
	ap.allActions[actHash] = act

	// add the action to the destination map
	desAddress, ok := act.Destination()
	if ok && !strings.EqualFold(sender, desAddress) {
		desQueue := ap.accountDesActs[desAddress]
		if desQueue == nil {
			ap.accountDesActs[desAddress] = make(map[hash.Hash256]*action.SealedEnvelope)
		}
		ap.accountDesActs[desAddress][actHash] = act
	}

	intrinsicGas, _ := act.IntrinsicGas()
	ap.gasInPool += intrinsicGas
	// If the pending nonce equals this nonce, update queue
	if actNonce == queue.PendingNonce() {
		span.AddEvent("ap.updateAccount")
		ap.updateAccount(sender)
	}
	return nil
}

// removeConfirmedActs removes processed (committed to block) actions from pool
func (ap *actPool) removeConfirmedActs() {
	for from, queue := range ap.accountActs {
		addr, _ := address.FromString(from)
		confirmedState, err := accountutil.LoadAccount(ap.sf, addr)
		if err != nil {
			log.L().Error("Error when removing confirmed actions", zap.Error(err))
			continue
		}
		pendingNonce := confirmedState.PendingNonce()
		// Remove all actions that are committed to new block
		acts := queue.FilterNonce(pendingNonce)
		ap.removeInvalidActs(acts)
		// Delete the queue entry if it becomes empty
		if queue.Empty() {
			delete(ap.accountActs, from)
		}
	}
}

func (ap *actPool) removeInvalidActs(acts []*action.SealedEnvelope) {
	for _, act := range acts {
		hash, err := act.Hash()
		if err != nil {
			log.L().Debug("Skipping action due to hash error", zap.Error(err))
			continue
		}
		log.L().Debug("Removed invalidated action.", log.Hex("hash", hash[:]))
		delete(ap.allActions, hash)
		intrinsicGas, _ := act.IntrinsicGas()
		ap.subGasFromPool(intrinsicGas)
		// delete the action from the destination map
		ap.deleteAccountDestinationActions(act)
	}
}

// deleteAccountDestinationActions just for destination map
func (ap *actPool) deleteAccountDestinationActions(acts ...*action.SealedEnvelope) {
	for _, act := range acts {
		hash, err := act.Hash()
		if err != nil {
			log.L().Debug("Skipping action due to hash error", zap.Error(err))
			continue
		}
		desAddress, ok := act.Destination()
		if ok {
			dst := ap.accountDesActs[desAddress]
			if dst != nil {
				delete(dst, hash)
			}
		}
	}
}

// updateAccount updates queue's status and remove invalidated actions from pool if necessary
func (ap *actPool) updateAccount(sender string) {
	queue := ap.accountActs[sender]
	acts := queue.UpdateQueue(queue.PendingNonce())
	if len(acts) > 0 {
		ap.removeInvalidActs(acts)
	}
	// Delete the queue entry if it becomes empty
	if queue.Empty() {
		delete(ap.accountActs, sender)
	}
}

func (ap *actPool) reset() {
	timer := ap.timerFactory.NewTimer("reset")
	defer timer.End()

	// Remove confirmed actions in actpool
	ap.removeConfirmedActs()
	for from, queue := range ap.accountActs {
		// Reset pending balance for each account
		addr, _ := address.FromString(from)
		state, err := accountutil.LoadAccount(ap.sf, addr)
		if err != nil {
			log.L().Error("Error when resetting actpool state.", zap.Error(err))
			continue
		}
		queue.SetPendingBalance(state.Balance)

		// Reset pending nonce and remove invalid actions for each account
		queue.SetPendingNonce(state.PendingNonce())
		ap.updateAccount(from)
	}
	ap.updateSizeMetrics()
}

func (ap *actPool) subGasFromPool(gas uint64) {
	if ap.gasInPool < gas {
		ap.gasInPool = 0
		return
	}
	ap.gasInPool -= gas
}

func (ap *actPool) updateSizeMetrics() {
	_actpoolSizeMtc.WithLabelValues("size").Set(float64(len(ap.allActions)))
	_actpoolSizeMtc.WithLabelValues("gas").Set(float64(ap.gasInPool))
}
