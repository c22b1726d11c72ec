// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package blockchain

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/facebookgo/clock"
	"github.com/iotexproject/go-pkgs/crypto"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/action/protocol"
	"github.com/namechain/namechain-core/blockchain/block"
	"github.com/namechain/namechain-core/blockchain/blockdao"
	"github.com/namechain/namechain-core/blockchain/genesis"
	"github.com/namechain/namechain-core/pkg/lifecycle"
	"github.com/namechain/namechain-core/pkg/log"
	"github.com/namechain/namechain-core/pkg/prometheustimer"
	"github.com/namechain/namechain-core/state/factory"
)

// _pendingBlkBufferSize is the buffer size of each subscriber's block channel
const _pendingBlkBufferSize = 64

// ErrInvalidBlock is the error returned when the block is not valid
var ErrInvalidBlock = errors.New("failed to validate the block")

var blockMtc = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "namechain_block_metrics",
		Help: "Namechain block metrics.",
	},
	[]string{"type"},
)

func init() {
	prometheus.MustRegister(blockMtc)
}

type (
	// Blockchain represents the blockchain data structure and hosts the APIs to access it
	Blockchain interface {
		lifecycle.StartStopper

		// ChainID returns the chain ID
		ChainID() uint32
		// TipHeight returns the height of the committed tip block
		TipHeight() uint64
		// TipHash returns the hash of the committed tip block, or the genesis
		// hash before the first block
		TipHash() hash.Hash256
		// Genesis returns the genesis config the chain was built from
		Genesis() genesis.Genesis
		// MintAndCommit packs the given actions into a new signed block,
		// commits it to the chain and publishes it to the subscribers.
		// Actions that fail to run are skipped, they do not abort the block.
		MintAndCommit(context.Context, []*action.SealedEnvelope) (*block.Block, error)
		// ValidateBlock checks that the block extends the current tip
		ValidateBlock(*block.Block) error
		// AddSubscriber registers a block creation subscriber
		AddSubscriber(BlockCreationSubscriber) error
		// RemoveSubscriber unregisters a block creation subscriber
		RemoveSubscriber(BlockCreationSubscriber) error
	}

	// blockchain implements the Blockchain interface
	blockchain struct {
		mu            sync.RWMutex
		dao           blockdao.BlockDAO
		sf            factory.Factory
		clk           clock.Clock
		pubSubManager PubSubManager
		config        Config
		genesis       genesis.Genesis
		registry      *protocol.Registry
		tipHeight     uint64
		tipHash       hash.Hash256
		tipTimestamp  time.Time
		producerSK    crypto.PrivateKey
		producerAddr  address.Address
		lifecycle     lifecycle.Lifecycle
		timerFactory  *prometheustimer.TimerFactory
	}

	// Option sets blockchain construction parameter
	Option func(*blockchain)
)

// ClockOption overrides the clock
func ClockOption(clk clock.Clock) Option {
	return func(bc *blockchain) {
		bc.clk = clk
	}
}

// NewBlockchain creates a new blockchain instance
func NewBlockchain(
	cfg Config,
	g genesis.Genesis,
	dao blockdao.BlockDAO,
	sf factory.Factory,
	registry *protocol.Registry,
	opts ...Option,
) Blockchain {
	chain := &blockchain{
		dao:           dao,
		sf:            sf,
		clk:           clock.New(),
		pubSubManager: NewPubSub(_pendingBlkBufferSize),
		config:        cfg,
		genesis:       g,
		registry:      registry,
		producerSK:    cfg.ProducerPrivateKey(),
		producerAddr:  cfg.ProducerAddress(),
	}
	for _, opt := range opts {
		opt(chain)
	}
	timerFactory, err := prometheustimer.New(
		"namechain_blockchain_perf",
		"Performance of blockchain module",
		[]string{"topic", "chainID"},
		[]string{"default", strconv.FormatUint(uint64(g.ChainID), 10)},
	)
	if err != nil {
		log.L().Error("Failed to generate prometheus timer factory.", zap.Error(err))
	}
	chain.timerFactory = timerFactory
	chain.lifecycle.Add(sf)
	chain.lifecycle.Add(dao)
	return chain
}

// Start starts the chain components and replays any block the state factory
// has not caught up with
func (bc *blockchain) Start(ctx context.Context) error {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	ctx = bc.context(ctx)
	if err := bc.lifecycle.OnStart(ctx); err != nil {
		return errors.Wrap(err, "failed to start blockchain")
	}
	if err := bc.syncStateFactory(ctx); err != nil {
		return err
	}
	return bc.refreshTip()
}

func (bc *blockchain) Stop(ctx context.Context) error {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	bc.pubSubManager.Stop()
	return bc.lifecycle.OnStop(ctx)
}

func (bc *blockchain) ChainID() uint32 {
	return bc.genesis.ChainID
}

func (bc *blockchain) Genesis() genesis.Genesis {
	return bc.genesis
}

func (bc *blockchain) TipHeight() uint64 {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.tipHeight
}

func (bc *blockchain) TipHash() hash.Hash256 {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.tipHash
}

// MintAndCommit packs the given actions into a new signed block, commits it
// and publishes it to the subscribers
func (bc *blockchain) MintAndCommit(ctx context.Context, actions []*action.SealedEnvelope) (*block.Block, error) {
	mintTimer := bc.timerFactory.NewTimer("MintAndCommit")
	defer mintTimer.End()
	bc.mu.Lock()
	defer bc.mu.Unlock()

	newHeight := bc.tipHeight + 1
	ts := bc.clk.Now()
	ctx = protocol.WithBlockCtx(
		bc.tipContext(ctx),
		protocol.BlockCtx{
			BlockHeight:    newHeight,
			BlockTimeStamp: ts,
			GasLimit:       bc.genesis.BlockGasLimit,
			Producer:       bc.producerAddr,
		},
	)
	ws, err := bc.sf.NewWorkingSet(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to obtain the working set")
	}

	applied := make([]*action.SealedEnvelope, 0, len(actions))
	receipts := make([]*action.Receipt, 0, len(actions))
	remainingGas := bc.genesis.BlockGasLimit
	for _, elp := range actions {
		intrinsicGas, err := elp.IntrinsicGas()
		if err != nil {
			continue
		}
		if remainingGas < intrinsicGas {
			// the block is full
			break
		}
		snapshot := ws.Snapshot()
		receipt, err := ws.RunAction(ctx, elp)
		if err != nil {
			actHash, hashErr := elp.Hash()
			if hashErr != nil {
				return nil, errors.Wrap(hashErr, "failed to get hash")
			}
			log.L().Warn("Failed to run action, skipped.", log.Hex("actionHash", actHash[:]), zap.Error(err))
			if err := ws.Revert(snapshot); err != nil {
				return nil, errors.Wrap(err, "failed to revert the working set")
			}
			continue
		}
		remainingGas -= receipt.GasConsumed
		applied = append(applied, elp)
		receipts = append(receipts, receipt)
	}
	if err := ws.Finalize(); err != nil {
		return nil, errors.Wrap(err, "failed to finalize the working set")
	}

	blk, err := block.NewBuilder().
		SetChainID(bc.genesis.ChainID).
		SetHeight(newHeight).
		SetTimestamp(ts).
		SetPrevBlockHash(bc.tipHash).
		SetActions(applied).
		SetReceipts(receipts).
		SignAndBuild(bc.producerSK)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build the block")
	}
	if err := bc.commitBlock(&blk, ws); err != nil {
		return nil, err
	}
	return &blk, nil
}

// ValidateBlock checks that the block correctly extends the current tip
func (bc *blockchain) ValidateBlock(blk *block.Block) error {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	if blk == nil {
		return errors.Wrap(ErrInvalidBlock, "block is nil")
	}
	if blk.ChainID() != bc.genesis.ChainID {
		return errors.Wrapf(ErrInvalidBlock, "wrong chain ID %d, expecting %d", blk.ChainID(), bc.genesis.ChainID)
	}
	if blk.Height() != bc.tipHeight+1 {
		return errors.Wrapf(ErrInvalidBlock, "wrong block height %d, expecting %d", blk.Height(), bc.tipHeight+1)
	}
	if blk.PrevHash() != bc.tipHash {
		return errors.Wrapf(ErrInvalidBlock, "wrong prev hash %x, expecting %x", blk.PrevHash(), bc.tipHash)
	}
	if !blk.VerifySignature() {
		return errors.Wrap(ErrInvalidBlock, "failed to verify the block signature")
	}
	txRoot, err := block.CalculateTxRoot(blk.Actions)
	if err != nil {
		return err
	}
	if txRoot != blk.TxRoot() {
		return errors.Wrap(ErrInvalidBlock, "action digest doesn't match the block header")
	}
	if err := blk.VerifyReceiptRoot(); err != nil {
		return errors.Wrap(ErrInvalidBlock, err.Error())
	}
	return nil
}

// AddSubscriber returns if the subscription is successful
func (bc *blockchain) AddSubscriber(s BlockCreationSubscriber) error {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	log.L().Info("Add a subscriber.")
	if s == nil {
		return errors.New("subscriber could not be nil")
	}
	return bc.pubSubManager.AddBlockListener(s)
}

// RemoveSubscriber returns if the unsubscription is successful
func (bc *blockchain) RemoveSubscriber(s BlockCreationSubscriber) error {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	return bc.pubSubManager.RemoveBlockListener(s)
}

// context attaches the registry and the genesis config
func (bc *blockchain) context(ctx context.Context) context.Context {
	ctx = protocol.WithRegistry(ctx, bc.registry)
	return genesis.WithGenesisContext(ctx, bc.genesis)
}

// tipContext attaches the chain level context on top of bc.context, the
// caller must hold bc.mu
func (bc *blockchain) tipContext(ctx context.Context) context.Context {
	return protocol.WithBlockchainCtx(
		bc.context(ctx),
		protocol.BlockchainCtx{
			ChainID:     bc.genesis.ChainID,
			GenesisHash: bc.genesis.Hash(),
			Tip: protocol.TipInfo{
				Height:    bc.tipHeight,
				Hash:      bc.tipHash,
				Timestamp: bc.tipTimestamp,
			},
		},
	)
}

// syncStateFactory replays stored blocks the state factory is missing, which
// happens when the process dies between the block write and the state commit
func (bc *blockchain) syncStateFactory(ctx context.Context) error {
	daoTip, err := bc.dao.Height()
	if err != nil {
		return err
	}
	sfTip, err := bc.sf.Height()
	if err != nil {
		return err
	}
	for i := sfTip + 1; i <= daoTip; i++ {
		blk, err := bc.dao.GetBlockByHeight(i)
		if err != nil {
			return errors.Wrapf(err, "failed to load the block at height %d", i)
		}
		if err := bc.replayBlock(ctx, blk); err != nil {
			return errors.Wrapf(err, "failed to replay the block at height %d", i)
		}
		log.L().Info("Replayed a block on restart.", zap.Uint64("height", i))
	}
	return nil
}

// replayBlock reruns a committed block's actions through a fresh working set
func (bc *blockchain) replayBlock(ctx context.Context, blk *block.Block) error {
	producer := blk.PublicKey().Address()
	if producer == nil {
		return errors.New("failed to get the producer address")
	}
	ctx = protocol.WithBlockCtx(ctx, protocol.BlockCtx{
		BlockHeight:    blk.Height(),
		BlockTimeStamp: blk.Timestamp(),
		GasLimit:       bc.genesis.BlockGasLimit,
		Producer:       producer,
	})
	ws, err := bc.sf.NewWorkingSet(ctx)
	if err != nil {
		return err
	}
	receipts, err := ws.RunActions(ctx, blk.Actions)
	if err != nil {
		return err
	}
	if err := ws.Finalize(); err != nil {
		return err
	}
	if root := block.CalculateReceiptRoot(receipts); root != blk.ReceiptRoot() {
		return errors.Errorf("inconsistent receipt root %x, expecting %x", root, blk.ReceiptRoot())
	}
	return bc.sf.Commit(ws)
}

// commitBlock writes the block to the chain DB before committing the state,
// a crash between the two writes replays the block on restart
func (bc *blockchain) commitBlock(blk *block.Block, ws factory.WorkingSet) error {
	commitTimer := bc.timerFactory.NewTimer("commitBlock")
	defer commitTimer.End()
	if err := bc.dao.PutBlock(blk); err != nil {
		return errors.Wrap(err, "failed to put the block into block DAO")
	}
	if err := bc.sf.Commit(ws); err != nil {
		return errors.Wrap(err, "failed to commit the working set")
	}
	h, err := blk.HashBlock()
	if err != nil {
		return err
	}
	bc.tipHeight = blk.Height()
	bc.tipHash = h
	bc.tipTimestamp = blk.Timestamp()
	blockMtc.WithLabelValues("height").Set(float64(blk.Height()))
	blockMtc.WithLabelValues("numActions").Set(float64(len(blk.Actions)))
	bc.pubSubManager.SendBlockToSubscribers(blk)
	blk.HeaderLogger(log.L()).Info("Committed a block.", log.Hex("tipHash", h[:]))
	return nil
}

// refreshTip reloads the tip fields from the block DAO, the caller must hold bc.mu
func (bc *blockchain) refreshTip() error {
	daoTip, err := bc.dao.Height()
	if err != nil {
		return err
	}
	bc.tipHeight = daoTip
	if daoTip == 0 {
		bc.tipHash = bc.genesis.Hash()
		bc.tipTimestamp = time.Unix(bc.genesis.Timestamp, 0)
		return nil
	}
	blk, err := bc.dao.GetBlockByHeight(daoTip)
	if err != nil {
		return err
	}
	h, err := blk.HashBlock()
	if err != nil {
		return err
	}
	bc.tipHash = h
	bc.tipTimestamp = blk.Timestamp()
	return nil
}
