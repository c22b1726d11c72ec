// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package factory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/namechain/namechain-core/action/protocol"
	"github.com/namechain/namechain-core/blockchain/genesis"
	"github.com/namechain/namechain-core/db"
	"github.com/namechain/namechain-core/pkg/lifecycle"
	"github.com/namechain/namechain-core/pkg/log"
	"github.com/namechain/namechain-core/pkg/prometheustimer"
	"github.com/namechain/namechain-core/pkg/util/byteutil"
	"github.com/namechain/namechain-core/state"
)

const (
	// AccountKVNamespace is the bucket of account states. State accesses that
	// carry no namespace option land here.
	AccountKVNamespace = "Account"
	// CurrentHeightKey is the key of the committed chain height
	CurrentHeightKey = "currentHeight"
)

// ErrNotSupported is the error that a read is not supported by the factory
var ErrNotSupported = errors.New("not supported")

type (
	// Factory defines an interface to commit block level state changes
	Factory interface {
		lifecycle.StartStopper
		protocol.StateReader
		// NewWorkingSet returns a working set placed one block past the
		// committed height
		NewWorkingSet(context.Context) (WorkingSet, error)
		// Commit persists a finalized working set and moves the chain height
		Commit(WorkingSet) error
	}

	// stateDB implements Factory, tracks changes to states and batch-commits to DB
	stateDB struct {
		mutex              sync.RWMutex
		currentChainHeight uint64
		dao                db.KVStore
		timerFactory       *prometheustimer.TimerFactory
	}

	// Option sets stateDB construction parameter
	Option func(*stateDB) error
)

// DefaultStateDBOption opens the state DB at the given path
func DefaultStateDBOption(cfg db.Config, dbPath string) Option {
	return func(sdb *stateDB) error {
		if len(dbPath) == 0 {
			return errors.New("invalid empty state db path")
		}
		cfg.DbPath = dbPath
		sdb.dao = db.NewPebbleDB(cfg)
		return nil
	}
}

// InMemStateDBOption keeps the states in memory, for testing
func InMemStateDBOption() Option {
	return func(sdb *stateDB) error {
		sdb.dao = db.NewMemKVStore()
		return nil
	}
}

// NewStateDB creates a new state DB
func NewStateDB(chainID uint32, opts ...Option) (Factory, error) {
	sdb := stateDB{}
	for _, opt := range opts {
		if err := opt(&sdb); err != nil {
			return nil, errors.Wrap(err, "failed to execute state factory creation option")
		}
	}
	if sdb.dao == nil {
		return nil, errors.New("no state db is set")
	}
	timerFactory, err := prometheustimer.New(
		"namechain_statefactory_perf",
		"Performance of state factory module",
		[]string{"topic", "chainID"},
		[]string{"default", strconv.FormatUint(uint64(chainID), 10)},
	)
	if err != nil {
		log.L().Error("Failed to generate prometheus timer factory.", zap.Error(err))
	}
	sdb.timerFactory = timerFactory
	return &sdb, nil
}

// Start starts the underlying DB and, on a fresh one, writes the genesis states
func (sdb *stateDB) Start(ctx context.Context) error {
	sdb.mutex.Lock()
	defer sdb.mutex.Unlock()
	if err := sdb.dao.Start(ctx); err != nil {
		return err
	}
	h, err := sdb.dao.Get(AccountKVNamespace, []byte(CurrentHeightKey))
	switch errors.Cause(err) {
	case nil:
		sdb.currentChainHeight = byteutil.BytesToUint64(h)
		return nil
	case db.ErrNotExist, db.ErrBucketNotExist:
		return sdb.createGenesisStates(ctx)
	default:
		return err
	}
}

func (sdb *stateDB) Stop(ctx context.Context) error {
	sdb.mutex.Lock()
	defer sdb.mutex.Unlock()
	return sdb.dao.Stop(ctx)
}

// Height returns the committed chain height
func (sdb *stateDB) Height() (uint64, error) {
	sdb.mutex.RLock()
	defer sdb.mutex.RUnlock()
	height, err := sdb.dao.Get(AccountKVNamespace, []byte(CurrentHeightKey))
	if err != nil {
		return 0, errors.Wrap(err, "failed to get factory's height from underlying DB")
	}
	return byteutil.BytesToUint64(height), nil
}

// State reads a committed state from the DB
func (sdb *stateDB) State(s interface{}, opts ...protocol.StateOption) (uint64, error) {
	sdb.mutex.RLock()
	defer sdb.mutex.RUnlock()
	cfg, err := processOptions(opts...)
	if err != nil {
		return 0, err
	}
	value, err := sdb.dao.Get(cfg.Namespace, cfg.Key)
	if err != nil {
		if errors.Cause(err) == db.ErrNotExist || errors.Cause(err) == db.ErrBucketNotExist {
			return sdb.currentChainHeight, errors.Wrapf(state.ErrStateNotExist, "state of %x doesn't exist", cfg.Key)
		}
		return sdb.currentChainHeight, errors.Wrapf(err, "error when getting the state of %x", cfg.Key)
	}
	return sdb.currentChainHeight, state.Deserialize(s, value)
}

// States reads all committed states under one namespace
func (sdb *stateDB) States(opts ...protocol.StateOption) (uint64, state.Iterator, error) {
	sdb.mutex.RLock()
	defer sdb.mutex.RUnlock()
	cfg, err := processOptions(opts...)
	if err != nil {
		return 0, nil, err
	}
	if cfg.Key != nil {
		return sdb.currentChainHeight, nil, errors.Wrap(ErrNotSupported, "key option is not supported for listing states")
	}
	keys, values, err := sdb.dao.Filter(cfg.Namespace, func(k, v []byte) bool { return true }, nil, nil)
	if err != nil {
		if errors.Cause(err) == db.ErrBucketNotExist || errors.Cause(err) == db.ErrNotExist {
			return sdb.currentChainHeight, nil, errors.Wrapf(state.ErrStateNotExist, "namespace %s", cfg.Namespace)
		}
		return sdb.currentChainHeight, nil, err
	}
	iter, err := state.NewIterator(keys, values)
	if err != nil {
		return sdb.currentChainHeight, nil, err
	}
	return sdb.currentChainHeight, iter, nil
}

// NewWorkingSet returns a working set placed one block past the committed height
func (sdb *stateDB) NewWorkingSet(_ context.Context) (WorkingSet, error) {
	sdb.mutex.RLock()
	defer sdb.mutex.RUnlock()
	return newWorkingSet(sdb.currentChainHeight+1, sdb.dao), nil
}

// Commit persists all changes of the working set into the DB
func (sdb *stateDB) Commit(ws WorkingSet) error {
	if ws == nil {
		return errors.New("working set doesn't exist")
	}
	sdb.mutex.Lock()
	defer sdb.mutex.Unlock()
	timer := sdb.timerFactory.NewTimer("Commit")
	defer timer.End()
	if ws.Version() != sdb.currentChainHeight+1 {
		return errors.Errorf(
			"working set version %d cannot commit on top of state height %d",
			ws.Version(),
			sdb.currentChainHeight,
		)
	}
	if err := ws.commit(); err != nil {
		return errors.Wrap(err, "failed to commit working set")
	}
	sdb.currentChainHeight = ws.Version()
	return nil
}

// createGenesisStates runs every registered protocol's genesis initialization
// in a height 0 working set and commits it
func (sdb *stateDB) createGenesisStates(ctx context.Context) error {
	g := genesis.MustExtractGenesisContext(ctx)
	ctx = protocol.WithBlockCtx(ctx, protocol.BlockCtx{
		BlockHeight:    0,
		BlockTimeStamp: time.Unix(g.Timestamp, 0),
	})
	ws := newWorkingSet(0, sdb.dao)
	reg, ok := protocol.GetRegistry(ctx)
	if !ok {
		return errors.New("registry is not found in context")
	}
	for _, p := range reg.All() {
		if gsc, ok := p.(protocol.GenesisStateCreator); ok {
			if err := gsc.CreateGenesisStates(ctx, ws); err != nil {
				return errors.Wrap(err, "failed to create genesis states")
			}
		}
	}
	if err := ws.Finalize(); err != nil {
		return err
	}
	if err := ws.commit(); err != nil {
		return err
	}
	sdb.currentChainHeight = 0
	genesisHash := g.Hash()
	log.L().Info("State factory initialized from genesis.", log.Hex("genesisHash", genesisHash[:]))
	return nil
}

// processOptions fills in the default namespace for state accesses that set none
func processOptions(opts ...protocol.StateOption) (*protocol.StateConfig, error) {
	cfg, err := protocol.CreateStateConfig(opts...)
	if err != nil {
		return nil, err
	}
	if cfg.Namespace == "" {
		cfg.Namespace = AccountKVNamespace
	}
	return cfg, nil
}
