// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package api

import (
	"context"
	"encoding/hex"

	"github.com/iotexproject/go-pkgs/hash"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/action/protocol"
	accountutil "github.com/namechain/namechain-core/action/protocol/account/util"
	"github.com/namechain/namechain-core/action/protocol/registrar"
	"github.com/namechain/namechain-core/actpool"
	"github.com/namechain/namechain-core/blockchain"
	"github.com/namechain/namechain-core/blockchain/block"
	"github.com/namechain/namechain-core/blockchain/blockdao"
	"github.com/namechain/namechain-core/pkg/log"
	"github.com/namechain/namechain-core/state/factory"
)

var (
	// ErrActionNotFound is the error that no action or receipt matches the hash
	ErrActionNotFound = errors.New("action not found")
	// ErrRegistrarNotFound is the error that the registrar protocol is not registered
	ErrRegistrarNotFound = errors.New("registrar protocol is not registered")
)

type (
	// CoreService provides the chain data and action submission behind the API
	// transports
	CoreService interface {
		// Start starts the core service
		Start(context.Context) error
		// Stop stops the core service
		Stop(context.Context) error
		// ChainMeta returns the chain tip metadata
		ChainMeta() (*ChainMeta, error)
		// Account returns the state of one account, including its open
		// registration request and owned registry entries
		Account(addr address.Address) (*AccountMeta, error)
		// SendAction validates a signed action and admits it to the pool
		SendAction(ctx context.Context, selp *action.SealedEnvelope) (string, error)
		// Receipt returns the receipt of a committed action
		Receipt(h hash.Hash256) (*action.Receipt, error)
		// RegistryMeta returns the registrar constants and counters
		RegistryMeta() (*RegistryMeta, error)
		// RegistryEntries returns a page of the registry in registration order
		RegistryEntries(offset, limit uint64) (*RegistryEntriesResponse, error)
		// RegistryEntry returns the registry entry at the given index
		RegistryEntry(index uint64) (*RegistryEntryMeta, error)
		// IsDuplicate reports whether the name is already registered
		IsDuplicate(name string) (bool, error)
		// ChainListener returns the chain listener the event streams hang off
		ChainListener() Listener
		// ReceiveBlock feeds a committed block into the event streams
		ReceiveBlock(blk *block.Block) error
	}

	// coreService implements the CoreService interface
	coreService struct {
		bc            blockchain.Blockchain
		sf            factory.Factory
		dao           blockdao.BlockDAO
		ap            actpool.ActPool
		registry      *protocol.Registry
		cfg           Config
		chainListener Listener
	}
)

// newCoreService creates a core service over the chain components
func newCoreService(
	cfg Config,
	chain blockchain.Blockchain,
	sf factory.Factory,
	dao blockdao.BlockDAO,
	ap actpool.ActPool,
	registry *protocol.Registry,
) (*coreService, error) {
	if registry == nil {
		return nil, errors.New("empty protocol registry")
	}
	return &coreService{
		bc:            chain,
		sf:            sf,
		dao:           dao,
		ap:            ap,
		registry:      registry,
		cfg:           cfg,
		chainListener: NewChainListener(cfg.ListenerLimit),
	}, nil
}

func (core *coreService) Start(_ context.Context) error {
	return core.chainListener.Start()
}

func (core *coreService) Stop(_ context.Context) error {
	return core.chainListener.Stop()
}

// ChainMeta returns the chain tip metadata
func (core *coreService) ChainMeta() (*ChainMeta, error) {
	tipHeight := core.bc.TipHeight()
	tipHash := core.bc.TipHash()
	genesisCfg := core.bc.Genesis()
	genesisHash := genesisCfg.Hash()
	tipTimestamp := genesisCfg.Timestamp
	if tipHeight > 0 {
		blk, err := core.dao.GetBlockByHeight(tipHeight)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load the tip block at height %d", tipHeight)
		}
		tipTimestamp = blk.Timestamp().Unix()
	}
	return &ChainMeta{
		ChainID:      core.bc.ChainID(),
		TipHeight:    tipHeight,
		TipHash:      hex.EncodeToString(tipHash[:]),
		TipTimestamp: tipTimestamp,
		GenesisHash:  hex.EncodeToString(genesisHash[:]),
	}, nil
}

// Account returns the state of one account
func (core *coreService) Account(addr address.Address) (*AccountMeta, error) {
	acct, err := accountutil.LoadAccount(core.sf, addr)
	if err != nil {
		return nil, err
	}
	pendingNonce, err := core.ap.GetPendingNonce(addr.String())
	if err != nil {
		return nil, err
	}
	rp := registrar.FindProtocol(core.registry)
	if rp == nil {
		return nil, ErrRegistrarNotFound
	}
	req, err := rp.Request(core.sf, addr)
	if err != nil {
		return nil, err
	}
	owned, err := rp.OwnedIndices(core.sf, addr)
	if err != nil {
		return nil, err
	}
	meta := &AccountMeta{
		Address:      addr.String(),
		Balance:      acct.Balance.String(),
		Nonce:        acct.Nonce,
		PendingNonce: pendingNonce,
		OwnedIndices: owned,
	}
	if req != nil {
		meta.Request = &RequestMeta{
			Commitment:     hex.EncodeToString(req.Commitment[:]),
			RevealDeadline: req.RevealDeadline,
			UnlockTime:     req.UnlockTime,
		}
	}
	return meta, nil
}

// SendAction validates a signed action and admits it to the pool
func (core *coreService) SendAction(ctx context.Context, selp *action.SealedEnvelope) (string, error) {
	log.Logger("api").Debug("receive send action request")
	if err := core.ap.Add(ctx, selp); err != nil {
		log.Logger("api").Debug("Failed to accept action", zap.Error(err))
		return "", errors.Wrap(err, action.LoadErrorDescription(err))
	}
	h, err := selp.Hash()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h[:]), nil
}

// Receipt returns the receipt of a committed action
func (core *coreService) Receipt(h hash.Hash256) (*action.Receipt, error) {
	receipt, err := core.dao.GetReceipt(h)
	if err != nil {
		if errors.Cause(err) == blockdao.ErrNotFound {
			return nil, errors.Wrapf(ErrActionNotFound, "receipt of %x", h)
		}
		return nil, err
	}
	return receipt, nil
}

// RegistryMeta returns the registrar constants and counters
func (core *coreService) RegistryMeta() (*RegistryMeta, error) {
	rp := registrar.FindProtocol(core.registry)
	if rp == nil {
		return nil, ErrRegistrarNotFound
	}
	count, err := rp.EntryCount(core.sf)
	if err != nil {
		return nil, err
	}
	fees, err := rp.TotalFees(core.sf)
	if err != nil {
		return nil, err
	}
	cfg := rp.Config()
	return &RegistryMeta{
		Deposit:    cfg.DepositAmount().String(),
		LockTime:   int64(cfg.LockTime.Seconds()),
		RevealSpan: cfg.RevealSpan,
		NameCost:   cfg.NameCostAmount().String(),
		Entries:    count,
		TotalFees:  fees.String(),
	}, nil
}

// RegistryEntries returns a page of the registry in registration order
func (core *coreService) RegistryEntries(offset, limit uint64) (*RegistryEntriesResponse, error) {
	rp := registrar.FindProtocol(core.registry)
	if rp == nil {
		return nil, ErrRegistrarNotFound
	}
	if limit == 0 || limit > core.cfg.RangeQueryLimit {
		limit = core.cfg.RangeQueryLimit
	}
	total, err := rp.EntryCount(core.sf)
	if err != nil {
		return nil, err
	}
	entries, err := rp.Entries(core.sf, offset, limit)
	if err != nil {
		return nil, err
	}
	resp := &RegistryEntriesResponse{Total: total, Entries: make([]*RegistryEntryMeta, 0, len(entries))}
	for i, entry := range entries {
		meta, err := entryMeta(offset+uint64(i), entry)
		if err != nil {
			return nil, err
		}
		resp.Entries = append(resp.Entries, meta)
	}
	return resp, nil
}

// RegistryEntry returns the registry entry at the given index
func (core *coreService) RegistryEntry(index uint64) (*RegistryEntryMeta, error) {
	rp := registrar.FindProtocol(core.registry)
	if rp == nil {
		return nil, ErrRegistrarNotFound
	}
	entry, err := rp.EntryByIndex(core.sf, index)
	if err != nil {
		return nil, err
	}
	return entryMeta(index, entry)
}

// IsDuplicate reports whether the name is already registered
func (core *coreService) IsDuplicate(name string) (bool, error) {
	rp := registrar.FindProtocol(core.registry)
	if rp == nil {
		return false, ErrRegistrarNotFound
	}
	return rp.IsDuplicate(core.sf, name)
}

// ChainListener returns the chain listener the event streams hang off
func (core *coreService) ChainListener() Listener {
	return core.chainListener
}

// ReceiveBlock feeds a committed block into the event streams
func (core *coreService) ReceiveBlock(blk *block.Block) error {
	return core.chainListener.ReceiveBlock(blk)
}

func entryMeta(index uint64, entry *registrar.RegistryEntry) (*RegistryEntryMeta, error) {
	owner, err := address.FromBytes(entry.Owner)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupted owner of registry entry %d", index)
	}
	return &RegistryEntryMeta{
		Index: index,
		Name:  entry.Name,
		Owner: owner.String(),
	}, nil
}
