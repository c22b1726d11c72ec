// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package registrar implements the commit-reveal name registration protocol.
// An account escrows a fixed deposit behind a blinded commitment, waits out
// the reveal window, and then discloses the name and nonce. Binding the
// account into the commitment hash is what defeats front-running: an observer
// who copies a pending commitment cannot reveal it from their own account.
package registrar

import (
	"context"
	"math/big"
	"strconv"

	"github.com/iotexproject/go-pkgs/hash"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/action/protocol"
	"github.com/namechain/namechain-core/blockchain/genesis"
	"github.com/namechain/namechain-core/pkg/log"
	"github.com/namechain/namechain-core/state"
)

const (
	// _protocolID is the protocol ID
	_protocolID = "registrar"

	// _fundNamespace stores the fund singleton
	_fundNamespace = "Registrar"
	// _requestNamespace stores the per-account registration request, keyed by address hash
	_requestNamespace = "RegistrarRequest"
	// _registryNamespace stores registry entries, keyed by big-endian index
	_registryNamespace = "RegistrarRegistry"
	// _nameIndexNamespace maps the canonical name hash to the entry index
	_nameIndexNamespace = "RegistrarNameIndex"
	// _ownerNamespace stores the per-account list of owned entry indices
	_ownerNamespace = "RegistrarOwner"
)

var _fundKey = []byte("fund")

// Protocol defines the registrar protocol
type Protocol struct {
	addr address.Address
	cfg  genesis.Registrar
}

// NewProtocol instantiates the registrar protocol with the genesis parameters
func NewProtocol(cfg genesis.Registrar) *Protocol {
	h := hash.Hash160b([]byte(_protocolID))
	addr, err := address.FromBytes(h[:])
	if err != nil {
		log.L().Panic("Error when constructing the address of registrar protocol", zap.Error(err))
	}
	return &Protocol{addr: addr, cfg: cfg}
}

// FindProtocol finds the registered protocol from the registry
func FindProtocol(registry *protocol.Registry) *Protocol {
	if registry == nil {
		return nil
	}
	p, ok := registry.Find(_protocolID)
	if !ok {
		return nil
	}
	rp, ok := p.(*Protocol)
	if !ok {
		log.S().Panic("fail to cast registrar protocol")
	}
	return rp
}

// Addr returns the address the registrar escrows deposits under
func (p *Protocol) Addr() address.Address { return p.addr }

// Config returns the registrar genesis parameters
func (p *Protocol) Config() genesis.Registrar { return p.cfg }

// Handle handles a name action
func (p *Protocol) Handle(ctx context.Context, elp action.Envelope, sm protocol.StateManager) (*action.Receipt, error) {
	switch elp.Action().(type) {
	case *action.NameCommit:
		return p.handleCommit(ctx, elp, sm)
	case *action.NameReveal:
		return p.handleReveal(ctx, elp, sm)
	case *action.NameWithdraw:
		return p.handleWithdraw(ctx, elp, sm)
	}
	return nil, nil
}

// ReadState reads the state on blockchain via the protocol
func (p *Protocol) ReadState(_ context.Context, sr protocol.StateReader, method []byte, args ...[]byte) ([]byte, uint64, error) {
	height, err := sr.Height()
	if err != nil {
		return nil, uint64(0), err
	}
	switch string(method) {
	case "deposit":
		return []byte(p.cfg.DepositAmount().String()), height, nil
	case "lockTime":
		return []byte(strconv.FormatInt(int64(p.cfg.LockTime.Seconds()), 10)), height, nil
	case "revealSpan":
		return []byte(strconv.FormatUint(p.cfg.RevealSpan, 10)), height, nil
	case "nameCost":
		return []byte(p.cfg.NameCostAmount().String()), height, nil
	case "entryCount":
		fund, err := getFund(sr)
		if err != nil {
			return nil, height, err
		}
		return []byte(strconv.FormatUint(fund.EntryCount, 10)), height, nil
	case "totalFees":
		fund, err := getFund(sr)
		if err != nil {
			return nil, height, err
		}
		return []byte(fund.TotalFees.String()), height, nil
	case "isDuplicate":
		if len(args) != 1 {
			return nil, height, errors.Errorf("invalid number of arguments %d", len(args))
		}
		dup, err := p.IsDuplicate(sr, string(args[0]))
		if err != nil {
			return nil, height, err
		}
		return []byte(strconv.FormatBool(dup)), height, nil
	default:
		return nil, height, errors.Errorf("invalid method %s", string(method))
	}
}

// Register registers the protocol with a unique ID
func (p *Protocol) Register(r *protocol.Registry) error {
	return r.Register(_protocolID, p)
}

// ForceRegister registers the protocol with a unique ID and force replacing the previous protocol if it exists
func (p *Protocol) ForceRegister(r *protocol.Registry) error {
	return r.ForceRegister(_protocolID, p)
}

// Name returns the name of protocol
func (p *Protocol) Name() string {
	return _protocolID
}

// CreateGenesisStates initializes the registrar fund
func (p *Protocol) CreateGenesisStates(_ context.Context, sm protocol.StateManager) error {
	return putFund(sm, &Fund{
		EntryCount: 0,
		TotalFees:  big.NewInt(0),
	})
}

func getFund(sr protocol.StateReader) (*Fund, error) {
	var fund Fund
	if _, err := sr.State(&fund, protocol.NamespaceOption(_fundNamespace), protocol.KeyOption(_fundKey)); err != nil {
		return nil, errors.Wrap(err, "failed to read the registrar fund")
	}
	return &fund, nil
}

func putFund(sm protocol.StateManager, fund *Fund) error {
	_, err := sm.PutState(fund, protocol.NamespaceOption(_fundNamespace), protocol.KeyOption(_fundKey))
	return err
}

func getRequest(sr protocol.StateReader, addr address.Address) (*RegistrationRequest, error) {
	var req RegistrationRequest
	_, err := sr.State(&req, protocol.NamespaceOption(_requestNamespace), protocol.LegacyKeyOption(hash.BytesToHash160(addr.Bytes())))
	if err == nil {
		return &req, nil
	}
	if errors.Cause(err) == state.ErrStateNotExist {
		return nil, nil
	}
	return nil, err
}

func putRequest(sm protocol.StateManager, addr address.Address, req *RegistrationRequest) error {
	_, err := sm.PutState(req, protocol.NamespaceOption(_requestNamespace), protocol.LegacyKeyOption(hash.BytesToHash160(addr.Bytes())))
	return err
}

func delRequest(sm protocol.StateManager, addr address.Address) error {
	_, err := sm.DelState(protocol.NamespaceOption(_requestNamespace), protocol.LegacyKeyOption(hash.BytesToHash160(addr.Bytes())))
	return err
}

func getEntry(sr protocol.StateReader, index uint64) (*RegistryEntry, error) {
	var entry RegistryEntry
	if _, err := sr.State(&entry, protocol.NamespaceOption(_registryNamespace), protocol.KeyOption(entryKey(index))); err != nil {
		return nil, err
	}
	return &entry, nil
}

func putEntry(sm protocol.StateManager, index uint64, entry *RegistryEntry) error {
	_, err := sm.PutState(entry, protocol.NamespaceOption(_registryNamespace), protocol.KeyOption(entryKey(index)))
	return err
}

func getNameIndex(sr protocol.StateReader, nameHash hash.Hash256) (uint64, bool, error) {
	var list IndexList
	_, err := sr.State(&list, protocol.NamespaceOption(_nameIndexNamespace), protocol.KeyOption(nameHash[:]))
	if err == nil {
		if len(list.Indices) == 0 {
			return 0, false, errors.New("corrupted name index")
		}
		return list.Indices[0], true, nil
	}
	if errors.Cause(err) == state.ErrStateNotExist {
		return 0, false, nil
	}
	return 0, false, err
}

func putNameIndex(sm protocol.StateManager, nameHash hash.Hash256, index uint64) error {
	_, err := sm.PutState(&IndexList{Indices: []uint64{index}}, protocol.NamespaceOption(_nameIndexNamespace), protocol.KeyOption(nameHash[:]))
	return err
}

func getOwned(sr protocol.StateReader, addr address.Address) (*IndexList, error) {
	var list IndexList
	_, err := sr.State(&list, protocol.NamespaceOption(_ownerNamespace), protocol.LegacyKeyOption(hash.BytesToHash160(addr.Bytes())))
	if err == nil {
		return &list, nil
	}
	if errors.Cause(err) == state.ErrStateNotExist {
		return &IndexList{}, nil
	}
	return nil, err
}

func putOwned(sm protocol.StateManager, addr address.Address, list *IndexList) error {
	_, err := sm.PutState(list, protocol.NamespaceOption(_ownerNamespace), protocol.LegacyKeyOption(hash.BytesToHash160(addr.Bytes())))
	return err
}
