// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package account

import (
	"context"
	"math/big"

	"github.com/iotexproject/go-pkgs/hash"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/action/protocol"
	accountutil "github.com/namechain/namechain-core/action/protocol/account/util"
	"github.com/namechain/namechain-core/blockchain/genesis"
	"github.com/namechain/namechain-core/pkg/log"
)

// _protocolID is the protocol ID
const _protocolID = "account"

// Protocol defines the protocol of handling accounts and transfers
type Protocol struct {
	addr address.Address
}

// NewProtocol instantiates the protocol of account
func NewProtocol() *Protocol {
	h := hash.Hash160b([]byte(_protocolID))
	addr, err := address.FromBytes(h[:])
	if err != nil {
		log.L().Panic("Error when constructing the address of account protocol", zap.Error(err))
	}
	return &Protocol{addr: addr}
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
	ap, ok := p.(*Protocol)
	if !ok {
		log.S().Panic("fail to cast account protocol")
	}
	return ap
}

// Handle handles a transfer
func (p *Protocol) Handle(ctx context.Context, elp action.Envelope, sm protocol.StateManager) (*action.Receipt, error) {
	if _, ok := elp.Action().(*action.Transfer); ok {
		return p.handleTransfer(ctx, elp, sm)
	}
	return nil, nil
}

// ReadState reads the state on blockchain via the protocol
func (p *Protocol) ReadState(context.Context, protocol.StateReader, []byte, ...[]byte) ([]byte, uint64, error) {
	return nil, uint64(0), protocol.ErrUnimplemented
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

// CreateGenesisStates initializes the accounts with the balances in the genesis config
func (p *Protocol) CreateGenesisStates(ctx context.Context, sm protocol.StateManager) error {
	g := genesis.MustExtractGenesisContext(ctx)
	addrs, amounts := g.InitBalances()
	for i, addr := range addrs {
		if err := p.createAccount(sm, addr, amounts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (p *Protocol) createAccount(sm protocol.StateManager, addr address.Address, amount *big.Int) error {
	account, err := accountutil.LoadOrCreateAccount(sm, addr)
	if err != nil {
		return errors.Wrapf(err, "failed to create account of %s", addr.String())
	}
	if err := account.AddBalance(amount); err != nil {
		return errors.Wrapf(err, "failed to seed balance of account %s", addr.String())
	}
	return accountutil.StoreAccount(sm, addr, account)
}
