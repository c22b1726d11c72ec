// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registrar

import (
	"math/big"

	"github.com/iotexproject/iotex-address/address"

	"github.com/namechain/namechain-core/action/protocol"
	accountutil "github.com/namechain/namechain-core/action/protocol/account/util"
)

// escrowIn moves amount from the given account onto the registrar's own
// account, where deposits and fees are held
func (p *Protocol) escrowIn(sm protocol.StateManager, from address.Address, amount *big.Int) error {
	acct, err := accountutil.LoadAccount(sm, from)
	if err != nil {
		return err
	}
	if err := acct.SubBalance(amount); err != nil {
		return err
	}
	if err := accountutil.StoreAccount(sm, from, acct); err != nil {
		return err
	}
	escrow, err := accountutil.LoadOrCreateAccount(sm, p.addr)
	if err != nil {
		return err
	}
	if err := escrow.AddBalance(amount); err != nil {
		return err
	}
	return accountutil.StoreAccount(sm, p.addr, escrow)
}

// escrowOut pays amount out of the registrar's account back to the given
// account. It fails when the escrow cannot cover the payment.
func (p *Protocol) escrowOut(sm protocol.StateManager, to address.Address, amount *big.Int) error {
	escrow, err := accountutil.LoadAccount(sm, p.addr)
	if err != nil {
		return err
	}
	if err := escrow.SubBalance(amount); err != nil {
		return err
	}
	if err := accountutil.StoreAccount(sm, p.addr, escrow); err != nil {
		return err
	}
	acct, err := accountutil.LoadOrCreateAccount(sm, to)
	if err != nil {
		return err
	}
	if err := acct.AddBalance(amount); err != nil {
		return err
	}
	return accountutil.StoreAccount(sm, to, acct)
}
