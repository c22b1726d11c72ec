// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package account

import (
	"context"
	"math/big"

	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/action/protocol"
	accountutil "github.com/namechain/namechain-core/action/protocol/account/util"
)

// TransferSizeLimit is the maximum size of transfer allowed
const TransferSizeLimit = 32 * 1024

// handleTransfer handles a transfer
func (p *Protocol) handleTransfer(ctx context.Context, elp action.Envelope, sm protocol.StateManager) (*action.Receipt, error) {
	var (
		actionCtx = protocol.MustGetActionCtx(ctx)
		blkCtx    = protocol.MustGetBlockCtx(ctx)
		tsf       = elp.Action().(*action.Transfer)
	)
	sender, err := accountutil.LoadOrCreateAccount(sm, actionCtx.Caller)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load the account of sender %s", actionCtx.Caller.String())
	}
	// the nonce advances whether or not the transfer succeeds
	accountutil.SetNonce(elp, sender)

	receipt := &action.Receipt{
		ActionHash:      actionCtx.ActionHash,
		BlockHeight:     blkCtx.BlockHeight,
		GasConsumed:     actionCtx.IntrinsicGas,
		ContractAddress: p.addr.String(),
	}

	gasFee := big.NewInt(0).Mul(actionCtx.GasPrice, big.NewInt(0).SetUint64(actionCtx.IntrinsicGas))
	if !sender.HasSufficientBalance(big.NewInt(0).Add(tsf.Amount(), gasFee)) {
		receipt.Status = action.StatusErrInsufficientFunds
		if err := accountutil.StoreAccount(sm, actionCtx.Caller, sender); err != nil {
			return nil, errors.Wrap(err, "failed to update the account of sender")
		}
		return receipt, nil
	}

	recipientAddr, err := address.FromString(tsf.Recipient())
	if err != nil {
		receipt.Status = action.StatusErrTransferFailure
		if err := accountutil.StoreAccount(sm, actionCtx.Caller, sender); err != nil {
			return nil, errors.Wrap(err, "failed to update the account of sender")
		}
		return receipt, nil
	}

	if err := sender.SubBalance(tsf.Amount()); err != nil {
		return nil, errors.Wrapf(err, "failed to deduct the balance of sender %s", actionCtx.Caller.String())
	}
	if err := accountutil.StoreAccount(sm, actionCtx.Caller, sender); err != nil {
		return nil, errors.Wrap(err, "failed to update the account of sender")
	}

	recipient, err := accountutil.LoadOrCreateAccount(sm, recipientAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load the account of recipient %s", tsf.Recipient())
	}
	if err := recipient.AddBalance(tsf.Amount()); err != nil {
		return nil, errors.Wrapf(err, "failed to add the balance of recipient %s", tsf.Recipient())
	}
	if err := accountutil.StoreAccount(sm, recipientAddr, recipient); err != nil {
		return nil, errors.Wrap(err, "failed to update the account of recipient")
	}

	receipt.Status = action.StatusSuccess
	receipt.AddTransactionLogs(&action.TransactionLog{
		Type:      action.NativeTransferLog,
		Sender:    actionCtx.Caller.String(),
		Recipient: tsf.Recipient(),
		Amount:    tsf.Amount(),
	})
	return receipt, nil
}
