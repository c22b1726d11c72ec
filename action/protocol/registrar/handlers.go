// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registrar

import (
	"context"
	"math/big"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/action/protocol"
	accountutil "github.com/namechain/namechain-core/action/protocol/account/util"
)

var (
	// NameRegisteredTopic is the log topic of a successful registration
	NameRegisteredTopic = hash.BytesToHash256(ethcrypto.Keccak256([]byte("NameRegistered(address,string)")))
	// NameAlreadyRegisteredTopic is the log topic of a duplicate reveal resolved with a full refund
	NameAlreadyRegisteredTopic = hash.BytesToHash256(ethcrypto.Keccak256([]byte("NameAlreadyRegistered(address,string)")))
)

// handleCommit opens the sender's registration slot behind a blinded commitment
// and escrows the exact deposit
func (p *Protocol) handleCommit(ctx context.Context, elp action.Envelope, sm protocol.StateManager) (*action.Receipt, error) {
	var (
		actionCtx = protocol.MustGetActionCtx(ctx)
		blkCtx    = protocol.MustGetBlockCtx(ctx)
		nc        = elp.Action().(*action.NameCommit)
	)
	receipt, err := p.settleNonce(ctx, elp, sm)
	if err != nil {
		return nil, err
	}

	// only one in-flight request per account
	req, err := getRequest(sm, actionCtx.Caller)
	if err != nil {
		return nil, err
	}
	if req != nil {
		receipt.Status = action.StatusErrInvalidStage
		return receipt, nil
	}

	// the escrow must be the exact deposit, no partial acceptance
	deposit := p.cfg.DepositAmount()
	if nc.Amount().Cmp(deposit) != 0 {
		receipt.Status = action.StatusErrInvalidDeposit
		return receipt, nil
	}

	sender, err := accountutil.LoadAccount(sm, actionCtx.Caller)
	if err != nil {
		return nil, err
	}
	gasFee := big.NewInt(0).Mul(actionCtx.GasPrice, big.NewInt(0).SetUint64(actionCtx.IntrinsicGas))
	if !sender.HasSufficientBalance(big.NewInt(0).Add(deposit, gasFee)) {
		receipt.Status = action.StatusErrInsufficientFunds
		return receipt, nil
	}

	snapshot := sm.Snapshot()
	if err := p.escrowIn(sm, actionCtx.Caller, deposit); err != nil {
		return p.settleTransferFailure(sm, snapshot, receipt)
	}
	if err := putRequest(sm, actionCtx.Caller, &RegistrationRequest{
		Commitment:     nc.Commitment(),
		RevealDeadline: blkCtx.BlockHeight + p.cfg.RevealSpan,
		UnlockTime:     uint64(blkCtx.BlockTimeStamp.Add(p.cfg.LockTime).Unix()),
	}); err != nil {
		return nil, err
	}

	receipt.Status = action.StatusSuccess
	receipt.AddTransactionLogs(&action.TransactionLog{
		Type:      action.DepositLog,
		Amount:    deposit,
		Sender:    actionCtx.Caller.String(),
		Recipient: p.addr.String(),
	})
	return receipt, nil
}

// handleReveal discloses the name behind the sender's commitment and resolves
// the slot: the name is registered, or fully refunded if someone else already
// claimed it
func (p *Protocol) handleReveal(ctx context.Context, elp action.Envelope, sm protocol.StateManager) (*action.Receipt, error) {
	var (
		actionCtx = protocol.MustGetActionCtx(ctx)
		blkCtx    = protocol.MustGetBlockCtx(ctx)
		nr        = elp.Action().(*action.NameReveal)
	)
	receipt, err := p.settleNonce(ctx, elp, sm)
	if err != nil {
		return nil, err
	}

	req, err := getRequest(sm, actionCtx.Caller)
	if err != nil {
		return nil, err
	}
	if req == nil {
		receipt.Status = action.StatusErrInvalidStage
		return receipt, nil
	}

	if blkCtx.BlockHeight < req.RevealDeadline {
		receipt.Status = action.StatusErrNotYetRevealable
		return receipt, nil
	}

	if Commitment(actionCtx.Caller, nr.Name(), nr.Nonce()) != req.Commitment {
		receipt.Status = action.StatusErrCommitmentMismatch
		return receipt, nil
	}

	// an empty or zero-priced name can never be registered, duplicate or not
	price := big.NewInt(0).Mul(big.NewInt(int64(len(nr.Name()))), p.cfg.NameCostAmount())
	if len(nr.Name()) == 0 || price.Sign() == 0 {
		receipt.Status = action.StatusErrInvalidName
		return receipt, nil
	}

	var (
		value   = nr.Amount()
		deposit = p.cfg.DepositAmount()
	)
	sender, err := accountutil.LoadAccount(sm, actionCtx.Caller)
	if err != nil {
		return nil, err
	}
	gasFee := big.NewInt(0).Mul(actionCtx.GasPrice, big.NewInt(0).SetUint64(actionCtx.IntrinsicGas))
	if !sender.HasSufficientBalance(big.NewInt(0).Add(value, gasFee)) {
		receipt.Status = action.StatusErrInsufficientFunds
		return receipt, nil
	}

	_, dup, err := getNameIndex(sm, NameHash(nr.Name()))
	if err != nil {
		return nil, err
	}
	if dup {
		return p.settleDuplicate(sm, actionCtx, blkCtx.BlockHeight, nr, receipt)
	}

	// the escrowed deposit counts toward the price, and the attached value
	// covers the rest
	if price.Cmp(big.NewInt(0).Add(value, deposit)) > 0 {
		receipt.Status = action.StatusErrInsufficientFunds
		return receipt, nil
	}

	snapshot := sm.Snapshot()
	if value.Sign() > 0 {
		if err := p.escrowIn(sm, actionCtx.Caller, value); err != nil {
			return p.settleTransferFailure(sm, snapshot, receipt)
		}
	}
	refund := big.NewInt(0).Sub(big.NewInt(0).Add(value, deposit), price)
	if refund.Sign() > 0 {
		if err := p.escrowOut(sm, actionCtx.Caller, refund); err != nil {
			return p.settleTransferFailure(sm, snapshot, receipt)
		}
	}

	fund, err := getFund(sm)
	if err != nil {
		return nil, err
	}
	newIndex := fund.EntryCount
	if err := putEntry(sm, newIndex, &RegistryEntry{
		Name:  nr.Name(),
		Owner: actionCtx.Caller.Bytes(),
	}); err != nil {
		return nil, err
	}
	if err := putNameIndex(sm, NameHash(nr.Name()), newIndex); err != nil {
		return nil, err
	}
	owned, err := getOwned(sm, actionCtx.Caller)
	if err != nil {
		return nil, err
	}
	owned.Indices = append(owned.Indices, newIndex)
	if err := putOwned(sm, actionCtx.Caller, owned); err != nil {
		return nil, err
	}
	fund.EntryCount++
	fund.TotalFees = big.NewInt(0).Add(fund.TotalFees, price)
	if err := putFund(sm, fund); err != nil {
		return nil, err
	}
	if err := delRequest(sm, actionCtx.Caller); err != nil {
		return nil, err
	}

	receipt.Status = action.StatusSuccess
	receipt.AddLogs(p.eventLog(NameRegisteredTopic, actionCtx.Caller, nr.Name(), blkCtx.BlockHeight, actionCtx.ActionHash))
	if value.Sign() > 0 {
		receipt.AddTransactionLogs(&action.TransactionLog{
			Type:      action.DepositLog,
			Amount:    value,
			Sender:    actionCtx.Caller.String(),
			Recipient: p.addr.String(),
		})
	}
	if refund.Sign() > 0 {
		receipt.AddTransactionLogs(&action.TransactionLog{
			Type:      action.RefundLog,
			Amount:    refund,
			Sender:    p.addr.String(),
			Recipient: actionCtx.Caller.String(),
		})
	}
	// the fee log records the escrowed portion the registrar retains, not a
	// further balance movement
	receipt.AddTransactionLogs(&action.TransactionLog{
		Type:      action.RegistrationFeeLog,
		Amount:    price,
		Sender:    actionCtx.Caller.String(),
		Recipient: p.addr.String(),
	})
	return receipt, nil
}

// handleWithdraw cancels the sender's open slot after its unlock time and
// refunds the deposit. Cancellation is unconditional once unlocked: it needs
// no hash check and no reveal deadline check.
func (p *Protocol) handleWithdraw(ctx context.Context, elp action.Envelope, sm protocol.StateManager) (*action.Receipt, error) {
	var (
		actionCtx = protocol.MustGetActionCtx(ctx)
		blkCtx    = protocol.MustGetBlockCtx(ctx)
	)
	receipt, err := p.settleNonce(ctx, elp, sm)
	if err != nil {
		return nil, err
	}

	req, err := getRequest(sm, actionCtx.Caller)
	if err != nil {
		return nil, err
	}
	if req == nil {
		receipt.Status = action.StatusErrInvalidStage
		return receipt, nil
	}

	if uint64(blkCtx.BlockTimeStamp.Unix()) < req.UnlockTime {
		receipt.Status = action.StatusErrFundsLocked
		return receipt, nil
	}

	deposit := p.cfg.DepositAmount()
	snapshot := sm.Snapshot()
	if err := p.escrowOut(sm, actionCtx.Caller, deposit); err != nil {
		return p.settleTransferFailure(sm, snapshot, receipt)
	}
	if err := delRequest(sm, actionCtx.Caller); err != nil {
		return nil, err
	}

	receipt.Status = action.StatusSuccess
	receipt.AddTransactionLogs(&action.TransactionLog{
		Type:      action.RefundLog,
		Amount:    deposit,
		Sender:    p.addr.String(),
		Recipient: actionCtx.Caller.String(),
	})
	return receipt, nil
}

// settleDuplicate resolves a reveal of an already registered name: the full
// attached value plus the escrowed deposit flow back to the sender, and the
// registry is left untouched
func (p *Protocol) settleDuplicate(sm protocol.StateManager, actionCtx protocol.ActionCtx, height uint64, nr *action.NameReveal, receipt *action.Receipt) (*action.Receipt, error) {
	var (
		value   = nr.Amount()
		deposit = p.cfg.DepositAmount()
		refund  = big.NewInt(0).Add(value, deposit)
	)
	snapshot := sm.Snapshot()
	if value.Sign() > 0 {
		if err := p.escrowIn(sm, actionCtx.Caller, value); err != nil {
			return p.settleTransferFailure(sm, snapshot, receipt)
		}
	}
	if err := p.escrowOut(sm, actionCtx.Caller, refund); err != nil {
		return p.settleTransferFailure(sm, snapshot, receipt)
	}
	if err := delRequest(sm, actionCtx.Caller); err != nil {
		return nil, err
	}

	receipt.Status = action.StatusSuccess
	receipt.AddLogs(p.eventLog(NameAlreadyRegisteredTopic, actionCtx.Caller, nr.Name(), height, actionCtx.ActionHash))
	if value.Sign() > 0 {
		receipt.AddTransactionLogs(&action.TransactionLog{
			Type:      action.DepositLog,
			Amount:    value,
			Sender:    actionCtx.Caller.String(),
			Recipient: p.addr.String(),
		})
	}
	receipt.AddTransactionLogs(&action.TransactionLog{
		Type:      action.RefundLog,
		Amount:    refund,
		Sender:    p.addr.String(),
		Recipient: actionCtx.Caller.String(),
	})
	return receipt, nil
}

// settleNonce advances the sender's nonce and seeds the receipt. The nonce
// moves even when the action resolves to a failure status.
func (p *Protocol) settleNonce(ctx context.Context, elp action.Envelope, sm protocol.StateManager) (*action.Receipt, error) {
	var (
		actionCtx = protocol.MustGetActionCtx(ctx)
		blkCtx    = protocol.MustGetBlockCtx(ctx)
	)
	sender, err := accountutil.LoadOrCreateAccount(sm, actionCtx.Caller)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load the account of sender %s", actionCtx.Caller.String())
	}
	accountutil.SetNonce(elp, sender)
	if err := accountutil.StoreAccount(sm, actionCtx.Caller, sender); err != nil {
		return nil, errors.Wrap(err, "failed to update the account of sender")
	}
	return &action.Receipt{
		ActionHash:      actionCtx.ActionHash,
		BlockHeight:     blkCtx.BlockHeight,
		GasConsumed:     actionCtx.IntrinsicGas,
		ContractAddress: p.addr.String(),
	}, nil
}

// settleTransferFailure unwinds everything staged since the snapshot, so a
// failed refund can never leave the slot cleared without its payment
func (p *Protocol) settleTransferFailure(sm protocol.StateManager, snapshot int, receipt *action.Receipt) (*action.Receipt, error) {
	if err := sm.Revert(snapshot); err != nil {
		return nil, err
	}
	receipt.Status = action.StatusErrTransferFailure
	return receipt, nil
}

func (p *Protocol) eventLog(topic hash.Hash256, caller address.Address, name string, height uint64, actHash hash.Hash256) *action.Log {
	return &action.Log{
		Address:     p.addr.String(),
		Topics:      []hash.Hash256{topic, hash.BytesToHash256(caller.Bytes())},
		Data:        []byte(name),
		BlockHeight: height,
		ActionHash:  actHash,
	}
}
