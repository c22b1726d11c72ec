// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package protocol

import (
	"context"

	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/blockchain/genesis"
	"github.com/namechain/namechain-core/state"
)

type (
	// AccountState defines a function to return the account state of a given address
	AccountState func(StateReader, address.Address) (*state.Account, error)

	// GenericValidator is the validator for generic action verification
	GenericValidator struct {
		accountState AccountState
		sr           StateReader
	}
)

// NewGenericValidator constructs a new generic validator
func NewGenericValidator(sr StateReader, accountState AccountState) *GenericValidator {
	return &GenericValidator{
		sr:           sr,
		accountState: accountState,
	}
}

// Validate validates a generic sealed envelope
func (v *GenericValidator) Validate(ctx context.Context, selp *action.SealedEnvelope) error {
	intrinsicGas, err := selp.IntrinsicGas()
	if err != nil {
		return err
	}
	if selp.GasLimit() < intrinsicGas {
		return action.ErrIntrinsicGas
	}
	if limit := genesis.MustExtractGenesisContext(ctx).ActionGasLimit; selp.GasLimit() > limit {
		return errors.Wrapf(action.ErrGasLimit, "gas limit %d exceeds the action gas limit %d", selp.GasLimit(), limit)
	}
	// Verify action using action sender's public key
	if err := selp.VerifySignature(); err != nil {
		return err
	}
	caller := selp.SenderAddress()
	if caller == nil {
		return errors.Wrap(action.ErrAddress, "failed to get the sender address")
	}
	// Reject action if nonce is too low
	confirmedState, err := v.accountState(v.sr, caller)
	if err != nil {
		return errors.Wrapf(err, "invalid state of account %s", caller.String())
	}
	if selp.Nonce() > 0 && confirmedState.PendingNonce() > selp.Nonce() {
		return action.ErrNonceTooLow
	}
	return nil
}
