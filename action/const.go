// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import "github.com/pkg/errors"

var (
	// ErrInvalidAct indicates an invalid action format
	ErrInvalidAct = errors.New("invalid action format")
	// ErrAddress indicates an invalid address
	ErrAddress = errors.New("invalid address")
	// ErrInvalidSender indicates an unverifiable sender
	ErrInvalidSender = errors.New("invalid sender")
	// ErrNegativeValue indicates a negative amount
	ErrNegativeValue = errors.New("negative value")
	// ErrNilAction indicates a nil action to load
	ErrNilAction = errors.New("nil action to load")
	// ErrChainID indicates a mismatching chain ID
	ErrChainID = errors.New("invalid chainID")
	// ErrGasPrice indicates an invalid gas price
	ErrGasPrice = errors.New("invalid gas price")
	// ErrUnderpriced indicates the action is underpriced for the pool
	ErrUnderpriced = errors.New("action underpriced")
	// ErrIntrinsicGas indicates the gas limit does not cover intrinsic gas
	ErrIntrinsicGas = errors.New("intrinsic gas too low")
	// ErrInsufficientFunds indicates the sender cannot cover amount plus gas
	ErrInsufficientFunds = errors.New("insufficient funds for gas * price + value")
	// ErrNonceTooLow indicates the nonce is behind the account's pending nonce
	ErrNonceTooLow = errors.New("nonce too low")
	// ErrNonceTooHigh indicates the nonce is ahead of the account's pending nonce
	ErrNonceTooHigh = errors.New("nonce too high")
	// ErrExistedInPool indicates the action hash is already known to the pool
	ErrExistedInPool = errors.New("known action")
	// ErrReplaceUnderpriced indicates the replacement does not outbid the queued action
	ErrReplaceUnderpriced = errors.New("replacement action underpriced")
	// ErrTxPoolOverflow indicates the pool is full
	ErrTxPoolOverflow = errors.New("action pool is full")
	// ErrGasLimit indicates the gas limit is out of range
	ErrGasLimit = errors.New("invalid gas limit")
	// ErrOversizedData indicates the payload exceeds the size cap
	ErrOversizedData = errors.New("oversized data")
	// ErrNotFound indicates the nonexistence of an action
	ErrNotFound = errors.New("action not found")
)

// LoadErrorDescription loads the corresponding description with the given error
func LoadErrorDescription(err error) string {
	switch errors.Cause(err) {
	case ErrOversizedData, ErrTxPoolOverflow, ErrInvalidSender, ErrNonceTooLow, ErrNonceTooHigh, ErrUnderpriced,
		ErrNegativeValue, ErrIntrinsicGas, ErrInsufficientFunds, ErrChainID, ErrExistedInPool, ErrGasPrice,
		ErrReplaceUnderpriced, ErrGasLimit:
		return errors.Cause(err).Error()
	default:
		return "unknown"
	}
}
