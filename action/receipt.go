// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"math/big"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/pkg/errors"

	"github.com/namechain/namechain-core/pkg/log"
)

const (
	// StatusFailure is the status of a failed execution
	StatusFailure = uint64(0)
	// StatusSuccess is the status of a successful execution
	StatusSuccess = uint64(1)
	// StatusErrInvalidStage is the status of a name action sent from the wrong slot stage
	StatusErrInvalidStage = uint64(100)
	// StatusErrInvalidDeposit is the status of a commitment whose value is not the exact deposit
	StatusErrInvalidDeposit = uint64(101)
	// StatusErrNotYetRevealable is the status of a reveal sent before the reveal deadline
	StatusErrNotYetRevealable = uint64(102)
	// StatusErrCommitmentMismatch is the status of a reveal that does not match the commitment
	StatusErrCommitmentMismatch = uint64(103)
	// StatusErrInvalidName is the status of a reveal of an empty or zero-priced name
	StatusErrInvalidName = uint64(104)
	// StatusErrInsufficientFunds is the status of an action whose sender cannot cover the value it moves
	StatusErrInsufficientFunds = uint64(105)
	// StatusErrFundsLocked is the status of a withdrawal before the unlock time
	StatusErrFundsLocked = uint64(106)
	// StatusErrTransferFailure is the status of a failed balance movement
	StatusErrTransferFailure = uint64(107)
)

// TransactionLogType tags the kind of balance movement a transaction log records
type TransactionLogType uint8

const (
	// NativeTransferLog marks value moved by a plain transfer
	NativeTransferLog TransactionLogType = iota + 1
	// GasFeeLog marks gas charged to the sender and credited to the block producer
	GasFeeLog
	// DepositLog marks value escrowed with the registrar
	DepositLog
	// RefundLog marks escrowed value returned to the sender
	RefundLog
	// RegistrationFeeLog marks the registration fee retained by the registrar
	RegistrationFeeLog
)

type (
	// Receipt represents the result of executing an action
	Receipt struct {
		Status          uint64
		BlockHeight     uint64
		ActionHash      hash.Hash256
		GasConsumed     uint64
		ContractAddress string

		logs            []*Log
		transactionLogs []*TransactionLog
	}

	// Log is an event emitted during execution
	Log struct {
		Address     string
		Topics      []hash.Hash256
		Data        []byte
		BlockHeight uint64
		ActionHash  hash.Hash256
		Index       uint
	}

	// TransactionLog records a single balance movement caused by an action
	TransactionLog struct {
		Type      TransactionLogType
		Amount    *big.Int
		Sender    string
		Recipient string
	}

	receiptRLP struct {
		Status          uint64
		BlockHeight     uint64
		ActionHash      hash.Hash256
		GasConsumed     uint64
		ContractAddress string
		Logs            []*logRLP
		TransactionLogs []*transactionLogRLP
	}

	logRLP struct {
		Address     string
		Topics      []hash.Hash256
		Data        []byte
		BlockHeight uint64
		ActionHash  hash.Hash256
		Index       uint32
	}

	transactionLogRLP struct {
		Type      uint8
		Amount    *big.Int
		Sender    string
		Recipient string
	}
)

// String returns the display name of the transaction log type
func (t TransactionLogType) String() string {
	switch t {
	case NativeTransferLog:
		return "NATIVE_TRANSFER"
	case GasFeeLog:
		return "GAS_FEE"
	case DepositLog:
		return "DEPOSIT"
	case RefundLog:
		return "REFUND"
	case RegistrationFeeLog:
		return "REGISTRATION_FEE"
	default:
		return "UNKNOWN"
	}
}

// AddLogs adds logs to the receipt and filters out nil logs
func (receipt *Receipt) AddLogs(logs ...*Log) *Receipt {
	for _, l := range logs {
		if l != nil {
			receipt.logs = append(receipt.logs, l)
		}
	}
	return receipt
}

// AddTransactionLogs adds transaction logs to the receipt and filters out nil logs
func (receipt *Receipt) AddTransactionLogs(logs ...*TransactionLog) *Receipt {
	for _, l := range logs {
		if l != nil {
			receipt.transactionLogs = append(receipt.transactionLogs, l)
		}
	}
	return receipt
}

// Logs returns the logs attached to the receipt
func (receipt *Receipt) Logs() []*Log {
	return receipt.logs
}

// TransactionLogs returns the transaction logs attached to the receipt
func (receipt *Receipt) TransactionLogs() []*TransactionLog {
	return receipt.transactionLogs
}

// Serialize returns the RLP byte stream of the receipt
func (receipt *Receipt) Serialize() ([]byte, error) {
	wire := receiptRLP{
		Status:          receipt.Status,
		BlockHeight:     receipt.BlockHeight,
		ActionHash:      receipt.ActionHash,
		GasConsumed:     receipt.GasConsumed,
		ContractAddress: receipt.ContractAddress,
	}
	for _, l := range receipt.logs {
		wire.Logs = append(wire.Logs, &logRLP{
			Address:     l.Address,
			Topics:      l.Topics,
			Data:        l.Data,
			BlockHeight: l.BlockHeight,
			ActionHash:  l.ActionHash,
			Index:       uint32(l.Index),
		})
	}
	for _, l := range receipt.transactionLogs {
		wire.TransactionLogs = append(wire.TransactionLogs, &transactionLogRLP{
			Type:      uint8(l.Type),
			Amount:    l.Amount,
			Sender:    l.Sender,
			Recipient: l.Recipient,
		})
	}
	return rlp.EncodeToBytes(&wire)
}

// Deserialize parses the RLP byte stream into the receipt
func (receipt *Receipt) Deserialize(buf []byte) error {
	var wire receiptRLP
	if err := rlp.DecodeBytes(buf, &wire); err != nil {
		return errors.Wrap(err, "failed to decode receipt")
	}
	receipt.Status = wire.Status
	receipt.BlockHeight = wire.BlockHeight
	receipt.ActionHash = wire.ActionHash
	receipt.GasConsumed = wire.GasConsumed
	receipt.ContractAddress = wire.ContractAddress
	receipt.logs = nil
	for _, l := range wire.Logs {
		receipt.logs = append(receipt.logs, &Log{
			Address:     l.Address,
			Topics:      l.Topics,
			Data:        l.Data,
			BlockHeight: l.BlockHeight,
			ActionHash:  l.ActionHash,
			Index:       uint(l.Index),
		})
	}
	receipt.transactionLogs = nil
	for _, l := range wire.TransactionLogs {
		receipt.transactionLogs = append(receipt.transactionLogs, &TransactionLog{
			Type:      TransactionLogType(l.Type),
			Amount:    l.Amount,
			Sender:    l.Sender,
			Recipient: l.Recipient,
		})
	}
	return nil
}

// Hash returns the hash of the receipt
func (receipt *Receipt) Hash() hash.Hash256 {
	data, err := receipt.Serialize()
	if err != nil {
		log.L().Panic("Error when serializing a receipt")
	}
	return hash.BytesToHash256(ethcrypto.Keccak256(data))
}
