// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package api

import (
	"encoding/hex"

	"github.com/namechain/namechain-core/action"
)

type (
	// SendActionRequest is the body of an action submission, the signed
	// envelope rides as a hex string of its serialization
	SendActionRequest struct {
		Action string `json:"action"`
	}

	// SendActionResponse carries the hash of the accepted action
	SendActionResponse struct {
		ActionHash string `json:"actionHash"`
	}

	// ChainMeta is the chain tip metadata
	ChainMeta struct {
		ChainID      uint32 `json:"chainID"`
		TipHeight    uint64 `json:"tipHeight"`
		TipHash      string `json:"tipHash"`
		TipTimestamp int64  `json:"tipTimestamp"`
		GenesisHash  string `json:"genesisHash"`
	}

	// AccountMeta is the account state served to clients
	AccountMeta struct {
		Address      string       `json:"address"`
		Balance      string       `json:"balance"`
		Nonce        uint64       `json:"nonce"`
		PendingNonce uint64       `json:"pendingNonce"`
		Request      *RequestMeta `json:"request,omitempty"`
		OwnedIndices []uint64     `json:"ownedIndices"`
	}

	// RequestMeta is an account's open registration request
	RequestMeta struct {
		Commitment     string `json:"commitment"`
		RevealDeadline uint64 `json:"revealDeadline"`
		UnlockTime     uint64 `json:"unlockTime"`
	}

	// RegistryMeta is the registrar's constants and counters
	RegistryMeta struct {
		Deposit    string `json:"deposit"`
		LockTime   int64  `json:"lockTime"`
		RevealSpan uint64 `json:"revealSpan"`
		NameCost   string `json:"nameCost"`
		Entries    uint64 `json:"entries"`
		TotalFees  string `json:"totalFees"`
	}

	// RegistryEntryMeta is one registered name
	RegistryEntryMeta struct {
		Index uint64 `json:"index"`
		Name  string `json:"name"`
		Owner string `json:"owner"`
	}

	// RegistryEntriesResponse is a page of the registry in registration order
	RegistryEntriesResponse struct {
		Total   uint64               `json:"total"`
		Entries []*RegistryEntryMeta `json:"entries"`
	}

	// DuplicateResponse is the outcome of a duplicate check
	DuplicateResponse struct {
		Name      string `json:"name"`
		Duplicate bool   `json:"duplicate"`
	}

	// ReceiptMeta is an action receipt served to clients
	ReceiptMeta struct {
		ActionHash      string                `json:"actionHash"`
		Status          string                `json:"status"`
		StatusCode      uint64                `json:"statusCode"`
		BlockHeight     uint64                `json:"blockHeight"`
		GasConsumed     uint64                `json:"gasConsumed"`
		ContractAddress string                `json:"contractAddress,omitempty"`
		Logs            []*LogMeta            `json:"logs,omitempty"`
		TransactionLogs []*TransactionLogMeta `json:"transactionLogs,omitempty"`
	}

	// LogMeta is an event log inside a receipt
	LogMeta struct {
		Address string   `json:"address"`
		Topics  []string `json:"topics"`
		Data    string   `json:"data"`
	}

	// TransactionLogMeta is one balance movement recorded by a receipt
	TransactionLogMeta struct {
		Type      string `json:"type"`
		Amount    string `json:"amount"`
		Sender    string `json:"sender"`
		Recipient string `json:"recipient"`
	}

	// EventMessage is one registration event streamed over the websocket
	EventMessage struct {
		Event       string `json:"event"`
		Account     string `json:"account"`
		Name        string `json:"name"`
		BlockHeight uint64 `json:"blockHeight"`
		ActionHash  string `json:"actionHash"`
	}

	// ErrorResponse is the JSON body of a failed request
	ErrorResponse struct {
		Error string `json:"error"`
	}
)

// StatusName translates a receipt status code into its display name
func StatusName(status uint64) string {
	switch status {
	case action.StatusSuccess:
		return "Success"
	case action.StatusErrInvalidStage:
		return "ErrInvalidStage"
	case action.StatusErrInvalidDeposit:
		return "ErrInvalidDeposit"
	case action.StatusErrNotYetRevealable:
		return "ErrNotYetRevealable"
	case action.StatusErrCommitmentMismatch:
		return "ErrCommitmentMismatch"
	case action.StatusErrInvalidName:
		return "ErrInvalidName"
	case action.StatusErrInsufficientFunds:
		return "ErrInsufficientFunds"
	case action.StatusErrFundsLocked:
		return "ErrFundsLocked"
	case action.StatusErrTransferFailure:
		return "ErrTransferFailure"
	default:
		return "Failure"
	}
}

// receiptMeta converts a receipt into its wire form
func receiptMeta(receipt *action.Receipt) *ReceiptMeta {
	rm := &ReceiptMeta{
		ActionHash:      hex.EncodeToString(receipt.ActionHash[:]),
		Status:          StatusName(receipt.Status),
		StatusCode:      receipt.Status,
		BlockHeight:     receipt.BlockHeight,
		GasConsumed:     receipt.GasConsumed,
		ContractAddress: receipt.ContractAddress,
	}
	for _, l := range receipt.Logs() {
		topics := make([]string, 0, len(l.Topics))
		for _, t := range l.Topics {
			topics = append(topics, hex.EncodeToString(t[:]))
		}
		rm.Logs = append(rm.Logs, &LogMeta{
			Address: l.Address,
			Topics:  topics,
			Data:    hex.EncodeToString(l.Data),
		})
	}
	for _, l := range receipt.TransactionLogs() {
		rm.TransactionLogs = append(rm.TransactionLogs, &TransactionLogMeta{
			Type:      l.Type.String(),
			Amount:    l.Amount.String(),
			Sender:    l.Sender,
			Recipient: l.Recipient,
		})
	}
	return rm
}
