// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package client

type (
	// SendActionRequest is the body of an action submission, the signed
	// envelope rides as a hex string of its serialization
	SendActionRequest struct {
		Action string `json:"action"`
	}

	// ChainMeta is the chain tip metadata
	ChainMeta struct {
		ChainID      uint32 `json:"chainID"`
		TipHeight    uint64 `json:"tipHeight"`
		TipHash      string `json:"tipHash"`
		TipTimestamp int64  `json:"tipTimestamp"`
		GenesisHash  string `json:"genesisHash"`
	}

	// AccountMeta is the state of one account
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

	// RegistryEntry is one registered name
	RegistryEntry struct {
		Index uint64 `json:"index"`
		Name  string `json:"name"`
		Owner string `json:"owner"`
	}

	// RegistryEntries is a page of the registry in registration order
	RegistryEntries struct {
		Total   uint64           `json:"total"`
		Entries []*RegistryEntry `json:"entries"`
	}

	// Receipt is the receipt of an executed action
	Receipt struct {
		ActionHash      string            `json:"actionHash"`
		Status          string            `json:"status"`
		StatusCode      uint64            `json:"statusCode"`
		BlockHeight     uint64            `json:"blockHeight"`
		GasConsumed     uint64            `json:"gasConsumed"`
		ContractAddress string            `json:"contractAddress,omitempty"`
		Logs            []*Log            `json:"logs,omitempty"`
		TransactionLogs []*TransactionLog `json:"transactionLogs,omitempty"`
	}

	// Log is an event log inside a receipt
	Log struct {
		Address string   `json:"address"`
		Topics  []string `json:"topics"`
		Data    string   `json:"data"`
	}

	// TransactionLog is one balance movement recorded by a receipt
	TransactionLog struct {
		Type      string `json:"type"`
		Amount    string `json:"amount"`
		Sender    string `json:"sender"`
		Recipient string `json:"recipient"`
	}

	duplicateResponse struct {
		Name      string `json:"name"`
		Duplicate bool   `json:"duplicate"`
	}
)
