// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package protocol

import (
	"context"

	"github.com/pkg/errors"

	"github.com/namechain/namechain-core/action"
)

// ErrUnimplemented indicates a method is not implemented yet
var ErrUnimplemented = errors.New("method is unimplemented")

type (
	// Protocol defines the protocol interfaces atop the chain
	Protocol interface {
		ActionHandler
		ReadState(context.Context, StateReader, []byte, ...[]byte) ([]byte, uint64, error)
		Register(*Registry) error
		ForceRegister(*Registry) error
		Name() string
	}

	// ActionHandler is the interface for the action handlers. For each action in
	// a block, the registered protocols are called one by one to process it. A
	// handler returns a nil receipt if the action is not its to handle.
	ActionHandler interface {
		Handle(context.Context, action.Envelope, StateManager) (*action.Receipt, error)
	}

	// GenesisStateCreator creates the genesis states of a protocol
	GenesisStateCreator interface {
		CreateGenesisStates(context.Context, StateManager) error
	}
)
