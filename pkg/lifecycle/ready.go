// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package lifecycle

import (
	"sync/atomic"

	"github.com/pkg/errors"
)

// ErrWrongState indicates the service is not in the state the call expects
var ErrWrongState = errors.New("service is in wrong state")

// Readiness is a thread-safe on/off latch for a service's serving state.
// The zero value is not ready.
type Readiness struct {
	ready atomic.Bool
}

// TurnOn flips the service to ready, it fails when the service is already on
func (r *Readiness) TurnOn() error {
	if r.ready.CompareAndSwap(false, true) {
		return nil
	}
	return ErrWrongState
}

// TurnOff flips the service back to not ready, the initial state
func (r *Readiness) TurnOff() error {
	if r.ready.CompareAndSwap(true, false) {
		return nil
	}
	return ErrWrongState
}

// IsReady returns whether the service can accept requests
func (r *Readiness) IsReady() bool {
	return r.ready.Load()
}
