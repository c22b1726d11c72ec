// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package routine

import (
	"context"
	"time"

	"github.com/namechain/namechain-core/pkg/lifecycle"
)

// Task is a function to run in a routine
type Task func()

var _ lifecycle.StartStopper = (*RecurringTask)(nil)

// RecurringTask runs a task on a fixed interval until stopped
type RecurringTask struct {
	lifecycle.Readiness
	t        Task
	interval time.Duration
	ticker   *time.Ticker
	done     chan struct{}
}

// NewRecurringTask creates an instance of RecurringTask
func NewRecurringTask(t Task, i time.Duration) *RecurringTask {
	return &RecurringTask{
		t:        t,
		interval: i,
		done:     make(chan struct{}),
	}
}

// Start starts the timer
func (t *RecurringTask) Start(_ context.Context) error {
	t.ticker = time.NewTicker(t.interval)
	ready := make(chan struct{})
	go func() {
		close(ready)
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				t.t()
			}
		}
	}()
	<-ready
	return t.TurnOn()
}

// Stop stops the timer
func (t *RecurringTask) Stop(_ context.Context) error {
	if err := t.TurnOff(); err != nil {
		return err
	}
	if t.ticker != nil {
		t.ticker.Stop()
	}
	close(t.done)
	return nil
}
