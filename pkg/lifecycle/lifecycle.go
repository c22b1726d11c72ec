// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package lifecycle manages the start and stop of a pool of models.
package lifecycle

import (
	"context"

	"go.uber.org/multierr"
)

type (
	// Starter is the interface of models that can start.
	Starter interface {
		Start(context.Context) error
	}

	// Stopper is the interface of models that can stop.
	Stopper interface {
		Stop(context.Context) error
	}

	// StartStopper is the interface of models that have a lifecycle.
	StartStopper interface {
		Starter
		Stopper
	}

	// Lifecycle manages the life cycle of a pool of models.
	Lifecycle struct {
		models []interface{}
	}
)

// Add adds a model into Lifecycle.
func (lc *Lifecycle) Add(m interface{}) { lc.models = append(lc.models, m) }

// AddModels adds multiple models into Lifecycle.
func (lc *Lifecycle) AddModels(m ...interface{}) { lc.models = append(lc.models, m...) }

// OnStart runs models' Start function if models implement it. Start is called
// in the order models were added.
func (lc *Lifecycle) OnStart(ctx context.Context) error {
	var err error
	for _, m := range lc.models {
		if starter, ok := m.(Starter); ok {
			err = multierr.Append(err, starter.Start(ctx))
		}
	}
	return err
}

// OnStop runs models' Stop function if models implement it.
func (lc *Lifecycle) OnStop(ctx context.Context) error {
	var err error
	for _, m := range lc.models {
		if stopper, ok := m.(Stopper); ok {
			err = multierr.Append(err, stopper.Stop(ctx))
		}
	}
	return err
}
