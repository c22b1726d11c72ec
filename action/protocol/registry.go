// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package protocol

import (
	"context"

	"github.com/pkg/errors"

	"github.com/namechain/namechain-core/pkg/log"
)

// Registry is the hub of all protocols deployed on the chain. Protocols are
// iterated in registration order, so block execution stays deterministic.
type Registry struct {
	ids       []string
	protocols []Protocol
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

func (registry *Registry) indexOfID(id string) int {
	for i, k := range registry.ids {
		if k == id {
			return i
		}
	}
	return -1
}

// Register registers the protocol with a unique ID
func (registry *Registry) Register(id string, p Protocol) error {
	return registry.register(id, p, false)
}

// ForceRegister registers the protocol with a unique ID, replacing any protocol
// previously registered under that ID
func (registry *Registry) ForceRegister(id string, p Protocol) error {
	return registry.register(id, p, true)
}

func (registry *Registry) register(id string, p Protocol, force bool) error {
	if idx := registry.indexOfID(id); idx >= 0 {
		if !force {
			return errors.Errorf("protocol with ID %s is already registered", id)
		}
		registry.protocols[idx] = p
		return nil
	}
	registry.ids = append(registry.ids, id)
	registry.protocols = append(registry.protocols, p)
	return nil
}

// Find finds a protocol by ID
func (registry *Registry) Find(id string) (Protocol, bool) {
	idx := registry.indexOfID(id)
	if idx < 0 {
		return nil, false
	}
	return registry.protocols[idx], true
}

// All returns all protocols in registration order
func (registry *Registry) All() []Protocol {
	all := make([]Protocol, len(registry.protocols))
	copy(all, registry.protocols)
	return all
}

type registryContextKey struct{}

// WithRegistry adds the protocol registry to context
func WithRegistry(ctx context.Context, reg *Registry) context.Context {
	return context.WithValue(ctx, registryContextKey{}, reg)
}

// GetRegistry returns the registry from context
func GetRegistry(ctx context.Context) (*Registry, bool) {
	reg, ok := ctx.Value(registryContextKey{}).(*Registry)
	return reg, ok
}

// MustGetRegistry returns the registry from context, panic if not exist
func MustGetRegistry(ctx context.Context) *Registry {
	reg, ok := ctx.Value(registryContextKey{}).(*Registry)
	if !ok {
		log.S().Panic("Miss registry context")
	}
	return reg
}
