// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package api

import (
	"github.com/namechain/namechain-core/pkg/tracer"
)

// Config is the api service config
type Config struct {
	// Port is the port the JSON HTTP server listens on, 0 disables the server
	Port int `yaml:"port"`
	// RangeQueryLimit caps the page size of registry range queries
	RangeQueryLimit uint64 `yaml:"rangeQueryLimit"`
	// MaxConcurrentRequests caps the number of requests served at once
	MaxConcurrentRequests int64 `yaml:"maxConcurrentRequests"`
	// WebsocketRateLimit is the number of event stream connections accepted per second
	WebsocketRateLimit int `yaml:"websocketRateLimit"`
	// ListenerLimit is the maximum number of open event stream connections
	ListenerLimit int           `yaml:"listenerLimit"`
	Tracer        tracer.Config `yaml:"tracer"`
}

// DefaultConfig is the default config
var DefaultConfig = Config{
	Port:                  14014,
	RangeQueryLimit:       1000,
	MaxConcurrentRequests: 200,
	WebsocketRateLimit:    5,
	ListenerLimit:         5000,
}
