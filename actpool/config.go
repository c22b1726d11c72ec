// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package actpool

import (
	"math/big"
	"time"

	"github.com/namechain/namechain-core/pkg/log"
)

// DefaultConfig is the default config for actpool
var DefaultConfig = Config{
	MaxNumActsPerPool:  32000,
	MaxGasLimitPerPool: 320000000,
	MaxNumActsPerAcct:  2000,
	ActionExpiry:       10 * time.Minute,
	MinGasPriceStr:     big.NewInt(0).String(),
	BlackList:          []string{},
}

// Config is the actpool config
type Config struct {
	// MaxNumActsPerPool indicates maximum number of actions the whole actpool can hold
	MaxNumActsPerPool uint64 `yaml:"maxNumActsPerPool"`
	// MaxGasLimitPerPool indicates maximum gas limit the whole actpool can hold
	MaxGasLimitPerPool uint64 `yaml:"maxGasLimitPerPool"`
	// MaxNumActsPerAcct indicates maximum number of actions an account queue can hold
	MaxNumActsPerAcct uint64 `yaml:"maxNumActsPerAcct"`
	// ActionExpiry defines how long an action will be kept in action pool
	ActionExpiry time.Duration `yaml:"actionExpiry"`
	// MinGasPriceStr defines the minimal gas price the block producer will accept for an action
	MinGasPriceStr string `yaml:"minGasPrice"`
	// BlackList lists the account addresses that are banned from initiating actions
	BlackList []string `yaml:"blackList"`
}

// MinGasPrice returns the minimal gas price threshold
func (cfg Config) MinGasPrice() *big.Int {
	mgp, ok := new(big.Int).SetString(cfg.MinGasPriceStr, 10)
	if !ok {
		log.S().Panicf("Error when parsing minimal gas price string: %s", cfg.MinGasPriceStr)
	}
	return mgp
}
