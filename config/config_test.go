// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package config

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	r := require.New(t)
	cfg, err := New(nil)
	r.NoError(err)
	r.Equal(Default.Chain.ChainDBPath, cfg.Chain.ChainDBPath)
	r.Equal(Default.API.Port, cfg.API.Port)
	r.Equal(Default.ActPool.MaxNumActsPerPool, cfg.ActPool.MaxNumActsPerPool)
	r.True(cfg.System.Active)
	r.Equal(10*time.Second, cfg.System.HeartbeatInterval)
	r.Equal("100", cfg.Genesis.Registrar.Deposit)
	r.Equal(big.NewInt(100), cfg.Genesis.Registrar.DepositAmount())
}

func TestNewConfigWithOverride(t *testing.T) {
	r := require.New(t)
	cfgStr := `
chain:
    chainDBPath: /tmp/chain-override.db
actPool:
    minGasPrice: "5"
api:
    port: 9999
system:
    heartbeatInterval: 5s
genesis:
    registrar:
        deposit: "250"
        revealSpan: 64
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	r.NoError(os.WriteFile(path, []byte(cfgStr), 0666))

	cfg, err := New([]string{path})
	r.NoError(err)
	r.Equal("/tmp/chain-override.db", cfg.Chain.ChainDBPath)
	r.Equal(big.NewInt(5), cfg.ActPool.MinGasPrice())
	r.Equal(9999, cfg.API.Port)
	r.Equal(5*time.Second, cfg.System.HeartbeatInterval)
	r.Equal("250", cfg.Genesis.Registrar.Deposit)
	r.Equal(uint64(64), cfg.Genesis.Registrar.RevealSpan)
	// everything else keeps the default
	r.Equal(Default.Genesis.Registrar.NameCost, cfg.Genesis.Registrar.NameCost)
	r.Equal(Default.DB.Compressor, cfg.DB.Compressor)
}

func TestNewConfigWithEnvExpansion(t *testing.T) {
	r := require.New(t)
	t.Setenv("NAMECHAIN_CHAIN_DB", "/tmp/from-env.db")
	cfgStr := `
chain:
    chainDBPath: ${NAMECHAIN_CHAIN_DB}
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	r.NoError(os.WriteFile(path, []byte(cfgStr), 0666))

	cfg, err := New([]string{path})
	r.NoError(err)
	r.Equal("/tmp/from-env.db", cfg.Chain.ChainDBPath)
}

func TestNewConfigWithWrongConfigPath(t *testing.T) {
	r := require.New(t)
	_, err := New([]string{"wrong_path"})
	r.Error(err)
}

func TestValidates(t *testing.T) {
	r := require.New(t)

	cfg := Default
	cfg.API.RangeQueryLimit = 0
	err := ValidateAPI(cfg)
	r.Equal(ErrInvalidCfg, errors.Cause(err))
	r.ErrorContains(err, "range query limit")

	cfg = Default
	cfg.API.MaxConcurrentRequests = 0
	r.Equal(ErrInvalidCfg, errors.Cause(ValidateAPI(cfg)))

	cfg = Default
	cfg.API.ListenerLimit = 0
	r.Equal(ErrInvalidCfg, errors.Cause(ValidateAPI(cfg)))

	cfg = Default
	cfg.ActPool.MaxNumActsPerAcct = 0
	r.Equal(ErrInvalidCfg, errors.Cause(ValidateActPool(cfg)))

	cfg = Default
	cfg.ActPool.MaxNumActsPerPool = cfg.ActPool.MaxNumActsPerAcct - 1
	err = ValidateActPool(cfg)
	r.Equal(ErrInvalidCfg, errors.Cause(err))
	r.ErrorContains(err, "cannot be less than")

	cfg = Default
	cfg.System.HeartbeatInterval = -time.Second
	r.Equal(ErrInvalidCfg, errors.Cause(ValidateSystem(cfg)))

	// a broken config still loads when validation is bypassed
	r.NoError(DoNotValidate(cfg))
}
