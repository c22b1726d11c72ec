// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	uconfig "go.uber.org/config"

	"github.com/namechain/namechain-core/actpool"
	"github.com/namechain/namechain-core/api"
	"github.com/namechain/namechain-core/blockchain"
	"github.com/namechain/namechain-core/blockchain/genesis"
	"github.com/namechain/namechain-core/db"
	"github.com/namechain/namechain-core/pkg/log"
)

// IMPORTANT: to define a config, add a field or a new config type to the existing config types. In addition, provide
// the default value in Default var.

var (
	// Default is the default config
	Default = Config{
		SubLogs: make(map[string]log.GlobalConfig),
		Chain:   blockchain.DefaultConfig,
		ActPool: actpool.DefaultConfig,
		API:     api.DefaultConfig,
		System: System{
			Active:            true,
			HeartbeatInterval: 10 * time.Second,
			HTTPAdminPort:     9009,
			HTTPStatsPort:     8080,
		},
		DB:      db.DefaultConfig,
		Genesis: genesis.Default,
	}

	// ErrInvalidCfg indicates the invalid config value
	ErrInvalidCfg = errors.New("invalid config value")

	// Validates is the collection config validation functions
	Validates = []Validate{
		ValidateAPI,
		ValidateActPool,
		ValidateSystem,
	}
)

type (
	// System is the system config
	System struct {
		// Active is the status of the node. True means active and false means stand-by
		Active            bool          `yaml:"active"`
		HeartbeatInterval time.Duration `yaml:"heartbeatInterval"`
		// HTTPAdminPort is the port number to access the admin endpoints (pprof, log level), 0
		// disables the admin server
		HTTPAdminPort int `yaml:"httpAdminPort"`
		// HTTPStatsPort serves the liveness probe and prometheus metrics
		HTTPStatsPort int `yaml:"httpStatsPort"`
	}

	// Config is the root config struct, each package's config should be put as its sub struct
	Config struct {
		Chain   blockchain.Config           `yaml:"chain"`
		ActPool actpool.Config              `yaml:"actPool"`
		API     api.Config                  `yaml:"api"`
		System  System                      `yaml:"system"`
		DB      db.Config                   `yaml:"db"`
		Log     log.GlobalConfig            `yaml:"log"`
		SubLogs map[string]log.GlobalConfig `yaml:"subLogs"`
		Genesis genesis.Genesis             `yaml:"genesis"`
	}

	// Validate is the interface of validating the config
	Validate func(Config) error
)

// New creates a config instance. It first loads the default configs. If the config path is not empty, it will read from
// the file and override the default configs. By default, it will apply all validation functions. To bypass validation,
// use DoNotValidate instead.
func New(configPaths []string, validates ...Validate) (Config, error) {
	opts := make([]uconfig.YAMLOption, 0)
	opts = append(opts, uconfig.Static(Default))
	opts = append(opts, uconfig.Expand(os.LookupEnv))
	for _, path := range configPaths {
		if path != "" {
			opts = append(opts, uconfig.File(path))
		}
	}
	yaml, err := uconfig.NewYAML(opts...)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to init config")
	}

	var cfg Config
	if err := yaml.Get(uconfig.Root).Populate(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to unmarshal YAML config to struct")
	}

	// By default, the config needs to pass all the validation
	if len(validates) == 0 {
		validates = Validates
	}
	for _, validate := range validates {
		if err := validate(cfg); err != nil {
			return Config{}, errors.Wrap(err, "failed to validate config")
		}
	}
	return cfg, nil
}

// ValidateAPI validates the api configs
func ValidateAPI(cfg Config) error {
	if cfg.API.RangeQueryLimit == 0 {
		return errors.Wrap(ErrInvalidCfg, "range query limit should be greater than 0")
	}
	if cfg.API.MaxConcurrentRequests <= 0 {
		return errors.Wrap(ErrInvalidCfg, "max concurrent requests should be greater than 0")
	}
	if cfg.API.ListenerLimit <= 0 {
		return errors.Wrap(ErrInvalidCfg, "listener limit should be greater than 0")
	}
	return nil
}

// ValidateActPool validates the given config
func ValidateActPool(cfg Config) error {
	maxNumActPerPool := cfg.ActPool.MaxNumActsPerPool
	maxNumActPerAcct := cfg.ActPool.MaxNumActsPerAcct
	if maxNumActPerPool <= 0 || maxNumActPerAcct <= 0 {
		return errors.Wrap(
			ErrInvalidCfg,
			"maximum number of actions per pool or per account cannot be zero or negative",
		)
	}
	if maxNumActPerPool < maxNumActPerAcct {
		return errors.Wrap(
			ErrInvalidCfg,
			"maximum number of actions per pool cannot be less than maximum number of actions per account",
		)
	}
	return nil
}

// ValidateSystem validates the system configs
func ValidateSystem(cfg Config) error {
	if cfg.System.Active && cfg.System.HeartbeatInterval < 0 {
		return errors.Wrap(ErrInvalidCfg, "heartbeat interval cannot be negative")
	}
	return nil
}

// DoNotValidate validates the given config
func DoNotValidate(cfg Config) error { return nil }
