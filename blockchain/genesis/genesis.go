// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package genesis

import (
	"context"
	"math/big"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"
	"go.uber.org/config"
	"go.uber.org/zap"

	"github.com/namechain/namechain-core/pkg/log"
	"github.com/namechain/namechain-core/test/identityset"
)

// Default contains the default genesis config
var Default = defaultConfig()

var (
	genesisTs     int64
	loadGenesisTs sync.Once
)

func init() {
	initTestDefaultConfig(&Default)
}

func defaultConfig() Genesis {
	return Genesis{
		Blockchain: Blockchain{
			ChainID:        1,
			Timestamp:      1767225600,
			BlockGasLimit:  20000000,
			ActionGasLimit: 5000000,
			BlockInterval:  10 * time.Second,
		},
		Account: Account{
			InitBalanceMap: make(map[string]string),
		},
		Registrar: Registrar{
			Deposit:    "100",
			LockTime:   10 * time.Second,
			RevealSpan: 32,
			NameCost:   "5",
		},
	}
}

func initTestDefaultConfig(cfg *Genesis) {
	for i := 0; i < identityset.Size(); i++ {
		addr := identityset.Address(i).String()
		value := big.NewInt(0).Mul(big.NewInt(200000000), big.NewInt(1000000)).String()
		cfg.InitBalanceMap[addr] = value
	}
}

type (
	// Genesis is the root level of genesis config. Genesis config is the network-wide blockchain config. All the nodes
	// participating into the same network should use EXACTLY SAME genesis config.
	Genesis struct {
		Blockchain `yaml:"blockchain"`
		Account    `yaml:"account"`
		Registrar  `yaml:"registrar"`
	}

	// Blockchain contains blockchain level configs
	Blockchain struct {
		// ChainID is the separation of different chains
		ChainID uint32 `yaml:"chainID"`
		// Timestamp is the timestamp of the genesis block, in unix seconds
		Timestamp int64 `yaml:"timestamp"`
		// BlockGasLimit is the total gas limit could be consumed in a block
		BlockGasLimit uint64 `yaml:"blockGasLimit"`
		// ActionGasLimit is the per-action gas cap
		ActionGasLimit uint64 `yaml:"actionGasLimit"`
		// BlockInterval is the interval between two blocks
		BlockInterval time.Duration `yaml:"blockInterval"`
	}

	// Account contains the configs for the account protocol
	Account struct {
		// InitBalanceMap is the address and initial balance mapping before the first block
		InitBalanceMap map[string]string `yaml:"initBalances"`
	}

	// Registrar contains the configs for the name registrar protocol
	Registrar struct {
		// Deposit is the exact escrow a commitment must carry, in decimal string format
		Deposit string `yaml:"deposit"`
		// LockTime is how long the escrowed deposit stays time locked after the commitment
		LockTime time.Duration `yaml:"lockTime"`
		// RevealSpan is the number of blocks after the commitment before the reveal opens
		RevealSpan uint64 `yaml:"revealSpan"`
		// NameCost is the registration fee per byte of name, in decimal string format
		NameCost string `yaml:"nameCost"`
	}

	genesisRLP struct {
		ChainID          uint32
		Timestamp        uint64
		BlockGasLimit    uint64
		ActionGasLimit   uint64
		BlockInterval    uint64
		InitBalanceAddrs []string
		InitBalances     []string
		Deposit          string
		LockTime         uint64
		RevealSpan       uint64
		NameCost         string
	}

	genesisContextKey struct{}
)

// New constructs a genesis config. It loads the default values, and could be overwritten by the yaml config file
func New(genesisPath string) (Genesis, error) {
	def := defaultConfig()

	opts := make([]config.YAMLOption, 0)
	opts = append(opts, config.Static(def))
	if genesisPath != "" {
		opts = append(opts, config.File(genesisPath))
	}
	yaml, err := config.NewYAML(opts...)
	if err != nil {
		return Genesis{}, errors.Wrap(err, "error when constructing a genesis in yaml")
	}

	var genesis Genesis
	if err := yaml.Get(config.Root).Populate(&genesis); err != nil {
		return Genesis{}, errors.Wrap(err, "failed to unmarshal yaml genesis to struct")
	}
	return genesis, nil
}

// WithGenesisContext attaches genesis into context
func WithGenesisContext(ctx context.Context, g Genesis) context.Context {
	return context.WithValue(ctx, genesisContextKey{}, g)
}

// ExtractGenesisContext extracts genesis from context if available
func ExtractGenesisContext(ctx context.Context) (Genesis, bool) {
	gc, ok := ctx.Value(genesisContextKey{}).(Genesis)
	return gc, ok
}

// MustExtractGenesisContext extracts genesis from context if available, else panic
func MustExtractGenesisContext(ctx context.Context) Genesis {
	gc, ok := ctx.Value(genesisContextKey{}).(Genesis)
	if !ok {
		log.S().Panic("Miss genesis context")
	}
	return gc
}

// SetGenesisTimestamp sets the genesis timestamp
func SetGenesisTimestamp(ts int64) {
	loadGenesisTs.Do(func() {
		atomic.StoreInt64(&genesisTs, ts)
	})
}

// Timestamp returns the genesis timestamp
func Timestamp() int64 {
	return atomic.LoadInt64(&genesisTs)
}

// Validate checks the genesis config is self-consistent
func (g *Genesis) Validate() error {
	if g.ChainID == 0 {
		return errors.New("chain ID cannot be zero")
	}
	if g.BlockInterval <= 0 {
		return errors.New("block interval must be positive")
	}
	if g.DepositAmount().Sign() <= 0 {
		return errors.New("registrar deposit must be positive")
	}
	if g.LockTime < 0 {
		return errors.New("registrar lock time cannot be negative")
	}
	if g.RevealSpan == 0 {
		return errors.New("registrar reveal span must be positive")
	}
	if g.NameCostAmount().Sign() <= 0 {
		return errors.New("registrar name cost must be positive")
	}
	return nil
}

// Hash is the hash of genesis config
func (g *Genesis) Hash() hash.Hash256 {
	initBalanceAddrs := make([]string, 0)
	for initBalanceAddr := range g.InitBalanceMap {
		initBalanceAddrs = append(initBalanceAddrs, initBalanceAddr)
	}
	sort.Strings(initBalanceAddrs)
	initBalances := make([]string, 0)
	for _, initBalanceAddr := range initBalanceAddrs {
		initBalances = append(initBalances, g.InitBalanceMap[initBalanceAddr])
	}

	data, err := rlp.EncodeToBytes(&genesisRLP{
		ChainID:          g.ChainID,
		Timestamp:        uint64(g.Timestamp),
		BlockGasLimit:    g.BlockGasLimit,
		ActionGasLimit:   g.ActionGasLimit,
		BlockInterval:    uint64(g.BlockInterval.Nanoseconds()),
		InitBalanceAddrs: initBalanceAddrs,
		InitBalances:     initBalances,
		Deposit:          g.Deposit,
		LockTime:         uint64(g.LockTime.Nanoseconds()),
		RevealSpan:       g.RevealSpan,
		NameCost:         g.NameCost,
	})
	if err != nil {
		log.L().Panic("Error when serializing the genesis config", zap.Error(err))
	}
	return hash.BytesToHash256(ethcrypto.Keccak256(data))
}

// InitBalances returns the addresses that have initial balances and the corresponding amounts. The i-th amount is the
// i-th address' balance.
func (a *Account) InitBalances() ([]address.Address, []*big.Int) {
	// Make the list always be ordered
	addrStrs := make([]string, 0)
	for addrStr := range a.InitBalanceMap {
		addrStrs = append(addrStrs, addrStr)
	}
	sort.Strings(addrStrs)
	addrs := make([]address.Address, 0)
	amounts := make([]*big.Int, 0)
	for _, addrStr := range addrStrs {
		addr, err := address.FromString(addrStr)
		if err != nil {
			log.L().Panic("Error when decoding the account protocol init balance address from string.", zap.Error(err))
		}
		addrs = append(addrs, addr)
		amount, ok := big.NewInt(0).SetString(a.InitBalanceMap[addrStr], 10)
		if !ok {
			log.S().Panicf("Error when casting init balance string %s into big int", a.InitBalanceMap[addrStr])
		}
		amounts = append(amounts, amount)
	}
	return addrs, amounts
}

// DepositAmount returns the registrar deposit as a big int
func (r *Registrar) DepositAmount() *big.Int {
	amount, ok := big.NewInt(0).SetString(r.Deposit, 10)
	if !ok {
		log.S().Panicf("Error when casting deposit string %s into big int", r.Deposit)
	}
	return amount
}

// NameCostAmount returns the per-byte name cost as a big int
func (r *Registrar) NameCostAmount() *big.Int {
	amount, ok := big.NewInt(0).SetString(r.NameCost, 10)
	if !ok {
		log.S().Panicf("Error when casting name cost string %s into big int", r.NameCost)
	}
	return amount
}
