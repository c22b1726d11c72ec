// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package blockchain

import (
	"crypto/ecdsa"
	"os"

	"github.com/iotexproject/go-pkgs/crypto"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/namechain/namechain-core/pkg/log"
)

const (
	// SigP256k1 is the secp256k1 signature scheme
	SigP256k1 = "secp256k1"
	// SigP256sm2 is the sm2 signature scheme
	SigP256sm2 = "p256sm2"
)

type (
	// Config is the config of the blockchain
	Config struct {
		ChainDBPath     string   `yaml:"chainDBPath"`
		StateDBPath     string   `yaml:"stateDBPath"`
		ProducerPrivKey string   `yaml:"producerPrivKey"`
		SignatureScheme []string `yaml:"signatureScheme"`
		// PrivKeyConfigFile is a standalone yaml carrying either a raw key or a vault reference
		PrivKeyConfigFile string `yaml:"privKeyConfigFile"`
	}

	privKeyConfig struct {
		ProducerPrivKey string          `yaml:"producerPrivKey"`
		VaultConfig     *hashiCorpVault `yaml:"hashiCorpVault"`
	}
)

// DefaultConfig is the default config of the blockchain
var DefaultConfig = Config{
	ChainDBPath:     "/var/data/chain.db",
	StateDBPath:     "/var/data/state.db",
	ProducerPrivKey: generateRandomKey(SigP256k1),
	SignatureScheme: []string{SigP256k1},
}

// ProducerAddress returns the configured producer address derived from key
func (cfg Config) ProducerAddress() address.Address {
	sk := cfg.ProducerPrivateKey()
	addr := sk.PublicKey().Address()
	if addr == nil {
		log.L().Panic(
			"Error when constructing producer address",
			zap.Error(errors.New("failed to get address")),
		)
	}
	return addr
}

// ProducerPrivateKey returns the configured private key
func (cfg Config) ProducerPrivateKey() crypto.PrivateKey {
	sk, err := crypto.HexStringToPrivateKey(cfg.ProducerPrivKey)
	if err != nil {
		log.L().Panic(
			"Error when decoding private key",
			zap.Error(err),
		)
	}

	if !cfg.whitelistSignatureScheme(sk) {
		log.L().Panic("The private key's signature scheme is not whitelisted")
	}
	return sk
}

// SetProducerPrivKey loads the producer key from PrivKeyConfigFile when the
// file is present, either as a raw key or through HashiCorp Vault
func (cfg *Config) SetProducerPrivKey() error {
	if cfg.PrivKeyConfigFile == "" {
		return nil
	}
	body, err := os.ReadFile(cfg.PrivKeyConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "failed to read private key config")
	}
	pkc := privKeyConfig{}
	if err := yaml.Unmarshal(body, &pkc); err != nil {
		return errors.Wrap(err, "failed to parse private key config")
	}
	switch {
	case pkc.VaultConfig != nil:
		loader, err := newVaultPrivKeyLoader(pkc.VaultConfig)
		if err != nil {
			return errors.Wrap(err, "failed to new vault client")
		}
		key, err := loader.load()
		if err != nil {
			return errors.Wrap(err, "failed to load producer private key")
		}
		cfg.ProducerPrivKey = key
	case pkc.ProducerPrivKey != "":
		cfg.ProducerPrivKey = pkc.ProducerPrivKey
	}
	return nil
}

func (cfg Config) whitelistSignatureScheme(sk crypto.PrivateKey) bool {
	var sigScheme string

	switch sk.EcdsaPrivateKey().(type) {
	case *ecdsa.PrivateKey:
		sigScheme = SigP256k1
	case *crypto.P256sm2PrvKey:
		sigScheme = SigP256sm2
	}

	if sigScheme == "" {
		return false
	}
	for _, e := range cfg.SignatureScheme {
		if sigScheme == e {
			// signature scheme is whitelisted
			return true
		}
	}
	return false
}

func generateRandomKey(scheme string) string {
	// generate a random key
	switch scheme {
	case SigP256k1:
		sk, _ := crypto.GenerateKey()
		return sk.HexString()
	case SigP256sm2:
		sk, _ := crypto.GenerateKeySm2()
		return sk.HexString()
	}
	return ""
}
