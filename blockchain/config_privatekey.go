// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package blockchain

import (
	"time"

	"github.com/hashicorp/vault/api"
	"github.com/pkg/errors"
)

const _vaultTimeout = 10 * time.Second

// ErrVault indicates a malformed or missing vault secret
var ErrVault = errors.New("vault error")

type (
	hashiCorpVault struct {
		Address string `yaml:"address"`
		Token   string `yaml:"token"`
		Path    string `yaml:"path"`
		Key     string `yaml:"key"`
	}

	// vaultSecretReader is the slice of the vault API the loader needs
	vaultSecretReader interface {
		Read(path string) (*api.Secret, error)
	}

	vaultPrivKeyLoader struct {
		cfg    *hashiCorpVault
		reader vaultSecretReader
	}
)

func newVaultPrivKeyLoader(cfg *hashiCorpVault) (*vaultPrivKeyLoader, error) {
	conf := api.DefaultConfig()
	conf.Address = cfg.Address
	conf.Timeout = _vaultTimeout
	cli, err := api.NewClient(conf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init vault client")
	}
	cli.SetToken(cfg.Token)

	return &vaultPrivKeyLoader{
		cfg:    cfg,
		reader: cli.Logical(),
	}, nil
}

// load fetches the producer key from the KV v2 engine, which nests the
// payload under a data key in the response
func (l *vaultPrivKeyLoader) load() (string, error) {
	secret, err := l.reader.Read(l.cfg.Path)
	if err != nil {
		return "", errors.Wrap(err, "failed to read vault secret")
	}
	if secret == nil {
		return "", errors.Wrap(ErrVault, "secret does not exist")
	}
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return "", errors.Wrap(ErrVault, "invalid data type")
	}
	value, ok := data[l.cfg.Key]
	if !ok {
		return "", errors.Wrap(ErrVault, "secret value does not exist")
	}
	v, ok := value.(string)
	if !ok {
		return "", errors.Wrap(ErrVault, "invalid secret value type")
	}
	return v, nil
}
