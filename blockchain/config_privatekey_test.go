// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/hashicorp/vault/api"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeVault struct {
	secret *api.Secret
	err    error
}

func (f *fakeVault) Read(string) (*api.Secret, error) { return f.secret, f.err }

func kv2Secret(data map[string]interface{}) *api.Secret {
	return &api.Secret{Data: map[string]interface{}{"data": data}}
}

func TestVaultLoad(t *testing.T) {
	r := require.New(t)
	cfg := &hashiCorpVault{
		Address: "http://127.0.0.1:8200",
		Token:   "test-token",
		Path:    "secret/data/producer",
		Key:     "producerPrivKey",
	}

	// building the client does not dial the vault
	_, err := newVaultPrivKeyLoader(cfg)
	r.NoError(err)

	t.Run("success", func(t *testing.T) {
		loader := &vaultPrivKeyLoader{
			cfg:    cfg,
			reader: &fakeVault{secret: kv2Secret(map[string]interface{}{"producerPrivKey": "deadbeef"})},
		}
		v, err := loader.load()
		require.NoError(t, err)
		require.Equal(t, "deadbeef", v)
	})

	t.Run("read error", func(t *testing.T) {
		loader := &vaultPrivKeyLoader{cfg: cfg, reader: &fakeVault{err: errors.New("vault is sealed")}}
		_, err := loader.load()
		require.ErrorContains(t, err, "failed to read vault secret")
	})

	for _, c := range []struct {
		name   string
		secret *api.Secret
		errMsg string
	}{
		{"missing secret", nil, "secret does not exist"},
		{"payload not nested", &api.Secret{Data: map[string]interface{}{"producerPrivKey": "deadbeef"}}, "invalid data type"},
		{"missing key", kv2Secret(map[string]interface{}{}), "secret value does not exist"},
		{"value not a string", kv2Secret(map[string]interface{}{"producerPrivKey": 1}), "invalid secret value type"},
	} {
		t.Run(c.name, func(t *testing.T) {
			loader := &vaultPrivKeyLoader{cfg: cfg, reader: &fakeVault{secret: c.secret}}
			_, err := loader.load()
			require.ErrorContains(t, err, c.errMsg)
		})
	}
}
