// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package name provides the commands of the commit, reveal and withdraw
// registration flow.
package name

import (
	"encoding/hex"
	"math/big"

	"github.com/iotexproject/go-pkgs/hash"
	"github.com/spf13/cobra"

	"github.com/namechain/namechain-core/namectl/client"
	"github.com/namechain/namechain-core/namectl/output"
	"github.com/namechain/namechain-core/namectl/util"
)

// NameCmd represents the name command
var NameCmd = &cobra.Command{
	Use:   "name",
	Short: "Register names through the commit and reveal flow",
}

func init() {
	NameCmd.AddCommand(_nameCommitmentCmd)
	NameCmd.AddCommand(_nameCommitCmd)
	NameCmd.AddCommand(_nameRevealCmd)
	NameCmd.AddCommand(_nameWithdrawCmd)
	NameCmd.AddCommand(_namePriceCmd)
}

// parseSecret decodes the blinding secret of a commitment
func parseSecret(raw string) (hash.Hash256, error) {
	b, err := hex.DecodeString(util.TrimHexPrefix(raw))
	if err != nil || len(b) != len(hash.ZeroHash256) {
		return hash.ZeroHash256, output.NewError(output.ValidationError, "the secret must be 32 bytes of hex", err)
	}
	return hash.BytesToHash256(b), nil
}

// registrationPrice computes what registering the name costs
func registrationPrice(name string, registry *client.RegistryMeta) (*big.Int, error) {
	cost, ok := new(big.Int).SetString(registry.NameCost, 10)
	if !ok {
		return nil, output.NewError(output.ConvertError, "invalid name cost "+registry.NameCost, nil)
	}
	return new(big.Int).Mul(big.NewInt(int64(len(name))), cost), nil
}
