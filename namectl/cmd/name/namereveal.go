// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package name

import (
	"math/big"

	"github.com/spf13/cobra"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/namectl/client"
	actioncmd "github.com/namechain/namechain-core/namectl/cmd/action"
	"github.com/namechain/namechain-core/namectl/output"
)

// _nameRevealCmd represents the name reveal command
var _nameRevealCmd = &cobra.Command{
	Use:   "reveal NAME SECRET",
	Short: "Disclose the committed name and claim it",
	Long: `Disclose the name behind the commitment made earlier with the same secret.
When the price of the name exceeds the escrowed deposit, the difference is
attached to the reveal automatically.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		err := revealName(args[0], args[1])
		return output.PrintError(err)
	},
}

func init() {
	actioncmd.RegisterWriteCommand(_nameRevealCmd)
}

func revealName(name, rawSecret string) error {
	if name == "" {
		return output.NewError(output.ValidationError, "the name cannot be empty", nil)
	}
	secret, err := parseSecret(rawSecret)
	if err != nil {
		return err
	}
	cli := client.Dial()
	registry, err := cli.RegistryMeta()
	if err != nil {
		return output.NewError(output.APIError, "failed to get the registry meta", err)
	}
	price, err := registrationPrice(name, registry)
	if err != nil {
		return err
	}
	deposit, ok := new(big.Int).SetString(registry.Deposit, 10)
	if !ok {
		return output.NewError(output.ConvertError, "invalid deposit "+registry.Deposit, nil)
	}
	// the deposit counts toward the price, the reveal only attaches the rest
	topUp := big.NewInt(0)
	if price.Cmp(deposit) > 0 {
		topUp = new(big.Int).Sub(price, deposit)
	}

	prvKey, err := actioncmd.PrivateKey()
	if err != nil {
		return err
	}
	owner := prvKey.PublicKey().Address()
	if owner == nil {
		prvKey.Zero()
		return output.NewError(output.ConvertError, "failed to convert public key into address", nil)
	}
	chainID, err := actioncmd.ChainID(cli)
	if err != nil {
		prvKey.Zero()
		return err
	}
	nonce, err := actioncmd.Nonce(cli, owner)
	if err != nil {
		prvKey.Zero()
		return err
	}
	gasPrice, err := actioncmd.GasPrice()
	if err != nil {
		prvKey.Zero()
		return err
	}
	selp, err := action.SignedNameReveal(prvKey, nonce, name, secret, topUp,
		actioncmd.GasLimit(), gasPrice, action.WithChainID(chainID))
	prvKey.Zero()
	if err != nil {
		return output.NewError(output.CryptoError, "failed to sign action", err)
	}
	return actioncmd.Send(cli, selp)
}
