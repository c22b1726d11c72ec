// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package name

import (
	"github.com/spf13/cobra"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/namectl/client"
	actioncmd "github.com/namechain/namechain-core/namectl/cmd/action"
	"github.com/namechain/namechain-core/namectl/output"
)

// _nameWithdrawCmd represents the name withdraw command
var _nameWithdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Cancel the open registration request and refund the deposit once unlocked",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		err := withdrawName()
		return output.PrintError(err)
	},
}

func init() {
	actioncmd.RegisterWriteCommand(_nameWithdrawCmd)
}

func withdrawName() error {
	prvKey, err := actioncmd.PrivateKey()
	if err != nil {
		return err
	}
	owner := prvKey.PublicKey().Address()
	if owner == nil {
		prvKey.Zero()
		return output.NewError(output.ConvertError, "failed to convert public key into address", nil)
	}
	cli := client.Dial()
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
	selp, err := action.SignedNameWithdraw(prvKey, nonce,
		actioncmd.GasLimit(), gasPrice, action.WithChainID(chainID))
	prvKey.Zero()
	if err != nil {
		return output.NewError(output.CryptoError, "failed to sign action", err)
	}
	return actioncmd.Send(cli, selp)
}
