// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package account

import (
	"github.com/spf13/cobra"

	actioncmd "github.com/namechain/namechain-core/namectl/cmd/action"
	"github.com/namechain/namechain-core/namectl/output"
)

// _accountAddressCmd represents the account address command
var _accountAddressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the address of the signing key",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		err := accountAddress()
		return output.PrintError(err)
	},
}

func init() {
	actioncmd.RegisterKeyCommand(_accountAddressCmd)
}

func accountAddress() error {
	prvKey, err := actioncmd.PrivateKey()
	if err != nil {
		return err
	}
	addr := prvKey.PublicKey().Address()
	prvKey.Zero()
	if addr == nil {
		return output.NewError(output.ConvertError, "failed to convert public key into address", nil)
	}
	output.PrintResult(addr.String())
	return nil
}
