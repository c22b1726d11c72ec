// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package account

import (
	"fmt"

	"github.com/iotexproject/iotex-address/address"
	"github.com/spf13/cobra"

	"github.com/namechain/namechain-core/namectl/client"
	"github.com/namechain/namechain-core/namectl/output"
)

// _accountInfoCmd represents the account info command
var _accountInfoCmd = &cobra.Command{
	Use:   "info (ADDRESS)",
	Short: "Display the on-chain state of an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		err := accountInfo(args[0])
		return output.PrintError(err)
	},
}

type infoMessage struct {
	Meta *client.AccountMeta `json:"meta"`
}

func (m *infoMessage) String() string {
	if output.Format == "" {
		result := fmt.Sprintf("address: %s\n", m.Meta.Address) +
			fmt.Sprintf("balance: %s\n", m.Meta.Balance) +
			fmt.Sprintf("nonce: %d\n", m.Meta.Nonce) +
			fmt.Sprintf("pendingNonce: %d\n", m.Meta.PendingNonce)
		if m.Meta.Request != nil {
			result += "request:<\n" +
				fmt.Sprintf("  commitment: %s\n", m.Meta.Request.Commitment) +
				fmt.Sprintf("  revealDeadline: %d\n", m.Meta.Request.RevealDeadline) +
				fmt.Sprintf("  unlockTime: %d\n", m.Meta.Request.UnlockTime) +
				">\n"
		}
		if len(m.Meta.OwnedIndices) > 0 {
			result += fmt.Sprintf("ownedIndices: %v\n", m.Meta.OwnedIndices)
		}
		return result
	}
	return output.FormatString(output.Result, m)
}

func accountInfo(arg string) error {
	addr, err := address.FromString(arg)
	if err != nil {
		return output.NewError(output.AddressError, "invalid address", err)
	}
	meta, err := client.Dial().Account(addr.String())
	if err != nil {
		return output.NewError(output.APIError, "failed to get account meta", err)
	}
	message := infoMessage{Meta: meta}
	fmt.Println(message.String())
	return nil
}
