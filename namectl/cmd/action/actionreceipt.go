// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/namechain/namechain-core/namectl/client"
	"github.com/namechain/namechain-core/namectl/output"
	"github.com/namechain/namechain-core/namectl/util"
)

// _actionReceiptCmd represents the action receipt command
var _actionReceiptCmd = &cobra.Command{
	Use:   "receipt ACTION_HASH",
	Short: "Get the receipt of an action by hash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		err := getReceipt(args[0])
		return output.PrintError(err)
	},
}

type receiptMessage struct {
	Receipt *client.Receipt `json:"receipt"`
}

func (m *receiptMessage) String() string {
	if output.Format == "" {
		return FormatReceipt(m.Receipt)
	}
	return output.FormatString(output.Result, m)
}

func getReceipt(arg string) error {
	receipt, err := client.Dial().Receipt(util.TrimHexPrefix(arg))
	if err != nil {
		if err == client.ErrReceiptNotFound {
			return output.NewError(output.APIError, "this action is pending or does not exist", nil)
		}
		return output.NewError(output.APIError, "failed to get the receipt", err)
	}
	message := receiptMessage{Receipt: receipt}
	fmt.Println(message.String())
	return nil
}
