// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registry

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/namechain/namechain-core/namectl/client"
	"github.com/namechain/namechain-core/namectl/output"
)

// _registryInfoCmd represents the registry info command
var _registryInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display the registrar constants and counters",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		err := registryInfo()
		return output.PrintError(err)
	},
}

type registryInfoMessage struct {
	Meta *client.RegistryMeta `json:"meta"`
}

func (m *registryInfoMessage) String() string {
	if output.Format == "" {
		return fmt.Sprintf("deposit: %s\n", m.Meta.Deposit) +
			fmt.Sprintf("lockTime: %d seconds\n", m.Meta.LockTime) +
			fmt.Sprintf("revealSpan: %d blocks\n", m.Meta.RevealSpan) +
			fmt.Sprintf("nameCost: %s per byte\n", m.Meta.NameCost) +
			fmt.Sprintf("entries: %d\n", m.Meta.Entries) +
			fmt.Sprintf("totalFees: %s", m.Meta.TotalFees)
	}
	return output.FormatString(output.Result, m)
}

func registryInfo() error {
	meta, err := client.Dial().RegistryMeta()
	if err != nil {
		return output.NewError(output.APIError, "failed to get the registry meta", err)
	}
	message := registryInfoMessage{Meta: meta}
	fmt.Println(message.String())
	return nil
}
