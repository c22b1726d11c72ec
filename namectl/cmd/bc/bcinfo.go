// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package bc

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/namechain/namechain-core/namectl/client"
	"github.com/namechain/namechain-core/namectl/output"
)

// _bcInfoCmd represents the bc info command
var _bcInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Get the chain tip metadata",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		err := bcInfo()
		return output.PrintError(err)
	},
}

type bcInfoMessage struct {
	Node string            `json:"node"`
	Meta *client.ChainMeta `json:"meta"`
}

func (m *bcInfoMessage) String() string {
	if output.Format == "" {
		return fmt.Sprintf("Blockchain Node: %s\n", m.Node) +
			fmt.Sprintf("chainID: %d\n", m.Meta.ChainID) +
			fmt.Sprintf("tipHeight: %d\n", m.Meta.TipHeight) +
			fmt.Sprintf("tipHash: %s\n", m.Meta.TipHash) +
			fmt.Sprintf("tipTimestamp: %d\n", m.Meta.TipTimestamp) +
			fmt.Sprintf("genesisHash: %s", m.Meta.GenesisHash)
	}
	return output.FormatString(output.Result, m)
}

func bcInfo() error {
	meta, err := client.Dial().ChainMeta()
	if err != nil {
		return output.NewError(output.APIError, "failed to get chain meta", err)
	}
	message := bcInfoMessage{Node: client.Endpoint, Meta: meta}
	fmt.Println(message.String())
	return nil
}
