// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registry

import (
	"fmt"
	"strconv"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/namechain/namechain-core/namectl/client"
	"github.com/namechain/namechain-core/namectl/output"
)

const _defaultListLimit = uint64(20)

// _registryListCmd represents the registry list command
var _registryListCmd = &cobra.Command{
	Use:   "list [OFFSET [LIMIT]]",
	Short: "List registered names in registration order",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		err := registryList(args)
		return output.PrintError(err)
	},
}

type registryListMessage struct {
	Page *client.RegistryEntries `json:"page"`
}

func (m *registryListMessage) String() string {
	if output.Format == "" {
		fmt.Println("Total:", m.Page.Total)
		showFields := []interface{}{
			"Index",
			"Name",
			"Owner",
		}
		tb := table.New(showFields...)
		for _, entry := range m.Page.Entries {
			tb.AddRow(
				entry.Index,
				entry.Name,
				entry.Owner,
			)
		}
		tb.Print()
		return ""
	}
	return output.FormatString(output.Result, m)
}

func registryList(args []string) error {
	var (
		offset uint64
		limit  = _defaultListLimit
		err    error
	)
	if len(args) > 0 {
		if offset, err = strconv.ParseUint(args[0], 10, 64); err != nil {
			return output.NewError(output.ConvertError, "failed to convert offset", err)
		}
	}
	if len(args) > 1 {
		if limit, err = strconv.ParseUint(args[1], 10, 64); err != nil {
			return output.NewError(output.ConvertError, "failed to convert limit", err)
		}
	}
	page, err := client.Dial().RegistryEntries(offset, limit)
	if err != nil {
		return output.NewError(output.APIError, "failed to list the registry", err)
	}
	message := registryListMessage{Page: page}
	if out := message.String(); out != "" {
		fmt.Println(out)
	}
	return nil
}
