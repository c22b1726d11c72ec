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

// _registryCheckCmd represents the registry check command
var _registryCheckCmd = &cobra.Command{
	Use:   "check NAME",
	Short: "Check whether a name is still available",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		err := registryCheck(args[0])
		return output.PrintError(err)
	},
}

type checkMessage struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

func (m *checkMessage) String() string {
	if output.Format == "" {
		if m.Available {
			return fmt.Sprintf("%s is available", m.Name)
		}
		return fmt.Sprintf("%s is already registered", m.Name)
	}
	return output.FormatString(output.Result, m)
}

func registryCheck(name string) error {
	if name == "" {
		return output.NewError(output.ValidationError, "the name cannot be empty", nil)
	}
	dup, err := client.Dial().IsDuplicate(name)
	if err != nil {
		return output.NewError(output.APIError, "failed to check the name", err)
	}
	message := checkMessage{Name: name, Available: !dup}
	fmt.Println(message.String())
	return nil
}
