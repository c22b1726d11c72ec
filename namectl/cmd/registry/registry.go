// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package registry provides the commands that inspect the name registry.
package registry

import (
	"github.com/spf13/cobra"
)

// RegistryCmd represents the registry command
var RegistryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect the name registry",
}

func init() {
	RegistryCmd.AddCommand(_registryInfoCmd)
	RegistryCmd.AddCommand(_registryListCmd)
	RegistryCmd.AddCommand(_registryCheckCmd)
}
