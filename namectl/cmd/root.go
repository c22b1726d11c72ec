// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package cmd assembles the namectl command tree.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/namechain/namechain-core/namectl/client"
	"github.com/namechain/namechain-core/namectl/cmd/account"
	"github.com/namechain/namechain-core/namectl/cmd/action"
	"github.com/namechain/namechain-core/namectl/cmd/bc"
	"github.com/namechain/namechain-core/namectl/cmd/name"
	"github.com/namechain/namechain-core/namectl/cmd/registry"
	"github.com/namechain/namechain-core/namectl/cmd/version"
	"github.com/namechain/namechain-core/namectl/output"
)

// NewNamectl returns the namectl root command
func NewNamectl() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "namectl",
		Short: "Command-line interface for Namechain",
		Long:  `namectl is a command-line interface for interacting with a Namechain node.`,
	}

	rootCmd.AddCommand(account.AccountCmd)
	rootCmd.AddCommand(action.ActionCmd)
	rootCmd.AddCommand(bc.BCCmd)
	rootCmd.AddCommand(name.NameCmd)
	rootCmd.AddCommand(registry.RegistryCmd)
	rootCmd.AddCommand(version.VersionCmd)

	rootCmd.PersistentFlags().StringVar(&client.Endpoint, "endpoint",
		client.DefaultEndpoint(), "set the node endpoint (default $NAMECHAIN_ENDPOINT)")
	rootCmd.PersistentFlags().StringVarP(&output.Format, "output-format", "o", "",
		"output format")

	return rootCmd
}
