// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package account provides the commands that create and inspect accounts.
package account

import (
	"github.com/spf13/cobra"
)

// AccountCmd represents the account command
var AccountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage accounts of the chain",
}

func init() {
	AccountCmd.AddCommand(_accountNewCmd)
	AccountCmd.AddCommand(_accountAddressCmd)
	AccountCmd.AddCommand(_accountInfoCmd)
}
