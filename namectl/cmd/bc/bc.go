// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package bc provides the commands that inspect the chain itself.
package bc

import (
	"github.com/spf13/cobra"
)

// BCCmd represents the bc command
var BCCmd = &cobra.Command{
	Use:   "bc",
	Short: "Inspect the underlying blockchain",
}

func init() {
	BCCmd.AddCommand(_bcInfoCmd)
}
