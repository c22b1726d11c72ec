// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/namechain/namechain-core/namectl/cmd"
)

func main() {
	rootCmd := cmd.NewNamectl()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
