// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package version provides the command that prints the build metadata.
package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/namechain/namechain-core/namectl/output"
	ver "github.com/namechain/namechain-core/pkg/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of namectl",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return version()
	},
}

type versionMessage struct {
	PackageVersion  string `json:"packageVersion"`
	PackageCommitID string `json:"packageCommitID"`
	GitStatus       string `json:"gitStatus"`
	GoVersion       string `json:"goVersion"`
	BuildTime       string `json:"buildTime"`
}

func (m *versionMessage) String() string {
	if output.Format == "" {
		return fmt.Sprintf("packageVersion: %s\n", m.PackageVersion) +
			fmt.Sprintf("packageCommitID: %s\n", m.PackageCommitID) +
			fmt.Sprintf("gitStatus: %s\n", m.GitStatus) +
			fmt.Sprintf("goVersion: %s\n", m.GoVersion) +
			fmt.Sprintf("buildTime: %s", m.BuildTime)
	}
	return output.FormatString(output.Result, m)
}

func version() error {
	message := versionMessage{
		PackageVersion:  ver.PackageVersion,
		PackageCommitID: ver.PackageCommitID,
		GitStatus:       ver.GitStatus,
		GoVersion:       ver.GoVersion,
		BuildTime:       ver.BuildTime,
	}
	fmt.Println(message.String())
	return nil
}
