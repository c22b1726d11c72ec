// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package version carries the build metadata stamped in at link time.
package version

var (
	// PackageVersion gets version of code from git tag
	PackageVersion = "NoBuildInfo"
	// PackageCommitID gets latest commit id of code from git
	PackageCommitID = "NoBuildInfo"
	// GitStatus gets git tree status from git
	GitStatus = "NoBuildInfo"
	// GoVersion gets go version of package
	GoVersion = "NoBuildInfo"
	// BuildTime gets building time
	BuildTime = "NoBuildInfo"
)
