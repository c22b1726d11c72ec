// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package version

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/namechain/namechain-core/namectl/util"
)

func TestVersionCommand(t *testing.T) {
	require := require.New(t)
	_, err := util.ExecuteCmd(VersionCmd)
	require.NoError(err)
}
