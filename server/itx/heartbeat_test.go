// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package itx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/namechain/namechain-core/testutil"
)

func TestNewHeartbeatHandler(t *testing.T) {
	require := require.New(t)
	s, err := NewInMemTestServer(testConfig())
	require.NoError(err)
	require.NotNil(s)
	handler := NewHeartbeatHandler(s)
	require.NotNil(handler)

	// logging works before the server starts, everything reads as zero
	handler.Log()

	ctx := context.Background()
	require.NoError(s.Start(ctx))
	require.NoError(testutil.WaitUntil(20*time.Millisecond, 3*time.Second, func() (bool, error) {
		return s.Blockchain().TipHeight() >= 1, nil
	}))
	handler.Log()
	require.NoError(s.Stop(ctx))
}
