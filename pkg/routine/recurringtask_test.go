// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package routine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecurringTask(t *testing.T) {
	require := require.New(t)

	var n int32
	task := NewRecurringTask(func() { atomic.AddInt32(&n, 1) }, 20*time.Millisecond)

	ctx := context.Background()
	require.NoError(task.Start(ctx))
	require.True(task.IsReady())

	require.Eventually(func() bool {
		return atomic.LoadInt32(&n) >= 2
	}, time.Second, 10*time.Millisecond)

	require.NoError(task.Stop(ctx))
	require.False(task.IsReady())
	// stopping twice is a state error
	require.Error(task.Stop(ctx))
}
