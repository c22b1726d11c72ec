// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package byteutil

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestUint32(t *testing.T) {
	input := uint32(31415926)
	expectedValue := []byte{0x1, 0xdf, 0x5e, 0x76}
	require.Equal(t, expectedValue, Uint32ToBytes(input))
}

func TestUint64(t *testing.T) {
	input := uint64(1844674407370955161)
	byteInput := []byte{0x19, 0x99, 0x99, 0x99, 0x99, 0x99, 0x99, 0x99}
	t.Run("convert uint64 to bytes", func(t *testing.T) {
		require.Equal(t, byteInput, Uint64ToBytes(input))
	})

	t.Run("convert bytes to uint64", func(t *testing.T) {
		require.Equal(t, input, BytesToUint64(byteInput))
	})

	t.Run("encoded order follows numeric order", func(t *testing.T) {
		small := Uint64ToBytes(255)
		large := Uint64ToBytes(256)
		require.Equal(t, -1, compare(small, large))
	})
}

func compare(a, b []byte) int {
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

func TestMust(t *testing.T) {
	t.Run("return identical output when given nil error", func(t *testing.T) {
		b := []byte{0x99, 0x99, 0x99, 0x99, 0x99, 0x99, 0x99, 0x19}
		require.Equal(t, b, Must(b, nil))
	})
	t.Run("panics when an error was given", func(t *testing.T) {
		expectedErr := errors.New("an error was given")
		require.Panics(t, func() {
			Must([]byte{0x99}, expectedErr)
		}, expectedErr)
	})
}
