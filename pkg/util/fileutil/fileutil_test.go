// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package fileutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	r := require.New(t)
	r.True(FileExists("./fileutil.go"))
	r.True(FileExists("."))
	r.False(FileExists(""))
	r.False(FileExists(filepath.Join(t.TempDir(), "not-there")))
}

func TestEnsureDir(t *testing.T) {
	r := require.New(t)
	path := filepath.Join(t.TempDir(), "nested", "deep", "chain.db")
	r.False(FileExists(filepath.Dir(path)))
	r.NoError(EnsureDir(path))
	r.True(FileExists(filepath.Dir(path)))
	r.False(FileExists(path))
	// a second call is a no-op
	r.NoError(EnsureDir(path))
}
