// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

//go:build !windows && (arm || arm64)

package log

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
)

// arm linux has no dup2, only dup3
func redirectStderr(f *os.File) error {
	if err := syscall.Dup3(int(f.Fd()), 2, 0); err != nil {
		return errors.Wrap(err, "failed to redirect stderr to file")
	}
	return nil
}
