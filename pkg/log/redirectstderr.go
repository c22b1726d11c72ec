// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

//go:build !windows && !arm && !arm64

package log

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
)

// redirectStderr redirects the process stderr to the given file, so panics
// end up in the log directory instead of a lost terminal.
func redirectStderr(f *os.File) error {
	if err := syscall.Dup2(int(f.Fd()), 2); err != nil {
		return errors.Wrap(err, "failed to redirect stderr to file")
	}
	return nil
}
