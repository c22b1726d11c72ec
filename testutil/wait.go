// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package testutil

import (
	"time"

	"github.com/pkg/errors"
)

// ErrTimeout is returned when the check condition doesn't meet within the timeout
var ErrTimeout = errors.New("timed out")

// CheckCondition defines a func type that checks whether a condition is met
type CheckCondition func() (bool, error)

// WaitUntil periodically checks whether the condition is met, and returns ErrTimeout
// if it is still not met when the timeout passes
func WaitUntil(interval, timeout time.Duration, f CheckCondition) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case <-ticker.C:
			met, err := f()
			if err != nil {
				return err
			}
			if met {
				return nil
			}
		case <-timer.C:
			return errors.Wrapf(ErrTimeout, "checking condition timed out after %s", timeout)
		}
	}
}
