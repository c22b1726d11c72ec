// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import "context"

// SealedEnvelopeValidator is the interface of validating a sealed envelope
type SealedEnvelopeValidator interface {
	// Validate returns error if validation fails
	Validate(context.Context, *SealedEnvelope) error
}
