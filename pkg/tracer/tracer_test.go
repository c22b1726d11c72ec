// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package tracer

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	require := require.New(t)

	// no endpoint disables tracing
	prv, err := NewProvider()
	require.NoError(err)
	require.Nil(prv)

	_, err = NewProvider(
		WithEndpoint("http://localhost:14268/api/traces"),
		WithSamplingRatio("half of the spans"),
	)
	require.ErrorIs(err, strconv.ErrSyntax)

	prv, err = NewProvider(
		WithServiceName("namechain-test"),
		WithInstanceID("7"),
		WithEndpoint("http://localhost:14268/api/traces"),
		WithSamplingRatio("0.25"),
	)
	require.NoError(err)
	require.NotNil(prv)
	require.NoError(prv.Shutdown(context.Background()))
}

func TestNewSpan(t *testing.T) {
	require := require.New(t)

	// spans are noops without a provider, the context still carries them
	ctx, span := NewSpan(context.Background(), "mintBlock")
	require.NotNil(span)
	require.Equal(span, SpanFromContext(ctx))
	span.End()
}
