// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/namechain/namechain-core/test/identityset"
)

func TestTransfer(t *testing.T) {
	require := require.New(t)
	recipientAddr := identityset.Address(28)

	tsf := NewTransfer(big.NewInt(10), recipientAddr.String(), []byte{1, 2, 3})
	require.Equal("10", tsf.Amount().Text(10))
	require.Equal([]byte{1, 2, 3}, tsf.Payload())
	require.Equal(recipientAddr.String(), tsf.Recipient())
	require.Equal(recipientAddr.String(), tsf.Destination())

	gas, err := tsf.IntrinsicGas()
	require.NoError(err)
	require.Equal(uint64(10300), gas)
	require.NoError(tsf.SanityCheck())

	tsf = NewTransfer(big.NewInt(-10), recipientAddr.String(), nil)
	require.Equal(ErrNegativeValue, tsf.SanityCheck())
}

func TestTransferSerialize(t *testing.T) {
	require := require.New(t)
	recipientAddr := identityset.Address(28)

	tsf := NewTransfer(big.NewInt(1000), recipientAddr.String(), []byte("earl grey"))
	ser, err := tsf.Serialize()
	require.NoError(err)

	tsf2 := &Transfer{}
	require.NoError(tsf2.LoadSerialized(ser))
	require.Equal(tsf.Amount(), tsf2.Amount())
	require.Equal(tsf.Recipient(), tsf2.Recipient())
	require.Equal(tsf.Payload(), tsf2.Payload())

	require.Error(tsf2.LoadSerialized([]byte("not rlp")))
}

func TestTransferSignVerify(t *testing.T) {
	require := require.New(t)
	recipientAddr := identityset.Address(28)
	senderKey := identityset.PrivateKey(27)

	tsf := NewTransfer(big.NewInt(10), recipientAddr.String(), []byte{})

	bd := &EnvelopeBuilder{}
	elp := bd.SetNonce(1).
		SetGasLimit(uint64(100000)).
		SetGasPrice(big.NewInt(10)).
		SetAction(tsf).Build()

	w := AssembleSealedEnvelope(elp, senderKey.PublicKey(), ValidSig)
	require.Error(w.VerifySignature())

	selp, err := Sign(elp, senderKey)
	require.NoError(err)
	require.NotNil(selp)
	require.NoError(selp.VerifySignature())
	require.Equal(senderKey.PublicKey().HexString(), selp.SrcPubkey().HexString())

	require.Equal(identityset.Address(27).String(), selp.SenderAddress().String())
}
