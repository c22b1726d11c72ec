// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registrar

import (
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/iotexproject/iotex-address/address"
)

// Commitment computes the blinded hash binding an account to a name and a
// secret nonce. The committing account is part of the preimage, so a copied
// commitment cannot be revealed by anyone but the original committer.
func Commitment(addr address.Address, name string, nonce hash.Hash256) hash.Hash256 {
	data := make([]byte, 0, len(addr.Bytes())+len(name)+len(nonce))
	data = append(data, addr.Bytes()...)
	data = append(data, name...)
	data = append(data, nonce[:]...)
	return hash.BytesToHash256(ethcrypto.Keccak256(data))
}

// NameHash is the canonical hash of a name, the key of the registry's
// uniqueness index. Two names are duplicates exactly when their hashes match.
func NameHash(name string) hash.Hash256 {
	return hash.BytesToHash256(ethcrypto.Keccak256([]byte(name)))
}
