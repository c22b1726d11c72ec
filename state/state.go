// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package state

import (
	"github.com/pkg/errors"
)

var (
	// ErrStateSerializationFailed is the error that the state marshaling is failed
	ErrStateSerializationFailed = errors.New("failed to marshal state")

	// ErrStateDeserializationFailed is the error that the state un-marshaling is failed
	ErrStateDeserializationFailed = errors.New("failed to unmarshal state")

	// ErrStateNotExist is the error that the state does not exist
	ErrStateNotExist = errors.New("state does not exist")

	// ErrNonceOverflow is the error that the nonce overflows
	ErrNonceOverflow = errors.New("nonce overflow")
)

type (
	// Serializer has Serialize method to serialize struct to binary data
	Serializer interface {
		Serialize() ([]byte, error)
	}

	// Deserializer has Deserialize method to deserialize binary data to struct
	Deserializer interface {
		Deserialize(data []byte) error
	}

	// State defines the common methods for a state struct to be handled by the state factory
	State interface {
		Serializer
		Deserializer
	}
)

// Serialize serializes a state into bytes
func Serialize(d interface{}) ([]byte, error) {
	if s, ok := d.(Serializer); ok {
		return s.Serialize()
	}
	return nil, errors.Wrapf(ErrStateSerializationFailed, "no serialize method exists for %T", d)
}

// Deserialize deserializes bytes into a state
func Deserialize(x interface{}, data []byte) error {
	if d, ok := x.(Deserializer); ok {
		return d.Deserialize(data)
	}
	return errors.Wrapf(ErrStateDeserializationFailed, "no deserialize method exists for %T", x)
}
