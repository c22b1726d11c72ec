// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package state

import (
	"github.com/pkg/errors"
)

var (
	// ErrLengthMismatch is returned when the key and state lists differ in length
	ErrLengthMismatch = errors.New("the number of keys does not match the number of states")
	// ErrExhausted is returned once every state has been consumed
	ErrExhausted = errors.New("no states left in the iterator")
	// ErrMissingState is returned when the next serialized state is nil
	ErrMissingState = errors.New("the state is missing")
)

// Iterator walks the serialized states a bulk read returned
type Iterator interface {
	// Size returns how many states the iterator started with
	Size() int
	// Next deserializes the next state into s and returns its key
	Next(s interface{}) ([]byte, error)
}

type iterator struct {
	keys   [][]byte
	states [][]byte
	next   int
}

// NewIterator pairs keys with their serialized states
func NewIterator(keys, states [][]byte) (Iterator, error) {
	if len(keys) != len(states) {
		return nil, ErrLengthMismatch
	}
	return &iterator{keys: keys, states: states}, nil
}

func (it *iterator) Size() int {
	return len(it.states)
}

func (it *iterator) Next(s interface{}) ([]byte, error) {
	if it.next >= len(it.states) {
		return nil, ErrExhausted
	}
	key, data := it.keys[it.next], it.states[it.next]
	it.next++
	if data == nil {
		return nil, ErrMissingState
	}
	return key, Deserialize(s, data)
}
