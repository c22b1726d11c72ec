// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package batch

import (
	"github.com/namechain/namechain-core/pkg/util/byteutil"
)

const (
	// Put stages an insert or update
	Put WriteType = iota
	// Delete stages a removal
	Delete
)

type (
	// WriteType tags a staged write as Put or Delete
	WriteType uint8

	// WriteInfo is one staged write in a batch queue
	WriteInfo struct {
		writeType   WriteType
		namespace   string
		key         []byte
		value       []byte
		errorFormat string
		errorArgs   interface{}
	}

	// WriteInfoFilter filters a write
	WriteInfoFilter func(wi *WriteInfo) bool
)

// NewWriteInfo creates a new write info
func NewWriteInfo(
	writeType WriteType,
	namespace string,
	key,
	value []byte,
	errorFormat string,
	errorArgs interface{},
) *WriteInfo {
	return &WriteInfo{
		writeType:   writeType,
		namespace:   namespace,
		key:         key,
		value:       value,
		errorFormat: errorFormat,
		errorArgs:   errorArgs,
	}
}

// Namespace returns the namespace of the write
func (wi *WriteInfo) Namespace() string {
	return wi.namespace
}

// WriteType returns whether the write is a Put or a Delete
func (wi *WriteInfo) WriteType() WriteType {
	return wi.writeType
}

// Key returns a copy of the key
func (wi *WriteInfo) Key() []byte {
	return append([]byte(nil), wi.key...)
}

// Value returns a copy of the value
func (wi *WriteInfo) Value() []byte {
	return append([]byte(nil), wi.value...)
}

// ErrorFormat returns the format string of the error reported when the write fails
func (wi *WriteInfo) ErrorFormat() string {
	return wi.errorFormat
}

// ErrorArgs returns the arguments of the error format
func (wi *WriteInfo) ErrorArgs() interface{} {
	return wi.errorArgs
}

// Serialize flattens the write into bytes for digest computation, the namespace
// and key are length-prefixed so field boundaries stay unambiguous in a queue
func (wi *WriteInfo) Serialize() []byte {
	bytes := []byte{byte(wi.writeType)}
	bytes = append(bytes, byteutil.Uint32ToBytes(uint32(len(wi.namespace)))...)
	bytes = append(bytes, wi.namespace...)
	bytes = append(bytes, byteutil.Uint32ToBytes(uint32(len(wi.key)))...)
	bytes = append(bytes, wi.key...)
	return append(bytes, wi.value...)
}
