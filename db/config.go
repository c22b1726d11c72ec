// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package db

const (
	// DBBolt is the bolt db engine
	DBBolt = "bolt"
	// DBPebble is the pebble db engine
	DBPebble = "pebble"
	// DBMem is the in-memory db engine, for testing only
	DBMem = "mem"
)

// Config is the config for database
type Config struct {
	// DBType is the db engine to use, bolt or pebble
	DBType string `yaml:"dbType"`
	DbPath string `yaml:"dbPath"`
	// NumRetries is the number of retries
	NumRetries uint8 `yaml:"numRetries"`
	// MaxCacheSize is the max number of entries per namespace that will be put into an LRU cache. 0 means disabled
	MaxCacheSize int `yaml:"maxCacheSize"`
	// Compressor is the compression used on block data, empty means no compression
	Compressor string `yaml:"compressor"`
	// ReadOnly is set db to be opened in read only mode
	ReadOnly bool `yaml:"readOnly"`
}

// DefaultConfig returns the default config
var DefaultConfig = Config{
	DBType:       DBBolt,
	NumRetries:   3,
	MaxCacheSize: 64,
	Compressor:   "Snappy",
}
