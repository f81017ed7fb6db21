// Package storage contains the KV-store abstraction backing the token
// ledger together with its in-memory and BoltDB implementations.
package storage

import (
	"errors"
	"fmt"
)

// KeyPrefix is a constant byte added as a prefix for each key kind
// stored.
type KeyPrefix uint8

// KeyPrefix constants.
const (
	// STBalance prefixes per-(token, owner) balance entries.
	STBalance KeyPrefix = 0x70
	// STSupply prefixes per-token total supply entries.
	STSupply KeyPrefix = 0x71
)

// ErrKeyNotFound is an error returned by Store implementations
// when a certain key is not found.
var ErrKeyNotFound = errors.New("key not found")

// Store is the underlying KV backend for the ledger data.
type Store interface {
	Get([]byte) ([]byte, error)
	Put(k, v []byte) error
	Delete(k []byte) error
	// Seek calls f for every key-value pair whose key starts with the
	// given prefix, in ascending key order, until f returns false. Key
	// and value slices should not be modified.
	Seek(prefix []byte, f func(k, v []byte) bool)
	Close() error
}

// Bytes returns the bytes representation of the KeyPrefix.
func (k KeyPrefix) Bytes() []byte {
	return []byte{byte(k)}
}

// AppendPrefix appends the byte representations of the given ids to the
// prefix, producing a full storage key.
func AppendPrefix(k KeyPrefix, ids ...[]byte) []byte {
	key := k.Bytes()
	for i := range ids {
		key = append(key, ids[i]...)
	}
	return key
}

// NewStore creates a storage with the given type. The type must be one
// of the supported ones ("inmemory" or "boltdb").
func NewStore(cfg DBConfiguration) (Store, error) {
	switch cfg.Type {
	case "inmemory", "":
		return NewMemoryStore(), nil
	case "boltdb":
		return NewBoltDBStore(cfg.BoltDBOptions)
	default:
		return nil, fmt.Errorf("unknown storage: %s", cfg.Type)
	}
}

// DBConfiguration describes the configuration of the storage backend.
type DBConfiguration struct {
	Type          string        `yaml:"Type"`
	BoltDBOptions BoltDBOptions `yaml:"BoltDBOptions"`
}
