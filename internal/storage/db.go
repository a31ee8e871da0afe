// Package storage provides the key-value layer under the wallet store.
//
// Writes only happen through Write so a wallet save is all-or-nothing.
package storage

import "errors"

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("key not found")

// Op is a single write in an atomic batch. A nil Value deletes the key.
type Op struct {
	Key   []byte
	Value []byte
}

// DB is a key-value store with atomic batched writes.
type DB interface {
	Get(key []byte) ([]byte, error)
	// Write applies all ops atomically: either every op is visible
	// afterwards or none is.
	Write(ops []Op) error
	// ForEach visits the keys with the given prefix in key order.
	// Return a non-nil error from fn to stop early.
	ForEach(prefix []byte, fn func(key, value []byte) error) error
	Close() error
}
