// Package types defines the primitive value types shared by the bridge:
// hashes, transparent addresses and their bech32m encodings.
package types

import "encoding/hex"

// HashSize is the length of a digest in bytes.
const HashSize = 32

// Hash is a 256-bit digest.
type Hash [HashSize]byte

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Bytes returns a copy of the digest.
func (h Hash) Bytes() []byte {
	return append([]byte(nil), h[:]...)
}

// Address truncates h to the implicit address it commits to.
func (h Hash) Address() Address {
	var a Address
	copy(a[:], h[:AddressSize])
	return a
}
