// Package crypto provides the hashing and key primitives used for wallet derivation.
package crypto

import (
	"github.com/namada-mobile/namada-bridge/pkg/types"
	"github.com/zeebo/blake3"
)

// Hash computes a BLAKE3-256 hash of the input data.
func Hash(data []byte) types.Hash {
	return blake3.Sum256(data)
}

// AddressFromPubKey derives an implicit address from a serialized public key.
// Address = BLAKE3(pubkey)[:20].
func AddressFromPubKey(pubKey []byte) types.Address {
	return Hash(pubKey).Address()
}

// DeriveKey fills n bytes of key material bound to a context string,
// using BLAKE3 in key-derivation mode.
func DeriveKey(context string, material []byte, n int) []byte {
	out := make([]byte, n)
	blake3.DeriveKey(context, material, out)
	return out
}

// KeyedHash computes a 64-byte keyed BLAKE3 output over the concatenated parts.
// key must be 32 bytes.
func KeyedHash(key []byte, parts ...[]byte) ([]byte, error) {
	h, err := blake3.NewKeyed(key)
	if err != nil {
		return nil, err
	}
	for _, p := range parts {
		h.Write(p)
	}
	out := make([]byte, 64)
	if _, err := h.Digest().Read(out); err != nil {
		return nil, err
	}
	return out, nil
}
