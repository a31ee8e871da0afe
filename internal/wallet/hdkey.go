package wallet

import (
	"errors"
	"fmt"

	"github.com/namada-mobile/namada-bridge/pkg/crypto"
	"github.com/namada-mobile/namada-bridge/pkg/types"
	"github.com/tyler-smith/go-bip32"
)

// ErrPublicOnly is returned when a secret is requested from a key that
// only carries a public key.
var ErrPublicOnly = errors.New("key has no private part")

// Secp256k1Key is a BIP-32 extended key on secp256k1. Unlike Ed25519Key
// it supports non-hardened children, which the default secp256k1 path
// uses for its last two levels.
type Secp256k1Key struct {
	key *bip32.Key
}

// NewSecp256k1MasterKey creates the BIP-32 master key for seed.
func NewSecp256k1MasterKey(seed []byte) (*Secp256k1Key, error) {
	if len(seed) < 16 || len(seed) > SeedSize {
		return nil, fmt.Errorf("seed must be 16 to %d bytes, got %d", SeedSize, len(seed))
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	return &Secp256k1Key{key: master}, nil
}

// DeriveChild derives the child at index. Indices at or above
// bip32.FirstHardenedChild are hardened.
func (k *Secp256k1Key) DeriveChild(index uint32) (*Secp256k1Key, error) {
	child, err := k.key.NewChildKey(index)
	if err != nil {
		return nil, fmt.Errorf("derive child %d: %w", index, err)
	}
	return &Secp256k1Key{key: child}, nil
}

// DerivePath derives a key along a sequence of indices.
func (k *Secp256k1Key) DerivePath(indices ...uint32) (*Secp256k1Key, error) {
	current := k
	for _, idx := range indices {
		child, err := current.DeriveChild(idx)
		if err != nil {
			return nil, err
		}
		current = child
	}
	return current, nil
}

// PrivateKeyBytes returns the 32-byte private scalar, or nil for a
// public-only key.
func (k *Secp256k1Key) PrivateKeyBytes() []byte {
	if !k.key.IsPrivate {
		return nil
	}
	raw := k.key.Key
	if len(raw) == 33 && raw[0] == 0 {
		return raw[1:]
	}
	return raw
}

// PublicKeyBytes returns the compressed 33-byte public key.
func (k *Secp256k1Key) PublicKeyBytes() []byte {
	return k.key.PublicKey().Key
}

// ChainCode returns the 32-byte chain code.
func (k *Secp256k1Key) ChainCode() []byte {
	return k.key.ChainCode
}

// SecretKey exports the key as a transparent secp256k1 secret.
func (k *Secp256k1Key) SecretKey() (*crypto.SecretKey, error) {
	priv := k.PrivateKeyBytes()
	if priv == nil {
		return nil, ErrPublicOnly
	}
	return crypto.SecretKeyFromBytes(crypto.Secp256k1, priv)
}

// Address derives the implicit address of the public key.
func (k *Secp256k1Key) Address() types.Address {
	return crypto.AddressFromPubKey(k.PublicKeyBytes())
}

// Depth returns the derivation depth (0 for master).
func (k *Secp256k1Key) Depth() uint8 {
	return k.key.Depth
}

// Public returns a copy without the private part.
func (k *Secp256k1Key) Public() *Secp256k1Key {
	return &Secp256k1Key{key: k.key.PublicKey()}
}
