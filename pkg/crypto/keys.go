package crypto

import (
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/namada-mobile/namada-bridge/pkg/types"
)

// Scheme identifies a transparent signature scheme.
type Scheme uint8

const (
	Ed25519 Scheme = iota
	Secp256k1
)

// String returns the lowercase scheme name.
func (s Scheme) String() string {
	switch s {
	case Ed25519:
		return "ed25519"
	case Secp256k1:
		return "secp256k1"
	default:
		return fmt.Sprintf("scheme(%d)", uint8(s))
	}
}

// ParseScheme parses a scheme name as written in configuration files.
func ParseScheme(s string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ed25519", "":
		return Ed25519, nil
	case "secp256k1":
		return Secp256k1, nil
	default:
		return 0, fmt.Errorf("unknown scheme %q", s)
	}
}

// SecretKey is a transparent secret key of either scheme.
type SecretKey struct {
	scheme Scheme
	raw    []byte // ed25519: 32-byte seed; secp256k1: 32-byte scalar
}

// SecretKeyFromBytes wraps a 32-byte secret for the given scheme.
func SecretKeyFromBytes(scheme Scheme, b []byte) (*SecretKey, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("%s secret key must be 32 bytes, got %d", scheme, len(b))
	}
	switch scheme {
	case Ed25519:
	case Secp256k1:
		var k secp256k1.ModNScalar
		if overflow := k.SetByteSlice(b); overflow || k.IsZero() {
			return nil, fmt.Errorf("secp256k1 secret key out of range")
		}
	default:
		return nil, fmt.Errorf("unsupported scheme %s", scheme)
	}
	raw := make([]byte, 32)
	copy(raw, b)
	return &SecretKey{scheme: scheme, raw: raw}, nil
}

// Scheme returns the key's signature scheme.
func (k *SecretKey) Scheme() Scheme {
	return k.scheme
}

// Bytes returns a copy of the 32-byte secret.
func (k *SecretKey) Bytes() []byte {
	out := make([]byte, len(k.raw))
	copy(out, k.raw)
	return out
}

// PublicKey returns the serialized public key: 32 bytes for ed25519,
// 33 compressed bytes for secp256k1.
func (k *SecretKey) PublicKey() []byte {
	switch k.scheme {
	case Secp256k1:
		return secp256k1.PrivKeyFromBytes(k.raw).PubKey().SerializeCompressed()
	default:
		priv := ed25519.NewKeyFromSeed(k.raw)
		return []byte(priv.Public().(ed25519.PublicKey))
	}
}

// Address returns the implicit address of the key's public key.
func (k *SecretKey) Address() types.Address {
	return AddressFromPubKey(k.PublicKey())
}

// Zero overwrites the secret material.
func (k *SecretKey) Zero() {
	for i := range k.raw {
		k.raw[i] = 0
	}
}
