package wallet

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/namada-mobile/namada-bridge/pkg/crypto"
	"github.com/namada-mobile/namada-bridge/pkg/types"
	"github.com/tyler-smith/go-bip32"
)

// ed25519SeedKey is the SLIP-10 HMAC key for the ed25519 curve.
var ed25519SeedKey = []byte("ed25519 seed")

// ErrNonHardenedEd25519 is returned for a non-hardened ed25519 child index.
var ErrNonHardenedEd25519 = errors.New("ed25519 supports hardened derivation only")

// Ed25519Key is a SLIP-10 extended ed25519 key.
type Ed25519Key struct {
	key       [32]byte
	chainCode [32]byte
	depth     uint8
}

// NewEd25519MasterKey creates the SLIP-10 master key for seed.
func NewEd25519MasterKey(seed []byte) (*Ed25519Key, error) {
	if len(seed) < 16 || len(seed) > SeedSize {
		return nil, fmt.Errorf("seed must be 16 to %d bytes, got %d", SeedSize, len(seed))
	}
	mac := hmac.New(sha512.New, ed25519SeedKey)
	mac.Write(seed)
	return ed25519FromDigest(mac.Sum(nil), 0), nil
}

func ed25519FromDigest(i []byte, depth uint8) *Ed25519Key {
	k := &Ed25519Key{depth: depth}
	copy(k.key[:], i[:32])
	copy(k.chainCode[:], i[32:])
	return k
}

// DeriveChild derives the hardened child at index.
func (k *Ed25519Key) DeriveChild(index uint32) (*Ed25519Key, error) {
	if index < bip32.FirstHardenedChild {
		return nil, fmt.Errorf("derive child %d: %w", index, ErrNonHardenedEd25519)
	}
	data := make([]byte, 0, 1+32+4)
	data = append(data, 0x00)
	data = append(data, k.key[:]...)
	data = binary.BigEndian.AppendUint32(data, index)

	mac := hmac.New(sha512.New, k.chainCode[:])
	mac.Write(data)
	return ed25519FromDigest(mac.Sum(nil), k.depth+1), nil
}

// DerivePath derives a key along a sequence of indices.
func (k *Ed25519Key) DerivePath(indices ...uint32) (*Ed25519Key, error) {
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

// PrivateKeyBytes returns the 32-byte ed25519 seed.
func (k *Ed25519Key) PrivateKeyBytes() []byte {
	out := make([]byte, 32)
	copy(out, k.key[:])
	return out
}

// ChainCode returns the 32-byte chain code.
func (k *Ed25519Key) ChainCode() []byte {
	out := make([]byte, 32)
	copy(out, k.chainCode[:])
	return out
}

// PublicKeyBytes returns the 32-byte ed25519 public key.
func (k *Ed25519Key) PublicKeyBytes() []byte {
	priv := ed25519.NewKeyFromSeed(k.key[:])
	return []byte(priv.Public().(ed25519.PublicKey))
}

// SecretKey returns the key as a transparent ed25519 secret.
func (k *Ed25519Key) SecretKey() (*crypto.SecretKey, error) {
	return crypto.SecretKeyFromBytes(crypto.Ed25519, k.key[:])
}

// Address derives the implicit address of this key's public key.
func (k *Ed25519Key) Address() types.Address {
	return crypto.AddressFromPubKey(k.PublicKeyBytes())
}

// Depth returns the derivation depth (0 for master).
func (k *Ed25519Key) Depth() uint8 {
	return k.depth
}

// DeriveTransparentKey derives the secret at path from a BIP-39 seed:
// SLIP-10 for ed25519, BIP-32 for secp256k1.
func DeriveTransparentKey(scheme crypto.Scheme, seed []byte, path DerivationPath) (*crypto.SecretKey, error) {
	switch scheme {
	case crypto.Ed25519:
		master, err := NewEd25519MasterKey(seed)
		if err != nil {
			return nil, err
		}
		key, err := master.DerivePath(path...)
		if err != nil {
			return nil, err
		}
		return key.SecretKey()
	case crypto.Secp256k1:
		master, err := NewSecp256k1MasterKey(seed)
		if err != nil {
			return nil, err
		}
		key, err := master.DerivePath(path...)
		if err != nil {
			return nil, err
		}
		return key.SecretKey()
	default:
		return nil, fmt.Errorf("unsupported scheme %s", scheme)
	}
}
