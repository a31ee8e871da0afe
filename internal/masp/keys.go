// Package masp implements the shielded key hierarchy used by the wallet:
// ZIP-32 style spending keys, their viewing keys, diversifier search and
// payment addresses.
//
// The hierarchy mirrors ZIP-32 (master key, hardened child derivation,
// ask/nsk/ovk expansion, ivk from ak||nk) with BLAKE3 as the PRF and
// secp256k1 as the group.
package masp

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/namada-mobile/namada-bridge/pkg/crypto"
	"github.com/namada-mobile/namada-bridge/pkg/types"
)

// Bech32m human-readable parts.
const (
	SpendingKeyHRP    = "zsknam"
	ViewingKeyHRP     = "zvknam"
	PaymentAddressHRP = "znam"
)

// HardenedOffset marks a hardened child index. Only hardened children
// can be derived from a spending key.
const HardenedOffset uint32 = 0x80000000

// Derivation contexts.
const (
	ctxMaster = "namada-bridge 2024 masp master key"
	ctxExpand = "namada-bridge 2024 masp prf expand"
	ctxIvk    = "namada-bridge 2024 masp crh ivk"
)

// PRF expansion domain tags.
const (
	tagAsk      byte = 0x00
	tagNsk      byte = 0x01
	tagOvk      byte = 0x02
	tagChild    byte = 0x11
	tagChildAsk byte = 0x13
	tagChildNsk byte = 0x14
	tagChildOvk byte = 0x15
)

const (
	spendingKeySize = 1 + 4 + 32 + 32 + 32 + 32
	viewingKeySize  = 1 + 4 + 32 + 33 + 33 + 32
)

// ErrNonHardened is returned when deriving a non-hardened spending key child.
var ErrNonHardened = errors.New("shielded keys support hardened derivation only")

// SpendingKey is an extended spending key.
type SpendingKey struct {
	Depth      uint8
	ChildIndex uint32
	ChainCode  [32]byte
	Ask        [32]byte // spend authorizing scalar
	Nsk        [32]byte // nullifier deriving scalar
	Ovk        [32]byte // outgoing viewing key
}

// MasterSpendingKey derives the root spending key from a BIP-39 seed.
func MasterSpendingKey(seed []byte) (SpendingKey, error) {
	if len(seed) < 32 {
		return SpendingKey{}, fmt.Errorf("seed must be at least 32 bytes, got %d", len(seed))
	}
	i := crypto.DeriveKey(ctxMaster, seed, 64)
	var sk SpendingKey
	copy(sk.ChainCode[:], i[32:])
	if err := sk.expandFrom(i[:32]); err != nil {
		return SpendingKey{}, err
	}
	return sk, nil
}

func (k *SpendingKey) expandFrom(seedKey []byte) error {
	ask, err := toScalar(expand(seedKey, tagAsk))
	if err != nil {
		return fmt.Errorf("expand ask: %w", err)
	}
	nsk, err := toScalar(expand(seedKey, tagNsk))
	if err != nil {
		return fmt.Errorf("expand nsk: %w", err)
	}
	k.Ask = ask.Bytes()
	k.Nsk = nsk.Bytes()
	copy(k.Ovk[:], expand(seedKey, tagOvk)[:32])
	return nil
}

// DeriveChild derives the hardened child at index.
func (k SpendingKey) DeriveChild(index uint32) (SpendingKey, error) {
	if index < HardenedOffset {
		return SpendingKey{}, ErrNonHardened
	}
	var le [4]byte
	binary.LittleEndian.PutUint32(le[:], index)
	i, err := crypto.KeyedHash(k.ChainCode[:], []byte{tagChild}, k.Ask[:], k.Nsk[:], k.Ovk[:], le[:])
	if err != nil {
		return SpendingKey{}, fmt.Errorf("child prf: %w", err)
	}
	il := i[:32]

	var ask, nsk secp256k1.ModNScalar
	ask.SetBytes(&k.Ask)
	nsk.SetBytes(&k.Nsk)
	dAsk, err := toScalar(expand(il, tagChildAsk))
	if err != nil {
		return SpendingKey{}, fmt.Errorf("child ask: %w", err)
	}
	dNsk, err := toScalar(expand(il, tagChildNsk))
	if err != nil {
		return SpendingKey{}, fmt.Errorf("child nsk: %w", err)
	}
	ask.Add(&dAsk)
	nsk.Add(&dNsk)
	if ask.IsZero() || nsk.IsZero() {
		return SpendingKey{}, fmt.Errorf("child %d: degenerate key", index)
	}

	child := SpendingKey{
		Depth:      k.Depth + 1,
		ChildIndex: index,
		Ask:        ask.Bytes(),
		Nsk:        nsk.Bytes(),
	}
	copy(child.ChainCode[:], i[32:])
	copy(child.Ovk[:], expand(append(append([]byte{}, il...), k.Ovk[:]...), tagChildOvk)[:32])
	return child, nil
}

// DerivePath derives a key along a sequence of hardened indices.
func (k SpendingKey) DerivePath(indices ...uint32) (SpendingKey, error) {
	current := k
	for _, idx := range indices {
		child, err := current.DeriveChild(idx)
		if err != nil {
			return SpendingKey{}, err
		}
		current = child
	}
	return current, nil
}

// ViewingKey returns the full viewing key for this spending key.
func (k SpendingKey) ViewingKey() ViewingKey {
	vk := ViewingKey{
		Depth:      k.Depth,
		ChildIndex: k.ChildIndex,
		ChainCode:  k.ChainCode,
		Ovk:        k.Ovk,
	}
	copy(vk.Ak[:], secp256k1.PrivKeyFromBytes(k.Ask[:]).PubKey().SerializeCompressed())
	copy(vk.Nk[:], secp256k1.PrivKeyFromBytes(k.Nsk[:]).PubKey().SerializeCompressed())
	return vk
}

// Bytes serializes the key.
func (k SpendingKey) Bytes() []byte {
	out := make([]byte, 0, spendingKeySize)
	out = append(out, k.Depth)
	out = binary.LittleEndian.AppendUint32(out, k.ChildIndex)
	out = append(out, k.ChainCode[:]...)
	out = append(out, k.Ask[:]...)
	out = append(out, k.Nsk[:]...)
	out = append(out, k.Ovk[:]...)
	return out
}

// String returns the bech32m encoding ("zsknam1...").
func (k SpendingKey) String() string {
	s, err := types.Bech32mEncode(SpendingKeyHRP, k.Bytes())
	if err != nil {
		return SpendingKeyHRP + ":<invalid>"
	}
	return s
}

// SpendingKeyFromBytes parses a serialized spending key.
func SpendingKeyFromBytes(b []byte) (SpendingKey, error) {
	if len(b) != spendingKeySize {
		return SpendingKey{}, fmt.Errorf("spending key must be %d bytes, got %d", spendingKeySize, len(b))
	}
	var k SpendingKey
	k.Depth = b[0]
	k.ChildIndex = binary.LittleEndian.Uint32(b[1:5])
	copy(k.ChainCode[:], b[5:37])
	copy(k.Ask[:], b[37:69])
	copy(k.Nsk[:], b[69:101])
	copy(k.Ovk[:], b[101:133])
	return k, nil
}

// ParseSpendingKey decodes a "zsknam1..." string.
func ParseSpendingKey(s string) (SpendingKey, error) {
	data, err := decode(s, SpendingKeyHRP)
	if err != nil {
		return SpendingKey{}, err
	}
	return SpendingKeyFromBytes(data)
}

// Zero clears the secret scalars.
func (k *SpendingKey) Zero() {
	k.Ask = [32]byte{}
	k.Nsk = [32]byte{}
	k.Ovk = [32]byte{}
	k.ChainCode = [32]byte{}
}

// ViewingKey is an extended full viewing key.
type ViewingKey struct {
	Depth      uint8
	ChildIndex uint32
	ChainCode  [32]byte
	Ak         [33]byte
	Nk         [33]byte
	Ovk        [32]byte
}

// Ivk computes the incoming viewing key scalar.
func (vk ViewingKey) Ivk() (secp256k1.ModNScalar, error) {
	material := make([]byte, 0, 66)
	material = append(material, vk.Ak[:]...)
	material = append(material, vk.Nk[:]...)
	return toScalar(crypto.DeriveKey(ctxIvk, material, 32))
}

// Bytes serializes the viewing key.
func (vk ViewingKey) Bytes() []byte {
	out := make([]byte, 0, viewingKeySize)
	out = append(out, vk.Depth)
	out = binary.LittleEndian.AppendUint32(out, vk.ChildIndex)
	out = append(out, vk.ChainCode[:]...)
	out = append(out, vk.Ak[:]...)
	out = append(out, vk.Nk[:]...)
	out = append(out, vk.Ovk[:]...)
	return out
}

// String returns the bech32m encoding ("zvknam1...").
func (vk ViewingKey) String() string {
	s, err := types.Bech32mEncode(ViewingKeyHRP, vk.Bytes())
	if err != nil {
		return ViewingKeyHRP + ":<invalid>"
	}
	return s
}

// ParseViewingKey decodes a "zvknam1..." string.
func ParseViewingKey(s string) (ViewingKey, error) {
	b, err := decode(s, ViewingKeyHRP)
	if err != nil {
		return ViewingKey{}, err
	}
	if len(b) != viewingKeySize {
		return ViewingKey{}, fmt.Errorf("viewing key must be %d bytes, got %d", viewingKeySize, len(b))
	}
	var vk ViewingKey
	vk.Depth = b[0]
	vk.ChildIndex = binary.LittleEndian.Uint32(b[1:5])
	copy(vk.ChainCode[:], b[5:37])
	copy(vk.Ak[:], b[37:70])
	copy(vk.Nk[:], b[70:103])
	copy(vk.Ovk[:], b[103:135])
	if _, err := secp256k1.ParsePubKey(vk.Ak[:]); err != nil {
		return ViewingKey{}, fmt.Errorf("invalid ak: %w", err)
	}
	if _, err := secp256k1.ParsePubKey(vk.Nk[:]); err != nil {
		return ViewingKey{}, fmt.Errorf("invalid nk: %w", err)
	}
	return vk, nil
}

// expand is PRF^expand(key, t).
func expand(key []byte, tag byte) []byte {
	material := make([]byte, 0, len(key)+1)
	material = append(material, key...)
	material = append(material, tag)
	return crypto.DeriveKey(ctxExpand, material, 64)
}

// toScalar reduces the first 32 bytes of b modulo the group order.
func toScalar(b []byte) (secp256k1.ModNScalar, error) {
	var s secp256k1.ModNScalar
	s.SetByteSlice(b[:32])
	if s.IsZero() {
		return s, errors.New("zero scalar")
	}
	return s, nil
}

func decode(s, wantHRP string) ([]byte, error) {
	hrp, data, err := types.Bech32mDecode(s)
	if err != nil {
		return nil, err
	}
	if hrp != wantHRP {
		return nil, fmt.Errorf("hrp %q, want %q", hrp, wantHRP)
	}
	return data, nil
}
