package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// AddressSize is the length of a public key hash in bytes.
const AddressSize = 20

// AddressHRP is the bech32m human-readable part of transparent addresses.
const AddressHRP = "tnam"

// implicitDiscriminant tags an address derived directly from a public key.
const implicitDiscriminant byte = 0x00

// Address is an implicit transparent address: the hash of a public key.
type Address [AddressSize]byte

// IsZero returns true if the address is all zeros.
func (a Address) IsZero() bool {
	return a == Address{}
}

// String returns the bech32m-encoded address (e.g. "tnam1...").
func (a Address) String() string {
	payload := make([]byte, 0, AddressSize+1)
	payload = append(payload, implicitDiscriminant)
	payload = append(payload, a[:]...)
	s, err := Bech32mEncode(AddressHRP, payload)
	if err != nil {
		// Fallback to hex if encoding fails (should never happen).
		return AddressHRP + ":" + hex.EncodeToString(a[:])
	}
	return s
}

// Hex returns the raw hex-encoded public key hash.
func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

// Bytes returns a copy of the address as a byte slice.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressSize)
	copy(b, a[:])
	return b
}

// MarshalJSON encodes the address as a bech32m string.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a bech32m address string.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*a = Address{}
		return nil
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress parses a bech32m "tnam1..." implicit address.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return Address{}, fmt.Errorf("empty address")
	}
	hrp, data, err := Bech32mDecode(s)
	if err != nil {
		return Address{}, fmt.Errorf("invalid address: %w", err)
	}
	if hrp != AddressHRP {
		return Address{}, fmt.Errorf("address hrp %q, want %q", hrp, AddressHRP)
	}
	if len(data) != AddressSize+1 {
		return Address{}, fmt.Errorf("address must be %d bytes, got %d", AddressSize+1, len(data))
	}
	if data[0] != implicitDiscriminant {
		return Address{}, fmt.Errorf("unsupported address discriminant 0x%02x", data[0])
	}
	var a Address
	copy(a[:], data[1:])
	return a, nil
}
