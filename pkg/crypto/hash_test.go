package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/namada-mobile/namada-bridge/pkg/types"
)

func hexToHash(t *testing.T, s string) types.Hash {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex: %v", err)
	}
	var h types.Hash
	copy(h[:], b)
	return h
}

func TestHash(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "empty input",
			input: []byte{},
			want:  "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262",
		},
		{
			name:  "hello",
			input: []byte("hello"),
			want:  "ea8f163db38682925e4491c5e58d4bb3506ef8c14eb78a86e908c5624a67200f",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hash(tt.input)
			want := hexToHash(t, tt.want)
			if got != want {
				t.Errorf("Hash(%q) = %x, want %x", tt.input, got, want)
			}
		})
	}
}

func TestAddressFromPubKey(t *testing.T) {
	pub := bytes.Repeat([]byte{0x02}, 33)
	addr := AddressFromPubKey(pub)
	h := Hash(pub)
	if !bytes.Equal(addr[:], h[:types.AddressSize]) {
		t.Errorf("address = %x, want prefix of %x", addr, h)
	}
}

func TestDeriveKey_ContextSeparation(t *testing.T) {
	material := []byte("seed material")
	a := DeriveKey("ctx a", material, 32)
	b := DeriveKey("ctx b", material, 32)
	if len(a) != 32 || len(b) != 32 {
		t.Fatalf("lengths = %d/%d, want 32", len(a), len(b))
	}
	if bytes.Equal(a, b) {
		t.Error("different contexts should derive different keys")
	}
	if !bytes.Equal(a, DeriveKey("ctx a", material, 32)) {
		t.Error("DeriveKey should be deterministic")
	}
}

func TestKeyedHash(t *testing.T) {
	key := bytes.Repeat([]byte{7}, 32)
	out, err := KeyedHash(key, []byte("a"), []byte("b"))
	if err != nil {
		t.Fatalf("KeyedHash: %v", err)
	}
	if len(out) != 64 {
		t.Fatalf("len = %d, want 64", len(out))
	}
	joined, _ := KeyedHash(key, []byte("ab"))
	if !bytes.Equal(out, joined) {
		t.Error("parts should be hashed as a concatenation")
	}

	if _, err := KeyedHash([]byte("short"), []byte("a")); err == nil {
		t.Error("KeyedHash should reject a non-32-byte key")
	}
}
