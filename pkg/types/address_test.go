package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAddress_IsZero(t *testing.T) {
	var zero Address
	if !zero.IsZero() {
		t.Error("zero-value Address should be zero")
	}

	nonZero := Address{0x01}
	if nonZero.IsZero() {
		t.Error("non-zero Address should not be zero")
	}
}

func TestAddress_String(t *testing.T) {
	a := Address{0xab}
	a[19] = 0xcd
	s := a.String()
	if !strings.HasPrefix(s, "tnam1") {
		t.Errorf("String() should start with 'tnam1', got %s", s)
	}
	// 21-byte payload -> 34 data symbols + 6 checksum.
	if len(s) != len("tnam1")+34+6 {
		t.Errorf("String() length = %d, want %d", len(s), len("tnam1")+40)
	}
}

func TestAddress_Roundtrip(t *testing.T) {
	a := Address{0x8f, 0x3a, 0x44, 0xb8, 0x05, 0x6c, 0xaf, 0xec, 0x36, 0x8d,
		0xea, 0x0c, 0xbe, 0x0a, 0xd1, 0xd9, 0xbc, 0x3f, 0x43, 0x05}

	parsed, err := ParseAddress(a.String())
	if err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}
	if parsed != a {
		t.Errorf("roundtrip mismatch: got %x, want %x", parsed, a)
	}
}

func TestParseAddress_Errors(t *testing.T) {
	wrongHRP, _ := Bech32mEncode("znam", append([]byte{0}, make([]byte, 20)...))
	wrongLen, _ := Bech32mEncode("tnam", make([]byte, 10))
	wrongDisc, _ := Bech32mEncode("tnam", append([]byte{7}, make([]byte, 20)...))
	plainBech32, _ := Bech32Encode("tnam", append([]byte{0}, make([]byte, 20)...))

	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"garbage", "not-an-address"},
		{"wrong hrp", wrongHRP},
		{"wrong length", wrongLen},
		{"wrong discriminant", wrongDisc},
		{"bech32 checksum", plainBech32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseAddress(tt.in); err == nil {
				t.Errorf("ParseAddress(%q) should fail", tt.in)
			}
		})
	}
}

func TestAddress_JSON(t *testing.T) {
	a := Address{0x01, 0x02, 0x03}
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Address
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != a {
		t.Errorf("JSON roundtrip = %x, want %x", got, a)
	}

	var empty Address
	if err := json.Unmarshal([]byte(`""`), &empty); err != nil {
		t.Fatalf("Unmarshal empty: %v", err)
	}
	if !empty.IsZero() {
		t.Error("empty string should decode to zero address")
	}
}
