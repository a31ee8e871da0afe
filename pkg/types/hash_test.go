package types

import (
	"bytes"
	"testing"
)

func TestHash_Address(t *testing.T) {
	var h Hash
	for i := range h {
		h[i] = byte(i)
	}
	a := h.Address()
	if !bytes.Equal(a[:], h[:AddressSize]) {
		t.Errorf("Address() = %x, want prefix of %x", a, h)
	}
}

func TestHash_Bytes(t *testing.T) {
	h := Hash{1, 2, 3}
	b := h.Bytes()
	b[0] = 9
	if h[0] != 1 {
		t.Error("Bytes() should return a copy")
	}
	if len(h.String()) != 2*HashSize {
		t.Errorf("String() length = %d", len(h.String()))
	}
}
