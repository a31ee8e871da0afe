package masp

import (
	"bytes"
	"crypto/rand"
	"errors"
	"strings"
	"testing"
)

func testSeed() []byte {
	seed := make([]byte, 64)
	for i := range seed {
		seed[i] = byte(i)
	}
	return seed
}

func testKey(t *testing.T) SpendingKey {
	t.Helper()
	master, err := MasterSpendingKey(testSeed())
	if err != nil {
		t.Fatalf("MasterSpendingKey() error: %v", err)
	}
	sk, err := master.DerivePath(HardenedOffset+32, HardenedOffset+877, HardenedOffset)
	if err != nil {
		t.Fatalf("DerivePath() error: %v", err)
	}
	return sk
}

func TestMasterSpendingKey_Deterministic(t *testing.T) {
	a, err := MasterSpendingKey(testSeed())
	if err != nil {
		t.Fatalf("MasterSpendingKey() error: %v", err)
	}
	b, _ := MasterSpendingKey(testSeed())
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("master key derivation should be deterministic")
	}
	if a.Depth != 0 {
		t.Errorf("master depth = %d, want 0", a.Depth)
	}

	other := testSeed()
	other[0] ^= 0xff
	c, _ := MasterSpendingKey(other)
	if bytes.Equal(a.Bytes(), c.Bytes()) {
		t.Error("different seeds should give different master keys")
	}
}

func TestMasterSpendingKey_ShortSeed(t *testing.T) {
	if _, err := MasterSpendingKey(make([]byte, 16)); err == nil {
		t.Error("16-byte seed should be rejected")
	}
}

func TestDeriveChild(t *testing.T) {
	master, _ := MasterSpendingKey(testSeed())

	child, err := master.DeriveChild(HardenedOffset + 1)
	if err != nil {
		t.Fatalf("DeriveChild() error: %v", err)
	}
	if child.Depth != 1 {
		t.Errorf("child depth = %d, want 1", child.Depth)
	}
	if child.ChildIndex != HardenedOffset+1 {
		t.Errorf("child index = %d", child.ChildIndex)
	}
	if child.Ask == master.Ask || child.ChainCode == master.ChainCode {
		t.Error("child should differ from parent")
	}

	sibling, _ := master.DeriveChild(HardenedOffset + 2)
	if sibling.Ask == child.Ask {
		t.Error("siblings should differ")
	}

	if _, err := master.DeriveChild(1); !errors.Is(err, ErrNonHardened) {
		t.Errorf("non-hardened derivation error = %v, want ErrNonHardened", err)
	}
}

func TestSpendingKey_Roundtrip(t *testing.T) {
	sk := testKey(t)

	s := sk.String()
	if !strings.HasPrefix(s, SpendingKeyHRP+"1") {
		t.Fatalf("String() = %q, want %s1 prefix", s, SpendingKeyHRP)
	}
	parsed, err := ParseSpendingKey(s)
	if err != nil {
		t.Fatalf("ParseSpendingKey() error: %v", err)
	}
	if parsed != sk {
		t.Error("spending key roundtrip mismatch")
	}

	if _, err := ParseSpendingKey(sk.ViewingKey().String()); err == nil {
		t.Error("ParseSpendingKey should reject a viewing key string")
	}
}

func TestViewingKey_Roundtrip(t *testing.T) {
	vk := testKey(t).ViewingKey()

	s := vk.String()
	if !strings.HasPrefix(s, ViewingKeyHRP+"1") {
		t.Fatalf("String() = %q, want %s1 prefix", s, ViewingKeyHRP)
	}
	parsed, err := ParseViewingKey(s)
	if err != nil {
		t.Fatalf("ParseViewingKey() error: %v", err)
	}
	if parsed != vk {
		t.Error("viewing key roundtrip mismatch")
	}
}

func TestViewingKey_SharesPublicData(t *testing.T) {
	sk := testKey(t)
	vk := sk.ViewingKey()
	if vk.Ovk != sk.Ovk || vk.ChainCode != sk.ChainCode || vk.Depth != sk.Depth {
		t.Error("viewing key should carry ovk, chain code and depth")
	}
	if bytes.Contains(vk.Bytes(), sk.Ask[:]) {
		t.Error("viewing key must not contain ask")
	}
}

func TestSpendingKey_Zero(t *testing.T) {
	sk := testKey(t)
	sk.Zero()
	if sk.Ask != [32]byte{} || sk.Nsk != [32]byte{} {
		t.Error("Zero() should clear scalars")
	}
}

func TestFindValidDiversifier(t *testing.T) {
	d, g, err := FindValidDiversifier(rand.Reader)
	if err != nil {
		t.Fatalf("FindValidDiversifier() error: %v", err)
	}
	if g == nil {
		t.Fatal("group element should be returned")
	}
	if _, ok := DiversifyHash(d); !ok {
		t.Error("returned diversifier should be valid")
	}
}

func TestFindValidDiversifier_ReaderError(t *testing.T) {
	_, _, err := FindValidDiversifier(bytes.NewReader([]byte{1, 2, 3}))
	if err == nil {
		t.Fatal("short reader should fail")
	}
}

func TestDiversifyHash_RoughlyHalfValid(t *testing.T) {
	valid := 0
	const n = 400
	for i := 0; i < n; i++ {
		var d Diversifier
		d[0], d[1] = byte(i), byte(i>>8)
		if _, ok := DiversifyHash(d); ok {
			valid++
		}
	}
	if valid == 0 || valid == n {
		t.Errorf("valid diversifiers = %d/%d, expected a mix", valid, n)
	}
}

func TestPaymentAddress(t *testing.T) {
	vk := testKey(t).ViewingKey()
	d, _, err := FindValidDiversifier(rand.Reader)
	if err != nil {
		t.Fatalf("FindValidDiversifier() error: %v", err)
	}

	pa, err := vk.PaymentAddress(d)
	if err != nil {
		t.Fatalf("PaymentAddress() error: %v", err)
	}
	again, _ := vk.PaymentAddress(d)
	if pa != again {
		t.Error("payment address should be deterministic for a diversifier")
	}

	s := pa.String()
	if !strings.HasPrefix(s, PaymentAddressHRP+"1") {
		t.Fatalf("String() = %q, want %s1 prefix", s, PaymentAddressHRP)
	}
	parsed, err := ParsePaymentAddress(s)
	if err != nil {
		t.Fatalf("ParsePaymentAddress() error: %v", err)
	}
	if parsed != pa {
		t.Error("payment address roundtrip mismatch")
	}
}

func TestPaymentAddress_InvalidDiversifier(t *testing.T) {
	vk := testKey(t).ViewingKey()
	for i := 0; i < 1000; i++ {
		var d Diversifier
		d[0], d[1] = byte(i), byte(i>>8)
		if _, ok := DiversifyHash(d); ok {
			continue
		}
		if _, err := vk.PaymentAddress(d); !errors.Is(err, ErrInvalidDiversifier) {
			t.Fatalf("PaymentAddress(invalid) error = %v, want ErrInvalidDiversifier", err)
		}
		return
	}
	t.Fatal("no invalid diversifier found")
}

func TestNewShieldedContext(t *testing.T) {
	dir := t.TempDir() + "/wallet/masp"
	ctx, err := NewShieldedContext(dir, "")
	if err != nil {
		t.Fatalf("NewShieldedContext() error: %v", err)
	}
	if ctx.ParamsDir() != ctx.Dir() {
		t.Errorf("params dir = %q, want default %q", ctx.ParamsDir(), ctx.Dir())
	}

	// Idempotent on an existing directory.
	if _, err := NewShieldedContext(dir, "/params"); err != nil {
		t.Fatalf("second NewShieldedContext() error: %v", err)
	}

	if _, err := NewShieldedContext("", ""); err == nil {
		t.Error("empty dir should be rejected")
	}
}
