package wallet

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"
)

func TestSeedFromMnemonic_Vectors(t *testing.T) {
	tests := []struct {
		name       string
		phrase     string
		passphrase string
		want       string
	}{
		{
			name:       "12 words TREZOR",
			phrase:     testMnemonic12,
			passphrase: "TREZOR",
			want:       "c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04",
		},
		{
			name:   "12 words no passphrase",
			phrase: testMnemonic12,
			want:   "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4",
		},
		{
			name:       "legal winner",
			phrase:     "legal winner thank year wave sausage worth useful legal winner thank yellow",
			passphrase: "TREZOR",
			want:       "2e8905819b8723fe2c1d161860e5ee1830318dbf49a83bd451cfb8440c28bd6fa457fe1296106559a3c80937a1c1069be3a3a5bd381ee6260e8d9739fce1f607",
		},
		{
			name:       "24 words TREZOR",
			phrase:     strings.Repeat("abandon ", 23) + "art",
			passphrase: "TREZOR",
			want:       "bda85446c68413707090a52022edd26a1c9462295029f2e60cd7c4f2bbd3097170af7a4d73245cafa9c3cca8d561a7c3de6f5d4a10be8ed2a5e608d68f92fcc8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed, err := SeedFromMnemonic(tt.phrase, tt.passphrase)
			if err != nil {
				t.Fatalf("SeedFromMnemonic() error: %v", err)
			}
			if len(seed) != SeedSize {
				t.Fatalf("seed length = %d, want %d", len(seed), SeedSize)
			}
			if got := hex.EncodeToString(seed); got != tt.want {
				t.Errorf("seed = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSeedFromMnemonic_PassphraseChanges(t *testing.T) {
	seed1, err := SeedFromMnemonic(testMnemonic12, "")
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	seed2, err := SeedFromMnemonic(testMnemonic12, "my passphrase")
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	if bytes.Equal(seed1, seed2) {
		t.Error("different passphrases should produce different seeds")
	}
}

func TestSeedFromMnemonic_Invalid(t *testing.T) {
	for _, phrase := range []string{"", "not valid words here", strings.Repeat("abandon ", 12)} {
		if _, err := SeedFromMnemonic(phrase, ""); err == nil {
			t.Errorf("SeedFromMnemonic(%q) should fail", phrase)
		}
	}
}

func TestZeroBytes(t *testing.T) {
	b := []byte{1, 2, 3}
	zeroBytes(b)
	if !bytes.Equal(b, []byte{0, 0, 0}) {
		t.Errorf("zeroBytes left %v", b)
	}
}
