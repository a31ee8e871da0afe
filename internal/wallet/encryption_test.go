package wallet

import (
	"bytes"
	"errors"
	"testing"

	"golang.org/x/crypto/chacha20poly1305"
)

// fastParams keeps Argon2 cheap in tests.
func fastParams() EncryptionParams {
	return EncryptionParams{Memory: 64, Iterations: 1, Parallelism: 1}
}

func TestEncryptDecrypt_Roundtrip(t *testing.T) {
	for _, plaintext := range [][]byte{[]byte("spending key bytes"), {}} {
		sealed, err := Encrypt(plaintext, []byte("strong-password-123"), fastParams())
		if err != nil {
			t.Fatalf("Encrypt() error: %v", err)
		}
		if want := headerSize + chacha20poly1305.NonceSizeX + len(plaintext) + chacha20poly1305.Overhead; len(sealed) != want {
			t.Errorf("sealed length = %d, want %d", len(sealed), want)
		}
		opened, err := Decrypt(sealed, []byte("strong-password-123"))
		if err != nil {
			t.Fatalf("Decrypt() error: %v", err)
		}
		if !bytes.Equal(opened, plaintext) {
			t.Errorf("Decrypt() = %q, want %q", opened, plaintext)
		}
	}
}

func TestDecrypt_Failures(t *testing.T) {
	sealed, err := Encrypt([]byte("secret"), []byte("correct"), fastParams())
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	mutate := func(f func(b []byte)) []byte {
		b := append([]byte(nil), sealed...)
		f(b)
		return b
	}

	tests := []struct {
		name        string
		data        []byte
		password    string
		wantDecrypt bool
	}{
		{"wrong password", sealed, "wrong", true},
		{"flipped tag", mutate(func(b []byte) { b[len(b)-1] ^= 0xFF }), "correct", true},
		{"flipped salt", mutate(func(b []byte) { b[0] ^= 0x01 }), "correct", true},
		{"truncated", sealed[:headerSize+10], "correct", false},
		{"zero parallelism", mutate(func(b []byte) { b[SaltSize+8] = 0 }), "correct", false},
		{"zero iterations", mutate(func(b []byte) { clear(b[SaltSize+4 : SaltSize+8]) }), "correct", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt(tt.data, []byte(tt.password))
			if err == nil {
				t.Fatal("Decrypt() should fail")
			}
			if got := errors.Is(err, ErrDecrypt); got != tt.wantDecrypt {
				t.Errorf("errors.Is(err, ErrDecrypt) = %v, want %v (err: %v)", got, tt.wantDecrypt, err)
			}
		})
	}
}

func TestEncrypt_FreshSaltAndNonce(t *testing.T) {
	a, _ := Encrypt([]byte("same"), []byte("pass"), fastParams())
	b, _ := Encrypt([]byte("same"), []byte("pass"), fastParams())
	if bytes.Equal(a[:SaltSize], b[:SaltSize]) {
		t.Error("salt should differ between encryptions")
	}
	if bytes.Equal(a[headerSize:headerSize+chacha20poly1305.NonceSizeX], b[headerSize:headerSize+chacha20poly1305.NonceSizeX]) {
		t.Error("nonce should differ between encryptions")
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.Memory != 19*1024 || p.Iterations != 2 || p.Parallelism != 1 {
		t.Errorf("DefaultParams() = %+v, want 19 MiB, 2 iterations, 1 lane", p)
	}
}
