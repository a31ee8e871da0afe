package wallet

import "fmt"

// SeedSize is the length of a BIP-39 seed in bytes.
const SeedSize = 64

// SeedFromMnemonic validates phrase and stretches it into the 64-byte
// seed every derivation starts from. The caller owns the returned slice
// and should wipe it when done.
func SeedFromMnemonic(phrase, passphrase string) ([]byte, error) {
	m, err := ParseMnemonic(phrase)
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}
	return m.Seed(passphrase), nil
}

// zeroBytes wipes secret material in place.
func zeroBytes(b []byte) {
	clear(b)
}
