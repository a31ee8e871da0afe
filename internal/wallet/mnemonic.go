// Package wallet derives transparent and shielded keys from BIP-39
// mnemonics and persists them in an alias-keyed wallet store.
package wallet

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// Supported mnemonic lengths.
const (
	Words12 = 12
	Words24 = 24
)

// entropyReader is the randomness source for new mnemonics.
var entropyReader io.Reader = rand.Reader

// Mnemonic parse errors.
var (
	ErrWordCount   = errors.New("invalid word count")
	ErrUnknownWord = errors.New("unknown word")
	ErrChecksum    = errors.New("invalid checksum")
)

// entropyBits returns the BIP-39 entropy size for a word count.
func entropyBits(words int) (int, error) {
	switch words {
	case Words12:
		return 128, nil
	case Words24:
		return 256, nil
	default:
		return 0, fmt.Errorf("%w: %d (want %d or %d)", ErrWordCount, words, Words12, Words24)
	}
}

// GenerateMnemonic creates a new English BIP-39 mnemonic of 12 or 24 words.
func GenerateMnemonic(words int) (string, error) {
	bits, err := entropyBits(words)
	if err != nil {
		return "", err
	}
	entropy := make([]byte, bits/8)
	if _, err := io.ReadFull(entropyReader, entropy); err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateMnemonic checks if a mnemonic is valid per BIP-39
// (correct word count, valid words, valid checksum).
func ValidateMnemonic(mnemonic string) bool {
	_, err := ParseMnemonic(mnemonic)
	return err == nil
}

// Mnemonic is a validated 12 or 24 word English phrase.
type Mnemonic struct {
	phrase string
}

// ParseMnemonic validates phrase and returns it in canonical form
// (single spaces between words). The error names the first problem found
// without repeating any word of the phrase.
func ParseMnemonic(phrase string) (*Mnemonic, error) {
	words := strings.Fields(phrase)
	if _, err := entropyBits(len(words)); err != nil {
		return nil, err
	}
	for i, w := range words {
		if _, ok := bip39.GetWordIndex(w); !ok {
			return nil, fmt.Errorf("%w at position %d", ErrUnknownWord, i+1)
		}
	}
	canonical := strings.Join(words, " ")
	if _, err := bip39.EntropyFromMnemonic(canonical); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChecksum, err)
	}
	return &Mnemonic{phrase: canonical}, nil
}

// Phrase returns the canonical phrase.
func (m *Mnemonic) Phrase() string {
	return m.phrase
}

// WordCount returns the number of words.
func (m *Mnemonic) WordCount() int {
	return strings.Count(m.phrase, " ") + 1
}

// Seed derives the 64-byte BIP-39 seed with the given passphrase.
func (m *Mnemonic) Seed(passphrase string) []byte {
	return bip39.NewSeed(m.phrase, passphrase)
}

// String hides the phrase so a Mnemonic never leaks into logs.
func (m *Mnemonic) String() string {
	return fmt.Sprintf("Mnemonic(%d words)", m.WordCount())
}
