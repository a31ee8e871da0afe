package bridge

import (
	"github.com/namada-mobile/namada-bridge/internal/wallet"

	klog "github.com/namada-mobile/namada-bridge/internal/log"
)

// SeedFailureText is returned instead of a phrase when generation fails.
const SeedFailureText = "Failed to generate seed phrase"

// generateMnemonic is swapped out in tests.
var generateMnemonic = wallet.GenerateMnemonic

// GenerateSeedPhrase returns a fresh English mnemonic of words words
// (12 or 24). Any failure, panics included, yields SeedFailureText.
func GenerateSeedPhrase(words int) Outcome {
	out := contain("generate_seed_phrase", func() Outcome {
		phrase, err := generateMnemonic(words)
		if err != nil {
			klog.Bridge.Warn().Err(err).Int("words", words).Msg("Seed phrase generation failed")
			return Outcome{Text: SeedFailureText, Kind: MnemonicError}
		}
		return Success(phrase)
	})
	if !out.OK {
		out.Text = SeedFailureText
	}
	return out
}
