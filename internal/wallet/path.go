package wallet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/namada-mobile/namada-bridge/pkg/crypto"
	"github.com/tyler-smith/go-bip32"
)

// Derivation path constants.
// Transparent: m/44'/877'/account'/change/index
// Shielded:    m/32'/877'/account'
const (
	// PurposeBIP44 is the BIP-44 purpose field (hardened).
	PurposeBIP44 = bip32.FirstHardenedChild + 44

	// PurposeZIP32 is the ZIP-32 purpose field (hardened).
	PurposeZIP32 = bip32.FirstHardenedChild + 32

	// CoinTypeNamada is the SLIP-44 coin type for Namada (hardened).
	CoinTypeNamada = bip32.FirstHardenedChild + 877

	// ChangeExternal is for receiving addresses.
	ChangeExternal = 0
)

// DerivationPath is a sequence of child indices below the master key.
type DerivationPath []uint32

// ParseDerivationPath parses paths such as "m/44'/877'/0'/0'/0'".
// Hardened indices may be marked with ' or h.
func ParseDerivationPath(s string) (DerivationPath, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) == 0 || parts[0] != "m" {
		return nil, fmt.Errorf("derivation path %q must start with m", s)
	}
	path := make(DerivationPath, 0, len(parts)-1)
	for _, p := range parts[1:] {
		hardened := strings.HasSuffix(p, "'") || strings.HasSuffix(p, "h") || strings.HasSuffix(p, "H")
		if hardened {
			p = p[:len(p)-1]
		}
		n, err := strconv.ParseUint(p, 10, 31)
		if err != nil {
			return nil, fmt.Errorf("derivation path %q: bad index %q", s, p)
		}
		idx := uint32(n)
		if hardened {
			idx += bip32.FirstHardenedChild
		}
		path = append(path, idx)
	}
	return path, nil
}

// String formats the path with ' marking hardened indices.
func (p DerivationPath) String() string {
	var sb strings.Builder
	sb.WriteString("m")
	for _, idx := range p {
		sb.WriteByte('/')
		if idx >= bip32.FirstHardenedChild {
			sb.WriteString(strconv.FormatUint(uint64(idx-bip32.FirstHardenedChild), 10))
			sb.WriteByte('\'')
		} else {
			sb.WriteString(strconv.FormatUint(uint64(idx), 10))
		}
	}
	return sb.String()
}

// IsHardened reports whether every index in the path is hardened.
func (p DerivationPath) IsHardened() bool {
	for _, idx := range p {
		if idx < bip32.FirstHardenedChild {
			return false
		}
	}
	return true
}

// DefaultTransparentPath returns the first account's path for scheme.
// Ed25519 only supports hardened derivation, so every level is hardened.
func DefaultTransparentPath(scheme crypto.Scheme) DerivationPath {
	if scheme == crypto.Secp256k1 {
		return DerivationPath{PurposeBIP44, CoinTypeNamada, bip32.FirstHardenedChild, ChangeExternal, 0}
	}
	return DerivationPath{
		PurposeBIP44,
		CoinTypeNamada,
		bip32.FirstHardenedChild,
		bip32.FirstHardenedChild + ChangeExternal,
		bip32.FirstHardenedChild,
	}
}

// DefaultShieldedPath returns the first shielded account's path.
func DefaultShieldedPath() DerivationPath {
	return DerivationPath{PurposeZIP32, CoinTypeNamada, bip32.FirstHardenedChild}
}
