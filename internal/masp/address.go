package masp

import (
	"errors"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/namada-mobile/namada-bridge/pkg/crypto"
	"github.com/namada-mobile/namada-bridge/pkg/types"
)

// DiversifierSize is the length of a diversifier in bytes.
const DiversifierSize = 11

// maxDiversifierAttempts bounds the search; each draw succeeds with
// probability about one half.
const maxDiversifierAttempts = 256

const ctxDiversify = "namada-bridge 2024 masp diversify hash"

// ErrInvalidDiversifier is returned when a diversifier has no group element.
var ErrInvalidDiversifier = errors.New("invalid diversifier")

// Diversifier randomizes the appearance of a payment address.
type Diversifier [DiversifierSize]byte

// DiversifyHash maps d to a group element g_d. About half of all
// diversifiers have no such element and are invalid.
func DiversifyHash(d Diversifier) (*secp256k1.PublicKey, bool) {
	x := crypto.DeriveKey(ctxDiversify, d[:], 32)
	candidate := make([]byte, 0, 33)
	candidate = append(candidate, 0x02)
	candidate = append(candidate, x...)
	g, err := secp256k1.ParsePubKey(candidate)
	if err != nil {
		return nil, false
	}
	return g, true
}

// FindValidDiversifier draws diversifiers from r until one is valid and
// returns it with its group element.
func FindValidDiversifier(r io.Reader) (Diversifier, *secp256k1.PublicKey, error) {
	for i := 0; i < maxDiversifierAttempts; i++ {
		var d Diversifier
		if _, err := io.ReadFull(r, d[:]); err != nil {
			return Diversifier{}, nil, fmt.Errorf("read diversifier: %w", err)
		}
		if g, ok := DiversifyHash(d); ok {
			return d, g, nil
		}
	}
	return Diversifier{}, nil, fmt.Errorf("no valid diversifier after %d attempts", maxDiversifierAttempts)
}

// PaymentAddress is a shielded address (d, pk_d).
type PaymentAddress struct {
	Diversifier Diversifier
	PkD         [33]byte
}

// PaymentAddress derives the payment address for diversifier d.
func (vk ViewingKey) PaymentAddress(d Diversifier) (PaymentAddress, error) {
	g, ok := DiversifyHash(d)
	if !ok {
		return PaymentAddress{}, ErrInvalidDiversifier
	}
	ivk, err := vk.Ivk()
	if err != nil {
		return PaymentAddress{}, fmt.Errorf("ivk: %w", err)
	}

	var gd, pkd secp256k1.JacobianPoint
	g.AsJacobian(&gd)
	secp256k1.ScalarMultNonConst(&ivk, &gd, &pkd)
	if (pkd.X.IsZero() && pkd.Y.IsZero()) || pkd.Z.IsZero() {
		return PaymentAddress{}, errors.New("pk_d is the identity")
	}
	pkd.ToAffine()

	pa := PaymentAddress{Diversifier: d}
	copy(pa.PkD[:], secp256k1.NewPublicKey(&pkd.X, &pkd.Y).SerializeCompressed())
	return pa, nil
}

// Bytes serializes the address as d || pk_d.
func (pa PaymentAddress) Bytes() []byte {
	out := make([]byte, 0, DiversifierSize+33)
	out = append(out, pa.Diversifier[:]...)
	out = append(out, pa.PkD[:]...)
	return out
}

// String returns the bech32m encoding ("znam1...").
func (pa PaymentAddress) String() string {
	s, err := types.Bech32mEncode(PaymentAddressHRP, pa.Bytes())
	if err != nil {
		return PaymentAddressHRP + ":<invalid>"
	}
	return s
}

// ParsePaymentAddress decodes a "znam1..." string.
func ParsePaymentAddress(s string) (PaymentAddress, error) {
	b, err := decode(s, PaymentAddressHRP)
	if err != nil {
		return PaymentAddress{}, err
	}
	if len(b) != DiversifierSize+33 {
		return PaymentAddress{}, fmt.Errorf("payment address must be %d bytes, got %d", DiversifierSize+33, len(b))
	}
	var pa PaymentAddress
	copy(pa.Diversifier[:], b[:DiversifierSize])
	copy(pa.PkD[:], b[DiversifierSize:])
	if _, ok := DiversifyHash(pa.Diversifier); !ok {
		return PaymentAddress{}, ErrInvalidDiversifier
	}
	if _, err := secp256k1.ParsePubKey(pa.PkD[:]); err != nil {
		return PaymentAddress{}, fmt.Errorf("invalid pk_d: %w", err)
	}
	return pa, nil
}
