// derive_key.go prints the public key and address for a hex-encoded
// transparent secret key file.
// Usage: go run scripts/derive_key.go <keyfile> [ed25519|secp256k1]
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/namada-mobile/namada-bridge/pkg/crypto"
)

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: derive_key <keyfile> [scheme]")
		os.Exit(1)
	}
	scheme := crypto.Ed25519
	if len(os.Args) > 2 {
		s, err := crypto.ParseScheme(os.Args[2])
		if err != nil {
			fail(err)
		}
		scheme = s
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fail(err)
	}
	keyBytes, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		fail(err)
	}
	key, err := crypto.SecretKeyFromBytes(scheme, keyBytes)
	if err != nil {
		fail(err)
	}
	defer key.Zero()

	fmt.Printf("scheme=%s\n", key.Scheme())
	fmt.Printf("pubkey=%s\n", hex.EncodeToString(key.PublicKey()))
	fmt.Printf("address=%s\n", key.Address().String())
}
