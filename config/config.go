// Package config handles bridge configuration.
//
// The bridge has no command line. Settings come from compiled-in defaults,
// optionally overridden by a key = value file the host points at.
package config

import (
	"time"
)

// Config holds the bridge's runtime configuration.
type Config struct {
	// Chain the wallet belongs to
	Chain ChainConfig

	// Node RPC endpoint used during context initialization
	RPC RPCConfig

	// Wallet derivation and storage
	Wallet WalletConfig

	// Shielded pool
	Masp MaspConfig

	// Logging
	Log LogConfig
}

// ChainConfig identifies the chain.
type ChainConfig struct {
	ID string `conf:"chain.id"`
}

// RPCConfig holds node RPC settings.
type RPCConfig struct {
	Endpoint string        `conf:"rpc.endpoint"`
	Timeout  time.Duration `conf:"rpc.timeout"`
}

// WalletConfig holds key derivation and storage settings.
type WalletConfig struct {
	Scheme           string `conf:"wallet.scheme"`            // ed25519 or secp256k1
	TransparentPath  string `conf:"wallet.transparent_path"`  // empty = scheme default
	ShieldedPath     string `conf:"wallet.shielded_path"`     // empty = m/32'/877'/0'
	OverwritePayment bool   `conf:"wallet.overwrite_payment"` // replace an existing payment address alias
	Password         string `conf:"wallet.password"`          // encrypt secrets at rest when set
}

// MaspConfig holds shielded pool settings.
type MaspConfig struct {
	ParamsDir string `conf:"masp.params_dir"` // empty = <storage_path>/masp
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// Directory names below a request's storage path.
const (
	WalletDirName = "sdk-wallet"
	MaspDirName   = "masp"
)
