package config

import (
	"fmt"
	"net/url"

	"github.com/namada-mobile/namada-bridge/internal/log"
	"github.com/namada-mobile/namada-bridge/internal/wallet"
	"github.com/namada-mobile/namada-bridge/pkg/crypto"
)

// Validate checks the config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Chain.ID == "" {
		return fmt.Errorf("chain.id must be set")
	}

	u, err := url.Parse(cfg.RPC.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("rpc.endpoint must be an http or https URL, got %q", cfg.RPC.Endpoint)
	}
	if cfg.RPC.Timeout <= 0 {
		return fmt.Errorf("rpc.timeout must be positive")
	}

	scheme, err := crypto.ParseScheme(cfg.Wallet.Scheme)
	if err != nil {
		return fmt.Errorf("wallet.scheme: %w", err)
	}
	if cfg.Wallet.TransparentPath != "" {
		p, err := wallet.ParseDerivationPath(cfg.Wallet.TransparentPath)
		if err != nil {
			return fmt.Errorf("wallet.transparent_path: %w", err)
		}
		if scheme == crypto.Ed25519 && !p.IsHardened() {
			return fmt.Errorf("wallet.transparent_path: ed25519 requires every level hardened")
		}
	}
	if cfg.Wallet.ShieldedPath != "" {
		p, err := wallet.ParseDerivationPath(cfg.Wallet.ShieldedPath)
		if err != nil {
			return fmt.Errorf("wallet.shielded_path: %w", err)
		}
		if !p.IsHardened() {
			return fmt.Errorf("wallet.shielded_path: shielded keys require every level hardened")
		}
	}

	if !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, error or disabled")
	}
	return nil
}

// TransparentPath returns the configured transparent path or the scheme default.
func (c *Config) TransparentPath() (crypto.Scheme, wallet.DerivationPath, error) {
	scheme, err := crypto.ParseScheme(c.Wallet.Scheme)
	if err != nil {
		return 0, nil, err
	}
	if c.Wallet.TransparentPath == "" {
		return scheme, wallet.DefaultTransparentPath(scheme), nil
	}
	p, err := wallet.ParseDerivationPath(c.Wallet.TransparentPath)
	return scheme, p, err
}

// ShieldedPath returns the configured shielded path or the default.
func (c *Config) ShieldedPath() (wallet.DerivationPath, error) {
	if c.Wallet.ShieldedPath == "" {
		return wallet.DefaultShieldedPath(), nil
	}
	return wallet.ParseDerivationPath(c.Wallet.ShieldedPath)
}
