package config

import "time"

// Network defaults.
const (
	DefaultRPCEndpoint = "https://rpc.namada.tududes.com"
	DefaultChainID     = "namada.5f5de2dd1b88cba30586420"
	DefaultRPCTimeout  = 10 * time.Second
)

// Default returns the default bridge configuration.
func Default() *Config {
	return &Config{
		Chain: ChainConfig{
			ID: DefaultChainID,
		},
		RPC: RPCConfig{
			Endpoint: DefaultRPCEndpoint,
			Timeout:  DefaultRPCTimeout,
		},
		Wallet: WalletConfig{
			Scheme:           "ed25519",
			OverwritePayment: true,
		},
		Log: LogConfig{
			Level: "warn",
			JSON:  false,
		},
	}
}
