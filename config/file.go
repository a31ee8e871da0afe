package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadFile loads configuration values from a .conf file.
// Format: key = value (one per line, # for comments)
// A missing file yields no values.
func LoadFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: invalid format (expected key = value)", lineNum)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		// Remove quotes if present
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		values[key] = value
	}

	return values, scanner.Err()
}

// ApplyFileConfig applies file configuration to a Config struct.
func ApplyFileConfig(cfg *Config, values map[string]string) error {
	for key, value := range values {
		if err := setConfigValue(cfg, key, value); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

// setConfigValue sets a config value by key.
func setConfigValue(cfg *Config, key, value string) error {
	switch key {
	// Chain
	case "chain.id", "chain_id":
		cfg.Chain.ID = value

	// RPC
	case "rpc.endpoint", "rpc":
		cfg.RPC.Endpoint = value
	case "rpc.timeout":
		d, err := parseDuration(value)
		if err != nil {
			return err
		}
		cfg.RPC.Timeout = d

	// Wallet
	case "wallet.scheme":
		cfg.Wallet.Scheme = strings.ToLower(value)
	case "wallet.transparent_path":
		cfg.Wallet.TransparentPath = value
	case "wallet.shielded_path":
		cfg.Wallet.ShieldedPath = value
	case "wallet.overwrite_payment":
		cfg.Wallet.OverwritePayment = parseBool(value)
	case "wallet.password":
		cfg.Wallet.Password = value

	// Shielded pool
	case "masp.params_dir":
		cfg.Masp.ParamsDir = value

	// Logging
	case "log.level":
		cfg.Log.Level = value
	case "log.file":
		cfg.Log.File = value
	case "log.json":
		cfg.Log.JSON = parseBool(value)

	default:
		// Unknown keys are ignored
	}
	return nil
}

// parseBool parses a boolean value.
func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// parseDuration accepts Go durations ("15s") or a bare number of seconds.
func parseDuration(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	secs, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return time.Duration(secs) * time.Second, nil
}

// LoadFromFile builds a config from defaults and the file at path, then
// validates it.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()
	fileValues, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config file: %w", err)
	}
	if err := ApplyFileConfig(cfg, fileValues); err != nil {
		return nil, fmt.Errorf("applying config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// WriteDefaultConfig writes a commented default configuration file.
func WriteDefaultConfig(path string) error {
	content := `# Namada wallet bridge configuration

# ============================================================================
# Chain
# ============================================================================

chain.id = ` + DefaultChainID + `

# ============================================================================
# Node RPC (queried once per wallet derivation)
# ============================================================================

rpc.endpoint = ` + DefaultRPCEndpoint + `
rpc.timeout = 10s

# ============================================================================
# Wallet
# ============================================================================

# Transparent key scheme: ed25519 or secp256k1
wallet.scheme = ed25519

# Derivation paths (defaults depend on the scheme)
# wallet.transparent_path = m/44'/877'/0'/0'/0'
# wallet.shielded_path = m/32'/877'/0'

# Replace an existing <alias>_shielded_payment entry
wallet.overwrite_payment = true

# Encrypt secrets at rest
# wallet.password =

# ============================================================================
# Shielded pool
# ============================================================================

# Proving parameters directory (default: <storage_path>/masp)
# masp.params_dir =

# ============================================================================
# Logging
# ============================================================================

log.level = warn
# log.file =
log.json = false
`
	return os.WriteFile(path, []byte(content), 0600)
}
