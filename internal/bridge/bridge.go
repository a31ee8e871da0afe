package bridge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"unicode/utf8"

	"github.com/namada-mobile/namada-bridge/config"

	klog "github.com/namada-mobile/namada-bridge/internal/log"
)

// Bridge serves host requests against one configuration. It is safe
// for concurrent use; each request works on a snapshot of the config.
type Bridge struct {
	mu  sync.RWMutex
	cfg *config.Config
}

// New creates a bridge with a validated config.
func New(cfg *config.Config) (*Bridge, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return &Bridge{cfg: cfg}, nil
}

// Default creates a bridge with the compiled-in defaults.
func Default() *Bridge {
	return &Bridge{cfg: config.Default()}
}

// Config returns the active configuration.
func (b *Bridge) Config() *config.Config {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cfg
}

// SetConfig validates and installs cfg for subsequent requests.
func (b *Bridge) SetConfig(cfg *config.Config) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}
	b.mu.Lock()
	b.cfg = cfg
	b.mu.Unlock()
	return nil
}

// Configure loads the key = value file at path, applies its logging
// settings and installs it. A missing file is first written with the
// defaults.
func (b *Bridge) Configure(path string) Outcome {
	return contain("configure_bridge", func() Outcome {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			if err := config.WriteDefaultConfig(path); err != nil {
				return Failure(newError(StorageError, err, "Could not write config '%s'", path))
			}
			klog.Bridge.Info().Str("path", path).Msg("Wrote default config")
		}
		cfg, err := config.LoadFromFile(path)
		if err != nil {
			return Failure(newError(MalformedRequest, err, "Bad config '%s'", path))
		}
		if err := klog.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
			return Failure(newError(StorageError, err, "Could not open log file '%s'", cfg.Log.File))
		}
		if err := b.SetConfig(cfg); err != nil {
			return Failure(newError(MalformedRequest, err, "Bad config '%s'", path))
		}
		klog.Bridge.Info().
			Str("endpoint", cfg.RPC.Endpoint).
			Str("chain_id", cfg.Chain.ID).
			Msg("Bridge configured")
		return Success(fmt.Sprintf("Configured bridge from '%s'", path))
	})
}

// DecodeInput validates host input. A nil input is NullInput; bytes
// that are not UTF-8 are InvalidEncoding.
func DecodeInput(input *string) (string, error) {
	if input == nil {
		return "", newError(NullInput, nil, "Error: input pointer was null")
	}
	if !utf8.ValidString(*input) {
		return "", newError(InvalidEncoding, nil, "Invalid UTF-8 input")
	}
	return *input, nil
}
