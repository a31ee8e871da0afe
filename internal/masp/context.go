package masp

import (
	"fmt"
	"os"
	"path/filepath"
)

// ShieldedContext is the on-disk state owned by the shielded pool: the
// proving parameters directory and the note sync cache. The wallet
// bridge only ensures it exists.
type ShieldedContext struct {
	dir       string
	paramsDir string
}

// NewShieldedContext prepares a context rooted at dir. paramsDir locates
// the proving parameters; an empty paramsDir defaults to dir.
func NewShieldedContext(dir, paramsDir string) (*ShieldedContext, error) {
	if dir == "" {
		return nil, fmt.Errorf("shielded context dir is empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve shielded context dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0700); err != nil {
		return nil, fmt.Errorf("create shielded context dir: %w", err)
	}
	if paramsDir == "" {
		paramsDir = abs
	}
	return &ShieldedContext{dir: abs, paramsDir: paramsDir}, nil
}

// Dir returns the absolute context directory.
func (c *ShieldedContext) Dir() string {
	return c.dir
}

// ParamsDir returns the proving parameters directory.
func (c *ShieldedContext) ParamsDir() string {
	return c.paramsDir
}
