// Package sdk wires the wallet store, the shielded context and the RPC
// client into the execution context used by a single derivation request.
package sdk

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	klog "github.com/namada-mobile/namada-bridge/internal/log"
)

// Runtime errors.
var (
	ErrRuntimeInit   = errors.New("runtime init")
	ErrRuntimeClosed = errors.New("runtime already used")
)

// Runtime is a single-use executor. BlockOn runs one function on a
// dedicated goroutine and waits for it; a Runtime is never pooled.
type Runtime struct {
	name    string
	timeout time.Duration
	used    atomic.Bool
}

// NewRuntime creates a runtime whose work is bounded by timeout.
func NewRuntime(name string, timeout time.Duration) (*Runtime, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrRuntimeInit)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive, got %s", ErrRuntimeInit, timeout)
	}
	return &Runtime{name: name, timeout: timeout}, nil
}

// workerPanic carries a panic from the worker goroutine to the caller.
type workerPanic struct {
	value any
}

// BlockOn runs fn on the worker goroutine and returns its error. A panic
// in fn is re-raised on the calling goroutine with the original value so
// the caller's recover sees it. BlockOn always waits for fn to return.
func (r *Runtime) BlockOn(ctx context.Context, fn func(ctx context.Context) error) error {
	if !r.used.CompareAndSwap(false, true) {
		return ErrRuntimeClosed
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	done := make(chan error, 1)
	panicked := make(chan workerPanic, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				panicked <- workerPanic{value: p}
			}
		}()
		done <- fn(ctx)
	}()

	defer klog.Benchmark(klog.SDK, r.name)()
	select {
	case err := <-done:
		return err
	case p := <-panicked:
		klog.SDK.Debug().Str("runtime", r.name).Msg("Worker panicked, re-raising on caller")
		panic(p.value)
	}
}
