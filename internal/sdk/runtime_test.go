package sdk

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestNewRuntime_InvalidOptions(t *testing.T) {
	tests := []struct {
		name    string
		rtName  string
		timeout time.Duration
	}{
		{"empty name", "", time.Second},
		{"zero timeout", "derive", 0},
		{"negative timeout", "derive", -time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRuntime(tt.rtName, tt.timeout); !errors.Is(err, ErrRuntimeInit) {
				t.Errorf("NewRuntime() error = %v, want ErrRuntimeInit", err)
			}
		})
	}
}

func TestBlockOn_ReturnsResult(t *testing.T) {
	defer goleak.VerifyNone(t)

	rt, err := NewRuntime("test", time.Second)
	if err != nil {
		t.Fatalf("NewRuntime() error: %v", err)
	}
	want := errors.New("step failed")
	if got := rt.BlockOn(context.Background(), func(ctx context.Context) error { return want }); !errors.Is(got, want) {
		t.Errorf("BlockOn() = %v, want %v", got, want)
	}
}

func TestBlockOn_SingleUse(t *testing.T) {
	defer goleak.VerifyNone(t)

	rt, _ := NewRuntime("test", time.Second)
	if err := rt.BlockOn(context.Background(), func(ctx context.Context) error { return nil }); err != nil {
		t.Fatalf("first BlockOn() error: %v", err)
	}
	if err := rt.BlockOn(context.Background(), func(ctx context.Context) error { return nil }); !errors.Is(err, ErrRuntimeClosed) {
		t.Errorf("second BlockOn() error = %v, want ErrRuntimeClosed", err)
	}
}

func TestBlockOn_RepanicsOnCaller(t *testing.T) {
	defer goleak.VerifyNone(t)

	rt, _ := NewRuntime("test", time.Second)
	var recovered any
	func() {
		defer func() { recovered = recover() }()
		rt.BlockOn(context.Background(), func(ctx context.Context) error {
			panic("boom")
		})
	}()
	if recovered != "boom" {
		t.Errorf("recovered = %v, want %q", recovered, "boom")
	}
}

func TestBlockOn_Deadline(t *testing.T) {
	defer goleak.VerifyNone(t)

	rt, _ := NewRuntime("test", 20*time.Millisecond)
	err := rt.BlockOn(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("BlockOn() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestBlockOn_ParentCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rt, _ := NewRuntime("test", time.Minute)
	err := rt.BlockOn(ctx, func(ctx context.Context) error { return ctx.Err() })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("BlockOn() error = %v, want context.Canceled", err)
	}
}
