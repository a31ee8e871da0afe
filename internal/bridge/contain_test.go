package bridge

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/namada-mobile/namada-bridge/internal/sdk"
)

type stringer struct{}

func (stringer) String() string { return "stringer payload" }

func TestContain_Panics(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		want    string
	}{
		{"string", "boom", PanicPrefix + "boom"},
		{"error", errors.New("bad state"), PanicPrefix + "bad state"},
		{"stringer", stringer{}, PanicPrefix + "stringer payload"},
		{"other", 42, PanicPrefix + "unknown panic payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := contain("test", func() Outcome { panic(tt.payload) })
			if out.OK {
				t.Fatal("panicking operation should fail")
			}
			if out.Kind != InternalPanic {
				t.Errorf("Kind = %v, want InternalPanic", out.Kind)
			}
			if out.Text != tt.want {
				t.Errorf("Text = %q, want %q", out.Text, tt.want)
			}
		})
	}
}

func TestContain_PassesThrough(t *testing.T) {
	out := contain("test", func() Outcome { return Success("fine") })
	if !out.OK || out.Text != "fine" {
		t.Errorf("contain() = %+v", out)
	}
}

func TestContain_WorkerPanic(t *testing.T) {
	out := contain("test", func() Outcome {
		rt, err := sdk.NewRuntime("test", time.Second)
		if err != nil {
			return Failure(err)
		}
		err = rt.BlockOn(context.Background(), func(ctx context.Context) error {
			panic("worker exploded")
		})
		return Failure(err)
	})
	if out.Kind != InternalPanic {
		t.Fatalf("Kind = %v, want InternalPanic", out.Kind)
	}
	if !strings.HasPrefix(out.Text, PanicPrefix) || !strings.Contains(out.Text, "worker exploded") {
		t.Errorf("Text = %q", out.Text)
	}
}
