package bridge

import (
	"sync"
	"testing"
)

func TestHostText(t *testing.T) {
	if got := HostText("Derived & saved wallet 'a'"); got != "Derived & saved wallet 'a'" {
		t.Errorf("HostText() = %q", got)
	}
	if got := HostText("bad\x00text"); got != NulFallbackText {
		t.Errorf("HostText(nul) = %q, want fallback", got)
	}
}

func TestHandles_ReleaseOnce(t *testing.T) {
	h := NewHandles()
	h.Track(0x1000)
	h.Track(0x2000)
	if h.Live() != 2 {
		t.Fatalf("Live() = %d, want 2", h.Live())
	}

	if !h.Release(0x1000) {
		t.Error("first release should be allowed")
	}
	if h.Release(0x1000) {
		t.Error("double release should be refused")
	}
	if h.Release(0x3000) {
		t.Error("foreign pointer should be refused")
	}
	if h.Release(0) {
		t.Error("null release should be refused")
	}
	if h.Live() != 1 {
		t.Errorf("Live() = %d, want 1", h.Live())
	}
}

func TestHandles_TrackNull(t *testing.T) {
	h := NewHandles()
	h.Track(0)
	if h.Live() != 0 {
		t.Errorf("Live() = %d, want 0", h.Live())
	}
}

func TestHandles_Concurrent(t *testing.T) {
	h := NewHandles()
	var wg sync.WaitGroup
	for i := 1; i <= 64; i++ {
		wg.Add(1)
		go func(p uintptr) {
			defer wg.Done()
			h.Track(p)
			if !h.Release(p) {
				t.Errorf("release of %x refused", p)
			}
		}(uintptr(i * 16))
	}
	wg.Wait()
	if h.Live() != 0 {
		t.Errorf("Live() = %d, want 0", h.Live())
	}
}
