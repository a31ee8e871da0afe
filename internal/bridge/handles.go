package bridge

import (
	"strings"
	"sync"

	klog "github.com/namada-mobile/namada-bridge/internal/log"
)

// NulFallbackText replaces outcome text that cannot be a C string.
const NulFallbackText = "Internal error: null byte in output"

// HostText returns s, or NulFallbackText when s contains a NUL byte.
func HostText(s string) string {
	if strings.IndexByte(s, 0) >= 0 {
		return NulFallbackText
	}
	return s
}

// Handles tracks strings currently owned by the host. Each tracked
// pointer may be released exactly once; releasing anything else is
// logged and refused.
type Handles struct {
	mu   sync.Mutex
	live map[uintptr]struct{}
}

// NewHandles creates an empty registry.
func NewHandles() *Handles {
	return &Handles{live: make(map[uintptr]struct{})}
}

// Track records p as handed to the host.
func (h *Handles) Track(p uintptr) {
	if p == 0 {
		return
	}
	h.mu.Lock()
	h.live[p] = struct{}{}
	h.mu.Unlock()
}

// Release forgets p and reports whether the caller may free it.
// Null is a silent no-op; a pointer that is not live (double free or a
// foreign buffer) is logged and refused.
func (h *Handles) Release(p uintptr) bool {
	if p == 0 {
		return false
	}
	h.mu.Lock()
	_, ok := h.live[p]
	delete(h.live, p)
	h.mu.Unlock()

	if !ok {
		klog.Bridge.Warn().Uint64("ptr", uint64(p)).Msg("Refusing to free unknown string handle")
	}
	return ok
}

// Live returns the number of strings the host has not released.
func (h *Handles) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.live)
}
