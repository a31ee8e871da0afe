package bridge

import (
	"fmt"
	"runtime/debug"

	klog "github.com/namada-mobile/namada-bridge/internal/log"
)

// PanicPrefix starts the text of every recovered panic.
const PanicPrefix = "Top-level panic: "

// contain runs fn and turns a panic, including one re-raised from a
// runtime worker goroutine, into an InternalPanic outcome.
func contain(op string, fn func() Outcome) (out Outcome) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		msg := panicMessage(p)
		klog.Bridge.Error().
			Str("op", op).
			Str("panic", msg).
			Str("stack", string(debug.Stack())).
			Msg("Recovered panic")
		out = Outcome{Text: PanicPrefix + msg, Kind: InternalPanic}
	}()
	return fn()
}

// panicMessage renders a panic payload.
func panicMessage(p any) string {
	switch v := p.(type) {
	case string:
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		return "unknown panic payload"
	}
}
