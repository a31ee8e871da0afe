// Package log provides structured logging for the wallet bridge.
//
// The component loggers are created once and never reassigned. Init and
// SetOutput only swap the sink they write to and the global level, so a
// reconfiguration can run while other goroutines are logging.
package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance.
var Logger zerolog.Logger

// Component loggers for different parts of the bridge.
var (
	Bridge  zerolog.Logger
	Wallet  zerolog.Logger
	SDK     zerolog.Logger
	RPC     zerolog.Logger
	Storage zerolog.Logger
)

// out receives every event. Events are JSON; the sink may format them.
var out = &sink{w: consoleWriter(os.Stderr)}

func init() {
	Logger = zerolog.New(out).With().Timestamp().Logger()
	initComponentLoggers()
	// Hosts embedding the library rarely surface stdout, so stay quiet by default.
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

// sink is an io.Writer whose target can be replaced while in use. It
// owns the log file, if any, and closes it when replaced.
type sink struct {
	mu   sync.Mutex
	w    io.Writer
	file *os.File
}

func (s *sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// swap installs w and file, then closes the previous file.
func (s *sink) swap(w io.Writer, file *os.File) error {
	s.mu.Lock()
	old := s.file
	s.w, s.file = w, file
	s.mu.Unlock()
	if old != nil && old != file {
		return old.Close()
	}
	return nil
}

// Init initializes the logger with the given configuration.
// When file is non-empty, logs are written to both stderr (console or
// JSON depending on jsonOutput) and the file (always JSON for machine parsing).
// A log file opened by an earlier Init is closed.
func Init(level string, jsonOutput bool, file string) error {
	var console io.Writer = os.Stderr
	if !jsonOutput {
		console = consoleWriter(os.Stderr)
	}

	var f *os.File
	w := console
	if file != "" {
		var err error
		f, err = os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		w = io.MultiWriter(console, f)
	}

	zerolog.SetGlobalLevel(parseLevel(level))
	return out.swap(w, f)
}

// SetOutput redirects all logging to w as JSON. Tests use it to capture output.
func SetOutput(w io.Writer, level string) {
	zerolog.SetGlobalLevel(parseLevel(level))
	_ = out.swap(w, nil)
}

func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    true,
	}
}

// parseLevel converts a string level to zerolog.Level.
func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// ValidLevel reports whether level is a recognised level name.
func ValidLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error", "disabled", "off":
		return true
	}
	return false
}

// initComponentLoggers initializes loggers for each component.
func initComponentLoggers() {
	Bridge = Logger.With().Str("component", "bridge").Logger()
	Wallet = Logger.With().Str("component", "wallet").Logger()
	SDK = Logger.With().Str("component", "sdk").Logger()
	RPC = Logger.With().Str("component", "rpc").Logger()
	Storage = Logger.With().Str("component", "storage").Logger()
}

// Benchmark helper for timing operations.
func Benchmark(logger zerolog.Logger, name string) func() {
	start := time.Now()
	return func() {
		logger.Debug().
			Str("operation", name).
			Dur("duration", time.Since(start)).
			Msg("benchmark")
	}
}
