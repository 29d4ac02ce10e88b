// FILE: lixenwraith/recorder/default.go
package recorder

import (
	"context"
	"sync/atomic"
	"time"
)

// Global instance for package-level functions; nil until SetDefault or Init
var defaultRecorder atomic.Pointer[Recorder]

// Default package-level functions that delegate to the default recorder.
// With no default recorder they are no-ops.

// Init builds a recorder from cfg and makes it the default, closing any previous default
func Init(cfg *Config, opts ...Option) error {
	r, err := New(cfg, opts...)
	if err != nil {
		return err
	}
	if prev := defaultRecorder.Swap(r); prev != nil {
		_ = prev.Close()
	}
	return nil
}

// InitWithOverrides builds the default recorder from built-in defaults and "key=value" overrides
func InitWithOverrides(overrides ...string) error {
	cfg, err := NewConfigFromOverrides(overrides...)
	if err != nil {
		return err
	}
	return Init(cfg)
}

// SetDefault makes r the default recorder and returns the previous one
func SetDefault(r *Recorder) *Recorder {
	return defaultRecorder.Swap(r)
}

// Default returns the default recorder, or nil
func Default() *Recorder {
	return defaultRecorder.Load()
}

// Log records a plain-text entry
func Log(text string) {
	if r := defaultRecorder.Load(); r != nil {
		r.Log(text)
	}
}

// LogJSON records a structured entry
func LogJSON(value any) {
	if r := defaultRecorder.Load(); r != nil {
		r.LogJSON(value)
	}
}

// LogError records an error with its cause chain and the caller's stack
func LogError(err error) {
	if r := defaultRecorder.Load(); r != nil {
		r.logError(err, 1)
	}
}

// ExportSnapshot exports the default recorder's log file
func ExportSnapshot(ctx context.Context) (string, error) {
	r := defaultRecorder.Load()
	if r == nil {
		return "", ErrDisabled
	}
	return r.ExportSnapshot(ctx)
}

// Flush waits until pending entries of the default recorder are written
func Flush(timeout time.Duration) error {
	if r := defaultRecorder.Load(); r != nil {
		return r.Flush(timeout)
	}
	return nil
}

// Shutdown flushes and closes the default recorder and clears it
func Shutdown(timeout time.Duration) error {
	if r := defaultRecorder.Swap(nil); r != nil {
		return r.Shutdown(timeout)
	}
	return nil
}
