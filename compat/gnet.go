// FILE: lixenwraith/recorder/compat/gnet.go
package compat

import (
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/recorder"
	"github.com/panjf2000/gnet/v2/pkg/logging"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// fatalFlushTimeout bounds the flush performed before the fatal handler runs
const fatalFlushTimeout = 100 * time.Millisecond

// GnetAdapter wraps a recorder to implement the gnet logging.Logger interface.
// Each call becomes one text entry of the form "[gnet] LEVEL message".
type GnetAdapter struct {
	recorder     *recorder.Recorder
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible adapter
func NewGnetAdapter(r *recorder.Recorder, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		recorder: r,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

func (a *GnetAdapter) logf(level Level, format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	a.recorder.Log(textLine(sourceGnet, level, msg))
	return msg
}

// Debugf records a debug line with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.logf(LevelDebug, format, args...)
}

// Infof records an info line with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.logf(LevelInfo, format, args...)
}

// Warnf records a warning line with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.logf(LevelWarn, format, args...)
}

// Errorf records an error line with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.logf(LevelError, format, args...)
}

// Fatalf records a fatal line, flushes the recorder and triggers the fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := a.logf(LevelFatal, format, args...)

	// Ensure the line reaches the file before exit
	_ = a.recorder.Flush(fatalFlushTimeout)

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
