// FILE: lixenwraith/recorder/compat/fiber.go
package compat

import (
	"fmt"
	"os"
	"strings"

	"github.com/lixenwraith/recorder"
)

// FiberAdapter wraps a recorder to implement Fiber's CommonLogger interface (Logger,
// FormatLogger and WithLogger) structurally, without importing Fiber.
// Plain and formatted calls become text lines "[fiber] LEVEL message"; the ...w variants
// become structured entries whose fields pass through the mask rules.
type FiberAdapter struct {
	recorder     *recorder.Recorder
	fatalHandler func(msg string) // Customizable fatal behavior
	panicHandler func(msg string) // Customizable panic behavior
}

// NewFiberAdapter creates a new Fiber-compatible adapter
func NewFiberAdapter(r *recorder.Recorder, opts ...FiberOption) *FiberAdapter {
	adapter := &FiberAdapter{
		recorder: r,
		fatalHandler: func(msg string) {
			os.Exit(1)
		},
		panicHandler: func(msg string) {
			panic(msg)
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FiberOption allows customizing adapter behavior
type FiberOption func(*FiberAdapter)

// WithFiberFatalHandler sets a custom fatal handler
func WithFiberFatalHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) {
		a.fatalHandler = handler
	}
}

// WithFiberPanicHandler sets a custom panic handler
func WithFiberPanicHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) {
		a.panicHandler = handler
	}
}

func (a *FiberAdapter) text(level Level, msg string) {
	a.recorder.Log(textLine(sourceFiber, level, msg))
}

func (a *FiberAdapter) structured(level Level, msg string, keysAndValues []any) {
	obj := newEntryObject(sourceFiber, level).Set("msg", msg)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		var value any
		if i+1 < len(keysAndValues) {
			value = keysAndValues[i+1]
		}
		setField(obj, key, value)
	}
	a.recorder.LogJSON(obj)
}

// triggerFatal flushes so the last line reaches the file, then runs the fatal handler
func (a *FiberAdapter) triggerFatal(msg string) {
	_ = a.recorder.Flush(fatalFlushTimeout)
	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

func (a *FiberAdapter) triggerPanic(msg string) {
	_ = a.recorder.Flush(fatalFlushTimeout)
	if a.panicHandler != nil {
		a.panicHandler(msg)
	}
}

// --- Logger ---

func (a *FiberAdapter) Trace(v ...any) { a.text(LevelTrace, fmt.Sprint(v...)) }
func (a *FiberAdapter) Debug(v ...any) { a.text(LevelDebug, fmt.Sprint(v...)) }
func (a *FiberAdapter) Info(v ...any)  { a.text(LevelInfo, fmt.Sprint(v...)) }
func (a *FiberAdapter) Warn(v ...any)  { a.text(LevelWarn, fmt.Sprint(v...)) }
func (a *FiberAdapter) Error(v ...any) { a.text(LevelError, fmt.Sprint(v...)) }

// Fatal records a fatal line and triggers the fatal handler
func (a *FiberAdapter) Fatal(v ...any) {
	msg := fmt.Sprint(v...)
	a.text(LevelFatal, msg)
	a.triggerFatal(msg)
}

// Panic records a panic line and triggers the panic handler
func (a *FiberAdapter) Panic(v ...any) {
	msg := fmt.Sprint(v...)
	a.text(LevelPanic, msg)
	a.triggerPanic(msg)
}

// Write lets the adapter serve as an io.Writer for Fiber output redirection.
// Each write becomes one info line without its trailing newline.
func (a *FiberAdapter) Write(p []byte) (int, error) {
	a.text(LevelInfo, strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// --- FormatLogger ---

func (a *FiberAdapter) Tracef(format string, v ...any) { a.text(LevelTrace, fmt.Sprintf(format, v...)) }
func (a *FiberAdapter) Debugf(format string, v ...any) { a.text(LevelDebug, fmt.Sprintf(format, v...)) }
func (a *FiberAdapter) Infof(format string, v ...any)  { a.text(LevelInfo, fmt.Sprintf(format, v...)) }
func (a *FiberAdapter) Warnf(format string, v ...any)  { a.text(LevelWarn, fmt.Sprintf(format, v...)) }
func (a *FiberAdapter) Errorf(format string, v ...any) { a.text(LevelError, fmt.Sprintf(format, v...)) }

func (a *FiberAdapter) Fatalf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	a.text(LevelFatal, msg)
	a.triggerFatal(msg)
}

func (a *FiberAdapter) Panicf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	a.text(LevelPanic, msg)
	a.triggerPanic(msg)
}

// --- WithLogger ---
// A key without a value is recorded as null. Keys colliding with the fixed
// level, source and msg fields are prefixed.

func (a *FiberAdapter) Tracew(msg string, keysAndValues ...any) {
	a.structured(LevelTrace, msg, keysAndValues)
}

func (a *FiberAdapter) Debugw(msg string, keysAndValues ...any) {
	a.structured(LevelDebug, msg, keysAndValues)
}

func (a *FiberAdapter) Infow(msg string, keysAndValues ...any) {
	a.structured(LevelInfo, msg, keysAndValues)
}

func (a *FiberAdapter) Warnw(msg string, keysAndValues ...any) {
	a.structured(LevelWarn, msg, keysAndValues)
}

func (a *FiberAdapter) Errorw(msg string, keysAndValues ...any) {
	a.structured(LevelError, msg, keysAndValues)
}

func (a *FiberAdapter) Fatalw(msg string, keysAndValues ...any) {
	a.structured(LevelFatal, msg, keysAndValues)
	a.triggerFatal(msg)
}

func (a *FiberAdapter) Panicw(msg string, keysAndValues ...any) {
	a.structured(LevelPanic, msg, keysAndValues)
	a.triggerPanic(msg)
}
