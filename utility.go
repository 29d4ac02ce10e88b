// FILE: lixenwraith/recorder/utility.go
package recorder

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

const errorPrefix = "recorder: "

var (
	// ErrDisabled is returned by operations that need an enabled recorder
	ErrDisabled = errors.New(errorPrefix + "recording is disabled")
	// ErrClosed is returned by operations on a closed recorder
	ErrClosed = errors.New(errorPrefix + "recorder is closed")
	// ErrNoExporter is returned by ExportSnapshot when no export destination is configured
	ErrNoExporter = errors.New(errorPrefix + "no exporter configured")
)

// maxStackDepth bounds the frames captured for LogError
const maxStackDepth = 32

// captureStack returns "function (file:line)" for each frame of the calling goroutine,
// innermost first, skipping skip frames above the caller of captureStack
func captureStack(skip int) []string {
	pc := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+2, pc) // +2 for runtime.Callers and captureStack
	if n == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pc[:n])
	var stack []string
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			stack = append(stack, fmt.Sprintf("%s (%s:%d)", funcName(frame.Function), filepath.Base(frame.File), frame.Line))
		}
		if !more {
			break
		}
	}
	return stack
}

// funcName shortens a fully qualified function name to package.Function,
// naming anonymous functions by their enclosing function
func funcName(full string) string {
	name := filepath.Base(full)
	parts := strings.Split(name, ".")
	last := parts[len(parts)-1]
	if len(parts) > 2 && strings.HasPrefix(last, "func") && len(last) > 4 {
		isAnonymous := true
		for _, r := range last[4:] {
			if !unicode.IsDigit(r) {
				isAnonymous = false
				break
			}
		}
		if isAnonymous {
			return fmt.Sprintf("(anonymous in %s)", strings.Join(parts[:len(parts)-1], "."))
		}
	}
	return name
}

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, errorPrefix) {
		format = errorPrefix + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%w; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}
