// FILE: lixenwraith/recorder/formatter/formatter.go
// Package formatter renders recorder entries into log file lines of the form
// "<timestamp> | <payload>\n".
package formatter

import (
	"time"

	"github.com/lixenwraith/recorder/sanitizer"
)

const (
	// DefaultTimestampFormat renders local time with millisecond precision
	DefaultTimestampFormat = "2006-01-02 15:04:05.000"
	// Separator sits between the timestamp and the payload
	Separator = " | "
)

// Formatter manages the buffered formatting of log lines; it is owned by a single writer
type Formatter struct {
	sanitizer       *sanitizer.Sanitizer
	timestampFormat string
	buf             []byte
}

// New creates a formatter with the provided sanitizer
func New(s ...*sanitizer.Sanitizer) *Formatter {
	var san *sanitizer.Sanitizer
	if len(s) > 0 && s[0] != nil {
		san = s[0]
	} else {
		san = sanitizer.New(sanitizer.None) // Default passthrough sanitizer
	}
	return &Formatter{
		sanitizer:       san,
		timestampFormat: DefaultTimestampFormat,
		buf:             make([]byte, 0, 1024),
	}
}

// TimestampFormat sets the timestamp layout
func (f *Formatter) TimestampFormat(format string) *Formatter {
	if format != "" {
		f.timestampFormat = format
	}
	return f
}

// FormatText formats a plain-text line. The text is passed through the sanitizer.
// The returned slice is reused by the next call.
func (f *Formatter) FormatText(timestamp time.Time, text string) []byte {
	f.Reset()
	f.appendPrefix(timestamp)
	f.buf = append(f.buf, f.sanitizer.Sanitize(text)...)
	f.buf = append(f.buf, '\n')
	return f.buf
}

// FormatValue formats a structured line with v rendered as compact JSON.
// On error nothing usable is returned and the caller is expected to write a fallback line.
func (f *Formatter) FormatValue(timestamp time.Time, v any) ([]byte, error) {
	f.Reset()
	f.appendPrefix(timestamp)
	buf, err := AppendJSON(f.buf, v)
	if err != nil {
		f.Reset()
		return nil, err
	}
	f.buf = append(buf, '\n')
	return f.buf, nil
}

// Reset clears the formatter buffer for reuse
func (f *Formatter) Reset() {
	f.buf = f.buf[:0]
}

func (f *Formatter) appendPrefix(timestamp time.Time) {
	f.buf = timestamp.AppendFormat(f.buf, f.timestampFormat)
	f.buf = append(f.buf, Separator...)
}
