// FILE: lixenwraith/recorder/sanitizer/sanitizer.go
// Package sanitizer neutralizes non-printable characters in plain-text log payloads
// so a single entry cannot forge extra lines or inject terminal control sequences.
package sanitizer

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Mode selects how non-printable characters are handled
type Mode int

const (
	None      Mode = iota // Passthrough, text is written as given
	HexEncode             // Non-printable runes become "<xx>" with their UTF-8 bytes in hex
	Strip                 // Non-printable runes are removed
	Escape                // Control runes become JSON-style escapes ("\n", "\u0001")
)

// modeNames maps configuration values to modes
var modeNames = map[string]Mode{
	"raw":    None,
	"hex":    HexEncode,
	"strip":  Strip,
	"escape": Escape,
}

// ParseMode converts a configuration value (raw, hex, strip, escape) to a Mode
func ParseMode(name string) (Mode, error) {
	m, ok := modeNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return None, fmt.Errorf("sanitizer: unknown mode %q (use raw, hex, strip, or escape)", name)
	}
	return m, nil
}

// String returns the configuration name of the mode
func (m Mode) String() string {
	for name, mode := range modeNames {
		if mode == m {
			return name
		}
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Sanitizer applies a single mode to text; it is not safe for concurrent use
type Sanitizer struct {
	mode Mode
	buf  []byte
}

// New creates a sanitizer for mode
func New(mode Mode) *Sanitizer {
	return &Sanitizer{
		mode: mode,
		buf:  make([]byte, 0, 256),
	}
}

// Mode returns the configured mode
func (s *Sanitizer) Mode() Mode {
	return s.mode
}

// Sanitize returns data with non-printable characters handled according to the mode
func (s *Sanitizer) Sanitize(data string) string {
	if s.mode == None || isClean(data) {
		return data
	}

	s.buf = s.buf[:0]
	for _, r := range data {
		if strconv.IsPrint(r) {
			s.buf = utf8.AppendRune(s.buf, r)
			continue
		}
		switch s.mode {
		case Strip:
			// dropped
		case HexEncode:
			var runeBytes [utf8.UTFMax]byte
			n := utf8.EncodeRune(runeBytes[:], r)
			s.buf = append(s.buf, '<')
			s.buf = hex.AppendEncode(s.buf, runeBytes[:n])
			s.buf = append(s.buf, '>')
		case Escape:
			s.buf = appendEscaped(s.buf, r)
		}
	}
	return string(s.buf)
}

// isClean reports whether every rune is printable
func isClean(data string) bool {
	for _, r := range data {
		if !strconv.IsPrint(r) {
			return false
		}
	}
	return true
}

func appendEscaped(buf []byte, r rune) []byte {
	switch r {
	case '\n':
		return append(buf, '\\', 'n')
	case '\r':
		return append(buf, '\\', 'r')
	case '\t':
		return append(buf, '\\', 't')
	case '\b':
		return append(buf, '\\', 'b')
	case '\f':
		return append(buf, '\\', 'f')
	}
	if r < 0x10000 {
		return fmt.Appendf(buf, "\\u%04x", r)
	}
	return fmt.Appendf(buf, "\\U%08x", r)
}
