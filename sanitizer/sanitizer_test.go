// FILE: lixenwraith/recorder/sanitizer/sanitizer_test.go
package sanitizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizer(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		mode     Mode
		expected string
	}{
		// None mode tests
		{
			name:     "none mode passes through",
			input:    "hello\x00world\n",
			mode:     None,
			expected: "hello\x00world\n",
		},

		// HexEncode tests
		{
			name:     "hex encode null byte",
			input:    "test\x00data",
			mode:     HexEncode,
			expected: "test<00>data",
		},
		{
			name:     "hex encode control chars",
			input:    "bell\x07tab\x09form\x0c",
			mode:     HexEncode,
			expected: "bell<07>tab<09>form<0c>",
		},
		{
			name:     "hex encode multi-byte control",
			input:    "line1\u0085line2", // NEXT LINE (C2 85)
			mode:     HexEncode,
			expected: "line1<c285>line2",
		},
		{
			name:     "hex encode preserves UTF-8",
			input:    "Hello 世界 ✓",
			mode:     HexEncode,
			expected: "Hello 世界 ✓",
		},

		// Strip tests
		{
			name:     "strip removes control chars",
			input:    "clean\x00\x07\ntxt",
			mode:     Strip,
			expected: "cleantxt",
		},
		{
			name:     "strip preserves spaces",
			input:    "hello world",
			mode:     Strip,
			expected: "hello world",
		},

		// Escape tests
		{
			name:     "escape common control chars",
			input:    "line1\nline2\ttab\rreturn",
			mode:     Escape,
			expected: "line1\\nline2\\ttab\\rreturn",
		},
		{
			name:     "escape unicode control",
			input:    "text\x01\x1f",
			mode:     Escape,
			expected: "text\\u0001\\u001f",
		},
		{
			name:     "escape backspace and form feed",
			input:    "back\bspace form\ffeed",
			mode:     Escape,
			expected: "back\\bspace form\\ffeed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(tc.mode)
			assert.Equal(t, tc.expected, s.Sanitize(tc.input))
		})
	}
}

func TestSanitizerReusesBuffer(t *testing.T) {
	s := New(HexEncode)
	first := s.Sanitize("a\x00")
	second := s.Sanitize("b\x01")

	// Earlier results must not be overwritten by buffer reuse
	assert.Equal(t, "a<00>", first)
	assert.Equal(t, "b<01>", second)
}

func TestParseMode(t *testing.T) {
	for name, want := range map[string]Mode{"raw": None, "HEX": HexEncode, " strip ": Strip, "escape": Escape} {
		got, err := ParseMode(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseMode("shell")
	assert.Error(t, err)

	assert.Equal(t, "hex", HexEncode.String())
	assert.Equal(t, "Mode(42)", Mode(42).String())
}

func BenchmarkSanitizer(b *testing.B) {
	input := strings.Repeat("normal text\x00\n\t", 100)

	benchmarks := []struct {
		name string
		mode Mode
	}{
		{"None", None},
		{"HexEncode", HexEncode},
		{"Strip", Strip},
		{"Escape", Escape},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			s := New(bm.mode)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = s.Sanitize(input)
			}
		})
	}
}
