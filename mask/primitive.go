// FILE: lixenwraith/recorder/mask/primitive.go
package mask

import (
	"strings"
)

// DefaultSymbol is the replacement character used when a rule does not specify one
const DefaultSymbol = '*'

// Mask replaces length characters starting at start with symbol.
// start is clamped to the input, so a short input still has its last character masked,
// and length is raised to at least 1. The result always has the same number of characters as the input.
func Mask(input string, start, length int, symbol rune) string {
	if input == "" {
		return input
	}
	runes := []rune(input)
	if start < 0 {
		start = 0
	}
	if length < 1 {
		length = 1
	}
	start = min(start, len(runes)-1)
	end := start + length
	if end > len(runes) || end < start { // overflow guard
		end = len(runes)
	}
	for i := start; i < end; i++ {
		runes[i] = symbol
	}
	return string(runes)
}

// MaskMiddle keeps keepStart leading and keepEnd trailing characters and masks the span between them.
// Inputs not longer than keepStart+keepEnd are returned unchanged.
func MaskMiddle(input string, keepStart, keepEnd int, symbol rune) string {
	if keepStart < 0 {
		keepStart = 0
	}
	if keepEnd < 0 {
		keepEnd = 0
	}
	runes := []rune(input)
	if len(runes) <= keepStart+keepEnd {
		return input
	}

	var sb strings.Builder
	sb.Grow(len(input))
	sb.WriteString(string(runes[:keepStart]))
	for i := keepStart; i < len(runes)-keepEnd; i++ {
		sb.WriteRune(symbol)
	}
	sb.WriteString(string(runes[len(runes)-keepEnd:]))
	return sb.String()
}

// MaskAll replaces every character of input with symbol
func MaskAll(input string, symbol rune) string {
	n := len([]rune(input))
	if n == 0 {
		return input
	}
	return strings.Repeat(string(symbol), n)
}

// MaskEmail masks the local part of an address, keeping its first and last character.
// Addresses without '@' are returned unchanged, the domain is never touched.
func MaskEmail(address string, symbol rune) string {
	at := strings.IndexByte(address, '@')
	if at < 0 {
		return address
	}
	local, domain := address[:at], address[at:]
	return MaskMiddle(local, 1, 1, symbol) + domain
}

// MaskUserIdentity masks five characters of an identity number starting at the fourth
func MaskUserIdentity(id string, symbol rune) string {
	return Mask(id, 3, 5, symbol)
}

// MaskLandlineNumber keeps the area code before the first '-' and masks the first four digits after it.
// Without a hyphen the first four characters are masked.
func MaskLandlineNumber(number string, symbol rune) string {
	hyphen := strings.IndexByte(number, '-')
	if hyphen < 0 {
		return Mask(number, 0, 4, symbol)
	}
	prefix, rest := number[:hyphen+1], number[hyphen+1:]
	return prefix + Mask(rest, 0, 4, symbol)
}

// MaskMobilePhoneNumber masks four digits after the three digit carrier prefix
func MaskMobilePhoneNumber(number string, symbol rune) string {
	return Mask(number, 3, 4, symbol)
}
