// FILE: lixenwraith/recorder/formatter/json.go
package formatter

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/lixenwraith/recorder/node"
)

// ErrCycle is returned when a tree references one of its own ancestors
var ErrCycle = errors.New("formatter: value contains a reference cycle")

const hexDigits = "0123456789abcdef"

// jsonEncoder tracks the containers on the current path for cycle detection.
// Containers shared between branches are allowed and encoded once per reference.
type jsonEncoder struct {
	active map[any]struct{}
}

// AppendJSON appends the compact JSON text of a node tree to buf.
// Object keys keep their insertion order.
func AppendJSON(buf []byte, v any) ([]byte, error) {
	e := &jsonEncoder{active: make(map[any]struct{})}
	return e.append(buf, v)
}

// Marshal returns the compact JSON text of a node tree
func Marshal(v any) ([]byte, error) {
	return AppendJSON(nil, v)
}

func (e *jsonEncoder) append(buf []byte, v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return append(buf, "null"...), nil
	case string:
		return AppendString(buf, val), nil
	case bool:
		return strconv.AppendBool(buf, val), nil
	case json.Number:
		if val == "" || !json.Valid([]byte(val)) {
			return buf, fmt.Errorf("formatter: invalid number %q", string(val))
		}
		return append(buf, val...), nil
	case *node.Object:
		if val == nil {
			return append(buf, "null"...), nil
		}
		if _, ok := e.active[val]; ok {
			return buf, ErrCycle
		}
		e.active[val] = struct{}{}
		defer delete(e.active, val)

		buf = append(buf, '{')
		for i, k := range val.Keys() {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = AppendString(buf, k)
			buf = append(buf, ':')
			child, _ := val.Get(k)
			var err error
			if buf, err = e.append(buf, child); err != nil {
				return buf, err
			}
		}
		return append(buf, '}'), nil
	case *node.Array:
		if val == nil {
			return append(buf, "null"...), nil
		}
		if _, ok := e.active[val]; ok {
			return buf, ErrCycle
		}
		e.active[val] = struct{}{}
		defer delete(e.active, val)

		buf = append(buf, '[')
		for i := 0; i < val.Len(); i++ {
			if i > 0 {
				buf = append(buf, ',')
			}
			var err error
			if buf, err = e.append(buf, val.Get(i)); err != nil {
				return buf, err
			}
		}
		return append(buf, ']'), nil
	}
	return buf, fmt.Errorf("formatter: unsupported value of type %T", v)
}

// AppendString appends s as a quoted JSON string.
// Invalid UTF-8 is replaced with U+FFFD.
func AppendString(buf []byte, s string) []byte {
	buf = append(buf, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= ' ' && c != '"' && c != '\\' && c < utf8.RuneSelf {
			start := i
			for i < len(s) && s[i] >= ' ' && s[i] != '"' && s[i] != '\\' && s[i] < utf8.RuneSelf {
				i++
			}
			buf = append(buf, s[start:i]...)
			continue
		}
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				buf = append(buf, "\ufffd"...)
			} else {
				buf = append(buf, s[i:i+size]...)
			}
			i += size
			continue
		}
		switch c {
		case '\\', '"':
			buf = append(buf, '\\', c)
		case '\n':
			buf = append(buf, '\\', 'n')
		case '\r':
			buf = append(buf, '\\', 'r')
		case '\t':
			buf = append(buf, '\\', 't')
		case '\b':
			buf = append(buf, '\\', 'b')
		case '\f':
			buf = append(buf, '\\', 'f')
		default:
			buf = append(buf, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		}
		i++
	}
	return append(buf, '"')
}
