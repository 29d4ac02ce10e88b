// FILE: lixenwraith/recorder/compat/structured_gnet.go
package compat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lixenwraith/recorder"
	"github.com/lixenwraith/recorder/node"
)

// keyValuePattern detects common structured patterns like "key=%v" or "key: %v"
var keyValuePattern = regexp.MustCompile(`(\w+)\s*[:=]\s*%[vsdqxXeEfFgGpbcU]`)

// field is one extracted key and its argument
type field struct {
	key   string
	value any
}

// parseFormat attempts to extract structured fields from printf-style format strings.
// A format without recognizable pairs yields a single "msg" field.
func parseFormat(format string, args []any) []field {
	matches := keyValuePattern.FindAllStringSubmatchIndex(format, -1)
	if len(matches) == 0 || len(matches) > len(args) {
		return []field{{"msg", fmt.Sprintf(format, args...)}}
	}

	fields := make([]field, 0, len(matches)+1)
	lastEnd := 0
	argIndex := 0

	for _, match := range matches {
		// Text before the first pair is the message
		if match[0] > lastEnd && len(fields) == 0 {
			if prefix := strings.TrimSpace(format[lastEnd:match[0]]); prefix != "" {
				fields = append(fields, field{"msg", prefix})
			}
		}

		key := format[match[2]:match[3]]
		if argIndex < len(args) {
			fields = append(fields, field{key, args[argIndex]})
			argIndex++
		}

		lastEnd = match[1]
	}

	// Remaining format text with its remaining args extends the message
	if lastEnd < len(format) && argIndex < len(args) {
		remaining := strings.TrimSpace(fmt.Sprintf(format[lastEnd:], args[argIndex:]...))
		if remaining != "" {
			appendMessage(&fields, remaining)
		}
	}

	return fields
}

func appendMessage(fields *[]field, text string) {
	for i := range *fields {
		if (*fields)[i].key == "msg" {
			(*fields)[i].value = fmt.Sprintf("%v %s", (*fields)[i].value, text)
			return
		}
	}
	*fields = append([]field{{"msg", text}}, *fields...)
}

// collisionPrefix is prepended to a caller field whose key is already taken, such as
// the adapter's own level and source fields
const collisionPrefix = "field_"

// newEntryObject starts a structured entry with the adapter's fixed fields
func newEntryObject(source string, level Level) *node.Object {
	return node.NewObject().
		Set("level", string(level)).
		Set("source", source)
}

// setField adds a caller field without overwriting one already present
func setField(obj *node.Object, key string, value any) {
	for {
		if _, exists := obj.Get(key); !exists {
			break
		}
		key = collisionPrefix + key
	}
	obj.Set(key, fieldValue(value))
}

// fieldValue keeps scalars as they are and renders everything else as text, so that
// errors and addresses stay readable in the entry
func fieldValue(v any) any {
	switch val := v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return val
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// StructuredGnetAdapter records gnet output as structured entries. Key-value pairs found in
// the format string become fields of the entry, where mask rules can reach them.
type StructuredGnetAdapter struct {
	*GnetAdapter
	extractFields bool
}

// NewStructuredGnetAdapter creates a gnet adapter with structured field extraction
func NewStructuredGnetAdapter(r *recorder.Recorder, opts ...GnetOption) *StructuredGnetAdapter {
	return &StructuredGnetAdapter{
		GnetAdapter:   NewGnetAdapter(r, opts...),
		extractFields: true,
	}
}

func (a *StructuredGnetAdapter) logStructured(level Level, format string, args []any) {
	obj := newEntryObject(sourceGnet, level)
	for _, f := range parseFormat(format, args) {
		setField(obj, f.key, f.value)
	}
	a.recorder.LogJSON(obj)
}

// Debugf records with structured field extraction
func (a *StructuredGnetAdapter) Debugf(format string, args ...any) {
	if a.extractFields {
		a.logStructured(LevelDebug, format, args)
	} else {
		a.GnetAdapter.Debugf(format, args...)
	}
}

// Infof records with structured field extraction
func (a *StructuredGnetAdapter) Infof(format string, args ...any) {
	if a.extractFields {
		a.logStructured(LevelInfo, format, args)
	} else {
		a.GnetAdapter.Infof(format, args...)
	}
}

// Warnf records with structured field extraction
func (a *StructuredGnetAdapter) Warnf(format string, args ...any) {
	if a.extractFields {
		a.logStructured(LevelWarn, format, args)
	} else {
		a.GnetAdapter.Warnf(format, args...)
	}
}

// Errorf records with structured field extraction
func (a *StructuredGnetAdapter) Errorf(format string, args ...any) {
	if a.extractFields {
		a.logStructured(LevelError, format, args)
	} else {
		a.GnetAdapter.Errorf(format, args...)
	}
}

// Fatalf records a structured fatal entry, flushes and triggers the fatal handler
func (a *StructuredGnetAdapter) Fatalf(format string, args ...any) {
	if !a.extractFields {
		a.GnetAdapter.Fatalf(format, args...)
		return
	}
	a.logStructured(LevelFatal, format, args)
	_ = a.recorder.Flush(fatalFlushTimeout)
	if a.fatalHandler != nil {
		a.fatalHandler(fmt.Sprintf(format, args...))
	}
}
