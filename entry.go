// FILE: lixenwraith/recorder/entry.go
package recorder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// entryKind tags the variants carried by the queue
type entryKind uint8

const (
	kindText       entryKind = iota // Plain text payload
	kindStructured                  // Deep-copied JSON-like tree, redacted by the writer
	kindFlush                       // Sync marker, answered on reply
	kindExport                      // Export marker, answered on reply
)

// logEntry is the unit passed from producers to the writer
type logEntry struct {
	kind      entryKind
	timestamp time.Time
	text      string
	value     any

	// fallback marks lines written in place of a failed entry; they never trigger another fallback
	fallback bool
	// unreportedDrops is non-zero for drop reports and carries the count to restore on failure
	unreportedDrops uint64

	// Control entries only
	ctx   context.Context
	reply chan controlResult
}

// controlResult is the writer's answer to a control entry
type controlResult struct {
	name string
	err  error
}

func newControlEntry(ctx context.Context, kind entryKind) logEntry {
	return logEntry{
		kind:      kind,
		timestamp: time.Now(),
		ctx:       ctx,
		reply:     make(chan controlResult, 1),
	}
}

// isControl reports whether the entry is a flush or export marker
func (e logEntry) isControl() bool {
	return e.kind == kindFlush || e.kind == kindExport
}

// dumpConfig renders values that could not be serialized into fallback lines
var dumpConfig = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                8,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// rejectedEntryText describes a value refused at submission
func rejectedEntryText(err error, value any) string {
	return fmt.Sprintf("%sstructured entry rejected: %v (%T)", reportPrefix, err, value)
}

// serializationFallbackText describes a structured entry the writer could not serialize
func serializationFallbackText(err error, value any) string {
	return fmt.Sprintf("%sstructured entry not serializable: %v: %s", reportPrefix, err, dumpConfig.Sprintf("%v", value))
}

// maxCauseDepth bounds the unwrapped chain rendered by LogError
const maxCauseDepth = 16

// describeError renders an error as "<type>: <message>" followed by its cause chain and stack
func describeError(err error, stack []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%T: %s", err, err.Error())
	for _, cause := range errorCauses(err) {
		fmt.Fprintf(&sb, "; caused by %T: %s", cause, cause.Error())
	}
	if len(stack) > 0 {
		sb.WriteString("; stack: ")
		sb.WriteString(strings.Join(stack, " <- "))
	}
	return sb.String()
}

// errorCauses walks Unwrap in breadth-first order, following both single and joined errors
func errorCauses(err error) []error {
	var causes []error
	queue := unwrapAll(err)
	for len(queue) > 0 && len(causes) < maxCauseDepth {
		cause := queue[0]
		queue = queue[1:]
		if cause == nil {
			continue
		}
		causes = append(causes, cause)
		queue = append(queue, unwrapAll(cause)...)
	}
	return causes
}

func unwrapAll(err error) []error {
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		return u.Unwrap()
	default:
		if next := errors.Unwrap(err); next != nil {
			return []error{next}
		}
	}
	return nil
}
