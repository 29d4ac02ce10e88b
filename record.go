// FILE: lixenwraith/recorder/record.go
package recorder

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lixenwraith/recorder/node"
)

// Log records a plain-text entry. It never blocks: when the queue is full the entry is dropped
// and counted. Disabled or closed recorders ignore the call.
func (r *Recorder) Log(text string) {
	if !r.accepting() {
		return
	}
	r.sendEntry(logEntry{
		kind:      kindText,
		timestamp: time.Now(),
		text:      text,
	})
}

// LogJSON records a structured entry. The value is deep-copied before LogJSON returns, so the
// caller may mutate it afterwards; redaction runs later on the copy. Accepted values are
// node.Object, node.Array, maps with string keys, slices, structs, json.RawMessage and scalars.
// A value that cannot be represented is replaced by a text line describing the failure.
func (r *Recorder) LogJSON(value any) {
	if !r.accepting() {
		return
	}
	now := time.Now()
	copied, err := node.Copy(value)
	if err != nil {
		r.sendEntry(logEntry{
			kind:      kindText,
			timestamp: now,
			text:      rejectedEntryText(err, value),
			fallback:  true,
		})
		return
	}
	r.sendEntry(logEntry{
		kind:      kindStructured,
		timestamp: now,
		value:     copied,
	})
}

// LogError records err as a single text line: its type and message, the unwrapped cause chain
// and the call stack of the caller. A nil error is ignored.
func (r *Recorder) LogError(err error) {
	r.logError(err, 1)
}

func (r *Recorder) logError(err error, skip int) {
	if err == nil || !r.accepting() {
		return
	}
	r.sendEntry(logEntry{
		kind:      kindText,
		timestamp: time.Now(),
		text:      describeError(err, captureStack(skip+1)),
	})
}

// accepting reports whether producer calls should enqueue
func (r *Recorder) accepting() bool {
	return !r.state.Disabled.Load() && !r.state.Closed.Load()
}

// sendEntry offers an entry to the queue without blocking.
// Pending drops are reported in-band ahead of the entry that follows them.
func (r *Recorder) sendEntry(entry logEntry) {
	if entry.unreportedDrops == 0 {
		if droppedCount := r.state.DroppedLogs.Swap(0); droppedCount > 0 {
			// No success check is required, count is restored if it fails
			r.sendEntry(logEntry{
				kind:            kindText,
				timestamp:       entry.timestamp,
				text:            fmt.Sprintf(dropReportFormat, droppedCount),
				unreportedDrops: droppedCount,
			})
		}
	}

	select {
	case r.queue <- entry:
		r.state.TotalEnqueued.Add(1)
		r.metrics.EntriesEnqueued.Inc()
	default:
		r.handleFailedSend(entry)
	}
}

// handleFailedSend restores or increments the drop counter
func (r *Recorder) handleFailedSend(entry logEntry) {
	// For a regular entry, add 1 to the dropped count
	// For a drop report, restore the count it carried
	if entry.unreportedDrops > 0 {
		r.state.DroppedLogs.Add(entry.unreportedDrops)
		return
	}
	r.state.DroppedLogs.Add(1)
	r.state.TotalDroppedLogs.Add(1)
	r.metrics.EntriesDropped.Inc()
}

// sendControl places a control entry on the queue and waits for the writer's answer.
// Unlike producer sends it blocks, bounded by ctx and by Close.
func (r *Recorder) sendControl(ctx context.Context, entry logEntry) controlResult {
	select {
	case r.queue <- entry:
	case <-r.done:
		return controlResult{err: ErrClosed}
	case <-ctx.Done():
		return controlResult{err: ctx.Err()}
	}

	select {
	case res := <-entry.reply:
		return res
	case <-r.exited:
		// The writer may have answered just before exiting
		select {
		case res := <-entry.reply:
			return res
		default:
			return controlResult{err: ErrClosed}
		}
	case <-ctx.Done():
		return controlResult{err: ctx.Err()}
	}
}

// internalLog writes recorder diagnostics to stderr, if enabled
func (r *Recorder) internalLog(format string, args ...any) {
	if !r.cfg.InternalErrorsToStderr {
		return
	}

	// Ensure consistent "recorder: " prefix
	if !strings.HasPrefix(format, errorPrefix) {
		format = errorPrefix + format
	}
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}

	fmt.Fprintf(os.Stderr, format, args...)
}
