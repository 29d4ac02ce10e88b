// FILE: lixenwraith/recorder/state.go
package recorder

import (
	"sync/atomic"
	"time"
)

// State encapsulates the runtime state of the recorder
type State struct {
	Disabled atomic.Bool // Fixed at construction from Config.Enabled
	Closed   atomic.Bool

	CurrentSize atomic.Int64  // Size of the active log file
	DroppedLogs atomic.Uint64 // Drops not yet reported in-band

	// Statistics
	StartTime           atomic.Value  // stores time.Time for uptime calculation
	HeartbeatSequence   atomic.Uint64 // Counter for heartbeat sequence numbers
	TotalEnqueued       atomic.Uint64 // Entries accepted by the queue
	TotalDroppedLogs    atomic.Uint64 // Entries rejected by a full queue
	TotalLogsProcessed  atomic.Uint64 // Entry lines written, heartbeats excluded
	TotalFallbacks      atomic.Uint64 // Fallback lines written in place of an entry
	TotalWriteErrors    atomic.Uint64 // Failed writes to the log file
	TotalDiscarded      atomic.Uint64 // Entries still queued when the recorder closed
	TotalExports        atomic.Uint64 // Successful exports
	TotalExportFailures atomic.Uint64 // Failed exports
}

// Stats is a point-in-time copy of the recorder counters
type Stats struct {
	Uptime         time.Duration
	QueueLength    int
	QueueCapacity  int
	FileSize       int64
	Enqueued       uint64
	Written        uint64
	Dropped        uint64
	PendingDrops   uint64
	Fallbacks      uint64
	WriteErrors    uint64
	Discarded      uint64
	Exports        uint64
	ExportFailures uint64
}

// Stats returns the current counters. A disabled recorder reports zeros.
func (r *Recorder) Stats() Stats {
	s := Stats{
		QueueLength:    len(r.queue),
		QueueCapacity:  cap(r.queue),
		FileSize:       r.state.CurrentSize.Load(),
		Enqueued:       r.state.TotalEnqueued.Load(),
		Written:        r.state.TotalLogsProcessed.Load(),
		Dropped:        r.state.TotalDroppedLogs.Load(),
		PendingDrops:   r.state.DroppedLogs.Load(),
		Fallbacks:      r.state.TotalFallbacks.Load(),
		WriteErrors:    r.state.TotalWriteErrors.Load(),
		Discarded:      r.state.TotalDiscarded.Load(),
		Exports:        r.state.TotalExports.Load(),
		ExportFailures: r.state.TotalExportFailures.Load(),
	}
	if startTime, ok := r.state.StartTime.Load().(time.Time); ok && !startTime.IsZero() {
		s.Uptime = time.Since(startTime)
	}
	return s
}
