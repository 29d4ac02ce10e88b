// FILE: lixenwraith/recorder/processor.go
package recorder

import (
	"github.com/lixenwraith/recorder/redact"
)

// processEntries is the writer loop running in its own goroutine.
// It is the only code that touches the log file after New returns.
func (r *Recorder) processEntries() {
	defer close(r.exited)

	timers := r.setupProcessingTimers()
	defer r.closeProcessingTimers(timers)

	for {
		// Close takes priority over anything still queued
		select {
		case <-r.done:
			r.discardQueued()
			return
		default:
		}

		select {
		case <-r.done:
			r.discardQueued()
			return

		case entry := <-r.queue:
			r.metrics.QueueLength.Set(float64(len(r.queue)))
			r.processEntry(entry)

		case <-timers.heartbeatChan:
			r.handleHeartbeat()
		}
	}
}

// processEntry serializes one entry and writes it, or answers a control entry
func (r *Recorder) processEntry(entry logEntry) {
	switch entry.kind {
	case kindText:
		r.writeEntry(entry, r.formatter.FormatText(entry.timestamp, entry.text))

	case kindStructured:
		// Rules are snapshotted per entry; a change applies from the next entry
		value := redact.Redact(entry.value, r.rules.Snapshot())
		line, err := r.formatter.FormatValue(entry.timestamp, value)
		if err != nil {
			r.internalLog("failed to serialize structured entry: %v", err)
			r.writeEntry(logEntry{
				kind:      kindText,
				timestamp: entry.timestamp,
				fallback:  true,
			}, r.formatter.FormatText(entry.timestamp, serializationFallbackText(err, value)))
			return
		}
		r.writeEntry(entry, line)

	case kindFlush:
		entry.reply <- controlResult{err: r.performSync()}

	case kindExport:
		name, err := r.performExport(entry.ctx)
		entry.reply <- controlResult{name: name, err: err}
	}
}

// writeEntry appends one formatted line with a single write.
// A failed write is counted and followed by one best-effort fallback line.
func (r *Recorder) writeEntry(entry logEntry, line []byte) {
	n, err := r.file.Write(line)
	r.state.CurrentSize.Add(int64(n))
	r.metrics.FileSize.Set(float64(r.state.CurrentSize.Load()))

	if err != nil {
		r.state.TotalWriteErrors.Add(1)
		r.metrics.WriteErrors.Inc()
		r.internalLog("failed to write to log file '%s': %v", r.file.Name(), err)
		if !entry.fallback {
			r.writeEntry(logEntry{
				kind:      kindText,
				timestamp: entry.timestamp,
				fallback:  true,
			}, r.formatter.FormatText(entry.timestamp, reportPrefix+"write failed: "+err.Error()))
		}
		return
	}

	if entry.fallback {
		r.state.TotalFallbacks.Add(1)
		r.metrics.Fallbacks.Inc()
	}
	r.state.TotalLogsProcessed.Add(1)
	r.metrics.EntriesWritten.Inc()
}

// discardQueued empties the queue on Close. Control entries are answered with ErrClosed.
func (r *Recorder) discardQueued() {
	for {
		select {
		case entry := <-r.queue:
			if entry.isControl() {
				entry.reply <- controlResult{err: ErrClosed}
				continue
			}
			r.state.TotalDiscarded.Add(1)
			r.metrics.EntriesDiscarded.Inc()
		default:
			r.metrics.QueueLength.Set(0)
			return
		}
	}
}
