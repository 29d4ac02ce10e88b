// FILE: lixenwraith/recorder/heartbeat.go
package recorder

import (
	"fmt"
	"time"
)

// handleHeartbeat writes a statistics line into the log file
func (r *Recorder) handleHeartbeat() {
	sequence := r.state.HeartbeatSequence.Add(1)
	stats := r.Stats()

	text := fmt.Sprintf("%sheartbeat seq=%d uptime_s=%.0f written=%d dropped=%d fallbacks=%d write_errors=%d exports=%d export_failures=%d queue=%d/%d file_size=%d",
		reportPrefix,
		sequence,
		stats.Uptime.Seconds(),
		stats.Written,
		stats.Dropped,
		stats.Fallbacks,
		stats.WriteErrors,
		stats.Exports,
		stats.ExportFailures,
		stats.QueueLength,
		stats.QueueCapacity,
		stats.FileSize,
	)

	r.writeHeartbeat(time.Now(), text)
}

// writeHeartbeat writes directly from the writer goroutine, bypassing the queue and the entry counters
func (r *Recorder) writeHeartbeat(now time.Time, text string) {
	line := r.formatter.FormatText(now, text)
	n, err := r.file.Write(line)
	r.state.CurrentSize.Add(int64(n))
	r.metrics.FileSize.Set(float64(r.state.CurrentSize.Load()))
	if err != nil {
		r.state.TotalWriteErrors.Add(1)
		r.metrics.WriteErrors.Inc()
		r.internalLog("failed to write heartbeat: %v", err)
	}
}
