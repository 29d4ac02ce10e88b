// FILE: lixenwraith/recorder/constant.go
package recorder

import (
	"time"
)

// Defaults
const (
	// DefaultName is the base name of the log file
	DefaultName = "LogRecorder_Log"
	// DefaultQueueCapacity bounds the number of entries waiting for the writer
	DefaultQueueCapacity = 100
)

// Export compression values
const (
	CompressionNone = "none"
	CompressionZstd = "zstd"
)

// Timers
const (
	// Bound on waiting for the writer to exit during Close
	closeTimeout = 2 * time.Second
	// Bound on a single scheduled export
	scheduledExportTimeout = time.Minute
)

// In-band report lines, written into the log file itself
const (
	reportPrefix     = "[recorder] "
	dropReportFormat = reportPrefix + "%d entries dropped"
	exportNameLayout = "060102_150405"
)
