// FILE: lixenwraith/recorder/metrics.go
package recorder

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus metrics of a recorder
type Metrics struct {
	EntriesEnqueued  prometheus.Counter
	EntriesWritten   prometheus.Counter
	EntriesDropped   prometheus.Counter
	EntriesDiscarded prometheus.Counter
	Fallbacks        prometheus.Counter
	WriteErrors      prometheus.Counter
	Exports          *prometheus.CounterVec
	FileSize         prometheus.Gauge
	QueueLength      prometheus.Gauge
}

// NewMetrics creates the recorder metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EntriesEnqueued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recorder_entries_enqueued_total",
			Help: "Total entries accepted by the queue",
		}),
		EntriesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recorder_entries_written_total",
			Help: "Total entry lines written to the log file",
		}),
		EntriesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recorder_entries_dropped_total",
			Help: "Total entries dropped because the queue was full",
		}),
		EntriesDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recorder_entries_discarded_total",
			Help: "Total entries discarded from the queue on close",
		}),
		Fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recorder_fallbacks_total",
			Help: "Total fallback lines written in place of a failed entry",
		}),
		WriteErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recorder_write_errors_total",
			Help: "Total failed writes or syncs of the log file",
		}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recorder_exports_total",
			Help: "Total export attempts by result",
		}, []string{"result"}),
		FileSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "recorder_file_size_bytes",
			Help: "Current size of the active log file",
		}),
		QueueLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "recorder_queue_length",
			Help: "Queue occupancy observed by the writer",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.EntriesEnqueued,
			m.EntriesWritten,
			m.EntriesDropped,
			m.EntriesDiscarded,
			m.Fallbacks,
			m.WriteErrors,
			m.Exports,
			m.FileSize,
			m.QueueLength,
		)
	}
	return m
}
