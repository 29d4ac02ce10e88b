// FILE: lixenwraith/recorder/recorder.go
// Package recorder appends plain-text and structured entries to a log file from a single
// background writer. Producers never block: entries travel through a bounded queue and are
// dropped, and counted, when it is full. Structured entries are deep-copied at submission and
// redacted by an ordered set of mask rules before being written as compact JSON.
// The accumulated file can be handed to an exporter, which truncates it on success.
package recorder

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/lixenwraith/recorder/export"
	"github.com/lixenwraith/recorder/formatter"
	"github.com/lixenwraith/recorder/mask"
	"github.com/lixenwraith/recorder/sanitizer"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder is an asynchronous, append-only log file writer
type Recorder struct {
	cfg   *Config
	state State

	queue  chan logEntry
	done   chan struct{} // closed by Close to stop the writer
	exited chan struct{} // closed by the writer on exit

	// Owned by the writer goroutine after New returns
	file      *os.File
	formatter *formatter.Formatter

	rules       *mask.Set
	optionRules []mask.Rule // kept ahead of file rules across reloads
	exporter    export.Exporter
	metrics     *Metrics
	scheduler   *exportScheduler

	watchCancel context.CancelFunc
	watchDone   chan struct{}

	closeMu sync.Mutex
}

// Option customizes a Recorder beyond what Config expresses
type Option func(*options)

type options struct {
	exporter   export.Exporter
	registerer prometheus.Registerer
	rules      []mask.Rule
}

// WithExporter sets the exporter used by ExportSnapshot, replacing the one built from
// destination and export_target. Export compression still applies.
func WithExporter(e export.Exporter) Option {
	return func(o *options) {
		o.exporter = e
	}
}

// WithRegisterer registers the recorder metrics with reg
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithMaskRules sets the initial mask rules, evaluated before any rules from mask_rules_file
func WithMaskRules(rules ...mask.Rule) Option {
	return func(o *options) {
		o.rules = append(o.rules, rules...)
	}
}

// New validates cfg, opens the log file and starts the writer.
// A nil cfg uses the defaults. A disabled configuration opens nothing; every submission is a no-op.
func New(cfg *Config, opts ...Option) (*Recorder, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.Clone()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	rules, err := loadMaskRules(cfg, o.rules)
	if err != nil {
		return nil, err
	}

	r := &Recorder{
		cfg:         cfg,
		rules:       rules,
		optionRules: o.rules,
		metrics:     NewMetrics(o.registerer),
	}
	r.state.StartTime.Store(time.Now())

	if !cfg.Enabled {
		r.state.Disabled.Store(true)
		return r, nil
	}

	if o.exporter != nil {
		r.exporter = wrapExporter(cfg, o.exporter)
	} else {
		exporter, err := resolveExporter(context.Background(), cfg)
		if err != nil {
			return nil, err
		}
		r.exporter = exporter
	}

	mode, err := sanitizer.ParseMode(cfg.TextSanitization)
	if err != nil {
		return nil, fmtErrorf("invalid text_sanitization: %w", err)
	}
	r.formatter = formatter.New(sanitizer.New(mode)).TimestampFormat(cfg.TimestampFormat)

	file, err := r.openLogFile()
	if err != nil {
		return nil, err
	}
	r.file = file
	r.metrics.FileSize.Set(float64(r.state.CurrentSize.Load()))

	r.queue = make(chan logEntry, cfg.QueueCapacity)
	r.done = make(chan struct{})
	r.exited = make(chan struct{})
	go r.processEntries()

	if cfg.WatchMaskRules {
		r.startRuleWatch()
	}

	if cfg.ExportSchedule != "" {
		r.scheduler = newExportScheduler(r, cfg.ExportSchedule)
		if err := r.scheduler.start(); err != nil {
			_ = r.Close()
			return nil, err
		}
	}

	return r, nil
}

// Config returns a copy of the configuration the recorder was built with
func (r *Recorder) Config() *Config {
	return r.cfg.Clone()
}

// Enabled reports whether the recorder writes entries
func (r *Recorder) Enabled() bool {
	return !r.state.Disabled.Load()
}

// Path returns the path of the active log file
func (r *Recorder) Path() string {
	return r.logFilePath()
}

// Metrics returns the recorder metrics
func (r *Recorder) Metrics() *Metrics {
	return r.metrics
}

// NextExport returns the time of the next scheduled export, if a schedule is configured
func (r *Recorder) NextExport() (time.Time, bool) {
	if r.scheduler == nil {
		return time.Time{}, false
	}
	return r.scheduler.nextRun()
}

// Flush waits until every entry enqueued before the call is written and the file is synced
func (r *Recorder) Flush(timeout time.Duration) error {
	if r.state.Disabled.Load() {
		return nil
	}
	if r.state.Closed.Load() {
		return ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	res := r.sendControl(ctx, newControlEntry(ctx, kindFlush))
	if errors.Is(res.err, context.DeadlineExceeded) {
		return fmtErrorf("timeout waiting for flush confirmation (%v)", timeout)
	}
	return res.err
}

// Close stops the writer, discarding entries still queued, then syncs and releases the file.
// Later submissions are ignored. Calling Close again is a no-op.
func (r *Recorder) Close() error {
	r.closeMu.Lock()
	defer r.closeMu.Unlock()

	if !r.state.Closed.CompareAndSwap(false, true) {
		return nil
	}
	if r.state.Disabled.Load() {
		return nil
	}

	var finalErr error

	close(r.done)
	select {
	case <-r.exited:
	case <-time.After(closeTimeout):
		finalErr = fmtErrorf("writer did not exit within timeout (%v)", closeTimeout)
	}

	if r.scheduler != nil && !r.scheduler.stop(closeTimeout) {
		finalErr = combineErrors(finalErr, fmtErrorf("scheduled export did not finish within timeout (%v)", closeTimeout))
	}
	r.stopRuleWatch()

	finalErr = combineErrors(finalErr, r.closeLogFile())
	return finalErr
}

// Shutdown flushes pending entries, bounded by timeout, then closes the recorder
func (r *Recorder) Shutdown(timeout time.Duration) error {
	var finalErr error
	if !r.state.Closed.Load() {
		finalErr = r.Flush(timeout)
	}
	return combineErrors(finalErr, r.Close())
}
