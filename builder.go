// FILE: lixenwraith/recorder/builder.go
package recorder

import (
	"github.com/lixenwraith/recorder/export"
	"github.com/lixenwraith/recorder/mask"
	"github.com/prometheus/client_golang/prometheus"
)

// Builder provides a fluent API for building recorder configurations.
// It wraps a Config instance and the construction options; Build hands both to New.
type Builder struct {
	cfg  *Config
	opts []Option
	err  error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Recorder with the specified configuration.
func (b *Builder) Build() (*Recorder, error) {
	if b.err != nil {
		return nil, b.err
	}
	return New(b.cfg, b.opts...)
}

// Config returns a copy of the configuration built so far.
func (b *Builder) Config() *Config {
	return b.cfg.Clone()
}

// Name sets the log file base name.
func (b *Builder) Name(name string) *Builder {
	b.cfg.Name = name
	return b
}

// Extension sets the log file extension.
func (b *Builder) Extension(ext string) *Builder {
	b.cfg.Extension = ext
	return b
}

// Directory sets the directory holding the active log file.
func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

// Enabled turns recording on or off.
func (b *Builder) Enabled(enabled bool) *Builder {
	b.cfg.Enabled = enabled
	return b
}

// Destination sets the standard export location.
func (b *Builder) Destination(d export.Destination) *Builder {
	b.cfg.Destination = string(d)
	return b
}

// DestinationString sets the standard export location from a string.
func (b *Builder) DestinationString(d string) *Builder {
	if b.err != nil {
		return b
	}
	dest, err := export.ParseDestination(d)
	if err != nil {
		b.err = fmtErrorf("invalid destination: %w", err)
		return b
	}
	b.cfg.Destination = string(dest)
	return b
}

// ExportTarget sets an export URL or directory, overriding the destination.
func (b *Builder) ExportTarget(target string) *Builder {
	b.cfg.ExportTarget = target
	return b
}

// OverwriteOnExport replaces the previous export instead of adding a new object per export.
func (b *Builder) OverwriteOnExport(overwrite bool) *Builder {
	b.cfg.OverwriteOnExport = overwrite
	return b
}

// ExportCompression sets the export compression ("none" or "zstd").
func (b *Builder) ExportCompression(compression string) *Builder {
	b.cfg.ExportCompression = compression
	return b
}

// ExportSchedule sets a cron expression for periodic exports.
func (b *Builder) ExportSchedule(schedule string) *Builder {
	b.cfg.ExportSchedule = schedule
	return b
}

// QueueCapacity sets the queue capacity.
func (b *Builder) QueueCapacity(capacity int64) *Builder {
	b.cfg.QueueCapacity = capacity
	return b
}

// TimestampFormat sets the line timestamp layout.
func (b *Builder) TimestampFormat(format string) *Builder {
	b.cfg.TimestampFormat = format
	return b
}

// TextSanitization sets the sanitization mode for plain-text entries.
func (b *Builder) TextSanitization(mode string) *Builder {
	b.cfg.TextSanitization = mode
	return b
}

// MaskRulesFile loads rules from a YAML file, optionally watching it for changes.
func (b *Builder) MaskRulesFile(path string, watch bool) *Builder {
	b.cfg.MaskRulesFile = path
	b.cfg.WatchMaskRules = watch
	return b
}

// MaskRules sets the initial mask rules.
func (b *Builder) MaskRules(rules ...mask.Rule) *Builder {
	b.opts = append(b.opts, WithMaskRules(rules...))
	return b
}

// Exporter sets the exporter used by ExportSnapshot.
func (b *Builder) Exporter(e export.Exporter) *Builder {
	b.opts = append(b.opts, WithExporter(e))
	return b
}

// Registerer registers the recorder metrics.
func (b *Builder) Registerer(reg prometheus.Registerer) *Builder {
	b.opts = append(b.opts, WithRegisterer(reg))
	return b
}

// HeartbeatIntervalS sets the heartbeat interval in seconds.
func (b *Builder) HeartbeatIntervalS(interval int64) *Builder {
	b.cfg.HeartbeatIntervalS = interval
	return b
}

// InternalErrorsToStderr writes internal errors to stderr.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}
