// FILE: lixenwraith/recorder/export.go
package recorder

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lixenwraith/recorder/export"
)

// ExportSnapshot hands the current log file contents to the exporter and, once the exporter
// reports success, truncates the file so the next entry starts a fresh window.
// On failure the file is left untouched and the error is returned. The snapshot includes every
// entry enqueued before the call. It returns the name the contents were stored under, which
// carries the ".zst" suffix when export compression is on.
func (r *Recorder) ExportSnapshot(ctx context.Context) (string, error) {
	if r.state.Disabled.Load() {
		return "", ErrDisabled
	}
	if r.state.Closed.Load() {
		return "", ErrClosed
	}
	if r.exporter == nil {
		return "", ErrNoExporter
	}

	res := r.sendControl(ctx, newControlEntry(ctx, kindExport))
	return res.name, res.err
}

// performExport runs on the writer goroutine so no entry is written between read and truncation
func (r *Recorder) performExport(ctx context.Context) (string, error) {
	name, err := r.exportLogFile(ctx)
	if err != nil {
		r.state.TotalExportFailures.Add(1)
		r.metrics.Exports.WithLabelValues("failure").Inc()
		r.internalLog("export failed: %v", err)
		return name, err
	}
	r.state.TotalExports.Add(1)
	r.metrics.Exports.WithLabelValues("success").Inc()
	return name, nil
}

func (r *Recorder) exportLogFile(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := r.readSnapshot()
	if err != nil {
		return "", err
	}

	name := r.exportName(time.Now())
	if r.cfg.OverwriteOnExport {
		if err := r.exporter.Remove(ctx, name); err != nil {
			return name, fmtErrorf("failed to remove previous export '%s': %w", name, err)
		}
	}

	if err := r.exporter.Write(ctx, name, bytes.NewReader(data), int64(len(data))); err != nil {
		return name, fmtErrorf("failed to export '%s': %w", name, err)
	}

	stored := export.StoredName(r.exporter, name)

	// Delivered; a truncation failure leaves duplicates for the next export, never loss
	if err := r.truncateLogFile(); err != nil {
		return stored, err
	}
	return stored, nil
}

// exportName returns the fixed log file name when overwriting, or a unique timestamped name otherwise
func (r *Recorder) exportName(now time.Time) string {
	if r.cfg.OverwriteOnExport {
		return r.cfg.logFileName()
	}

	id := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	name := r.cfg.Name + "_" + now.Format(exportNameLayout) + "_" + id
	if r.cfg.Extension != "" {
		name += "." + r.cfg.Extension
	}
	return name
}

// resolveExporter builds the exporter from configuration: export_target wins over destination,
// and an empty destination means no exporter
func resolveExporter(ctx context.Context, cfg *Config) (export.Exporter, error) {
	var exporter export.Exporter
	switch {
	case cfg.ExportTarget != "":
		e, err := export.NewFromURL(ctx, cfg.ExportTarget)
		if err != nil {
			return nil, fmtErrorf("invalid export_target: %w", err)
		}
		exporter = e

	case cfg.Destination != "":
		d, err := export.ParseDestination(cfg.Destination)
		if err != nil {
			return nil, fmtErrorf("invalid destination: %w", err)
		}
		dir, err := export.NewDestination(d)
		if err != nil {
			return nil, fmtErrorf("failed to resolve destination '%s': %w", d, err)
		}
		exporter = dir

	default:
		return nil, nil
	}

	return wrapExporter(cfg, exporter), nil
}

// wrapExporter applies export compression
func wrapExporter(cfg *Config, exporter export.Exporter) export.Exporter {
	if exporter != nil && cfg.ExportCompression == CompressionZstd {
		return export.NewCompressed(exporter)
	}
	return exporter
}
