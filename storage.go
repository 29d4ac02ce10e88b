// FILE: lixenwraith/recorder/storage.go
package recorder

import (
	"io"
	"os"
	"path/filepath"
)

// logFilePath returns the path of the active log file
func (r *Recorder) logFilePath() string {
	return filepath.Join(r.cfg.Directory, r.cfg.logFileName())
}

// openLogFile creates the log directory and opens the log file for appending.
// The handle is kept until Close; export truncates it in place.
func (r *Recorder) openLogFile() (*os.File, error) {
	if err := os.MkdirAll(r.cfg.Directory, 0755); err != nil {
		return nil, fmtErrorf("failed to create log directory '%s': %w", r.cfg.Directory, err)
	}

	path := r.logFilePath()
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmtErrorf("failed to open log file '%s': %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmtErrorf("failed to stat log file '%s': %w", path, err)
	}
	r.state.CurrentSize.Store(info.Size())

	return file, nil
}

// performSync syncs the log file to disk
func (r *Recorder) performSync() error {
	if err := r.file.Sync(); err != nil {
		r.state.TotalWriteErrors.Add(1)
		r.internalLog("failed to sync log file '%s': %v", r.file.Name(), err)
		return fmtErrorf("failed to sync log file '%s': %w", r.file.Name(), err)
	}
	return nil
}

// readSnapshot returns the full current contents of the log file without moving the write offset
func (r *Recorder) readSnapshot() ([]byte, error) {
	info, err := r.file.Stat()
	if err != nil {
		return nil, fmtErrorf("failed to stat log file '%s': %w", r.file.Name(), err)
	}

	data, err := io.ReadAll(io.NewSectionReader(r.file, 0, info.Size()))
	if err != nil {
		return nil, fmtErrorf("failed to read log file '%s': %w", r.file.Name(), err)
	}
	return data, nil
}

// truncateLogFile empties the log file, keeping the handle and path.
// Appends continue from offset zero.
func (r *Recorder) truncateLogFile() error {
	if err := r.file.Truncate(0); err != nil {
		return fmtErrorf("failed to truncate log file '%s': %w", r.file.Name(), err)
	}
	r.state.CurrentSize.Store(0)
	r.metrics.FileSize.Set(0)
	return nil
}

// closeLogFile syncs and releases the log file handle
func (r *Recorder) closeLogFile() error {
	var finalErr error
	if err := r.file.Sync(); err != nil {
		finalErr = combineErrors(finalErr, fmtErrorf("failed to sync log file '%s' during close: %w", r.file.Name(), err))
	}
	if err := r.file.Close(); err != nil {
		finalErr = combineErrors(finalErr, fmtErrorf("failed to close log file '%s': %w", r.file.Name(), err))
	}
	return finalErr
}
