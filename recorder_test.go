// FILE: lixenwraith/recorder/recorder_test.go
package recorder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/recorder/formatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestRecorder creates a recorder writing into a temp directory with no default exporter
func createTestRecorder(t testing.TB, modify func(*Config), opts ...Option) (*Recorder, string) {
	t.Helper()
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Directory = tmpDir
	cfg.Destination = ""
	if modify != nil {
		modify(cfg)
	}

	r, err := New(cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	return r, tmpDir
}

// readLines returns the lines of the recorder's log file
func readLines(t *testing.T, r *Recorder) []string {
	t.Helper()
	data, err := os.ReadFile(r.Path())
	require.NoError(t, err)
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// payloads returns the lines with the timestamp prefix removed
func payloads(t *testing.T, r *Recorder) []string {
	t.Helper()
	var out []string
	for _, line := range readLines(t, r) {
		_, payload, found := strings.Cut(line, formatter.Separator)
		require.True(t, found, "line without separator: %q", line)
		out = append(out, payload)
	}
	return out
}

func flush(t *testing.T, r *Recorder) {
	t.Helper()
	require.NoError(t, r.Flush(2*time.Second))
}

func TestNew(t *testing.T) {
	r, tmpDir := createTestRecorder(t, nil)

	assert.True(t, r.Enabled())
	assert.Equal(t, filepath.Join(tmpDir, "LogRecorder_Log.log"), r.Path())

	info, err := os.Stat(r.Path())
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())
}

func TestNewNilConfig(t *testing.T) {
	// Default directory is relative; run inside a temp dir
	t.Chdir(t.TempDir())

	r, err := New(nil)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, filepath.Join("logs", "LogRecorder_Log.log"), r.Path())
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Name = "a/b"

	r, err := New(cfg)
	require.Error(t, err)
	assert.Nil(t, r)
	assert.Contains(t, err.Error(), "invalid log file name")
}

func TestNewCopiesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Directory = t.TempDir()
	cfg.Destination = ""

	r, err := New(cfg)
	require.NoError(t, err)
	defer r.Close()

	cfg.Name = "changed"
	assert.Equal(t, DefaultName, r.Config().Name)

	// The returned copy is independent too
	r.Config().Name = "other"
	assert.Equal(t, DefaultName, r.Config().Name)
}

func TestNewAppendsToExistingFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "LogRecorder_Log.log")
	require.NoError(t, os.WriteFile(path, []byte("earlier\n"), 0644))

	cfg := DefaultConfig()
	cfg.Directory = tmpDir
	cfg.Destination = ""
	r, err := New(cfg)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, int64(len("earlier\n")), r.Stats().FileSize)

	r.Log("later")
	flush(t, r)

	lines := readLines(t, r)
	require.Len(t, lines, 2)
	assert.Equal(t, "earlier", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], " | later"))
}

func TestDisabledRecorder(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Directory = filepath.Join(tmpDir, "logs")
	cfg.Enabled = false

	r, err := New(cfg)
	require.NoError(t, err)

	assert.False(t, r.Enabled())

	r.Log("ignored")
	r.LogJSON(map[string]any{"k": "v"})
	r.LogError(os.ErrNotExist)

	assert.NoError(t, r.Flush(time.Second))
	_, err = r.ExportSnapshot(t.Context())
	assert.ErrorIs(t, err, ErrDisabled)

	// Rules can still be managed
	r.ClearMaskRules()
	assert.Empty(t, r.MaskRules())

	stats := r.Stats()
	assert.Zero(t, stats.Enqueued)
	assert.Zero(t, stats.QueueCapacity)

	assert.NoError(t, r.Close())
	assert.NoError(t, r.Close())

	// Nothing was created on disk
	_, err = os.Stat(cfg.Directory)
	assert.True(t, os.IsNotExist(err))
}

func TestClose(t *testing.T) {
	r, _ := createTestRecorder(t, nil)

	r.Log("before close")
	flush(t, r)
	require.NoError(t, r.Close())

	// Submissions after close are ignored without error or panic
	assert.NotPanics(t, func() {
		r.Log("after close")
		r.LogJSON(map[string]any{"k": "v"})
		r.LogError(os.ErrClosed)
	})

	assert.ErrorIs(t, r.Flush(time.Second), ErrClosed)
	_, err := r.ExportSnapshot(t.Context())
	assert.ErrorIs(t, err, ErrClosed)

	// Second close is a no-op
	assert.NoError(t, r.Close())

	assert.Equal(t, []string{"before close"}, payloads(t, r))
	assert.Equal(t, uint64(1), r.Stats().Enqueued)
}

func TestCloseDiscardsQueuedEntries(t *testing.T) {
	release := make(chan struct{})
	exporter, entered := blockingExporter(release)

	r, _ := createTestRecorder(t, nil, WithExporter(exporter))

	exportDone := make(chan error, 1)
	go func() {
		_, err := r.ExportSnapshot(t.Context())
		exportDone <- err
	}()
	<-entered

	// The writer is stalled inside the exporter; these stay queued
	for i := 0; i < 5; i++ {
		r.Log("queued")
	}

	closeDone := make(chan error, 1)
	go func() { closeDone <- r.Close() }()

	// Let Close observe the stalled writer before releasing it
	time.Sleep(50 * time.Millisecond)
	close(release)

	require.NoError(t, <-exportDone)
	require.NoError(t, <-closeDone)

	stats := r.Stats()
	assert.Equal(t, uint64(5), stats.Discarded)
	assert.Zero(t, stats.Written)
	assert.Empty(t, readLines(t, r))
}

func TestShutdown(t *testing.T) {
	r, _ := createTestRecorder(t, nil)

	for i := 0; i < 20; i++ {
		r.Log("pending")
	}
	require.NoError(t, r.Shutdown(2*time.Second))

	// Shutdown flushes before closing
	assert.Len(t, readLines(t, r), 20)
	assert.True(t, r.state.Closed.Load())

	// Shutdown after close only closes
	assert.NoError(t, r.Shutdown(time.Second))
}

func TestFlushTimeout(t *testing.T) {
	release := make(chan struct{})
	exporter, entered := blockingExporter(release)

	r, _ := createTestRecorder(t, nil, WithExporter(exporter))

	go func() { _, _ = r.ExportSnapshot(t.Context()) }()
	<-entered
	defer close(release)

	err := r.Flush(50 * time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout waiting for flush confirmation")
}

func TestStats(t *testing.T) {
	r, _ := createTestRecorder(t, func(c *Config) { c.QueueCapacity = 16 })

	r.Log("one")
	r.Log("two")
	flush(t, r)

	stats := r.Stats()
	assert.Equal(t, uint64(2), stats.Enqueued)
	assert.Equal(t, uint64(2), stats.Written)
	assert.Zero(t, stats.Dropped)
	assert.Equal(t, 16, stats.QueueCapacity)
	assert.Greater(t, stats.FileSize, int64(0))
	assert.Greater(t, stats.Uptime, time.Duration(0))

	info, err := os.Stat(r.Path())
	require.NoError(t, err)
	assert.Equal(t, info.Size(), stats.FileSize)
}
