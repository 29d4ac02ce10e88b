// FILE: lixenwraith/recorder/export_test.go
package recorder

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/lixenwraith/recorder/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingExporter stalls Write until release is closed; entered fires on the first call
func blockingExporter(release <-chan struct{}) (export.Exporter, <-chan struct{}) {
	entered := make(chan struct{}, 1)
	return export.Func{
		WriteFunc: func(_ context.Context, _ string, r io.Reader, _ int64) error {
			select {
			case entered <- struct{}{}:
			default:
			}
			<-release
			_, err := io.Copy(io.Discard, r)
			return err
		},
	}, entered
}

// captureExporter records every call made by the recorder
type captureExporter struct {
	mu       sync.Mutex
	calls    []string
	contents map[string]string
	sizes    map[string]int64
	writeErr error
	rmErr    error
}

func newCaptureExporter() *captureExporter {
	return &captureExporter{contents: make(map[string]string), sizes: make(map[string]int64)}
}

func (c *captureExporter) Remove(_ context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "remove "+name)
	return c.rmErr
}

func (c *captureExporter) Write(_ context.Context, name string, r io.Reader, size int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "write "+name)
	if c.writeErr != nil {
		return c.writeErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	c.contents[name] = string(data)
	c.sizes[name] = size
	return nil
}

func (c *captureExporter) snapshot() ([]string, map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	contents := make(map[string]string, len(c.contents))
	for k, v := range c.contents {
		contents[k] = v
	}
	return append([]string(nil), c.calls...), contents
}

func TestExportSnapshotTruncates(t *testing.T) {
	exporter := newCaptureExporter()
	r, _ := createTestRecorder(t, nil, WithExporter(exporter))

	r.Log("first")
	r.Log("second")

	// No flush needed: the export is ordered after both entries
	name, err := r.ExportSnapshot(t.Context())
	require.NoError(t, err)

	_, contents := exporter.snapshot()
	exported := contents[name]
	lines := strings.Split(strings.TrimSuffix(exported, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], " | first"))
	assert.True(t, strings.HasSuffix(lines[1], " | second"))
	assert.Equal(t, int64(len(exported)), exporter.sizes[name])

	// The file starts a fresh window
	info, err := os.Stat(r.Path())
	require.NoError(t, err)
	assert.Zero(t, info.Size())
	assert.Zero(t, r.Stats().FileSize)

	r.Log("third")
	flush(t, r)

	data, err := os.ReadFile(r.Path())
	require.NoError(t, err)
	assert.Equal(t, []string{"third"}, payloads(t, r))
	assert.Equal(t, r.Stats().FileSize, int64(len(data)))

	stats := r.Stats()
	assert.Equal(t, uint64(1), stats.Exports)
	assert.Zero(t, stats.ExportFailures)
}

func TestExportSnapshotFailureKeepsFile(t *testing.T) {
	exporter := newCaptureExporter()
	exporter.writeErr = errors.New("permission denied")
	r, _ := createTestRecorder(t, nil, WithExporter(exporter))

	r.Log("keep me")
	_, err := r.ExportSnapshot(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")

	assert.Equal(t, []string{"keep me"}, payloads(t, r))
	assert.Equal(t, uint64(1), r.Stats().ExportFailures)

	// A retry succeeds with the same contents
	exporter.mu.Lock()
	exporter.writeErr = nil
	exporter.mu.Unlock()

	name, err := r.ExportSnapshot(t.Context())
	require.NoError(t, err)
	_, contents := exporter.snapshot()
	assert.Contains(t, contents[name], " | keep me\n")
}

func TestExportSnapshotOverwrite(t *testing.T) {
	exporter := newCaptureExporter()
	r, _ := createTestRecorder(t, func(c *Config) { c.OverwriteOnExport = true }, WithExporter(exporter))

	r.Log("a")
	name1, err := r.ExportSnapshot(t.Context())
	require.NoError(t, err)
	r.Log("b")
	name2, err := r.ExportSnapshot(t.Context())
	require.NoError(t, err)

	assert.Equal(t, "LogRecorder_Log.log", name1)
	assert.Equal(t, name1, name2)

	calls, contents := exporter.snapshot()
	assert.Equal(t, []string{
		"remove LogRecorder_Log.log",
		"write LogRecorder_Log.log",
		"remove LogRecorder_Log.log",
		"write LogRecorder_Log.log",
	}, calls)
	assert.True(t, strings.HasSuffix(contents[name2], " | b\n"))
}

func TestExportSnapshotRemoveFailure(t *testing.T) {
	exporter := newCaptureExporter()
	exporter.rmErr = errors.New("locked")
	r, _ := createTestRecorder(t, func(c *Config) { c.OverwriteOnExport = true }, WithExporter(exporter))

	r.Log("x")
	_, err := r.ExportSnapshot(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to remove previous export")

	calls, _ := exporter.snapshot()
	assert.Equal(t, []string{"remove LogRecorder_Log.log"}, calls)
	assert.Equal(t, []string{"x"}, payloads(t, r))
}

func TestExportSnapshotUniqueNames(t *testing.T) {
	exporter := newCaptureExporter()
	r, _ := createTestRecorder(t, nil, WithExporter(exporter))

	pattern := regexp.MustCompile(`^LogRecorder_Log_\d{6}_\d{6}_[0-9a-f]{8}\.log$`)

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		r.Log("entry")
		name, err := r.ExportSnapshot(t.Context())
		require.NoError(t, err)
		assert.Regexp(t, pattern, name)
		assert.False(t, seen[name], "duplicate export name %s", name)
		seen[name] = true
	}

	// No removal without overwrite
	calls, _ := exporter.snapshot()
	for _, call := range calls {
		assert.True(t, strings.HasPrefix(call, "write "), call)
	}
}

func TestExportSnapshotCancelled(t *testing.T) {
	exporter := newCaptureExporter()
	r, _ := createTestRecorder(t, nil, WithExporter(exporter))

	r.Log("x")
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := r.ExportSnapshot(ctx)
	require.ErrorIs(t, err, context.Canceled)

	flush(t, r)
	assert.Equal(t, []string{"x"}, payloads(t, r))
}

func TestExportSnapshotNoExporter(t *testing.T) {
	r, _ := createTestRecorder(t, nil)

	_, err := r.ExportSnapshot(t.Context())
	assert.ErrorIs(t, err, ErrNoExporter)
}

func TestExportToDirectoryTarget(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "exports")
	r, _ := createTestRecorder(t, func(c *Config) {
		c.ExportTarget = outDir
		c.OverwriteOnExport = true
	})

	r.Log("to disk")
	name, err := r.ExportSnapshot(t.Context())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, name))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), " | to disk\n"))
}

func TestExportToDestination(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	r, _ := createTestRecorder(t, func(c *Config) {
		c.Destination = "downloads"
		c.OverwriteOnExport = true
	})

	r.Log("downloaded")
	name, err := r.ExportSnapshot(t.Context())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(home, "Downloads", name))
	require.NoError(t, err)
	assert.Contains(t, string(data), " | downloaded\n")
}

func TestExportCompressed(t *testing.T) {
	exporter := newCaptureExporter()
	r, _ := createTestRecorder(t, func(c *Config) {
		c.ExportCompression = CompressionZstd
		c.OverwriteOnExport = true
	}, WithExporter(exporter))

	r.Log("compressed entry")
	name, err := r.ExportSnapshot(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "LogRecorder_Log.log.zst", name, "returned name matches the stored object")

	calls, contents := exporter.snapshot()
	assert.Equal(t, []string{"remove LogRecorder_Log.log.zst", "write LogRecorder_Log.log.zst"}, calls)
	assert.Contains(t, contents, name)

	dec, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer dec.Close()
	plain, err := dec.DecodeAll([]byte(contents["LogRecorder_Log.log.zst"]), nil)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(plain), " | compressed entry\n"))
}

func TestExportDuringWrites(t *testing.T) {
	exporter := newCaptureExporter()
	r, _ := createTestRecorder(t, func(c *Config) { c.QueueCapacity = 1000 }, WithExporter(exporter))

	const n = 200
	for i := 0; i < n; i++ {
		r.Log("line")
		if i == n/2 {
			go func() { _, _ = r.ExportSnapshot(context.Background()) }()
		}
	}
	require.Eventually(t, func() bool { return r.Stats().Exports == 1 }, 2*time.Second, 10*time.Millisecond)
	flush(t, r)

	// Every line is either exported or still in the file, never both or neither
	_, contents := exporter.snapshot()
	total := len(readLines(t, r))
	for _, c := range contents {
		total += strings.Count(c, "\n")
	}
	assert.Equal(t, int(r.Stats().Written), total)
}
