// FILE: lixenwraith/recorder/export/compress.go
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// CompressedSuffix is appended to object names by Compressed
const CompressedSuffix = ".zst"

// Compressed zstd-compresses snapshots before handing them to another exporter
type Compressed struct {
	next Exporter
}

// NewCompressed wraps next
func NewCompressed(next Exporter) *Compressed {
	return &Compressed{next: next}
}

// StoredName returns the name the wrapped exporter stores name under
func (c *Compressed) StoredName(name string) string {
	return StoredName(c.next, name+CompressedSuffix)
}

// Remove removes the compressed object for name
func (c *Compressed) Remove(ctx context.Context, name string) error {
	return c.next.Remove(ctx, name+CompressedSuffix)
}

// Write compresses the snapshot and writes it as name + ".zst"
func (c *Compressed) Write(ctx context.Context, name string, r io.Reader, _ int64) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("export: read snapshot: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("export: create zstd encoder: %w", err)
	}
	compressed := enc.EncodeAll(src, nil)
	if err := enc.Close(); err != nil {
		return fmt.Errorf("export: close zstd encoder: %w", err)
	}

	return c.next.Write(ctx, name+CompressedSuffix, bytes.NewReader(compressed), int64(len(compressed)))
}
