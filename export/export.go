// FILE: lixenwraith/recorder/export/export.go
// Package export delivers finished log snapshots to their final storage destination.
package export

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Exporter receives log snapshots from a recorder.
//
// Remove deletes a previously exported object; a missing object is not an error.
// Write stores size bytes read from r under name, replacing any existing object.
type Exporter interface {
	Remove(ctx context.Context, name string) error
	Write(ctx context.Context, name string, r io.Reader, size int64) error
}

// Namer is implemented by exporters that store an object under a different name than the
// one they are given
type Namer interface {
	StoredName(name string) string
}

// StoredName returns the name e stores an object written as name under
func StoredName(e Exporter, name string) string {
	if n, ok := e.(Namer); ok {
		return n.StoredName(name)
	}
	return name
}

// Func adapts plain functions to the Exporter interface. A nil function is a no-op.
type Func struct {
	RemoveFunc func(ctx context.Context, name string) error
	WriteFunc  func(ctx context.Context, name string, r io.Reader, size int64) error
}

// Remove calls RemoveFunc
func (f Func) Remove(ctx context.Context, name string) error {
	if f.RemoveFunc == nil {
		return nil
	}
	return f.RemoveFunc(ctx, name)
}

// Write calls WriteFunc
func (f Func) Write(ctx context.Context, name string, r io.Reader, size int64) error {
	if f.WriteFunc == nil {
		return nil
	}
	return f.WriteFunc(ctx, name, r, size)
}

// ParseURL extracts scheme, bucket, and prefix from a cloud URL.
// Supported schemes: s3://, gs://
func ParseURL(raw string) (scheme, bucket, prefix string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", "", fmt.Errorf("export: empty URL")
	}

	var rest string
	switch {
	case strings.HasPrefix(raw, "s3://"):
		scheme = "s3"
		rest = strings.TrimPrefix(raw, "s3://")
	case strings.HasPrefix(raw, "gs://"):
		scheme = "gs"
		rest = strings.TrimPrefix(raw, "gs://")
	default:
		return "", "", "", fmt.Errorf("export: unsupported scheme in %q: expected s3:// or gs://", raw)
	}

	if rest == "" {
		return "", "", "", fmt.Errorf("export: empty bucket in %q", raw)
	}

	idx := strings.IndexByte(rest, '/')
	if idx < 0 {
		return scheme, rest, "", nil
	}

	bucket = rest[:idx]
	if bucket == "" {
		return "", "", "", fmt.Errorf("export: empty bucket in %q", raw)
	}
	prefix = strings.Trim(rest[idx+1:], "/")

	return scheme, bucket, prefix, nil
}

// NewFromURL creates an exporter for a target description:
//
//	s3://bucket/prefix     Amazon S3
//	gs://bucket/prefix     Google Cloud Storage
//	documents, downloads   standard location under the user's home directory
//	file:///path, /path    local directory
func NewFromURL(ctx context.Context, target string) (Exporter, error) {
	target = strings.TrimSpace(target)
	switch {
	case strings.HasPrefix(target, "s3://"), strings.HasPrefix(target, "gs://"):
		scheme, bucket, prefix, err := ParseURL(target)
		if err != nil {
			return nil, err
		}
		if scheme == "s3" {
			b, err := NewS3(ctx, bucket, prefix)
			if err != nil {
				return nil, err
			}
			return b, nil
		}
		g, err := NewGCS(ctx, bucket, prefix)
		if err != nil {
			return nil, err
		}
		return g, nil
	case strings.HasPrefix(target, "file://"):
		path := strings.TrimPrefix(target, "file://")
		if path == "" {
			return nil, fmt.Errorf("export: empty path in %q", target)
		}
		return NewDir(path), nil
	case target == "":
		return nil, fmt.Errorf("export: empty target")
	}

	if d, err := ParseDestination(target); err == nil {
		return &Dir{resolve: d.Path}, nil
	}
	if strings.Contains(target, "://") {
		return nil, fmt.Errorf("export: unsupported target %q", target)
	}
	return NewDir(target), nil
}

// checkName rejects names that would escape the destination
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("export: invalid object name %q", name)
	}
	return nil
}
