// FILE: lixenwraith/recorder/export/gcs.go
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	gstorage "cloud.google.com/go/storage"
)

// GCS exports snapshots as objects in a Google Cloud Storage bucket
type GCS struct {
	bucket       string
	prefix       string
	newWriter    func(ctx context.Context, bucket, key string) io.WriteCloser
	deleteObject func(ctx context.Context, bucket, key string) error
}

// NewGCS creates a GCS exporter using application default credentials
func NewGCS(ctx context.Context, bucket, prefix string) (*GCS, error) {
	client, err := gstorage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: create GCS client: %w", err)
	}
	return &GCS{
		bucket: bucket,
		prefix: prefix,
		newWriter: func(ctx context.Context, b, key string) io.WriteCloser {
			return client.Bucket(b).Object(key).NewWriter(ctx)
		},
		deleteObject: func(ctx context.Context, b, key string) error {
			return client.Bucket(b).Object(key).Delete(ctx)
		},
	}, nil
}

func (g *GCS) key(name string) string {
	if g.prefix == "" {
		return name
	}
	return path.Join(g.prefix, name)
}

// Remove deletes the object, ignoring objects that do not exist
func (g *GCS) Remove(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	key := g.key(name)
	if err := g.deleteObject(ctx, g.bucket, key); err != nil && !errors.Is(err, gstorage.ErrObjectNotExist) {
		return fmt.Errorf("export: gcs delete %s: %w", key, err)
	}
	return nil
}

// Write uploads the snapshot; the object becomes visible when the writer is closed
func (g *GCS) Write(ctx context.Context, name string, r io.Reader, _ int64) error {
	if err := checkName(name); err != nil {
		return err
	}
	key := g.key(name)
	w := g.newWriter(ctx, g.bucket, key)
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("export: gcs upload %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("export: gcs finalize %s: %w", key, err)
	}
	return nil
}
