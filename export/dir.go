// FILE: lixenwraith/recorder/export/dir.go
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Destination names a standard per-user location for exported logs
type Destination string

const (
	Documents Destination = "documents"
	Downloads Destination = "downloads"
)

// ParseDestination converts a configuration value to a Destination
func ParseDestination(s string) (Destination, error) {
	switch d := Destination(strings.ToLower(strings.TrimSpace(s))); d {
	case Documents, Downloads:
		return d, nil
	}
	return "", fmt.Errorf("export: unsupported destination %q (use documents or downloads)", s)
}

// Path resolves the destination under the user's home directory
func (d Destination) Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("export: resolve home directory: %w", err)
	}
	switch d {
	case Documents:
		return filepath.Join(home, "Documents"), nil
	case Downloads:
		return filepath.Join(home, "Downloads"), nil
	}
	return "", fmt.Errorf("export: unsupported destination %q", string(d))
}

// Dir exports into a local directory. Writes go to a temporary file that is renamed
// into place, so readers never see a partial snapshot.
type Dir struct {
	resolve func() (string, error)
}

// NewDir creates an exporter writing into path
func NewDir(path string) *Dir {
	return &Dir{resolve: func() (string, error) { return path, nil }}
}

// NewDestination creates an exporter writing into a standard location.
// The home directory is resolved on each export.
func NewDestination(d Destination) (*Dir, error) {
	if _, err := ParseDestination(string(d)); err != nil {
		return nil, err
	}
	return &Dir{resolve: d.Path}, nil
}

// Path returns the directory exports are written to
func (d *Dir) Path() (string, error) {
	return d.resolve()
}

// Remove deletes name from the directory
func (d *Dir) Remove(_ context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	dir, err := d.resolve()
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("export: remove %s: %w", name, err)
	}
	return nil
}

// Write stores the content of r as name in the directory
func (d *Dir) Write(ctx context.Context, name string, r io.Reader, _ int64) error {
	if err := checkName(name); err != nil {
		return err
	}
	dir, err := d.resolve()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("export: create directory '%s': %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("export: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := io.Copy(tmp, r); err != nil {
		cleanup()
		return fmt.Errorf("export: write %s: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("export: sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("export: close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("export: rename %s: %w", name, err)
	}
	return nil
}
