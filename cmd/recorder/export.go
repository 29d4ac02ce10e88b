// FILE: lixenwraith/recorder/cmd/recorder/export.go
package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lixenwraith/recorder"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var (
		target    string
		compress  string
		overwrite bool
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "export <log-file>",
		Short: "Export a log file to a directory, s3:// or gs:// target and truncate it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := fileConfig(cfg, args[0]); err != nil {
				return err
			}
			if target != "" {
				cfg.ExportTarget = target
			}
			if compress != "" {
				cfg.ExportCompression = compress
			}
			if cmd.Flags().Changed("overwrite") {
				cfg.OverwriteOnExport = overwrite
			}
			// One-shot use: nothing is recorded, so no periodic work
			cfg.ExportSchedule = ""
			cfg.HeartbeatIntervalS = 0
			cfg.WatchMaskRules = false

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			name, err := exportFile(ctx, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %s as %s\n", args[0], name)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "export directory or s3://bucket/prefix, gs://bucket/prefix")
	cmd.Flags().StringVar(&compress, "compress", "", "export compression: none, zstd")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace the previous export instead of naming a new one")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "export timeout")

	return cmd
}

// fileConfig points cfg at an existing log file
func fileConfig(cfg *recorder.Config, path string) error {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return fmt.Errorf("invalid log file path %q", path)
	}
	cfg.Directory = filepath.Dir(path)
	cfg.Name, cfg.Extension = base, ""
	if ext := filepath.Ext(base); ext != "" && ext != base {
		cfg.Name = strings.TrimSuffix(base, ext)
		cfg.Extension = strings.TrimPrefix(ext, ".")
	}
	cfg.Enabled = true
	return nil
}

func exportFile(ctx context.Context, cfg *recorder.Config) (string, error) {
	r, err := recorder.New(cfg)
	if err != nil {
		return "", err
	}
	name, err := r.ExportSnapshot(ctx)
	if closeErr := r.Close(); err == nil {
		err = closeErr
	}
	return name, err
}
