// FILE: lixenwraith/recorder/cmd/recorder/write.go
package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lixenwraith/recorder"
	"github.com/lixenwraith/recorder/node"
	"github.com/spf13/cobra"
)

const maxLineSize = 1 << 20

func newWriteCmd() *cobra.Command {
	var (
		plain   bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Record lines from stdin; JSON objects and arrays become structured entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			r, err := recorder.New(cfg)
			if err != nil {
				return err
			}
			n, err := writeLines(r, cmd.InOrStdin(), plain)
			if shutdownErr := r.Shutdown(timeout); err == nil {
				err = shutdownErr
			}
			if err != nil {
				return err
			}
			stats := r.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "%d lines read, %d entries written, %d dropped -> %s\n",
				n, stats.Written, stats.Dropped, r.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "record every line as text, even when it parses as JSON")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "flush timeout before exit")

	return cmd
}

// writeLines submits each non-empty input line and returns the number submitted
func writeLines(r *recorder.Recorder, in io.Reader, plain bool) (int, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var n int
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		n++
		if !plain {
			if tree, err := node.ParseString(line); err == nil && node.IsContainer(tree) {
				r.LogJSON(tree)
				continue
			}
		}
		r.Log(line)
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("read input: %w", err)
	}
	return n, nil
}
