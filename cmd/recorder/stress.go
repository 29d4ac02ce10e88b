// FILE: lixenwraith/recorder/cmd/recorder/stress.go
package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/lixenwraith/recorder"
	"github.com/spf13/cobra"
)

type stressOptions struct {
	workers int
	entries int
	maxSize int
	timeout time.Duration
}

func newStressCmd() *cobra.Command {
	var opts stressOptions

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run concurrent producers against a recorder and print its stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.workers <= 0 || opts.entries <= 0 || opts.maxSize <= 0 {
				return fmt.Errorf("workers, entries and size must be positive")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			r, err := recorder.New(cfg)
			if err != nil {
				return err
			}
			return runStress(r, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&opts.workers, "workers", 50, "concurrent producers")
	cmd.Flags().IntVar(&opts.entries, "entries", 1000, "entries per producer")
	cmd.Flags().IntVar(&opts.maxSize, "size", 256, "maximum message size in bytes")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "shutdown timeout")

	return cmd
}

func randomMessage(size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rand.IntN(len(chars))])
	}
	return sb.String()
}

func producer(r *recorder.Recorder, id int, opts stressOptions) {
	for i := 0; i < opts.entries; i++ {
		msg := randomMessage(rand.IntN(opts.maxSize) + 1)
		if i%2 == 0 {
			r.Log(msg)
			continue
		}
		r.LogJSON(map[string]any{
			"wkr":      id,
			"seq":      i,
			"msg":      msg,
			"password": "hunter2",
		})
	}
}

func runStress(r *recorder.Recorder, opts stressOptions, out io.Writer) error {
	fmt.Fprintf(out, "stress: %d workers x %d entries -> %s\n", opts.workers, opts.entries, r.Path())

	start := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < opts.workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			producer(r, id, opts)
		}(w)
	}
	wg.Wait()
	produced := time.Since(start)

	if err := r.Shutdown(opts.timeout); err != nil {
		return err
	}
	elapsed := time.Since(start)

	stats := r.Stats()
	total := opts.workers * opts.entries
	fmt.Fprintf(out, "submitted %d in %v (%.0f/s)\n", total, produced.Round(time.Millisecond),
		float64(total)/produced.Seconds())
	fmt.Fprintf(out, "enqueued=%d written=%d dropped=%d fallbacks=%d write_errors=%d discarded=%d\n",
		stats.Enqueued, stats.Written, stats.Dropped, stats.Fallbacks, stats.WriteErrors, stats.Discarded)
	fmt.Fprintf(out, "drained in %v, file size %d bytes\n", elapsed.Round(time.Millisecond), stats.FileSize)
	return nil
}
