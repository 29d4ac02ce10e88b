// FILE: lixenwraith/recorder/schedule.go
package recorder

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// exportScheduler runs ExportSnapshot on a cron schedule
type exportScheduler struct {
	recorder *Recorder
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	running  bool
}

func newExportScheduler(r *Recorder, schedule string) *exportScheduler {
	return &exportScheduler{
		recorder: r,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// start registers the export job and starts the cron runner
func (s *exportScheduler) start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.cron.AddFunc(s.schedule, s.runExport); err != nil {
		return fmtErrorf("failed to schedule export %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.running = true
	return nil
}

// runExport executes one scheduled export; failures are counted by the writer
func (s *exportScheduler) runExport() {
	ctx, cancel := context.WithTimeout(context.Background(), scheduledExportTimeout)
	defer cancel()

	if _, err := s.recorder.ExportSnapshot(ctx); err != nil {
		s.recorder.internalLog("scheduled export failed: %v", err)
	}
}

// stop halts the cron runner and waits up to timeout for a running export
func (s *exportScheduler) stop(timeout time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return true
	}
	s.running = false

	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
		return true
	case <-time.After(timeout):
		return false
	}
}

// nextRun returns the next scheduled export time
func (s *exportScheduler) nextRun() (time.Time, bool) {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}, false
	}
	return entries[0].Next, true
}
