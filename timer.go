// FILE: lixenwraith/recorder/timer.go
package recorder

import "time"

// TimerSet holds all timers used in processEntries
type TimerSet struct {
	heartbeatTicker *time.Ticker
	heartbeatChan   <-chan time.Time
}

// setupProcessingTimers creates and configures all necessary timers for the writer
func (r *Recorder) setupProcessingTimers() *TimerSet {
	timers := &TimerSet{}

	// Set up heartbeat timer; a nil channel never fires
	timers.heartbeatChan = r.setupHeartbeatTimer(timers)

	return timers
}

// closeProcessingTimers stops all active timers
func (r *Recorder) closeProcessingTimers(timers *TimerSet) {
	if timers.heartbeatTicker != nil {
		timers.heartbeatTicker.Stop()
	}
}

// setupHeartbeatTimer configures the heartbeat timer if enabled
func (r *Recorder) setupHeartbeatTimer(timers *TimerSet) <-chan time.Time {
	intervalS := r.cfg.HeartbeatIntervalS
	if intervalS <= 0 {
		return nil
	}
	timers.heartbeatTicker = time.NewTicker(time.Duration(intervalS) * time.Second)
	return timers.heartbeatTicker.C
}
