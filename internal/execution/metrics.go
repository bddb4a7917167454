package execution

import (
	"sync/atomic"
	"time"
)

// RunMetrics counts simulator activity since it was created.
type RunMetrics struct {
	RunsStarted   int64 `json:"runs_started"`
	RunsSucceeded int64 `json:"runs_succeeded"`
	RunsFailed    int64 `json:"runs_failed"`
	RunsRejected  int64 `json:"runs_rejected"` // Begin while a run was in flight
	CodeChanges   int64 `json:"code_changes"`
	Uptime        int64 `json:"uptime_seconds"`
}

type runCounters struct {
	started   int64
	succeeded int64
	failed    int64
	rejected  int64
	changes   int64
	since     time.Time
}

// Metrics returns a snapshot of the run counters.
func (s *Simulator) Metrics() RunMetrics {
	c := &s.counters
	return RunMetrics{
		RunsStarted:   atomic.LoadInt64(&c.started),
		RunsSucceeded: atomic.LoadInt64(&c.succeeded),
		RunsFailed:    atomic.LoadInt64(&c.failed),
		RunsRejected:  atomic.LoadInt64(&c.rejected),
		CodeChanges:   atomic.LoadInt64(&c.changes),
		Uptime:        int64(time.Since(c.since).Seconds()),
	}
}
