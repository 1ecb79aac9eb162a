package api

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/sbpo/datapoints/internal/models"
)

const numOps = int(models.OpRestore) + 1

// Metrics collects per-operation call counts using atomic counters.
type Metrics struct {
	startTime time.Time
	calls     [numOps]atomic.Int64
	failures  [numOps]atomic.Int64
	cancelled [numOps]atomic.Int64
	shared    atomic.Int64
}

// OpCounts is the call tally for one operation.
type OpCounts struct {
	Calls     int64 `json:"calls"`
	Failures  int64 `json:"failures"`
	Cancelled int64 `json:"cancelled"`
}

// MetricsSnapshot is a point-in-time view of client metrics.
type MetricsSnapshot struct {
	UptimeSeconds float64             `json:"uptime_seconds"`
	Ops           map[string]OpCounts `json:"ops"`
	SharedLists   int64               `json:"shared_lists"`
}

// NewMetrics creates a new Metrics instance with the current time as start.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordCall counts one finished call of op. Context errors count as
// cancelled rather than failed.
func (m *Metrics) RecordCall(op models.Op, err error) {
	if int(op) < 0 || int(op) >= numOps {
		return
	}
	m.calls[op].Add(1)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		m.cancelled[op].Add(1)
	default:
		m.failures[op].Add(1)
	}
}

// RecordSharedList counts a List call that shared its round trip.
func (m *Metrics) RecordSharedList() {
	m.shared.Add(1)
}

// Snapshot returns a point-in-time copy of the metrics. Operations that
// were never called are left out.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		UptimeSeconds: time.Since(m.startTime).Seconds(),
		Ops:           make(map[string]OpCounts),
		SharedLists:   m.shared.Load(),
	}
	for _, op := range models.AllOps {
		c := OpCounts{
			Calls:     m.calls[op].Load(),
			Failures:  m.failures[op].Load(),
			Cancelled: m.cancelled[op].Load(),
		}
		if c.Calls > 0 {
			snap.Ops[op.String()] = c
		}
	}
	return snap
}
