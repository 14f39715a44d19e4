package monitoring

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Metrics is implemented by the result of every tracked operation.
type Metrics interface {
	// GetSummary returns a human-readable summary of the run
	GetSummary() string
}

type Monitor struct {
	lastOp         string
	lastRunSuccess bool
	lastRunTime    time.Time
	runs           int
	failures       int
}

func NewMonitor() *Monitor {
	return &Monitor{}
}

// Track runs fn, logs its outcome and returns its error unchanged.
func (m *Monitor) Track(ctx context.Context, op string, fn func(ctx context.Context) (Metrics, error)) error {
	startTime := time.Now()

	log.Printf("Starting %s...", op)
	metrics, err := fn(ctx)
	duration := time.Since(startTime)

	if err != nil {
		m.RecordFailure(op, err, duration)
		return err
	}

	summary := "done"
	if metrics != nil {
		summary = metrics.GetSummary()
	}
	m.RecordSuccess(op, summary, duration)
	return nil
}

func (m *Monitor) RecordSuccess(op, summary string, duration time.Duration) {
	m.lastOp = op
	m.lastRunSuccess = true
	m.lastRunTime = time.Now()
	m.runs++

	log.Printf("✅ %s completed - %s (took %v)", op, summary, duration.Round(time.Millisecond))
}

func (m *Monitor) RecordFailure(op string, err error, duration time.Duration) {
	m.lastOp = op
	m.lastRunSuccess = false
	m.lastRunTime = time.Now()
	m.runs++
	m.failures++

	log.Printf("🚨 %s failed: %s (Duration: %v)", op, err.Error(), duration.Round(time.Millisecond))
}

func (m *Monitor) GetStatusSummary() string {
	if m.lastRunTime.IsZero() {
		return "No actions run"
	}

	status := fmt.Sprintf("%d actions, %d failed", m.runs, m.failures)
	if m.lastRunSuccess {
		return fmt.Sprintf("✅ %s; last: %s at %s", status, m.lastOp, m.lastRunTime.Format("Jan 2 15:04"))
	}
	return fmt.Sprintf("❌ %s; last: %s failed at %s", status, m.lastOp, m.lastRunTime.Format("Jan 2 15:04"))
}
