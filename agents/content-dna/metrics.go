package contentdna

import "fmt"

// CollectMetrics describes one YouTube search.
type CollectMetrics struct {
	Query         string
	Found         int
	New           int
	AlreadyStored int
}

func (m CollectMetrics) GetSummary() string {
	return fmt.Sprintf("found %d videos (%d new, %d already stored)", m.Found, m.New, m.AlreadyStored)
}

// StoreMetrics describes one selection being written to the record store.
type StoreMetrics struct {
	Selected int
	Stored   int
	Skipped  int
}

func (m StoreMetrics) GetSummary() string {
	return fmt.Sprintf("stored %d of %d selected videos (%d duplicates skipped)", m.Stored, m.Selected, m.Skipped)
}

// Summary adapts a fixed message to monitoring.Metrics.
type Summary string

func (s Summary) GetSummary() string {
	return string(s)
}
