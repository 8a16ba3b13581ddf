package cache

import (
	"sync/atomic"
	"time"
)

// Metrics counts cache activity across every resource of a store
type Metrics struct {
	Fetches       atomic.Int64
	FetchFailures atomic.Int64
	Discarded     atomic.Int64
	Changes       atomic.Int64
	Mutations     atomic.Int64
	StartTime     time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{StartTime: time.Now()}
}

// MetricsSnapshot is a point-in-time copy of Metrics
type MetricsSnapshot struct {
	Fetches       int64     `json:"fetches"`
	FetchFailures int64     `json:"fetch_failures"`
	Discarded     int64     `json:"discarded"`
	Changes       int64     `json:"changes"`
	Mutations     int64     `json:"mutations"`
	StartTime     time.Time `json:"start_time"`
	Uptime        string    `json:"uptime"`
}

// Snapshot returns the current counters
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Fetches:       m.Fetches.Load(),
		FetchFailures: m.FetchFailures.Load(),
		Discarded:     m.Discarded.Load(),
		Changes:       m.Changes.Load(),
		Mutations:     m.Mutations.Load(),
		StartTime:     m.StartTime,
		Uptime:        time.Since(m.StartTime).Round(time.Second).String(),
	}
}
