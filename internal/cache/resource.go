// Package cache keeps one server-sourced snapshot per resource and keeps it
// converging on server truth: timers refetch in the background, successful
// mutations force an immediate refetch, and nothing is ever edited locally.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/agency/internal/events"
	"github.com/zeebo/blake3"
)

// Key names a cached resource
type Key string

const (
	Tasks         Key = "tasks"
	Announcements Key = "announcements"
	Users         Key = "users"
	Ventures      Key = "ventures"
	Leaves        Key = "leaves"
	Holidays      Key = "holidays"
	Dashboard     Key = "dashboard"
)

// FetchFunc loads the authoritative value of a resource
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Resource is one cached snapshot. Readers share the value and must not
// modify it.
type Resource[T any] struct {
	key       Key
	every     time.Duration
	fetch     FetchFunc[T]
	publisher events.EventPublisher
	metrics   *Metrics
	kick      chan struct{}

	// issued numbers fetches as they start; applied is the newest one whose
	// result is in value. A fetch finishing behind applied is discarded.
	issued atomic.Int64

	mu          sync.RWMutex
	value       T
	loaded      bool
	applied     int64
	fingerprint [32]byte
	updatedAt   time.Time
	lastErr     error
}

func newResource[T any](key Key, every time.Duration, fetch FetchFunc[T], publisher events.EventPublisher, metrics *Metrics) *Resource[T] {
	return &Resource[T]{
		key:       key,
		every:     every,
		fetch:     fetch,
		publisher: publisher,
		metrics:   metrics,
		kick:      make(chan struct{}, 1),
	}
}

func (r *Resource[T]) Key() Key {
	return r.key
}

// Interval is the polling period; zero means on demand only
func (r *Resource[T]) Interval() time.Duration {
	return r.every
}

// Get returns the current snapshot, the zero value before the first fetch
func (r *Resource[T]) Get() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Loaded reports whether any fetch has succeeded
func (r *Resource[T]) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// LastError is the error of the latest failed fetch, cleared by a success
func (r *Resource[T]) LastError() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

// UpdatedAt is when the snapshot was last confirmed by the server
func (r *Resource[T]) UpdatedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.updatedAt
}

// Refresh fetches the resource and applies the result unless a newer fetch
// has already been applied. A change event is published only when the
// snapshot differs from the one it replaces.
func (r *Resource[T]) Refresh(ctx context.Context) error {
	seq := r.issued.Add(1)
	value, err := r.fetch(ctx)
	r.metrics.Fetches.Add(1)

	r.mu.Lock()
	if seq < r.applied {
		r.mu.Unlock()
		r.metrics.Discarded.Add(1)
		slog.Debug("discarding out-of-order fetch", "resource", r.key, "seq", seq)
		return nil
	}
	if err != nil {
		r.lastErr = err
		r.mu.Unlock()
		r.metrics.FetchFailures.Add(1)
		r.publish(events.Event{Type: events.EventFetchFailed, Err: err})
		return err
	}

	fp, ok := fingerprint(value)
	changed := !r.loaded || !ok || fp != r.fingerprint

	r.value = value
	r.loaded = true
	r.applied = seq
	r.fingerprint = fp
	r.updatedAt = time.Now()
	r.lastErr = nil
	r.mu.Unlock()

	if changed {
		r.metrics.Changes.Add(1)
		r.publish(events.Event{Type: events.EventResourceChanged})
	}
	return nil
}

// Invalidate forces an immediate refetch and restarts the polling interval
func (r *Resource[T]) Invalidate(ctx context.Context) error {
	err := r.Refresh(ctx)
	select {
	case r.kick <- struct{}{}:
	default:
	}
	return err
}

// Ensure fetches once if nothing has been loaded yet
func (r *Resource[T]) Ensure(ctx context.Context) error {
	if r.Loaded() {
		return nil
	}
	return r.Refresh(ctx)
}

// Run polls until ctx is done. Failures are logged and the last good
// snapshot is kept; the next tick retries.
func (r *Resource[T]) Run(ctx context.Context) {
	if r.every <= 0 {
		return
	}

	r.poll(ctx)

	ticker := time.NewTicker(r.every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.kick:
			ticker.Reset(r.every)
		case <-ticker.C:
			r.poll(ctx)
		}
	}
}

func (r *Resource[T]) poll(ctx context.Context) {
	if err := r.Refresh(ctx); err != nil && ctx.Err() == nil {
		slog.Debug("poll failed, keeping last snapshot", "resource", r.key, "error", err)
	}
}

func (r *Resource[T]) publish(event events.Event) {
	if r.publisher == nil {
		return
	}
	event.Resource = string(r.key)
	event.Timestamp = time.Now()
	if err := r.publisher.SendEvent(event); err != nil {
		slog.Debug("failed to publish cache event", "resource", r.key, "error", err)
	}
}

// fingerprint hashes the JSON encoding of v; ok is false when v cannot be
// encoded, in which case every refetch counts as a change
func fingerprint(v any) ([32]byte, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		return [32]byte{}, false
	}
	return blake3.Sum256(data), true
}
