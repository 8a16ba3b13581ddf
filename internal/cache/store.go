package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/thenoetrevino/agency/internal/events"
)

// Refresher is the type-erased view of a Resource the store works with
type Refresher interface {
	Key() Key
	Interval() time.Duration
	Refresh(ctx context.Context) error
	Invalidate(ctx context.Context) error
	Ensure(ctx context.Context) error
	Run(ctx context.Context)
	Loaded() bool
	LastError() error
	UpdatedAt() time.Time
}

// Store owns every cached resource of a session and their event feed
type Store struct {
	mu        sync.RWMutex
	resources map[Key]Refresher
	order     []Key

	publisher events.EventPublisher
	metrics   *Metrics
	wg        sync.WaitGroup
}

func NewStore(publisher events.EventPublisher) *Store {
	return &Store{
		resources: make(map[Key]Refresher),
		publisher: publisher,
		metrics:   NewMetrics(),
	}
}

// Metrics returns the store's live counters
func (s *Store) Metrics() *Metrics {
	return s.metrics
}

// Register adds a resource polled every interval (zero for on demand).
// Registering a key twice replaces the first resource.
func Register[T any](s *Store, key Key, every time.Duration, fetch FetchFunc[T]) *Resource[T] {
	r := newResource(key, every, fetch, s.publisher, s.metrics)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.resources[key]; !exists {
		s.order = append(s.order, key)
	}
	s.resources[key] = r
	return r
}

// Lookup returns the resource registered under key with value type T
func Lookup[T any](s *Store, key Key) (*Resource[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resources[key].(*Resource[T])
	return r, ok
}

// Resource returns the type-erased resource under key
func (s *Store) Resource(key Key) (Refresher, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resources[key]
	return r, ok
}

// Keys lists registered keys in registration order
func (s *Store) Keys() []Key {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Key(nil), s.order...)
}

// Start launches a poll loop for every resource with an interval. The loops
// stop when ctx is done; Wait blocks until they have.
func (s *Store) Start(ctx context.Context) {
	for _, key := range s.Keys() {
		r, _ := s.Resource(key)
		if r.Interval() <= 0 {
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			r.Run(ctx)
		}()
	}
}

// Wait blocks until every poll loop started by Start has returned
func (s *Store) Wait() {
	s.wg.Wait()
}

// Invalidate refetches keys now, bypassing their timers. Unknown keys are
// an error; fetch errors are joined.
func (s *Store) Invalidate(ctx context.Context, keys ...Key) error {
	var errs []error
	for _, key := range keys {
		r, ok := s.Resource(key)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownResource, key))
			continue
		}
		if err := r.Invalidate(ctx); err != nil {
			errs = append(errs, fmt.Errorf("refetch %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// Ensure loads each key once if it has never been fetched
func (s *Store) Ensure(ctx context.Context, keys ...Key) error {
	var errs []error
	for _, key := range keys {
		r, ok := s.Resource(key)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownResource, key))
			continue
		}
		if err := r.Ensure(ctx); err != nil {
			errs = append(errs, fmt.Errorf("load %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// Notify is the entry point for a push channel: a server event naming keys
// takes the same invalidation path as a successful mutation. Failures are
// treated like poll failures.
func (s *Store) Notify(ctx context.Context, keys ...Key) {
	if err := s.Invalidate(ctx, keys...); err != nil {
		slog.Debug("notified refetch failed", "keys", keys, "error", err)
	}
}

// Listen subscribes to change events until ctx is done. Events for a view
// that has gone away are dropped by the bus, never delivered.
func (s *Store) Listen(ctx context.Context) (<-chan events.Event, error) {
	if s.publisher == nil {
		return nil, ErrNoPublisher
	}
	return s.publisher.Listen(ctx)
}

// Mutate runs fn against the API. On success every key is refetched
// immediately; a failed refetch is logged and left to the next poll, since
// the mutation itself went through. On failure the cache is untouched and
// the error is returned as is.
func Mutate[R any](ctx context.Context, s *Store, fn func(ctx context.Context) (R, error), keys ...Key) (R, error) {
	result, err := fn(ctx)
	if err != nil {
		return result, err
	}
	s.metrics.Mutations.Add(1)
	if err := s.Invalidate(ctx, keys...); err != nil {
		slog.Debug("refetch after mutation failed", "keys", keys, "error", err)
	}
	return result, nil
}
