package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/agency/internal/events"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

// recorder is a synchronous EventPublisher
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) SendEvent(e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) Listen(ctx context.Context) (<-chan events.Event, error) {
	ch := make(chan events.Event)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (r *recorder) Close() error { return nil }

func (r *recorder) count(t events.EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// source is a fetch function backed by a mutable slice
type source struct {
	mu    sync.Mutex
	items []string
	err   error
	calls atomic.Int32
}

func (s *source) set(items ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
}

func (s *source) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *source) fetch(ctx context.Context) ([]string, error) {
	s.calls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]string(nil), s.items...), nil
}

// ============================================================================
// RESOURCE
// ============================================================================

func TestRefreshPublishesOnlyOnChange(t *testing.T) {
	rec := &recorder{}
	store := NewStore(rec)
	src := &source{}
	src.set("a")
	res := Register(store, Tasks, 0, src.fetch)
	ctx := context.Background()

	assert.False(t, res.Loaded())
	require.NoError(t, res.Refresh(ctx))
	assert.True(t, res.Loaded())
	assert.Equal(t, []string{"a"}, res.Get())
	assert.Equal(t, 1, rec.count(events.EventResourceChanged))

	require.NoError(t, res.Refresh(ctx))
	assert.Equal(t, 1, rec.count(events.EventResourceChanged), "identical refetch is silent")

	src.set("a", "b")
	require.NoError(t, res.Refresh(ctx))
	assert.Equal(t, []string{"a", "b"}, res.Get())
	assert.Equal(t, 2, rec.count(events.EventResourceChanged))
	assert.False(t, res.UpdatedAt().IsZero())
}

func TestFailedRefreshKeepsSnapshot(t *testing.T) {
	rec := &recorder{}
	store := NewStore(rec)
	src := &source{}
	src.set("good")
	res := Register(store, Announcements, 0, src.fetch)
	ctx := context.Background()

	require.NoError(t, res.Refresh(ctx))

	boom := errors.New("connection refused")
	src.fail(boom)
	err := res.Refresh(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"good"}, res.Get())
	assert.ErrorIs(t, res.LastError(), boom)
	assert.Equal(t, 1, rec.count(events.EventFetchFailed))

	src.fail(nil)
	require.NoError(t, res.Refresh(ctx))
	assert.NoError(t, res.LastError())
}

func TestOutOfOrderCompletionIsDiscarded(t *testing.T) {
	store := NewStore(nil)
	release := make(chan struct{})
	started := make(chan struct{})
	var calls atomic.Int32

	res := Register(store, Tasks, 0, func(ctx context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return []string{"old"}, nil
		}
		return []string{"new"}, nil
	})
	ctx := context.Background()

	done := make(chan error)
	go func() { done <- res.Refresh(ctx) }()
	<-started

	require.NoError(t, res.Refresh(ctx))
	assert.Equal(t, []string{"new"}, res.Get())

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, []string{"new"}, res.Get(), "slower, older fetch must not overwrite")

	snap := store.Metrics().Snapshot()
	assert.Equal(t, int64(2), snap.Fetches)
	assert.Equal(t, int64(1), snap.Discarded)
	assert.Equal(t, int64(1), snap.Changes)
}

func TestEnsureFetchesOnce(t *testing.T) {
	store := NewStore(nil)
	src := &source{}
	src.set("u1")
	Register(store, Users, 0, src.fetch)
	ctx := context.Background()

	require.NoError(t, store.Ensure(ctx, Users))
	require.NoError(t, store.Ensure(ctx, Users))
	assert.Equal(t, int32(1), src.calls.Load())

	res, ok := Lookup[[]string](store, Users)
	require.True(t, ok)
	assert.Equal(t, []string{"u1"}, res.Get())
}

// ============================================================================
// STORE
// ============================================================================

func TestInvalidateUnknownKey(t *testing.T) {
	store := NewStore(nil)
	err := store.Invalidate(context.Background(), Ventures)
	assert.ErrorIs(t, err, ErrUnknownResource)
}

func TestLookupWrongType(t *testing.T) {
	store := NewStore(nil)
	Register(store, Dashboard, 0, func(ctx context.Context) (int, error) { return 1, nil })

	_, ok := Lookup[string](store, Dashboard)
	assert.False(t, ok)
	assert.Equal(t, []Key{Dashboard}, store.Keys())
}

func TestPollingLoop(t *testing.T) {
	store := NewStore(nil)
	src := &source{}
	src.set("x")
	polled := Register(store, Tasks, 10*time.Millisecond, src.fetch)

	onDemand := &source{}
	Register(store, Ventures, 0, onDemand.fetch)

	ctx, cancel := context.WithCancel(context.Background())
	store.Start(ctx)

	assert.Eventually(t, func() bool { return src.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	assert.True(t, polled.Loaded())

	cancel()
	store.Wait()
	assert.Equal(t, int32(0), onDemand.calls.Load(), "on-demand resources are never polled")
}

func TestPollFailureIsSwallowed(t *testing.T) {
	rec := &recorder{}
	store := NewStore(rec)
	src := &source{}
	src.fail(errors.New("503"))
	res := Register(store, Dashboard, 10*time.Millisecond, src.fetch)

	ctx, cancel := context.WithCancel(context.Background())
	store.Start(ctx)

	assert.Eventually(t, func() bool { return rec.count(events.EventFetchFailed) >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	store.Wait()

	assert.False(t, res.Loaded())
	assert.Error(t, res.LastError())
}

func TestNotifyRefetches(t *testing.T) {
	store := NewStore(nil)
	src := &source{}
	src.set("one")
	res := Register(store, Announcements, time.Hour, src.fetch)

	store.Notify(context.Background(), Announcements, Holidays)
	assert.Equal(t, []string{"one"}, res.Get())
}

func TestListenRequiresPublisher(t *testing.T) {
	store := NewStore(nil)
	_, err := store.Listen(context.Background())
	assert.ErrorIs(t, err, ErrNoPublisher)
}

func TestListenerOutlivedByView(t *testing.T) {
	bus := events.NewBus(time.Millisecond)
	defer bus.Close()
	store := NewStore(bus)
	src := &source{}
	src.set("a")
	res := Register(store, Tasks, 0, src.fetch)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := store.Listen(ctx)
	require.NoError(t, err)
	cancel()

	assert.Eventually(t, func() bool {
		_, open := <-ch
		return !open
	}, time.Second, time.Millisecond)

	assert.NotPanics(t, func() {
		require.NoError(t, res.Refresh(context.Background()))
	})
}

// ============================================================================
// MUTATE
// ============================================================================

func TestMutateSuccessInvalidates(t *testing.T) {
	store := NewStore(nil)
	src := &source{}
	src.set("todo")
	tasks := Register(store, Tasks, time.Hour, src.fetch)
	users := &source{}
	Register(store, Users, 0, users.fetch)
	ctx := context.Background()

	require.NoError(t, tasks.Refresh(ctx))

	got, err := Mutate(ctx, store, func(ctx context.Context) (string, error) {
		src.set("done")
		return "ok", nil
	}, Tasks)
	require.NoError(t, err)
	assert.Equal(t, "ok", got)

	assert.Equal(t, []string{"done"}, tasks.Get(), "next read reflects the mutation")
	assert.Equal(t, int32(0), users.calls.Load(), "unrelated resources are not refetched")
	assert.Equal(t, int64(1), store.Metrics().Snapshot().Mutations)
}

func TestMutateFailureLeavesCache(t *testing.T) {
	store := NewStore(nil)
	src := &source{}
	src.set("todo")
	tasks := Register(store, Tasks, time.Hour, src.fetch)
	ctx := context.Background()
	require.NoError(t, tasks.Refresh(ctx))

	rejected := errors.New("Timer already running")
	_, err := Mutate(ctx, store, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, rejected
	}, Tasks)

	assert.ErrorIs(t, err, rejected)
	assert.Equal(t, int32(1), src.calls.Load(), "no refetch after a failed mutation")
	assert.Equal(t, []string{"todo"}, tasks.Get())
	assert.Zero(t, store.Metrics().Snapshot().Mutations)
}

func TestMutateSurvivesRefetchFailure(t *testing.T) {
	store := NewStore(nil)
	src := &source{}
	Register(store, Tasks, time.Hour, src.fetch)
	src.fail(errors.New("timeout"))

	_, err := Mutate(context.Background(), store, func(ctx context.Context) (int, error) {
		return 1, nil
	}, Tasks)
	assert.NoError(t, err)
}
