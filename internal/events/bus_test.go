package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	bus := NewBus(5 * time.Millisecond)
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed unexpectedly")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

// ============================================================================
// Bus Tests
// ============================================================================

func TestBus_DeliversToEveryListener(t *testing.T) {
	bus := newTestBus(t)
	ctx := context.Background()

	a, err := bus.Listen(ctx)
	require.NoError(t, err)
	b, err := bus.Listen(ctx)
	require.NoError(t, err)

	require.NoError(t, bus.SendEvent(Event{Type: EventResourceChanged, Resource: "tasks"}))

	evA := receive(t, a)
	evB := receive(t, b)
	assert.Equal(t, "tasks", evA.Resource)
	assert.Equal(t, evA.SequenceID, evB.SequenceID)
	assert.False(t, evA.Timestamp.IsZero())
}

func TestBus_CollapsesBurstPerResource(t *testing.T) {
	bus := NewBus(50 * time.Millisecond)
	defer bus.Close()

	ch, err := bus.Listen(context.Background())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, bus.SendEvent(Event{Type: EventResourceChanged, Resource: "tasks"}))
	}
	require.NoError(t, bus.SendEvent(Event{Type: EventResourceChanged, Resource: "users"}))

	got := map[string]int{}
	deadline := time.After(300 * time.Millisecond)
	for done := false; !done; {
		select {
		case ev := <-ch:
			got[ev.Resource]++
		case <-deadline:
			done = true
		}
	}
	// A tick may split the burst at most once
	assert.GreaterOrEqual(t, got["tasks"], 1)
	assert.LessOrEqual(t, got["tasks"], 2)
	assert.Equal(t, 1, got["users"])
}

func TestBus_ListenerClosesWithContext(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := bus.Listen(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, bus.ListenerCount())

	cancel()
	assert.Eventually(t, func() bool { return bus.ListenerCount() == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-ch
	assert.False(t, ok)

	// Publishing after the view went away must not panic
	require.NoError(t, bus.SendEvent(Event{Type: EventResourceChanged, Resource: "tasks"}))
	time.Sleep(20 * time.Millisecond)
}

func TestBus_CloseIsIdempotent(t *testing.T) {
	bus := NewBus(5 * time.Millisecond)
	ch, err := bus.Listen(context.Background())
	require.NoError(t, err)

	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	_, ok := <-ch
	assert.False(t, ok)

	assert.ErrorIs(t, bus.SendEvent(Event{Type: EventResourceChanged}), ErrBusClosed)
	_, err = bus.Listen(context.Background())
	assert.ErrorIs(t, err, ErrBusClosed)
}

// ============================================================================
// PublishWithRetry Tests
// ============================================================================

type flakyPublisher struct {
	attempts  int
	failUntil int
	err       error
}

func (f *flakyPublisher) SendEvent(Event) error {
	f.attempts++
	if f.attempts <= f.failUntil {
		return f.err
	}
	return nil
}

func (f *flakyPublisher) Listen(context.Context) (<-chan Event, error) { return nil, nil }
func (f *flakyPublisher) Close() error                                 { return nil }

func TestPublishWithRetry(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		pub := &flakyPublisher{failUntil: 2, err: ErrQueueFull}
		require.NoError(t, PublishWithRetry(pub, Event{Type: EventResourceChanged}, 3))
		assert.Equal(t, 3, pub.attempts)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		pub := &flakyPublisher{failUntil: 99, err: ErrQueueFull}
		err := PublishWithRetry(pub, Event{Type: EventResourceChanged}, 3)
		assert.ErrorIs(t, err, ErrQueueFull)
		assert.Equal(t, 3, pub.attempts)
	})

	t.Run("does not retry a closed bus", func(t *testing.T) {
		pub := &flakyPublisher{failUntil: 99, err: ErrBusClosed}
		err := PublishWithRetry(pub, Event{Type: EventResourceChanged}, 3)
		assert.True(t, errors.Is(err, ErrBusClosed))
		assert.Equal(t, 1, pub.attempts)
	})

	t.Run("nil publisher is a no-op", func(t *testing.T) {
		assert.NoError(t, PublishWithRetry(nil, Event{}, 3))
	})
}
