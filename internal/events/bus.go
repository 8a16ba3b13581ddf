package events

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrQueueFull = errors.New("event queue full")
	ErrBusClosed = errors.New("event bus closed")
)

// Bus fans change notifications out to every listening view.
// Events are batched: within one debounce window, repeated events for the
// same resource collapse into the most recent one.
type Bus struct {
	mu        sync.Mutex
	listeners map[int]chan Event
	nextID    int
	closed    bool

	// Batching configuration
	queue    chan Event
	debounce time.Duration
	sequence atomic.Int64

	// Context for graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc

	batcherDone chan struct{}
}

// NewBus creates a bus and starts its batching goroutine.
// AGENCY_EVENT_DEBOUNCE_MS overrides the debounce window.
func NewBus(debounce time.Duration) *Bus {
	if envVal := os.Getenv("AGENCY_EVENT_DEBOUNCE_MS"); envVal != "" {
		if parsed, err := strconv.Atoi(envVal); err == nil && parsed > 0 {
			debounce = time.Duration(parsed) * time.Millisecond
		}
	}
	if debounce <= 0 {
		debounce = 50 * time.Millisecond
	}

	ctx, cancel := context.WithCancel(context.Background())

	b := &Bus{
		listeners:   make(map[int]chan Event),
		queue:       make(chan Event, 100),
		debounce:    debounce,
		ctx:         ctx,
		cancel:      cancel,
		batcherDone: make(chan struct{}),
	}
	go b.startBatcher()
	return b
}

// SendEvent queues an event without blocking.
// Returns ErrQueueFull when the batcher is behind.
func (b *Bus) SendEvent(event Event) error {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return ErrBusClosed
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case b.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// startBatcher collapses queued events per (type, resource) and flushes them
// once per debounce window
func (b *Bus) startBatcher() {
	defer close(b.batcherDone)

	ticker := time.NewTicker(b.debounce)
	defer ticker.Stop()

	pending := make(map[string]Event)
	var order []string

	flushPending := func() {
		for _, key := range order {
			b.deliver(pending[key])
		}
		clear(pending)
		order = order[:0]
	}

	for {
		select {
		case <-b.ctx.Done():
			flushPending()
			return

		case event := <-b.queue:
			key := string(event.Type) + "/" + event.Resource
			if _, seen := pending[key]; !seen {
				order = append(order, key)
			}
			pending[key] = event

		case <-ticker.C:
			flushPending()
		}
	}
}

// deliver stamps the event and hands it to every listener.
// A listener whose buffer is full misses this event; the next one for the
// same resource carries the same meaning.
func (b *Bus) deliver(event Event) {
	event.SequenceID = b.sequence.Add(1)

	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.listeners {
		select {
		case ch <- event:
		default:
			slog.Debug("listener buffer full, dropping event",
				"listener", id,
				"event_type", event.Type,
				"resource", event.Resource)
		}
	}
}

// Listen registers a listener. The returned channel closes when ctx is done
// or the bus is closed, so a torn-down view never receives late events.
func (b *Bus) Listen(ctx context.Context) (<-chan Event, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrBusClosed
	}
	id := b.nextID
	b.nextID++
	ch := make(chan Event, 32)
	b.listeners[id] = ch
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-b.ctx.Done():
		}
		b.remove(id)
	}()

	return ch, nil
}

// remove unregisters and closes a listener exactly once
func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.listeners[id]; ok {
		delete(b.listeners, id)
		close(ch)
	}
}

// ListenerCount reports how many views are currently subscribed
func (b *Bus) ListenerCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

// Close flushes pending events, then closes every listener channel
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	b.cancel()
	<-b.batcherDone

	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.listeners {
		delete(b.listeners, id)
		close(ch)
	}
	return nil
}
