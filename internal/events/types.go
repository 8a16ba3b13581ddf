package events

import "time"

// EventType indicates what kind of change occurred
type EventType string

const (
	// EventResourceChanged fires when a refetch produced a different snapshot
	EventResourceChanged EventType = "resource_changed"
	// EventFetchFailed fires when a background refetch failed; the previous
	// snapshot is still being served
	EventFetchFailed EventType = "fetch_failed"
	// EventSessionChanged fires on login, logout or a rejected token
	EventSessionChanged EventType = "session_changed"
)

// Event is a change notification for one cached resource
type Event struct {
	Type       EventType
	Resource   string    // cache key, empty for session events
	Timestamp  time.Time // when the event occurred
	SequenceID int64     // monotonically increasing, assigned by the bus
	Err        error     // set for EventFetchFailed
}
