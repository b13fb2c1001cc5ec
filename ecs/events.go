package ecs

// Event is a notification raised by a system during a frame.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

type EventType string

const (
	EventJumped       EventType = "jumped"
	EventWallJumped   EventType = "wall_jumped"
	EventLanded       EventType = "landed"
	EventFellThrough  EventType = "fell_through"
	EventPaused       EventType = "paused"
	EventResumed      EventType = "resumed"
	EventTuningReload EventType = "tuning_reloaded"
)

// EventQueue is a FIFO that lives for one frame.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Peek returns the queued events without removing them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
