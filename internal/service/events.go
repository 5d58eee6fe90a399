package service

import (
	"sync"
	"sync/atomic"
	"time"
)

// EventType names a frame pushed to the page
type EventType string

const (
	EventPositions EventType = "positions"
	EventColors    EventType = "colors"
	EventDetail    EventType = "detail"
	EventSearch    EventType = "search"
	EventStatus    EventType = "status"
	EventReloaded  EventType = "graph_reloaded"
)

// Lossy reports whether a frame may be skipped for a slow subscriber. Every
// positions frame is superseded by the next tick; the others are not.
func (t EventType) Lossy() bool {
	return t == EventPositions
}

// Event is one frame for the page
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Lossy reports whether the event may be skipped for a slow consumer
func (e Event) Lossy() bool { return e.Type.Lossy() }

// stateGrace bounds how long Publish waits on a full subscriber for a
// non-lossy event before dropping it
const stateGrace = 50 * time.Millisecond

// EventBus fans session events out to subscriber channels
type EventBus struct {
	mu          sync.RWMutex
	subscribers []chan<- Event
	dropped     atomic.Uint64
}

// NewEventBus creates an event bus with no subscribers
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers ch for every subsequent event
func (eb *EventBus) Subscribe(ch chan<- Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers = append(eb.subscribers, ch)
}

// Unsubscribe removes ch; it is not closed
func (eb *EventBus) Unsubscribe(ch chan<- Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	for i, sub := range eb.subscribers {
		if sub == ch {
			eb.subscribers = append(eb.subscribers[:i], eb.subscribers[i+1:]...)
			return
		}
	}
}

// Publish delivers event to every subscriber. Lossy events are skipped for a
// full subscriber; others wait up to stateGrace first.
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for _, ch := range eb.subscribers {
		select {
		case ch <- event:
			continue
		default:
		}

		if event.Type.Lossy() {
			eb.dropped.Add(1)
			continue
		}

		timer := time.NewTimer(stateGrace)
		select {
		case ch <- event:
		case <-timer.C:
			eb.dropped.Add(1)
		}
		timer.Stop()
	}
}

// Dropped returns how many deliveries were skipped
func (eb *EventBus) Dropped() uint64 {
	return eb.dropped.Load()
}
