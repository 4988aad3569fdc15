package service

import "sync"

// Event is a change to a registry resource.
type Event struct {
	Resource string // "assets"
	Action   string // "registered"
	ID       string // layer ID
}

// EventBus fans events out to subscribers without blocking the publisher.
type EventBus struct {
	mu     sync.RWMutex
	buffer int
	subs   map[chan Event]struct{}
}

// NewEventBus creates a bus whose subscriber channels hold buffer events.
func NewEventBus(buffer int) *EventBus {
	if buffer <= 0 {
		buffer = 16
	}
	return &EventBus{buffer: buffer, subs: make(map[chan Event]struct{})}
}

// Publish sends e to every subscriber with room for it. Slow subscribers
// miss events.
func (b *EventBus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe returns a channel that receives future events.
func (b *EventBus) Subscribe() chan Event {
	ch := make(chan Event, b.buffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *EventBus) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
	close(ch)
}

// Subscribers returns the current subscriber count.
func (b *EventBus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
