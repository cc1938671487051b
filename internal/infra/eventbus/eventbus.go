// Package eventbus is an in-memory publish/subscribe bus. The trip service
// publishes one event per generation; the history recorder consumes them.
//
//   - Buffered channel per subscriber.
//   - Publish never blocks: a full buffer drops the event and calls OnDrop.
//   - Close closes every subscriber channel so consumer loops can exit.
package eventbus

import "sync"

// Topic names a stream of events.
type Topic string

// TopicGenerationCompleted carries a trip.GenerationEvent after every
// upstream call, successful or not.
const TopicGenerationCompleted Topic = "generation.completed"

// Event is a single published message.
type Event struct {
	Topic   Topic
	Payload any
}

// EventBus is the interface for publishing and subscribing to topics.
type EventBus interface {
	Publish(topic Topic, payload any)
	Subscribe(topic Topic) <-chan Event
}

const defaultBufferSize = 100

// Bus is the in-memory implementation of EventBus.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[Topic][]chan Event
	closed      bool
	bufferSize  int

	// OnDrop, if set, is called for each event a subscriber could not take.
	OnDrop func(Event)
}

// New returns a Bus with the default per-subscriber buffer.
func New() *Bus {
	return NewWithBuffer(defaultBufferSize)
}

// NewWithBuffer returns a Bus whose subscriber channels hold size events.
func NewWithBuffer(size int) *Bus {
	if size < 0 {
		size = 0
	}
	return &Bus{
		subscribers: make(map[Topic][]chan Event),
		bufferSize:  size,
	}
}

// Subscribe registers a new subscriber for topic and returns a read-only channel.
// Subscribing after Close returns an already-closed channel.
func (b *Bus) Subscribe(topic Topic) <-chan Event {
	ch := make(chan Event, b.bufferSize)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	return ch
}

// Publish sends an Event to all subscribers of topic without blocking.
func (b *Bus) Publish(topic Topic, payload any) {
	evt := Event{Topic: topic, Payload: payload}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subscribers[topic] {
		select {
		case ch <- evt:
		default:
			if b.OnDrop != nil {
				b.OnDrop(evt)
			}
		}
	}
}

// Close closes all subscriber channels. Further publishes are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for topic, subs := range b.subscribers {
		for _, ch := range subs {
			close(ch)
		}
		delete(b.subscribers, topic)
	}
}
