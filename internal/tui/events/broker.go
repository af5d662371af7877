package events

import (
	"sync"
)

const wildcard EventType = "*"

// Broker manages event distribution
type Broker struct {
	subscribers map[EventType][]chan Event
	// owned tracks every live channel so a channel subscribed to several
	// types is closed exactly once.
	owned      map[<-chan Event]chan Event
	mu         sync.RWMutex
	bufferSize int
}

// NewBroker creates a new event broker
func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[EventType][]chan Event),
		owned:       make(map[<-chan Event]chan Event),
		bufferSize:  32,
	}
}

// Subscribe creates a subscription to specific event types. With no types
// the subscription receives everything.
func (b *Broker) Subscribe(eventTypes ...EventType) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.bufferSize)
	b.owned[ch] = ch

	if len(eventTypes) == 0 {
		eventTypes = []EventType{wildcard}
	}
	for _, eventType := range eventTypes {
		b.subscribers[eventType] = append(b.subscribers[eventType], ch)
	}

	return ch
}

// Unsubscribe removes a subscription from every type and closes it
func (b *Broker) Unsubscribe(sub <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, ok := b.owned[sub]
	if !ok {
		return
	}
	for eventType := range b.subscribers {
		b.removeChannel(eventType, ch)
	}
	delete(b.owned, sub)
	close(ch)
}

// Publish sends an event to all subscribers. Slow subscribers with a full
// buffer miss the event rather than block the publisher.
func (b *Broker) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	seen := make(map[chan Event]bool)
	deliver := func(subs []chan Event) {
		for _, ch := range subs {
			if seen[ch] {
				continue
			}
			seen[ch] = true
			select {
			case ch <- event:
			default:
			}
		}
	}
	deliver(b.subscribers[event.Type])
	deliver(b.subscribers[wildcard])
}

// PublishAsync sends an event asynchronously
func (b *Broker) PublishAsync(event Event) {
	go b.Publish(event)
}

func (b *Broker) removeChannel(eventType EventType, target chan Event) {
	subscribers := b.subscribers[eventType]
	for i, ch := range subscribers {
		if ch == target {
			b.subscribers[eventType] = append(subscribers[:i], subscribers[i+1:]...)
			break
		}
	}
	if len(b.subscribers[eventType]) == 0 {
		delete(b.subscribers, eventType)
	}
}

// Clear removes all subscriptions
func (b *Broker) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.owned {
		close(ch)
	}
	b.subscribers = make(map[EventType][]chan Event)
	b.owned = make(map[<-chan Event]chan Event)
}
