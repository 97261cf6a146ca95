// Package broadcast holds the process-wide pub/sub channel that fans
// tally-change events out to connected realtime clients.
package broadcast

import (
	"sync"

	"github.com/lively-votes/api/internal/core/domain"
	"github.com/lively-votes/api/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// subscriberBuffer bounds how far a slow subscriber may fall behind
// before events are dropped for it.
const subscriberBuffer = 64

type memoryBroker struct {
	mu          sync.RWMutex
	subscribers map[string]chan domain.TallyEvent
	closed      bool
}

func NewMemoryBroker() ports.Broker {
	return &memoryBroker{
		subscribers: make(map[string]chan domain.TallyEvent),
	}
}

func (b *memoryBroker) Subscribe(id string) <-chan domain.TallyEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, exists := b.subscribers[id]; exists {
		return ch
	}

	ch := make(chan domain.TallyEvent, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch
	}
	b.subscribers[id] = ch
	return ch
}

func (b *memoryBroker) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, exists := b.subscribers[id]; exists {
		delete(b.subscribers, id)
		close(ch)
	}
}

// Publish delivers the event to every subscriber without blocking. A
// subscriber whose buffer is full misses the event; clients recover by
// refetching on their next view.
func (b *memoryBroker) Publish(event domain.TallyEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			logrus.WithField("subscriber", id).Debug("subscriber buffer full, dropping event")
		}
	}
}

func (b *memoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for id, ch := range b.subscribers {
		delete(b.subscribers, id)
		close(ch)
	}
	return nil
}
