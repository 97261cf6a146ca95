package ports

import "github.com/lively-votes/api/internal/core/domain"

// Broker is the process-wide publish/subscribe channel used to tell
// connected clients that a poll's tally changed. Delivery is best
// effort: a subscriber that is gone or slow simply misses the event.
type Broker interface {
	Subscribe(id string) <-chan domain.TallyEvent
	Unsubscribe(id string)
	Publish(event domain.TallyEvent)
	Close() error
}
