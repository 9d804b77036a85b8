package events

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Handler processes a published event.
type Handler func(Event)

// Bus is a simple in-process publish/subscribe dispatcher. Handlers run
// synchronously on the publishing goroutine.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe registers a handler for an event type.
func (b *Bus) Subscribe(t EventType, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// Publish delivers the event to every subscribed handler.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	hs := b.handlers[event.Type()]
	b.mu.RUnlock()

	for _, h := range hs {
		h(event)
	}
}

// TransactionalPublisher buffers events during a unit of work and forwards
// them to the bus only after a successful commit. Rolled-back work discards
// its events.
type TransactionalPublisher struct {
	bus     *Bus
	mu      sync.Mutex
	pending []Event
}

// NewTransactionalPublisher creates a publisher buffering onto the given bus.
func NewTransactionalPublisher(bus *Bus) *TransactionalPublisher {
	return &TransactionalPublisher{bus: bus}
}

// Publish buffers the event until Flush or Discard.
func (p *TransactionalPublisher) Publish(event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, event)
}

// Flush forwards all buffered events to the bus and clears the buffer.
func (p *TransactionalPublisher) Flush() {
	p.mu.Lock()
	pending := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, e := range pending {
		p.bus.Publish(e)
	}
	if len(pending) > 0 {
		log.Debugf("Flushed %d buffered events", len(pending))
	}
}

// Discard drops all buffered events.
func (p *TransactionalPublisher) Discard() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = nil
}
