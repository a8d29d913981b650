// Package events carries change notifications from the library service to
// external view components.
//
// The bus is deliberately minimal: delivery is synchronous on the mutating
// goroutine, strictly after the transaction has committed, so subscribers
// always observe durable state. No GUI toolkit types leak in here; a
// subscriber is just a callback.
package events

import "sync"

// Kind identifies which entity collection changed.
type Kind string

const (
	KindBooks         Kind = "books"
	KindMembers       Kind = "members"
	KindCategories    Kind = "categories"
	KindBorrowRecords Kind = "borrowRecords"
)

// EntityChanged is published once per affected entity kind after every
// successful mutation.
type EntityChanged struct {
	Kind Kind
}

// Handler consumes change notifications.
type Handler func(EntityChanged)

// Bus is a typed publish/subscribe hub. Safe for concurrent subscription;
// publication happens from the single writer.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[int]Handler)}
}

// Subscribe registers a handler and returns a function that removes it.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
	}
}

// Publish delivers the event to every subscriber, synchronously.
func (b *Bus) Publish(e EntityChanged) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, h := range b.handlers {
		h(e)
	}
}
