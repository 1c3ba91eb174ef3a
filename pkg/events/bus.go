package events

import "sync"

// Type identifies an application event
type Type string

// Application events emitted by the client stores
const (
	FavoriteAdded   Type = "favorite:added"
	FavoriteRemoved Type = "favorite:removed"
	UserLoggedIn    Type = "user:logged-in"
	UserLoggedOut   Type = "user:logged-out"
	ErrorOccurred   Type = "error:occurred"
)

// Handler consumes an event payload
type Handler func(payload any)

// Bus is an in-process publish/subscribe fan-out. Handlers for an event are
// invoked synchronously, in subscription order, on the emitting goroutine.
type Bus struct {
	mu       sync.Mutex
	handlers map[Type][]*subscription
}

type subscription struct {
	handler Handler
	once    bool
}

// NewBus creates an empty event bus
func NewBus() *Bus {
	return &Bus{handlers: make(map[Type][]*subscription)}
}

// On subscribes a handler to an event. The returned function unsubscribes it.
func (b *Bus) On(event Type, handler Handler) (off func()) {
	return b.subscribe(event, handler, false)
}

// Once subscribes a handler that is removed after its first invocation
func (b *Bus) Once(event Type, handler Handler) (off func()) {
	return b.subscribe(event, handler, true)
}

func (b *Bus) subscribe(event Type, handler Handler, once bool) func() {
	sub := &subscription{handler: handler, once: once}

	b.mu.Lock()
	b.handlers[event] = append(b.handlers[event], sub)
	b.mu.Unlock()

	return func() { b.remove(event, sub) }
}

func (b *Bus) remove(event Type, sub *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[event]
	for i, s := range subs {
		if s == sub {
			b.handlers[event] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(b.handlers[event]) == 0 {
		delete(b.handlers, event)
	}
}

// Emit delivers the payload to every handler subscribed to the event
func (b *Bus) Emit(event Type, payload any) {
	b.mu.Lock()
	subs := make([]*subscription, len(b.handlers[event]))
	copy(subs, b.handlers[event])
	b.mu.Unlock()

	for _, sub := range subs {
		if sub.once {
			b.remove(event, sub)
		}
		sub.handler(payload)
	}
}

// ListenerCount reports how many handlers are subscribed to the event
func (b *Bus) ListenerCount(event Type) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[event])
}

// Clear removes every subscription
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = make(map[Type][]*subscription)
}
