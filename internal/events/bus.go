package events

import (
	"sync"
	"time"
)

// Event represents a system event with its payload.
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
	Module    string                 `json:"module"`
}

// Handler receives published events. Handlers must not block; slow consumers
// should buffer internally.
type Handler func(event *Event)

// Bus is an in-process publish/subscribe event bus.
type Bus struct {
	mu          sync.RWMutex
	handlers    map[EventType][]Handler
	allHandlers map[uint64]Handler
	nextAllID   uint64
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{
		handlers:    make(map[EventType][]Handler),
		allHandlers: make(map[uint64]Handler),
	}
}

// Subscribe registers a handler for an event type.
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll registers a handler for every event type. The returned func
// removes the handler; callers with a bounded lifetime, like websocket
// connections, must call it on teardown.
func (b *Bus) SubscribeAll(handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextAllID
	b.nextAllID++
	b.allHandlers[id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.allHandlers, id)
	}
}

// Emit publishes an event to all handlers subscribed to its type.
// Handlers run synchronously on the caller's goroutine.
func (b *Bus) Emit(eventType EventType, module string, data map[string]interface{}) {
	event := &Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
		Module:    module,
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers[eventType])+len(b.allHandlers))
	handlers = append(handlers, b.handlers[eventType]...)
	for _, handler := range b.allHandlers {
		handlers = append(handlers, handler)
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}
