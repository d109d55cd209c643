package utilities

import "sync"

// Event names published by the response pipeline.
const (
	EventResultCreated = "result_created"
)

type EventHandler func(interface{})

// EventBus decouples the submission path from post-commit work such as
// report pre-rendering. Handlers run asynchronously; anything that must be
// durable before the request returns belongs in the transaction, not here.
type EventBus struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(event string, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.handlers[event] = append(eb.handlers[event], handler)
}

func (eb *EventBus) Publish(event string, data interface{}) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if handlers, found := eb.handlers[event]; found {
		for _, handler := range handlers {
			go handler(data)
		}
	}
}

// Global instance
var GlobalEventBus = NewEventBus()
