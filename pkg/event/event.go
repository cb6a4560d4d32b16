// Package event is a small synchronous in-process event dispatcher.
//
//	event.Listen(events.OrderPlaced, func(ctx context.Context, p interface{}) { ... })
//	event.Fire(ctx, events.OrderPlaced, events.OrderPlacedPayload{...})
//
// Listeners run on the caller's goroutine, after the state change they
// describe has been committed. A panicking listener is logged and skipped.
package event

import (
	"context"
	"sync"

	"github.com/shashiranjanraj/restopos/pkg/logger"
)

// Name identifies an event.
type Name string

// Handler receives an event payload.
type Handler func(ctx context.Context, payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[Name][]Handler{}
)

// Listen registers a handler for the given event name.
func Listen(name Name, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[name] = append(handlers[name], handler)
}

// Fire dispatches an event to all registered listeners in registration order.
func Fire(ctx context.Context, name Name, payload interface{}) {
	mu.RLock()
	hs := make([]Handler, len(handlers[name]))
	copy(hs, handlers[name])
	mu.RUnlock()

	for _, h := range hs {
		call(ctx, name, h, payload)
	}
}

func call(ctx context.Context, name Name, h Handler, payload interface{}) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.WithCtx(ctx).Error("event: listener panicked", "event", string(name), "panic", rec)
		}
	}()
	h(ctx, payload)
}

// Flush removes all listeners (useful in tests).
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[Name][]Handler{}
}
