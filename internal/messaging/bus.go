package messaging

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/salesgo/backend/domain"
)

// Handler consumes one published event.
type Handler func(ctx context.Context, event domain.Event) error

// Bus is an in-process event transport. It is a long-lived handle constructed
// during wiring and passed explicitly to whoever publishes, never reached
// through package-level state. Handlers run sequentially on the publisher's
// goroutine.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *zap.Logger
}

func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for the named event.
func (b *Bus) Subscribe(name string, handler Handler) {
	if handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], handler)
}

// Publish delivers the event to every subscriber in registration order and
// returns the first handler error. An event without subscribers is dropped
// silently.
func (b *Bus) Publish(ctx context.Context, event domain.Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.EventName()]
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			b.logger.Warn("event handler failed", zap.String("event", event.EventName()), zap.Error(err))
			return err
		}
	}
	return nil
}
