package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/leaveflow/pkg/logger"
)

// Event is a fact about a leave request, published once the write that
// produced it has committed.
type Event interface {
	EventType() string
	EventID() string
	OccurredAt() time.Time
	Payload() map[string]interface{}
}

type BaseEvent struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func (e BaseEvent) EventType() string { return e.Type }
func (e BaseEvent) EventID() string { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }
func (e BaseEvent) Payload() map[string]interface{} { return e.Data }

type Handler func(ctx context.Context, event Event) error

// EventBus fans leave events out to in-process subscribers. Delivery happens on
// the publisher's goroutine, so a subscriber sees the request context and its
// logger.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string][]Handler
	logger      *slog.Logger
}

func NewEventBus(log *slog.Logger) *EventBus {
	if log == nil {
		log = logger.LoggerWrapper()
	}
	return &EventBus{
		subscribers: make(map[string][]Handler),
		logger:      log,
	}
}

func (eb *EventBus) Subscribe(eventType string, handler Handler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers[eventType] = append(eb.subscribers[eventType], handler)
	eb.logger.Debug("event subscriber added", "event_type", eventType, "subscribers", len(eb.subscribers[eventType]))
}

// HandlerCount reports how many handlers are subscribed to eventType.
func (eb *EventBus) HandlerCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers[eventType])
}

// PublishSync runs every subscriber of the event's type in subscription order.
// A failing subscriber does not stop the others; all failures are returned
// joined. The write behind the event is already committed either way.
func (eb *EventBus) PublishSync(ctx context.Context, event Event) error {
	eb.mu.RLock()
	handlers := append([]Handler(nil), eb.subscribers[event.EventType()]...)
	eb.mu.RUnlock()

	log := logger.FromOr(ctx, eb.logger).With("event_type", event.EventType(), "event_id", event.EventID())
	if len(handlers) == 0 {
		log.Debug("no subscribers for event")
		return nil
	}

	var errs []error
	for i, handle := range handlers {
		if err := handle(ctx, event); err != nil {
			log.Error("event subscriber failed", "subscriber", i, "error", err)
			errs = append(errs, fmt.Errorf("subscriber %d: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("publish %s: %w", event.EventType(), errors.Join(errs...))
	}
	log.Debug("event delivered", "subscribers", len(handlers))
	return nil
}
