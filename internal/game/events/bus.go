package events

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

type funcHandler struct {
	id      string
	handler EventHandler
}

// EventBus delivers events synchronously, in subscription order, so that
// a replayed session produces the same event stream.
type EventBus struct {
	mu           sync.RWMutex
	subscribers  []Subscriber
	funcHandlers map[string][]funcHandler
	nextHandler  int
	logger       zerolog.Logger
}

var _ Bus = (*EventBus)(nil)

// NewEventBus creates a new event bus instance
func NewEventBus(logger zerolog.Logger) *EventBus {
	return &EventBus{
		funcHandlers: make(map[string][]funcHandler),
		logger:       logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds a subscriber. Subscribing an ID twice replaces the
// earlier subscriber in place.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for i, s := range eb.subscribers {
		if s.ID() == subscriber.ID() {
			eb.subscribers[i] = subscriber
			return
		}
	}
	eb.subscribers = append(eb.subscribers, subscriber)
	eb.logger.Debug().
		Str("subscriber_id", subscriber.ID()).
		Msg("Subscriber added to event bus")
}

// Unsubscribe removes a subscriber from the event bus
func (eb *EventBus) Unsubscribe(subscriberID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for i, s := range eb.subscribers {
		if s.ID() == subscriberID {
			eb.subscribers = append(eb.subscribers[:i], eb.subscribers[i+1:]...)
			eb.logger.Debug().
				Str("subscriber_id", subscriberID).
				Msg("Subscriber removed from event bus")
			return
		}
	}
}

// SubscribeFunc registers handler for one event type and returns an ID
// usable with UnsubscribeFunc.
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextHandler++
	id := fmt.Sprintf("%s_func_%d", eventType, eb.nextHandler)
	eb.funcHandlers[eventType] = append(eb.funcHandlers[eventType], funcHandler{id: id, handler: handler})
	eb.logger.Debug().
		Str("event_type", eventType).
		Str("handler_id", id).
		Msg("Function handler added to event bus")
	return id
}

// UnsubscribeFunc removes a handler registered with SubscribeFunc.
func (eb *EventBus) UnsubscribeFunc(handlerID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for eventType, handlers := range eb.funcHandlers {
		for i, h := range handlers {
			if h.id == handlerID {
				eb.funcHandlers[eventType] = append(handlers[:i], handlers[i+1:]...)
				return
			}
		}
	}
}

// Publish sends an event to all interested subscribers, then to function
// handlers. A panicking receiver is logged and does not stop delivery.
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	subscribers := append([]Subscriber(nil), eb.subscribers...)
	handlers := append([]funcHandler(nil), eb.funcHandlers[event.Type()]...)
	eb.mu.RUnlock()

	eventType := event.Type()
	eb.logger.Debug().
		Str("event_type", eventType).
		Str("session_id", event.SessionID()).
		Msg("Publishing event")

	for _, subscriber := range subscribers {
		if !subscriber.InterestedIn(eventType) {
			continue
		}
		eb.deliver(eventType, subscriber.ID(), func() { subscriber.HandleEvent(event) })
	}
	for _, h := range handlers {
		eb.deliver(eventType, h.id, func() { h.handler(event) })
	}
}

func (eb *EventBus) deliver(eventType, receiver string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("receiver", receiver).
				Str("event_type", eventType).
				Interface("panic", r).
				Msg("Event receiver panicked")
		}
	}()
	fn()
}

// GetSubscriberCount returns the number of subscribers for debugging
func (eb *EventBus) GetSubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// GetFuncHandlerCount returns the number of function handlers for a specific event type
func (eb *EventBus) GetFuncHandlerCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.funcHandlers[eventType])
}
