package events

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/war/internal/game/core"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	received := false
	var receivedEvent Event

	bus.SubscribeFunc(TypeSessionStarted, func(e Event) {
		received = true
		receivedEvent = e
	})

	bus.Publish(NewSessionStartedEvent("test-session", "Azul", 5, "canonical", 1))

	assert.True(t, received, "Event handler should have been called")
	assert.NotNil(t, receivedEvent)
	assert.Equal(t, TypeSessionStarted, receivedEvent.Type())
	assert.Equal(t, "test-session", receivedEvent.SessionID())
	assert.WithinDuration(t, time.Now(), receivedEvent.Timestamp(), time.Second)
}

func TestEventBusMultipleHandlers(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	var order []int
	id1 := bus.SubscribeFunc(TypeMissionEvaluated, func(e Event) { order = append(order, 1) })
	id2 := bus.SubscribeFunc(TypeMissionEvaluated, func(e Event) { order = append(order, 2) })
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, bus.GetFuncHandlerCount(TypeMissionEvaluated))

	bus.Publish(NewMissionEvaluatedEvent("s", "Azul", 1, "Conquer 3 territories", false))
	assert.Equal(t, []int{1, 2}, order)

	bus.UnsubscribeFunc(id1)
	assert.Equal(t, 1, bus.GetFuncHandlerCount(TypeMissionEvaluated))
	bus.Publish(NewMissionEvaluatedEvent("s", "Azul", 2, "Conquer 3 territories", false))
	assert.Equal(t, []int{1, 2, 2}, order)
}

// TestSubscriber is a test implementation of Subscriber
type TestSubscriber struct {
	id              string
	interestedTypes map[string]bool
	receivedEvents  []Event
}

func (ts *TestSubscriber) ID() string { return ts.id }

func (ts *TestSubscriber) HandleEvent(e Event) {
	ts.receivedEvents = append(ts.receivedEvents, e)
}

func (ts *TestSubscriber) InterestedIn(eventType string) bool {
	if ts.interestedTypes == nil {
		return true
	}
	return ts.interestedTypes[eventType]
}

func TestEventBusSubscriber(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	subscriber := &TestSubscriber{
		id: "test-subscriber",
		interestedTypes: map[string]bool{
			TypeSessionStarted: true,
			TypeSessionEnded:   true,
		},
	}
	bus.Subscribe(subscriber)
	assert.Equal(t, 1, bus.GetSubscriberCount())

	bus.Publish(NewSessionStartedEvent("s", "Azul", 5, "canonical", 1))
	bus.Publish(NewActionSubmittedEvent("s", 1, &core.QuitAction{}))
	bus.Publish(NewSessionEndedEvent("s", "Azul", 1, false, "quit", time.Minute))

	assert.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, TypeSessionStarted, subscriber.receivedEvents[0].Type())
	assert.Equal(t, TypeSessionEnded, subscriber.receivedEvents[1].Type())

	bus.Unsubscribe(subscriber.ID())
	assert.Equal(t, 0, bus.GetSubscriberCount())
	bus.Publish(NewSessionStartedEvent("s", "Azul", 5, "canonical", 1))
	assert.Len(t, subscriber.receivedEvents, 2)
}

func TestEventBusDeliveryOrder(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	var order []string
	for _, id := range []string{"c", "a", "b"} {
		id := id
		bus.Subscribe(&orderSubscriber{id: id, log: &order})
	}
	bus.Publish(NewActionSubmittedEvent("s", 1, &core.CheckMissionAction{}))
	assert.Equal(t, []string{"c", "a", "b"}, order)

	// Re-subscribing replaces in place.
	bus.Subscribe(&orderSubscriber{id: "a", log: &order})
	assert.Equal(t, 3, bus.GetSubscriberCount())
}

type orderSubscriber struct {
	id  string
	log *[]string
}

func (o *orderSubscriber) ID() string               { return o.id }
func (o *orderSubscriber) HandleEvent(Event)        { *o.log = append(*o.log, o.id) }
func (o *orderSubscriber) InterestedIn(string) bool { return true }

func TestEventBusRecoversPanics(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	called := false
	bus.SubscribeFunc(TypeActionRejected, func(Event) { panic("boom") })
	bus.SubscribeFunc(TypeActionRejected, func(Event) { called = true })

	assert.NotPanics(t, func() {
		bus.Publish(NewActionRejectedEvent("s", 1, &core.AttackAction{}, errors.New("nope")))
	})
	assert.True(t, called, "handlers after a panicking one still run")
}

func TestEventPublisherAdapter(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())
	adapter := NewEventPublisherAdapter(bus)

	count := 0
	bus.SubscribeFunc(TypeActionRejected, func(Event) { count++ })

	adapter.Publish(NewActionRejectedEvent("s", 1, &core.AttackAction{}, core.ErrSameTerritory))
	adapter.Publish("not an event")
	assert.Equal(t, 1, count)
}
