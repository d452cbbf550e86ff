package events

// EventPublisherAdapter adapts the EventBus to work with the processor.EventPublisher interface
type EventPublisherAdapter struct {
	bus Publisher
}

// NewEventPublisherAdapter creates a new adapter
func NewEventPublisherAdapter(bus Publisher) *EventPublisherAdapter {
	return &EventPublisherAdapter{bus: bus}
}

// Publish implements processor.EventPublisher. Values that are not events
// are dropped.
func (a *EventPublisherAdapter) Publish(event interface{}) {
	if e, ok := event.(Event); ok {
		a.bus.Publish(e)
	}
}
