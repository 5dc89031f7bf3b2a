package todo

// Published event names.
const (
	EventAdded     = "add"
	EventRemoved   = "remove"
	EventChanged   = "change"
	EventRoute     = "route"
	EventSaveError = "save_error"
)

// Event represents a service lifecycle event.
// Name plus the todo ID when one is concerned, optional fields via key/values.
type Event struct {
	Name   string
	TodoID string
	Fields map[string]any
}

// EventPublisher receives events from the service. Implementations should be
// lightweight and non-blocking; Publish runs under the service lock and must
// not call back into the service.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
