package todo

import "sync"

// MemoryPublisher records published events in order. Tests use it to assert
// what the service announced.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

// NewMemoryPublisher returns an empty recorder.
func NewMemoryPublisher() *MemoryPublisher { return &MemoryPublisher{} }

// Publish records e.
func (p *MemoryPublisher) Publish(e Event) {
	p.mu.Lock()
	p.events = append(p.events, e)
	p.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

// Names returns the event names in publish order.
func (p *MemoryPublisher) Names() []string {
	evts := p.Events()
	out := make([]string, len(evts))
	for i, e := range evts {
		out[i] = e.Name
	}
	return out
}

// Reset drops the recorded events.
func (p *MemoryPublisher) Reset() {
	p.mu.Lock()
	p.events = nil
	p.mu.Unlock()
}
