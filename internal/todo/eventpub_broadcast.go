package todo

import "sync"

// Broadcaster fans events out to subscribers. A subscriber whose buffer is
// full misses the event instead of blocking the service.
type Broadcaster struct {
	mu      sync.Mutex
	subs    map[chan Event]struct{}
	dropped uint64
}

// NewBroadcaster returns a Broadcaster without subscribers.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan Event]struct{})}
}

// Publish hands e to every subscriber without blocking.
func (b *Broadcaster) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
			b.dropped++
		}
	}
}

// Subscribe registers a subscriber with the given buffer size. The returned
// cancel func unregisters it and closes the channel; it is safe to call twice.
func (b *Broadcaster) Subscribe(buf int) (<-chan Event, func()) {
	if buf < 1 {
		buf = 1
	}
	ch := make(chan Event, buf)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers returns the number of active subscribers.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Dropped returns how many deliveries were skipped on full buffers.
func (b *Broadcaster) Dropped() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// multiPublisher forwards to every publisher in order.
type multiPublisher []EventPublisher

func (m multiPublisher) Publish(e Event) {
	for _, p := range m {
		p.Publish(e)
	}
}

// Publishers combines publishers; nil entries are skipped.
func Publishers(ps ...EventPublisher) EventPublisher {
	var out multiPublisher
	for _, p := range ps {
		if p != nil {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return noopPublisher{}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}
