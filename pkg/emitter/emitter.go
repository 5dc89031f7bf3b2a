// Package emitter implements named-event publish/subscribe with two
// independent notification channels:
//
//   - handlers, attached directly to the emitter with On/Off;
//   - observers, registered by an external owner with AddObserver and
//     removed by that owner with RemoveObserver.
//
// An emission calls every handler for the event in registration order, then
// every observer callback in registration order. Ordering is resolved at call
// time: a callback removed before its slot is reached is skipped, and a
// callback added during the emission is called once its slot is reached.
//
// The emitter never recovers panics. A panicking callback aborts the rest of
// that emission and propagates to the caller of Emit.
package emitter

import (
	"reflect"
	"sort"
	"sync"
)

// Handler is a registered callback. The pointer is its identity: registering
// the same *Handler twice yields two calls per emission, and Off removes every
// occurrence at once.
type Handler struct {
	fn func(Event)
}

// HandlerFunc wraps fn into a new Handler.
func HandlerFunc(fn func(Event)) *Handler { return &Handler{fn: fn} }

func (h *Handler) call(e Event) {
	if h == nil || h.fn == nil {
		return
	}
	h.fn(e)
}

type handlerEntry struct {
	seq uint64
	h   *Handler
}

type observerEntry struct {
	seq      uint64
	observer any
	h        *Handler
}

// Emitter holds the handler and observer tables. The zero value is ready to
// use. An Emitter must not be copied after first use.
type Emitter struct {
	mu        sync.Mutex
	seq       uint64
	target    any
	handlers  map[string][]handlerEntry
	observers map[string][]observerEntry
}

// New returns an emitter with the given initial handlers attached. Events are
// registered in sorted name order.
func New(events map[string]*Handler) *Emitter {
	em := &Emitter{}
	em.OnAll(events)
	return em
}

// OnAll attaches a handler per event name, in sorted name order.
func (em *Emitter) OnAll(events map[string]*Handler) *Emitter {
	names := make([]string, 0, len(events))
	for name := range events {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		em.On(name, events[name])
	}
	return em
}

// SetTarget sets the value reported as Event.Target. Types that embed an
// Emitter call this with themselves so consumers see the owning object.
func (em *Emitter) SetTarget(target any) {
	em.mu.Lock()
	em.target = target
	em.mu.Unlock()
}

// On appends h to the handlers for event. Duplicates are kept.
func (em *Emitter) On(event string, h *Handler) *Emitter {
	if h == nil {
		return em
	}
	em.mu.Lock()
	defer em.mu.Unlock()
	if em.handlers == nil {
		em.handlers = make(map[string][]handlerEntry)
	}
	em.seq++
	em.handlers[event] = append(em.handlers[event], handlerEntry{seq: em.seq, h: h})
	return em
}

// Off removes every occurrence of each given handler from event, keeping the
// relative order of the rest. With no handlers it clears the event.
func (em *Emitter) Off(event string, handlers ...*Handler) *Emitter {
	em.mu.Lock()
	defer em.mu.Unlock()
	list, ok := em.handlers[event]
	if !ok {
		return em
	}
	if len(handlers) == 0 {
		delete(em.handlers, event)
		return em
	}
	kept := make([]handlerEntry, 0, len(list))
	for _, e := range list {
		if !containsHandler(handlers, e.h) {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		delete(em.handlers, event)
		return em
	}
	em.handlers[event] = kept
	return em
}

// AddObserver registers h to be called on event with observer as its bound
// receiver (Event.Observer). observer must be comparable, normally a pointer;
// registrations with a non-comparable observer are ignored.
func (em *Emitter) AddObserver(observer any, event string, h *Handler) *Emitter {
	if h == nil || !isComparable(observer) {
		return em
	}
	em.mu.Lock()
	defer em.mu.Unlock()
	if em.observers == nil {
		em.observers = make(map[string][]observerEntry)
	}
	em.seq++
	em.observers[event] = append(em.observers[event], observerEntry{seq: em.seq, observer: observer, h: h})
	return em
}

// RemoveObserver removes the callbacks observer registered for event. With no
// handlers given, all of that observer's callbacks for event are removed.
func (em *Emitter) RemoveObserver(observer any, event string, handlers ...*Handler) *Emitter {
	if !isComparable(observer) {
		return em
	}
	em.mu.Lock()
	defer em.mu.Unlock()
	list, ok := em.observers[event]
	if !ok {
		return em
	}
	kept := make([]observerEntry, 0, len(list))
	for _, e := range list {
		if e.observer == observer && (len(handlers) == 0 || containsHandler(handlers, e.h)) {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) == 0 {
		delete(em.observers, event)
		return em
	}
	em.observers[event] = kept
	return em
}

// Count returns the number of handlers plus observer callbacks for event.
func (em *Emitter) Count(event string) int {
	em.mu.Lock()
	defer em.mu.Unlock()
	return len(em.handlers[event]) + len(em.observers[event])
}

// HasHandlers reports whether anything listens for event.
func (em *Emitter) HasHandlers(event string) bool { return em.Count(event) > 0 }

// Emit notifies handlers, then observers, of event. data keys are merged flat
// into the event record; "target" and "type" are reserved.
func (em *Emitter) Emit(event string, data Data) *Emitter {
	em.mu.Lock()
	target := em.target
	em.mu.Unlock()
	if target == nil {
		target = em
	}
	e := Event{Target: target, Type: event, data: data.clone()}

	var last uint64
	for {
		h, seq, ok := em.nextHandler(event, last)
		if !ok {
			break
		}
		last = seq
		h.call(e)
	}

	last = 0
	for {
		o, ok := em.nextObserver(event, last)
		if !ok {
			break
		}
		last = o.seq
		oe := e
		oe.Observer = o.observer
		o.h.call(oe)
	}
	return em
}

// nextHandler returns the first handler for event registered after seq.
// Entries are kept in ascending seq order, so a binary search suffices.
func (em *Emitter) nextHandler(event string, seq uint64) (*Handler, uint64, bool) {
	em.mu.Lock()
	defer em.mu.Unlock()
	list := em.handlers[event]
	i := sort.Search(len(list), func(i int) bool { return list[i].seq > seq })
	if i >= len(list) {
		return nil, 0, false
	}
	return list[i].h, list[i].seq, true
}

func (em *Emitter) nextObserver(event string, seq uint64) (observerEntry, bool) {
	em.mu.Lock()
	defer em.mu.Unlock()
	list := em.observers[event]
	i := sort.Search(len(list), func(i int) bool { return list[i].seq > seq })
	if i >= len(list) {
		return observerEntry{}, false
	}
	return list[i], true
}

// isComparable reports whether observer can be matched with ==.
func isComparable(observer any) bool {
	t := reflect.TypeOf(observer)
	return t == nil || t.Comparable()
}

func containsHandler(hs []*Handler, h *Handler) bool {
	for _, x := range hs {
		if x == h {
			return true
		}
	}
	return false
}
