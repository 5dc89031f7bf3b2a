// Package view binds observation of emitters and delegated DOM-style events
// to a render function. It has no DOM dependency of its own: the root element
// and event targets are supplied through the Element interface.
package view

import (
	"sync"

	"obsui/pkg/emitter"
)

// Element is the part of a DOM node a view needs.
type Element interface {
	// Matches reports whether the element matches a CSS selector.
	Matches(selector string) bool
	// Listen attaches fn for event and returns its remover.
	Listen(event string, fn func(DOMEvent)) (remove func())
}

// DOMEvent is a platform event delivered to the view's root element.
type DOMEvent struct {
	Type   string
	Target Element
	// Value carries event specific data, e.g. an input's value.
	Value any
}

// DOMHandler is a delegated event callback. The pointer is its identity for
// RemoveDOMEvent.
type DOMHandler struct {
	fn func(*View, DOMEvent)
}

// DOMHandlerFunc wraps fn into a new DOMHandler.
func DOMHandlerFunc(fn func(*View, DOMEvent)) *DOMHandler { return &DOMHandler{fn: fn} }

// Observable is any emitter accepting observers.
type Observable interface {
	AddObserver(observer any, event string, h *emitter.Handler) *emitter.Emitter
	RemoveObserver(observer any, event string, handlers ...*emitter.Handler) *emitter.Emitter
}

type binding struct {
	selector string
	h        *DOMHandler
}

// View couples an element, an optional model and a render function.
type View struct {
	emitter.Emitter

	Elem  Element
	Model any

	mu       sync.Mutex
	render   func(v *View, args ...any)
	bindings map[string][]binding
	detach   map[string]func()
}

// New constructs a view and runs the setup callback last.
func New(opts ...Option) *View {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	v := &View{
		Elem:     o.elem,
		Model:    o.model,
		render:   o.render,
		bindings: make(map[string][]binding),
		detach:   make(map[string]func()),
	}
	v.SetTarget(v)
	v.OnAll(o.events)
	for _, d := range o.domEvents {
		v.AddDOMEvent(d.Event, d.Selector, d.Handler)
	}
	if o.setup != nil {
		o.setup(v)
	}
	return v
}

// Observe registers h on target's event with the view as observer.
func (v *View) Observe(target Observable, event string, h *emitter.Handler) *View {
	if target != nil {
		target.AddObserver(v, event, h)
	}
	return v
}

// Unobserve drops the view's callbacks for event on target; with no handler
// given, all of them.
func (v *View) Unobserve(target Observable, event string, handlers ...*emitter.Handler) *View {
	if target != nil {
		target.RemoveObserver(v, event, handlers...)
	}
	return v
}

// SetRender replaces the render function.
func (v *View) SetRender(fn func(v *View, args ...any)) *View {
	v.mu.Lock()
	v.render = fn
	v.mu.Unlock()
	return v
}

// Render calls the render function with args.
func (v *View) Render(args ...any) *View {
	v.mu.Lock()
	fn := v.render
	v.mu.Unlock()
	if fn != nil {
		fn(v, args...)
	}
	return v
}

// AddDOMEvent delegates event from the root element to h when the event
// target matches selector. The root listener is attached with the first
// binding for event.
func (v *View) AddDOMEvent(event, selector string, h *DOMHandler) *View {
	if h == nil {
		return v
	}
	v.mu.Lock()
	first := len(v.bindings[event]) == 0
	v.bindings[event] = append(v.bindings[event], binding{selector: selector, h: h})
	elem := v.Elem
	v.mu.Unlock()
	if first && elem != nil {
		remove := elem.Listen(event, v.dispatch)
		v.mu.Lock()
		v.detach[event] = remove
		v.mu.Unlock()
	}
	return v
}

// RemoveDOMEvent removes bindings for event. An empty selector removes all of
// them; otherwise bindings on selector, limited to handlers when given. The
// root listener is detached once no binding is left.
func (v *View) RemoveDOMEvent(event, selector string, handlers ...*DOMHandler) *View {
	v.mu.Lock()
	list := v.bindings[event]
	kept := list[:0:0]
	for _, b := range list {
		if selector == "" || (b.selector == selector && (len(handlers) == 0 || hasDOMHandler(handlers, b.h))) {
			continue
		}
		kept = append(kept, b)
	}
	v.bindings[event] = kept
	var remove func()
	if len(kept) == 0 {
		remove = v.detach[event]
		delete(v.detach, event)
	}
	v.mu.Unlock()
	if remove != nil {
		remove()
	}
	return v
}

// Dispatch runs the bindings of e.Type whose selector matches e.Target, in
// registration order.
func (v *View) Dispatch(e DOMEvent) { v.dispatch(e) }

func (v *View) dispatch(e DOMEvent) {
	v.mu.Lock()
	list := append([]binding(nil), v.bindings[e.Type]...)
	v.mu.Unlock()
	for _, b := range list {
		if e.Target != nil && e.Target.Matches(b.selector) && b.h.fn != nil {
			b.h.fn(v, e)
		}
	}
}

func hasDOMHandler(hs []*DOMHandler, h *DOMHandler) bool {
	for _, x := range hs {
		if x == h {
			return true
		}
	}
	return false
}
