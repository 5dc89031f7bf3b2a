package view

import "obsui/pkg/emitter"

// DOMBinding is a delegated binding given at construction.
type DOMBinding struct {
	Event    string
	Selector string
	Handler  *DOMHandler
}

type options struct {
	elem      Element
	model     any
	render    func(*View, ...any)
	domEvents []DOMBinding
	events    map[string]*emitter.Handler
	setup     func(*View)
}

// Option configures a View.
type Option func(*options)

// WithElem sets the root element.
func WithElem(e Element) Option { return func(o *options) { o.elem = e } }

// WithModel attaches a model, or any other value, to the view.
func WithModel(m any) Option { return func(o *options) { o.model = m } }

// WithRender sets the render function.
func WithRender(fn func(*View, ...any)) Option { return func(o *options) { o.render = fn } }

// WithDOMEvents adds delegated bindings.
func WithDOMEvents(bindings ...DOMBinding) Option {
	return func(o *options) { o.domEvents = append(o.domEvents, bindings...) }
}

// WithEvents attaches handlers to the view's own emitter.
func WithEvents(events map[string]*emitter.Handler) Option {
	return func(o *options) { o.events = events }
}

// WithSetup runs fn once the view is constructed.
func WithSetup(fn func(*View)) Option { return func(o *options) { o.setup = fn } }
