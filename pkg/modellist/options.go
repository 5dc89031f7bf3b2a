package modellist

import (
	"obsui/pkg/emitter"
	"obsui/pkg/model"
)

type options struct {
	models     []*model.Model
	defaults   map[string]any
	modelSetup func(*model.Model)
	events     map[string]*emitter.Handler
	setup      func(*List)
}

// Option configures a List at construction.
type Option func(*options)

// WithModels adds existing models silently.
func WithModels(ms ...*model.Model) Option {
	return func(o *options) { o.models = append(o.models, ms...) }
}

// WithDefaults sets the properties every newly built model starts from.
func WithDefaults(defaults map[string]any) Option {
	return func(o *options) {
		o.defaults = make(map[string]any, len(defaults))
		for k, v := range defaults {
			o.defaults[k] = v
		}
	}
}

// WithModelSetup runs fn on each model the list builds.
func WithModelSetup(fn func(*model.Model)) Option {
	return func(o *options) { o.modelSetup = fn }
}

// WithEvents attaches list handlers before initial models are added.
func WithEvents(events map[string]*emitter.Handler) Option {
	return func(o *options) { o.events = events }
}

// WithSetup runs fn once the list is constructed.
func WithSetup(fn func(*List)) Option {
	return func(o *options) { o.setup = fn }
}
