package model

import "obsui/pkg/emitter"

type options struct {
	initial map[string]any
	events  map[string]*emitter.Handler
	setup   func(*Model)
}

// Option configures a Model at construction.
type Option func(*options)

// WithInitial sets initial properties without emitting events.
func WithInitial(props map[string]any) Option {
	return func(o *options) {
		if o.initial == nil {
			o.initial = make(map[string]any, len(props))
		}
		for k, v := range props {
			o.initial[k] = v
		}
	}
}

// WithEvents attaches handlers before any initial value is stored.
func WithEvents(events map[string]*emitter.Handler) Option {
	return func(o *options) { o.events = events }
}

// WithSetup runs fn once the model is constructed.
func WithSetup(fn func(*Model)) Option {
	return func(o *options) { o.setup = fn }
}

// MutateOption modifies a single Set, SetMany or Unset call.
type MutateOption func(*mutate)

type mutate struct {
	silent bool
}

// Silent suppresses the events of a mutation.
func Silent() MutateOption { return func(m *mutate) { m.silent = true } }

func isSilent(opts []MutateOption) bool {
	var m mutate
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m.silent
}

// IsSilent reports whether opts request a silent mutation. Collections use it
// to decide about their own notifications.
func IsSilent(opts ...MutateOption) bool { return isSilent(opts) }
