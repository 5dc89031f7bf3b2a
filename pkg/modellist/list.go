// Package modellist provides an ordered, observable collection of models.
//
// A List emits "add" and "remove" with the affected model under "model".
// Models adopted from outside, and models removed, receive the same event
// names with the list under "modelList".
package modellist

import (
	"encoding/json"
	"sync"

	"obsui/pkg/emitter"
	"obsui/pkg/model"
)

// Event payload keys.
const (
	KeyModel     = "model"
	KeyModelList = "modelList"
)

// List is an ordered sequence of model references.
type List struct {
	emitter.Emitter

	mu         sync.RWMutex
	models     []*model.Model
	defaults   map[string]any
	modelSetup func(*model.Model)
}

// New constructs a list. Initial models are added silently, then the setup
// callback runs.
func New(opts ...Option) *List {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	l := &List{
		defaults:   o.defaults,
		modelSetup: o.modelSetup,
	}
	l.SetTarget(l)
	l.OnAll(o.events)
	for _, m := range o.models {
		l.AddModel(m, model.Silent())
	}
	if o.setup != nil {
		o.setup(l)
	}
	return l
}

// Len returns the number of models in the list.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.models)
}

// AddModel appends an existing model. The list emits "add" with the model and
// the model emits "add" with the list, unless silent.
func (l *List) AddModel(m *model.Model, opts ...model.MutateOption) *model.Model {
	if m == nil {
		return nil
	}
	l.mu.Lock()
	l.models = append(l.models, m)
	l.mu.Unlock()
	if !model.IsSilent(opts...) {
		l.Emit(model.EventAdd, emitter.Data{KeyModel: m})
		m.Emit(model.EventAdd, emitter.Data{KeyModelList: l})
	}
	return m
}

// AddData builds a new model from the list defaults overridden by data, runs
// the model setup callback on it and appends it. Only the list emits "add".
func (l *List) AddData(data map[string]any, opts ...model.MutateOption) *model.Model {
	props := make(map[string]any, len(l.defaults)+len(data))
	for k, v := range l.defaults {
		props[k] = v
	}
	for k, v := range data {
		props[k] = v
	}
	m := model.New(model.WithInitial(props), model.WithSetup(l.modelSetup))
	l.mu.Lock()
	l.models = append(l.models, m)
	l.mu.Unlock()
	if !model.IsSilent(opts...) {
		l.Emit(model.EventAdd, emitter.Data{KeyModel: m})
	}
	return m
}

// AddDefault appends a model built from the list defaults alone.
func (l *List) AddDefault(opts ...model.MutateOption) *model.Model {
	return l.AddData(nil, opts...)
}

// Remove drops every occurrence of m and returns m, found or not. Events are
// emitted only when m was present and the call is not silent.
func (l *List) Remove(m *model.Model, opts ...model.MutateOption) *model.Model {
	l.mu.Lock()
	kept := l.models[:0:0]
	for _, x := range l.models {
		if x != m {
			kept = append(kept, x)
		}
	}
	found := len(kept) != len(l.models)
	l.models = kept
	l.mu.Unlock()
	if found && m != nil && !model.IsSilent(opts...) {
		l.Emit(model.EventRemove, emitter.Data{KeyModel: m})
		m.Emit(model.EventRemove, emitter.Data{KeyModelList: l})
	}
	return m
}

// At returns the model at index i, or (nil, false) when out of range.
func (l *List) At(i int) (*model.Model, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i < 0 || i >= len(l.models) {
		return nil, false
	}
	return l.models[i], true
}

// IndexOf returns the position of the first occurrence of m, or -1.
func (l *List) IndexOf(m *model.Model) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i, x := range l.models {
		if x == m {
			return i
		}
	}
	return -1
}

// Models returns a snapshot of the contained models in order.
func (l *List) Models() []*model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]*model.Model(nil), l.models...)
}

// Set sets key on every model, in list order.
func (l *List) Set(key string, value any, opts ...model.MutateOption) *List {
	for _, m := range l.Models() {
		m.Set(key, value, opts...)
	}
	return l
}

// Unset removes key from every model, in list order.
func (l *List) Unset(key string, opts ...model.MutateOption) *List {
	for _, m := range l.Models() {
		m.Unset(key, opts...)
	}
	return l
}

// ForEach calls fn for each model in list order. The iteration runs over a
// snapshot, so fn may add or remove models.
func (l *List) ForEach(fn func(m *model.Model, i int, l *List)) *List {
	for i, m := range l.Models() {
		fn(m, i, l)
	}
	return l
}

// Filter returns, in list order, the models for which fn holds.
func (l *List) Filter(fn func(m *model.Model, i int, l *List) bool) []*model.Model {
	var out []*model.Model
	for i, m := range l.Models() {
		if fn(m, i, l) {
			out = append(out, m)
		}
	}
	return out
}

// Find returns the first model for which fn holds.
func (l *List) Find(fn func(m *model.Model) bool) (*model.Model, bool) {
	for _, m := range l.Models() {
		if fn(m) {
			return m, true
		}
	}
	return nil, false
}

// JSON returns each model's properties, in order.
func (l *List) JSON() []map[string]any {
	ms := l.Models()
	out := make([]map[string]any, len(ms))
	for i, m := range ms {
		out[i] = m.All()
	}
	return out
}

// MarshalJSON encodes the list as an array of model objects.
func (l *List) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.JSON())
}
