// Package model provides an observable key/value property bag.
//
// A Model emits "change:<key>" for each property whose value actually
// changes, followed by a single aggregate "change" per mutation call.
// Values compare by identity: comparable values with ==, maps, slices and
// pointers by reference. Silent mutations emit nothing.
package model

import (
	"encoding/json"
	"sort"
	"sync"

	"obsui/pkg/emitter"
)

// Event names emitted by a Model.
const (
	EventChange = "change"
	// EventAdd and EventRemove are emitted by a model list on the models it
	// adopts or drops.
	EventAdd    = "add"
	EventRemove = "remove"
)

// ChangeEvent returns the per-key change event name.
func ChangeEvent(key string) string { return EventChange + ":" + key }

// Model is a mutable property bag that notifies through its embedded Emitter.
type Model struct {
	emitter.Emitter

	mu    sync.RWMutex
	props map[string]any
}

// New constructs a model. Initial values are stored silently, then the setup
// callback runs.
func New(opts ...Option) *Model {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	m := &Model{props: make(map[string]any, len(o.initial))}
	m.SetTarget(m)
	m.OnAll(o.events)
	if len(o.initial) > 0 {
		m.SetMany(o.initial, Silent())
	}
	if o.setup != nil {
		o.setup(m)
	}
	return m
}

// Get returns the value stored under key and whether the key was ever set.
// A key set to nil reports (nil, true).
func (m *Model) Get(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.props[key]
	return v, ok
}

// Value is Get without the presence flag.
func (m *Model) Value(key string) any {
	v, _ := m.Get(key)
	return v
}

// Has reports whether key is set.
func (m *Model) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// String returns the value under key when it is a string.
func (m *Model) String(key string) string {
	s, _ := m.Value(key).(string)
	return s
}

// Bool returns the value under key when it is a bool.
func (m *Model) Bool(key string) bool {
	b, _ := m.Value(key).(bool)
	return b
}

// All returns a deep copy of every property. Mutating the result never
// affects the model.
func (m *Model) All() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return deepCopyMap(m.props)
}

// Keys returns the set keys in sorted order.
func (m *Model) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.props))
	for k := range m.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of set keys.
func (m *Model) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.props)
}

// Set stores value under key. Nothing is emitted when value is identical to
// the stored one.
func (m *Model) Set(key string, value any, opts ...MutateOption) *Model {
	return m.setEach([]string{key}, map[string]any{key: value}, opts)
}

// SetMany stores every entry of props, in sorted key order. Each changed key
// emits "change:<key>" once, then one "change" is emitted if anything changed.
func (m *Model) SetMany(props map[string]any, opts ...MutateOption) *Model {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return m.setEach(keys, props, opts)
}

func (m *Model) setEach(keys []string, props map[string]any, opts []MutateOption) *Model {
	silent := isSilent(opts)
	changed := false
	for _, key := range keys {
		newValue := props[key]
		m.mu.Lock()
		oldValue, had := m.props[key]
		if had && Same(oldValue, newValue) {
			m.mu.Unlock()
			continue
		}
		m.props[key] = newValue
		m.mu.Unlock()
		changed = true
		if !silent {
			m.Emit(ChangeEvent(key), emitter.Data{
				"key":      key,
				"oldValue": oldValue,
				"newValue": newValue,
			})
		}
	}
	if changed && !silent {
		m.Emit(EventChange, nil)
	}
	return m
}

// Unset removes key. Absent keys are a no-op and emit nothing.
func (m *Model) Unset(key string, opts ...MutateOption) *Model {
	m.mu.Lock()
	oldValue, had := m.props[key]
	if !had {
		m.mu.Unlock()
		return m
	}
	delete(m.props, key)
	m.mu.Unlock()
	if !isSilent(opts) {
		m.Emit(ChangeEvent(key), emitter.Data{"key": key, "oldValue": oldValue})
		m.Emit(EventChange, nil)
	}
	return m
}

// MarshalJSON encodes a copy of the properties.
func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.All())
}
