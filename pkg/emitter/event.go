package emitter

import "sort"

// Data carries extra values for an emission. Keys are merged flat into the
// event record next to "target" and "type".
type Data map[string]any

func (d Data) clone() Data {
	if len(d) == 0 {
		return nil
	}
	out := make(Data, len(d))
	for k, v := range d {
		if k == "target" || k == "type" {
			continue
		}
		out[k] = v
	}
	return out
}

// Event is the record passed to every callback of one emission.
type Event struct {
	// Target is the emitting object.
	Target any
	// Type is the event name.
	Type string
	// Observer is the bound receiver of an observer callback; nil for handlers.
	Observer any

	data Data
}

// Get looks a key up in the flat event record.
func (e Event) Get(key string) (any, bool) {
	switch key {
	case "target":
		return e.Target, true
	case "type":
		return e.Type, true
	}
	v, ok := e.data[key]
	return v, ok
}

// Value is Get without the presence flag.
func (e Event) Value(key string) any {
	v, _ := e.Get(key)
	return v
}

// Has reports whether key is present in the record.
func (e Event) Has(key string) bool {
	_, ok := e.Get(key)
	return ok
}

// String returns the value under key when it is a string.
func (e Event) String(key string) string {
	s, _ := e.Value(key).(string)
	return s
}

// Keys returns the data keys of the record, sorted. "target" and "type" are
// not included.
func (e Event) Keys() []string {
	keys := make([]string, 0, len(e.data))
	for k := range e.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Fields returns the whole record as one flat map.
func (e Event) Fields() map[string]any {
	out := make(map[string]any, len(e.data)+2)
	for k, v := range e.data {
		out[k] = v
	}
	out["target"] = e.Target
	out["type"] = e.Type
	return out
}
