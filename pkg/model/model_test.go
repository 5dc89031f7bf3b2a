package model

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"obsui/pkg/emitter"
)

type recorder struct {
	events []emitter.Event
}

func (r *recorder) handler() *emitter.Handler {
	return emitter.HandlerFunc(func(e emitter.Event) { r.events = append(r.events, e) })
}

func (r *recorder) types() []string {
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func watch(m *Model, events ...string) *recorder {
	r := &recorder{}
	h := r.handler()
	for _, ev := range events {
		m.On(ev, h)
	}
	return r
}

func TestNew_InitialValuesAreSilent(t *testing.T) {
	fired := false
	m := New(
		WithEvents(map[string]*emitter.Handler{
			EventChange: emitter.HandlerFunc(func(emitter.Event) { fired = true }),
		}),
		WithInitial(map[string]any{"a": 1, "b": "two"}),
	)
	if fired {
		t.Fatalf("initial values emitted change")
	}
	if v, ok := m.Get("a"); !ok || v != 1 {
		t.Fatalf("a=%v ok=%v", v, ok)
	}
}

func TestNew_SetupRunsAfterInitial(t *testing.T) {
	var seen any
	var self *Model
	m := New(WithInitial(map[string]any{"x": 5}), WithSetup(func(m *Model) {
		self = m
		seen = m.Value("x")
	}))
	if self != m || seen != 5 {
		t.Fatalf("setup self=%p seen=%v", self, seen)
	}
}

func TestGet_DistinguishesAbsentFromZero(t *testing.T) {
	m := New()
	m.Set("empty", "").Set("nil", nil).Set("false", false)
	for _, k := range []string{"empty", "nil", "false"} {
		if !m.Has(k) {
			t.Fatalf("key %q should be present", k)
		}
	}
	if _, ok := m.Get("never"); ok {
		t.Fatalf("never-set key reported present")
	}
}

func TestSet_EmitsKeyThenChange(t *testing.T) {
	m := New(WithInitial(map[string]any{"a": 1}))
	r := watch(m, ChangeEvent("a"), EventChange)
	m.Set("a", 2)
	if got := r.types(); !reflect.DeepEqual(got, []string{"change:a", "change"}) {
		t.Fatalf("events=%v", got)
	}
	e := r.events[0]
	if e.Value("oldValue") != 1 || e.Value("newValue") != 2 || e.Target != m {
		t.Fatalf("event=%+v", e.Fields())
	}
}

func TestSet_UnchangedValueIsNoop(t *testing.T) {
	shared := map[string]any{"k": 1}
	m := New(WithInitial(map[string]any{"n": 1, "s": "x", "obj": shared}))
	r := watch(m, ChangeEvent("n"), ChangeEvent("s"), ChangeEvent("obj"), EventChange)
	m.Set("n", 1).Set("s", "x").Set("obj", shared)
	m.SetMany(map[string]any{"n": 1, "s": "x"})
	if len(r.events) != 0 {
		t.Fatalf("unexpected events: %v", r.types())
	}
	// a structurally equal copy is a different reference
	m.Set("obj", map[string]any{"k": 1})
	if got := r.types(); !reflect.DeepEqual(got, []string{"change:obj", "change"}) {
		t.Fatalf("events=%v", got)
	}
}

func TestSetMany_BatchesAggregateChange(t *testing.T) {
	m := New(WithInitial(map[string]any{"a": 1, "b": 2}))
	r := watch(m, ChangeEvent("a"), ChangeEvent("b"), ChangeEvent("c"), EventChange)
	m.SetMany(map[string]any{"a": 10, "b": 2, "c": 3})
	if got := r.types(); !reflect.DeepEqual(got, []string{"change:a", "change:c", "change"}) {
		t.Fatalf("events=%v", got)
	}
}

func TestSet_Silent(t *testing.T) {
	m := New()
	r := watch(m, ChangeEvent("a"), EventChange)
	m.Set("a", 1, Silent())
	m.SetMany(map[string]any{"a": 2, "b": 3}, Silent())
	m.Unset("a", Silent())
	if len(r.events) != 0 {
		t.Fatalf("silent mutation emitted %v", r.types())
	}
	if m.Has("a") || m.Value("b") != 3 {
		t.Fatalf("props=%v", m.All())
	}
}

func TestUnset(t *testing.T) {
	m := New(WithInitial(map[string]any{"a": 1}))
	r := watch(m, ChangeEvent("a"), EventChange)
	m.Unset("missing")
	if len(r.events) != 0 {
		t.Fatalf("unset of absent key emitted %v", r.types())
	}
	m.Unset("a")
	if got := r.types(); !reflect.DeepEqual(got, []string{"change:a", "change"}) {
		t.Fatalf("events=%v", got)
	}
	if r.events[0].Value("oldValue") != 1 || r.events[0].Has("newValue") {
		t.Fatalf("event=%+v", r.events[0].Fields())
	}
	if m.Has("a") {
		t.Fatalf("a still set")
	}
}

func TestAll_IsDeepCopy(t *testing.T) {
	nested := map[string]any{"inner": []any{1, 2}}
	m := New(WithInitial(map[string]any{"n": nested, "list": []string{"x"}}))
	cp := m.All()
	cp["n"].(map[string]any)["inner"].([]any)[0] = 99
	cp["list"].([]string)[0] = "y"
	cp["added"] = true
	if got := m.Value("n").(map[string]any)["inner"].([]any)[0]; got != 1 {
		t.Fatalf("nested slice mutated through copy: %v", got)
	}
	if got := m.Value("list").([]string)[0]; got != "x" {
		t.Fatalf("typed slice mutated through copy: %v", got)
	}
	if m.Has("added") {
		t.Fatalf("copy shares top-level map")
	}
}

func TestMarshalJSON(t *testing.T) {
	m := New(WithInitial(map[string]any{"task": "x", "completed": false}))
	for i := 0; i < 2; i++ {
		b, err := json.Marshal(m)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(b) != `{"completed":false,"task":"x"}` {
			t.Fatalf("json=%s", b)
		}
	}
}

func TestSame(t *testing.T) {
	s := []int{1, 2}
	mp := map[string]int{}
	p := &struct{}{}
	cases := []struct {
		a, b any
		want bool
	}{
		{nil, nil, true},
		{nil, 0, false},
		{1, 1, true},
		{1, int64(1), false},
		{"a", "a", true},
		{s, s, true},
		{s, []int{1, 2}, false},
		{s, s[:1], false},
		{[]any{}, []any{}, false},
		{[]int(nil), []int(nil), true},
		{[]int(nil), []int{}, false},
		{mp, mp, true},
		{mp, map[string]int{}, false},
		{p, p, true},
		{math.NaN(), math.NaN(), false},
		{struct{ A int }{1}, struct{ A int }{1}, true},
		{struct{ A []int }{s}, struct{ A []int }{s}, false},
		{func() {}, func() {}, false},
	}
	for i, c := range cases {
		if got := Same(c.a, c.b); got != c.want {
			t.Fatalf("case %d Same(%v,%v)=%v want %v", i, c.a, c.b, got, c.want)
		}
	}
}

func TestSet_EmptySliceIsNewValue(t *testing.T) {
	m := New(WithInitial(map[string]any{"tags": []any{}}))
	changes := 0
	m.On(EventChange, emitter.HandlerFunc(func(emitter.Event) { changes++ }))
	m.Set("tags", []any{})
	if changes != 1 {
		t.Fatalf("changes=%d", changes)
	}
}

func TestKeysAndLen(t *testing.T) {
	m := New(WithInitial(map[string]any{"b": 1, "a": 2}))
	if m.Len() != 2 || !reflect.DeepEqual(m.Keys(), []string{"a", "b"}) {
		t.Fatalf("len=%d keys=%v", m.Len(), m.Keys())
	}
}
