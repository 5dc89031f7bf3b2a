package todo

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"obsui/internal/store"
	"obsui/pkg/router"
	"obsui/pkg/types"
)

func newTestService(t *testing.T, cfg Config) (*Service, *MemoryPublisher) {
	t.Helper()
	pub := NewMemoryPublisher()
	if cfg.Publisher == nil {
		cfg.Publisher = pub
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemory()
	}
	s, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, pub
}

func TestNew_EmitsInitialRoute(t *testing.T) {
	s, pub := newTestService(t, Config{StartURL: "/completed"})
	if !s.Ready() {
		t.Fatalf("router not started")
	}
	if got := pub.Names(); !reflect.DeepEqual(got, []string{EventRoute}) {
		t.Fatalf("events=%v", got)
	}
	resp := s.Todos()
	if resp.Filter != types.FilterCompleted || resp.Status != StatusNoCompleted {
		t.Fatalf("filter=%s status=%q", resp.Filter, resp.Status)
	}
}

func TestAdd_DefaultsAndPersistence(t *testing.T) {
	st := store.NewMemory()
	s, pub := newTestService(t, Config{Store: st})
	pub.Reset()
	td, err := s.Add("  buy milk ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if td.ID == "" || td.Task != "buy milk" || td.Completed {
		t.Fatalf("todo=%+v", td)
	}
	if got := pub.Names(); !reflect.DeepEqual(got, []string{EventAdded}) {
		t.Fatalf("events=%v", got)
	}
	raw, ok, _ := st.Get(context.Background(), DefaultStorageKey)
	if !ok || !strings.Contains(raw, `"task":"buy milk"`) || !strings.Contains(raw, `"completed":false`) {
		t.Fatalf("stored=%q", raw)
	}
	if _, err := s.Add("   "); !IsInvalid(err) {
		t.Fatalf("blank task err=%v", err)
	}
	if st := s.Status(); st.Saves != 1 || st.Total != 1 || st.Left != 1 || st.Store != store.KindMemory {
		t.Fatalf("status=%+v", st)
	}
}

func TestUpdate_BatchEmitsOneChange(t *testing.T) {
	s, pub := newTestService(t, Config{})
	td, _ := s.Add("a")
	pub.Reset()
	task, done := "b", true
	got, err := s.Update(td.ID, types.UpdateTodoRequest{Task: &task, Completed: &done})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Task != "b" || !got.Completed {
		t.Fatalf("updated=%+v", got)
	}
	if names := pub.Names(); !reflect.DeepEqual(names, []string{EventChanged}) {
		t.Fatalf("events=%v", names)
	}
	// unchanged values emit nothing
	pub.Reset()
	if _, err := s.Update(td.ID, types.UpdateTodoRequest{Completed: &done}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(pub.Events()) != 0 {
		t.Fatalf("no-op update published %v", pub.Names())
	}
	if _, err := s.Update("nope", types.UpdateTodoRequest{}); !IsNotFound(err) {
		t.Fatalf("missing id err=%v", err)
	}
	blank := " "
	if _, err := s.Update(td.ID, types.UpdateTodoRequest{Task: &blank}); !IsInvalid(err) {
		t.Fatalf("blank task err=%v", err)
	}
}

func TestFilterFollowsRoute(t *testing.T) {
	s, _ := newTestService(t, Config{})
	a, _ := s.Add("a")
	b, _ := s.Add("b")
	if _, err := s.Toggle(b.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	ids := func() []string {
		var out []string
		for _, td := range s.Todos().Todos {
			out = append(out, td.ID)
		}
		return out
	}
	if got := ids(); !reflect.DeepEqual(got, []string{a.ID, b.ID}) {
		t.Fatalf("all=%v", got)
	}
	if _, err := s.Go("/completed"); err != nil {
		t.Fatalf("Go: %v", err)
	}
	if got := ids(); !reflect.DeepEqual(got, []string{b.ID}) {
		t.Fatalf("completed=%v", got)
	}
	if c, _ := s.Class(a.ID); c != "hidden" {
		t.Fatalf("class a=%q", c)
	}
	if _, err := s.Go("/active"); err != nil {
		t.Fatalf("Go: %v", err)
	}
	if got := ids(); !reflect.DeepEqual(got, []string{a.ID}) {
		t.Fatalf("active=%v", got)
	}
	if c, _ := s.Class(b.ID); c != "done hidden" {
		t.Fatalf("class b=%q", c)
	}

	// a model change re-renders its item under the current filter
	if _, err := s.Toggle(a.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	resp := s.Todos()
	if len(resp.Todos) != 0 || resp.Status != StatusNoActive || resp.Left != 0 || resp.Done != 2 {
		t.Fatalf("after toggle=%+v", resp)
	}

	if _, err := s.Back(); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if got := s.Route(); got.Path != "/completed" || got.HistoryLength != 3 {
		t.Fatalf("route=%+v", got)
	}
	if len(s.Todos().Todos) != 2 {
		t.Fatalf("completed after back=%v", s.Todos().Todos)
	}
	if _, err := s.Forward(); err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if _, err := s.Forward(); !IsInvalid(err) {
		t.Fatalf("forward past end err=%v", err)
	}
}

func TestRemoveAndClearCompleted(t *testing.T) {
	st := store.NewMemory()
	s, pub := newTestService(t, Config{Store: st})
	a, _ := s.Add("a")
	b, _ := s.Add("b")
	c, _ := s.Add("c")
	_, _ = s.Toggle(a.ID)
	_, _ = s.Toggle(c.ID)
	pub.Reset()

	if n := s.ClearCompleted(); n != 2 {
		t.Fatalf("cleared %d", n)
	}
	if names := pub.Names(); !reflect.DeepEqual(names, []string{EventRemoved, EventRemoved}) {
		t.Fatalf("events=%v", names)
	}
	all := s.All()
	if len(all) != 1 || all[0].ID != b.ID {
		t.Fatalf("left=%v", all)
	}
	// removed models no longer drive saves
	pub.Reset()
	if err := s.Remove(b.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := s.Remove(b.ID); !IsNotFound(err) {
		t.Fatalf("second remove err=%v", err)
	}
	if names := pub.Names(); !reflect.DeepEqual(names, []string{EventRemoved}) {
		t.Fatalf("events=%v", names)
	}
	raw, _, _ := st.Get(context.Background(), DefaultStorageKey)
	if raw != "[]" {
		t.Fatalf("stored=%q", raw)
	}
	if resp := s.Todos(); resp.Status != StatusNoTasks {
		t.Fatalf("status=%q", resp.Status)
	}
}

func TestNew_LoadsStoredList(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()
	_ = st.Set(ctx, "todos", `[{"id":"x1","task":"kept","completed":true},{"task":"no id"}]`)
	s, pub := newTestService(t, Config{Store: st, StorageKey: "todos", StartURL: "/#/active", Router: router.Config{UseHash: true}})
	all := s.All()
	if len(all) != 2 || all[0].ID != "x1" || !all[0].Completed || all[1].ID == "" || all[1].Completed {
		t.Fatalf("loaded=%+v", all)
	}
	if got := pub.Names(); !reflect.DeepEqual(got, []string{EventRoute}) {
		t.Fatalf("load published %v", got)
	}
	resp := s.Todos()
	if resp.Filter != types.FilterActive || len(resp.Todos) != 1 || resp.Todos[0].Task != "no id" {
		t.Fatalf("active=%+v", resp)
	}
	rt := s.Route()
	if rt.Mode != "hash" || rt.URL != "/#/active" {
		t.Fatalf("route=%+v", rt)
	}
	// loaded models are tracked: changing one saves
	if _, err := s.Toggle("x1"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if s.Status().Saves != 1 {
		t.Fatalf("saves=%d", s.Status().Saves)
	}
}

func TestNew_StartRouteFiltersItems(t *testing.T) {
	st := store.NewMemory()
	_ = st.Set(context.Background(), DefaultStorageKey, `[{"id":"a","task":"open"},{"id":"b","task":"shut","completed":true}]`)
	s, _ := newTestService(t, Config{Store: st, StartURL: "/completed"})
	if c, _ := s.Class("a"); c != "hidden" {
		t.Fatalf("active item class=%q", c)
	}
	if c, _ := s.Class("b"); c != "done" {
		t.Fatalf("completed item class=%q", c)
	}
	resp := s.Todos()
	if resp.Filter != types.FilterCompleted || len(resp.Todos) != 1 || resp.Todos[0].ID != "b" {
		t.Fatalf("completed view=%+v", resp)
	}
}

func TestNew_BadStoredPayload(t *testing.T) {
	st := store.NewMemory()
	_ = st.Set(context.Background(), DefaultStorageKey, `{"not":"a list"}`)
	if _, err := New(context.Background(), Config{Store: st}); err == nil {
		t.Fatalf("expected load error")
	}
}

type failingStore struct{ *store.Memory }

func (failingStore) Set(context.Context, string, string) error { return errFailing }

var errFailing = ErrInvalid("disk full")

func TestSaveError_Recorded(t *testing.T) {
	s, pub := newTestService(t, Config{Store: failingStore{store.NewMemory()}})
	pub.Reset()
	if _, err := s.Add("a"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if names := pub.Names(); !reflect.DeepEqual(names, []string{EventAdded, EventSaveError}) {
		t.Fatalf("events=%v", names)
	}
	if st := s.Status(); st.Saves != 0 || !strings.Contains(st.LastError, "disk full") {
		t.Fatalf("status=%+v", st)
	}
}

func TestNavigate_Errors(t *testing.T) {
	s, _ := newTestService(t, Config{})
	if _, err := s.Go(""); !IsInvalid(err) {
		t.Fatalf("empty path err=%v", err)
	}
	if _, err := s.Back(); !IsInvalid(err) {
		t.Fatalf("back on fresh history err=%v", err)
	}
	rt, err := s.Replace("/completed")
	if err != nil || rt.Path != "/completed" || rt.HistoryLength != 1 {
		t.Fatalf("replace=%+v err=%v", rt, err)
	}
	if rt := s.Refresh(); rt.Path != "/completed" {
		t.Fatalf("refresh=%+v", rt)
	}
}
