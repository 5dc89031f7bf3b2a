package todo

import (
	"obsui/pkg/emitter"
	"obsui/pkg/model"
	"obsui/pkg/modellist"
	"obsui/pkg/router"
	"obsui/pkg/types"
	"obsui/pkg/view"
)

// EventFilter is emitted by the app view after a route was rendered.
const EventFilter = "filter"

// Status lines of the app view.
const (
	StatusNoTasks     = "No tasks to do."
	StatusNoCompleted = "No tasks completed."
	StatusNoActive    = "No unfinished tasks. :)"
)

// FilterFor maps a route path to the filter it selects.
func FilterFor(path string) types.Filter {
	switch path {
	case "/completed":
		return types.FilterCompleted
	case "/active", "/unfinished":
		return types.FilterActive
	default:
		return types.FilterAll
	}
}

// itemView renders one todo: its CSS-like class and whether the current
// filter hides it.
type itemView struct {
	*view.View
	class  string
	hidden bool
}

func (it *itemView) render(m *model.Model, f types.Filter) {
	done := m.Bool(KeyCompleted)
	it.class = ""
	if done {
		it.class = "done"
	}
	it.hidden = (done && f == types.FilterActive) || (!done && f == types.FilterCompleted)
	if it.hidden {
		if it.class != "" {
			it.class += " "
		}
		it.class += "hidden"
	}
}

func (s *Service) newAppView() *view.View {
	return view.New(
		view.WithModel(s.list),
		view.WithRender(func(*view.View, ...any) { s.renderApp() }),
		view.WithSetup(func(v *view.View) {
			v.Observe(s.list, model.EventAdd, emitter.HandlerFunc(func(e emitter.Event) {
				m, _ := e.Value(modellist.KeyModel).(*model.Model)
				if m == nil {
					return
				}
				s.track(m)
				v.Render()
				s.publishTodo(EventAdded, m)
				s.save()
			}))
			v.Observe(s.list, model.EventRemove, emitter.HandlerFunc(func(e emitter.Event) {
				m, _ := e.Value(modellist.KeyModel).(*model.Model)
				delete(s.items, m)
				v.Render()
				if m != nil {
					s.publishTodo(EventRemoved, m)
				}
				s.save()
			}))
			v.Observe(s.router, router.EventRoute, emitter.HandlerFunc(func(e emitter.Event) {
				rt := router.RouteOf(e)
				s.path = rt.Path
				v.Render().Emit(EventFilter, nil)
				s.publish(Event{Name: EventRoute, Fields: map[string]any{
					"oldPath": rt.OldPath,
					"path":    rt.Path,
					"route":   rt.Route,
				}})
			}))
			v.Render()
		}),
	)
}

// renderApp reads the path recorded from the last route event. The first
// one fires inside Router.Start, before the router reports itself started.
func (s *Service) renderApp() {
	path := s.path
	if path == "" {
		if p, ok := s.router.Path(); ok {
			path = p
		} else {
			path = "/"
		}
	}
	sm := summary{filter: FilterFor(path), total: s.list.Len()}
	s.list.ForEach(func(m *model.Model, _ int, _ *modellist.List) {
		if m.Bool(KeyCompleted) {
			sm.done++
		}
	})
	switch sm.filter {
	case types.FilterCompleted:
		if sm.done == 0 {
			sm.status = StatusNoCompleted
		}
	case types.FilterActive:
		if sm.done == sm.total {
			sm.status = StatusNoActive
		}
	default:
		if sm.total == 0 {
			sm.status = StatusNoTasks
		}
	}
	s.view = sm
	itemsGauge.WithLabelValues("left").Set(float64(sm.total - sm.done))
	itemsGauge.WithLabelValues("done").Set(float64(sm.done))
}

// track attaches an item view to m. The view follows the model and the app
// filter until m is removed from the list.
func (s *Service) track(m *model.Model) {
	it := &itemView{}
	it.View = view.New(
		view.WithModel(m),
		view.WithRender(func(*view.View, ...any) { it.render(m, s.view.filter) }),
		view.WithSetup(func(v *view.View) {
			v.Observe(m, model.EventChange, emitter.HandlerFunc(func(emitter.Event) {
				v.Render()
				s.app.Render()
				s.publishTodo(EventChanged, m)
				s.save()
			}))
			v.Observe(s.app, EventFilter, emitter.HandlerFunc(func(emitter.Event) { v.Render() }))
			v.Observe(m, model.EventRemove, emitter.HandlerFunc(func(emitter.Event) {
				v.Unobserve(m, model.EventChange)
				v.Unobserve(m, model.EventRemove)
				v.Unobserve(s.app, EventFilter)
			}))
			v.Render()
		}),
	)
	s.items[m] = it
}
