package todo

import (
	"strings"

	"obsui/pkg/model"
	"obsui/pkg/modellist"
	"obsui/pkg/types"
)

// Add appends a todo with the given task. Blank tasks are rejected.
func (s *Service) Add(task string) (types.Todo, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return types.Todo{}, ErrInvalid("task is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.list.AddData(map[string]any{KeyTask: task})
	return toTodo(m), nil
}

// Get returns the todo with id.
func (s *Service) Get(id string) (types.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.find(id)
	if !ok {
		return types.Todo{}, ErrNotFound(id)
	}
	return toTodo(m), nil
}

// Update applies the non-nil fields of req in one batch: a single "change"
// follows the per-key events.
func (s *Service) Update(id string, req types.UpdateTodoRequest) (types.Todo, error) {
	props := make(map[string]any, 2)
	if req.Task != nil {
		task := strings.TrimSpace(*req.Task)
		if task == "" {
			return types.Todo{}, ErrInvalid("task must not be blank")
		}
		props[KeyTask] = task
	}
	if req.Completed != nil {
		props[KeyCompleted] = *req.Completed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.find(id)
	if !ok {
		return types.Todo{}, ErrNotFound(id)
	}
	m.SetMany(props)
	return toTodo(m), nil
}

// Toggle flips the completed flag of id.
func (s *Service) Toggle(id string) (types.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.find(id)
	if !ok {
		return types.Todo{}, ErrNotFound(id)
	}
	m.Set(KeyCompleted, !m.Bool(KeyCompleted))
	return toTodo(m), nil
}

// Remove deletes the todo with id.
func (s *Service) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.find(id)
	if !ok {
		return ErrNotFound(id)
	}
	s.list.Remove(m)
	return nil
}

// ClearCompleted removes every completed todo and returns how many went.
func (s *Service) ClearCompleted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	done := s.list.Filter(func(m *model.Model, _ int, _ *modellist.List) bool {
		return m.Bool(KeyCompleted)
	})
	for _, m := range done {
		s.list.Remove(m)
	}
	return len(done)
}

// Todos returns the todos visible under the current route with the counters
// of the app view.
func (s *Service) Todos() types.TodosResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp := types.TodosResponse{
		Todos:  []types.Todo{},
		Filter: s.view.filter,
		Total:  s.view.total,
		Done:   s.view.done,
		Left:   s.view.total - s.view.done,
		Status: s.view.status,
	}
	for _, m := range s.list.Models() {
		if it := s.items[m]; it != nil && it.hidden {
			continue
		}
		resp.Todos = append(resp.Todos, toTodo(m))
	}
	return resp
}

// All returns every todo regardless of the route.
func (s *Service) All() []types.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Todo, 0, s.list.Len())
	for _, m := range s.list.Models() {
		out = append(out, toTodo(m))
	}
	return out
}

// Class returns the rendered class of todo id, e.g. "done hidden".
func (s *Service) Class(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.find(id)
	if !ok {
		return "", ErrNotFound(id)
	}
	if it := s.items[m]; it != nil {
		return it.class, nil
	}
	return "", nil
}

func (s *Service) find(id string) (*model.Model, bool) {
	if id == "" {
		return nil, false
	}
	return s.list.Find(func(m *model.Model) bool { return m.String(KeyID) == id })
}
