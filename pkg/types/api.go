package types

// CreateTodoRequest is the body of POST /todos.
type CreateTodoRequest struct {
	// Task text. Blank tasks are rejected.
	// example: Buy milk
	Task string `json:"task"`
}

// UpdateTodoRequest is the body of PATCH /todos/{id}. Omitted fields are left
// unchanged.
type UpdateTodoRequest struct {
	Task      *string `json:"task,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// TodosResponse is returned by GET /todos.
type TodosResponse struct {
	// Todos visible under the current filter, in list order.
	Todos []Todo `json:"todos"`
	// Filter derived from the current route.
	Filter Filter `json:"filter"`
	// Number of todos not yet completed.
	Left int `json:"left"`
	// Number of completed todos.
	Done int `json:"done"`
	// Total number of todos.
	Total int `json:"total"`
	// Status line shown when the filtered view is empty.
	// example: No tasks completed.
	Status string `json:"status,omitempty"`
}

// NavigateRequest is the body of POST /route/go and /route/replace.
type NavigateRequest struct {
	// example: /completed
	Path string `json:"path"`
}

// RouteResponse describes the router state.
type RouteResponse struct {
	// Current normalized path.
	// example: /active
	Path string `json:"path"`
	// Path segments.
	Route []string `json:"route"`
	// Navigation mode: history or hash.
	Mode string `json:"mode"`
	// Number of entries in the session history.
	HistoryLength int `json:"history_length"`
	// Full location of the headless browser.
	// example: /#/active
	URL string `json:"url"`
}

// StreamEvent is one message pushed over GET /events.
type StreamEvent struct {
	// Event name, e.g. add, remove, change, route, pathchange.
	Type string `json:"type"`
	// Affected todo, when the event concerns one.
	Todo *Todo `json:"todo,omitempty"`
	// Route record for route and pathchange.
	OldPath string   `json:"old_path,omitempty"`
	Path    string   `json:"path,omitempty"`
	Route   []string `json:"route,omitempty"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	Total  int    `json:"total"`
	Left   int    `json:"left"`
	Path   string `json:"path"`
	Store  string `json:"store"`
	Saves  uint64 `json:"saves"`
	Events uint64 `json:"events"`
	// Uptime of the server in seconds.
	UptimeSeconds int64 `json:"uptime_seconds"`
	// Last persistence error, if any.
	LastError string `json:"last_error,omitempty"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error"`
	// HTTP status code.
	// example: 400
	Code int `json:"code"`
}
