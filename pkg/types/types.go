package types

// Todo is one item of the todo list as exposed over the API.
type Todo struct {
	// Stable identifier.
	// example: 0b8f5c4e-8a8e-4d55-9f57-2c5f1f9f7f10
	ID string `json:"id"`
	// Task text.
	// example: Buy milk
	Task string `json:"task"`
	// Whether the task is done.
	Completed bool `json:"completed"`
}

// Filter names the subset of todos a route selects.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)
