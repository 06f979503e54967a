// Package service defines the backend-agnostic contract for task operations.
package service

// Task represents a single persisted task as returned by the remote store.
type Task struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	IsCompleted bool   `json:"is_completed" yaml:"is_completed"`
	CreatedAt   string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// TaskCreate is the payload for creating a task. The server assigns the id.
type TaskCreate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsCompleted bool   `json:"is_completed"`
}

// TaskPatch is a partial update. Nil fields are left out of the request.
type TaskPatch struct {
	ID          string  `json:"-"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

// ListResult is the outcome of a successful list call.
type ListResult struct {
	Success bool
	Data    []Task
}

// String returns a pointer to s, for building patches.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for building patches.
func Bool(b bool) *bool { return &b }
