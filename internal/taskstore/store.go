// Package taskstore implements a thread-safe, in-memory task collection that
// backs the reference server.
package taskstore

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"tasksync/internal/service"
	"tasksync/internal/taskerr"
	"tasksync/internal/validate"
)

// Store holds tasks in a map for lookup and a slice for insertion order, so
// List always returns tasks in the order they were created.
type Store struct {
	mu    sync.Mutex
	tasks map[string]*service.Task
	order []string
	now   func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		tasks: make(map[string]*service.Task),
		now:   time.Now,
	}
}

// List returns copies of every task in insertion order.
func (s *Store) List() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]service.Task, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, *s.tasks[id])
	}
	return result
}

// Get returns a copy of one task.
func (s *Store) Get(id string) (service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return service.Task{}, taskerr.NotFound("Task not found", id)
	}
	return *t, nil
}

// Create validates input, assigns a new id and appends the task.
func (s *Store) Create(input service.TaskCreate) (service.Task, error) {
	if violations := validate.Task(input.Title, input.Description); len(violations) > 0 {
		return service.Task{}, taskerr.Validation(validate.Join(violations), "")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.timestamp()
	t := &service.Task{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		IsCompleted: input.IsCompleted,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	s.tasks[t.ID] = t
	s.order = append(s.order, t.ID)
	return *t, nil
}

// Update applies the fields set in patch to the task patch.ID.
func (s *Store) Update(patch service.TaskPatch) (service.Task, error) {
	violations := validate.Present(patch.Title, patch.Description)
	if len(violations) > 0 {
		return service.Task{}, taskerr.Validation(validate.Join(violations), "")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[patch.ID]
	if !ok {
		return service.Task{}, taskerr.NotFound("Task not found", patch.ID)
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.IsCompleted != nil {
		t.IsCompleted = *patch.IsCompleted
	}
	t.UpdatedAt = s.timestamp()
	return *t, nil
}

// Delete removes a task.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return taskerr.NotFound("Task not found", id)
	}
	delete(s.tasks, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
