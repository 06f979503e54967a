// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"tasksync/internal/backend"
	"tasksync/internal/service"
	"tasksync/internal/taskerr"
)

// FakeGateway is an in-memory implementation of service.Gateway for testing.
// It applies the same local checks as the real gateways.
type FakeGateway struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int

	// Error injection for testing. Errors should be *taskerr.Error values.
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error

	// BeforeCreate, if set, runs at the start of every Create call before any
	// state is touched. Tests use it to hold a call in flight.
	BeforeCreate func(ctx context.Context)

	// Call counters.
	ListCalls   int
	CreateCalls int
	UpdateCalls int
	DeleteCalls int
}

// NewFakeGateway creates an empty FakeGateway.
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{}
}

// AddTask seeds a task and returns it.
func (f *FakeGateway) AddTask(id, title, description string, completed bool) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{ID: id, Title: title, Description: description, IsCompleted: completed}
	f.tasks = append(f.tasks, t)
	return t
}

// Tasks returns a copy of every stored task, completed ones included.
func (f *FakeGateway) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result
}

// Calls returns the total number of gateway calls that reached the fake.
func (f *FakeGateway) Calls() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.ListCalls + f.CreateCalls + f.UpdateCalls + f.DeleteCalls
}

// List implements service.Gateway.
func (f *FakeGateway) List(ctx context.Context) (service.ListResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.ListErr != nil {
		return service.ListResult{}, f.ListErr
	}
	data := make([]service.Task, len(f.tasks))
	copy(data, f.tasks)
	return service.ListResult{Success: true, Data: data}, nil
}

// Create implements service.Gateway.
func (f *FakeGateway) Create(ctx context.Context, input service.TaskCreate) (service.Task, error) {
	if f.BeforeCreate != nil {
		f.BeforeCreate(ctx)
	}
	if err := backend.CheckCreate(input); err != nil {
		return service.Task{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}

	f.nextID++
	t := service.Task{
		ID:          fmt.Sprintf("fake-%d", f.nextID),
		Title:       input.Title,
		Description: input.Description,
		IsCompleted: input.IsCompleted,
	}
	f.tasks = append(f.tasks, t)
	return t, nil
}

// Update implements service.Gateway.
func (f *FakeGateway) Update(ctx context.Context, patch service.TaskPatch) (service.Task, error) {
	if err := backend.CheckUpdate(patch); err != nil {
		return service.Task{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}

	for i, t := range f.tasks {
		if t.ID != patch.ID {
			continue
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
		f.tasks[i] = t
		return t, nil
	}
	return service.Task{}, taskerr.NotFound("Task not found", patch.ID)
}

// Delete implements service.Gateway.
func (f *FakeGateway) Delete(ctx context.Context, id string) error {
	if err := backend.CheckDelete(id); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return taskerr.NotFound("Task not found", id)
}
