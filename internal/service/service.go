package service

import "context"

// Gateway defines the interface for remote task store operations.
// All HTTP traffic goes through this interface; the state manager and
// commands never talk to a backend directly.
//
// Every error returned by a Gateway is a *taskerr.Error.
type Gateway interface {
	// List returns every task in server order, completed ones included.
	List(ctx context.Context) (ListResult, error)

	// Create validates the input locally, then creates the task.
	Create(ctx context.Context, input TaskCreate) (Task, error)

	// Update sends only the fields set in patch. patch.ID is required.
	Update(ctx context.Context, patch TaskPatch) (Task, error)

	// Delete removes a task by id.
	Delete(ctx context.Context, id string) error
}
