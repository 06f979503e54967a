// Package backend holds checks shared by every gateway implementation.
package backend

import (
	"strings"

	"tasksync/internal/service"
	"tasksync/internal/taskerr"
	"tasksync/internal/validate"
)

// CheckCreate validates a create payload before it is sent.
func CheckCreate(input service.TaskCreate) error {
	if violations := validate.Task(input.Title, input.Description); len(violations) > 0 {
		return taskerr.Validation(validate.Join(violations), "")
	}
	return nil
}

// CheckUpdate validates a patch before it is sent. The id is mandatory and
// any title or description present must satisfy the create rules.
func CheckUpdate(patch service.TaskPatch) error {
	if strings.TrimSpace(patch.ID) == "" {
		return taskerr.Validation("Task id is required to update a task", "")
	}
	violations := validate.Present(patch.Title, patch.Description)
	if len(violations) > 0 {
		return taskerr.Validation(validate.Join(violations), "")
	}
	return nil
}

// CheckDelete validates a delete request before it is sent.
func CheckDelete(id string) error {
	if strings.TrimSpace(id) == "" {
		return taskerr.Validation("Task id is required to delete a task", "")
	}
	return nil
}
