// Package form holds the input state behind task forms and guards their
// submissions against duplicate in-flight calls.
package form

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"tasksync/internal/service"
	"tasksync/internal/validate"
)

// Result is the outcome of a submission attempt.
type Result int

const (
	// Submitted means the operation was invoked and succeeded.
	Submitted Result = iota

	// Failed means the operation was invoked and reported failure.
	Failed

	// Invalid means local validation rejected the input; nothing was invoked.
	Invalid

	// InFlight means another submission from the same form was still running;
	// the attempt was dropped without side effects.
	InFlight
)

func (r Result) String() string {
	switch r {
	case Submitted:
		return "submitted"
	case Failed:
		return "failed"
	case Invalid:
		return "invalid"
	case InFlight:
		return "in flight"
	}
	return "unknown"
}

// Creator is the operation behind a create form. manager.Manager satisfies it.
type Creator interface {
	CreateTask(ctx context.Context, input service.TaskCreate) bool
}

// Updater is the operation behind an edit form.
type Updater interface {
	UpdateTask(ctx context.Context, patch service.TaskPatch) bool
}

// Deleter is the operation behind a delete confirmation.
type Deleter interface {
	DeleteTask(ctx context.Context, id string) bool
}

// Fields holds title/description inputs and their per-field errors.
type Fields struct {
	mu               sync.Mutex
	title            string
	description      string
	titleError       string
	descriptionError string
}

// SetTitle sets the title input.
func (f *Fields) SetTitle(s string) {
	f.mu.Lock()
	f.title = s
	f.mu.Unlock()
}

// SetDescription sets the description input.
func (f *Fields) SetDescription(s string) {
	f.mu.Lock()
	f.description = s
	f.mu.Unlock()
}

// Title returns the current title input.
func (f *Fields) Title() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.title
}

// Description returns the current description input.
func (f *Fields) Description() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.description
}

// Errors returns the per-field messages of the last validation.
func (f *Fields) Errors() (title, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.titleError, f.descriptionError
}

// validate checks both fields, records per-field messages and returns the
// trimmed values.
func (f *Fields) validate() (title, description string, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titleError = validate.Title(f.title)
	f.descriptionError = validate.Description(f.description)
	return strings.TrimSpace(f.title), strings.TrimSpace(f.description),
		f.titleError == "" && f.descriptionError == ""
}

func (f *Fields) reset() {
	f.mu.Lock()
	f.title, f.description = "", ""
	f.titleError, f.descriptionError = "", ""
	f.mu.Unlock()
}

// CreateForm is the add-task form. At most one submission per form runs at a
// time: the in-flight flag is claimed before any work starts and released
// when the attempt settles, whatever its outcome.
type CreateForm struct {
	Fields

	creator  Creator
	inFlight atomic.Bool
}

// NewCreateForm creates an empty form bound to creator.
func NewCreateForm(creator Creator) *CreateForm {
	return &CreateForm{creator: creator}
}

// Submitting reports whether a submission is in flight.
func (f *CreateForm) Submitting() bool {
	return f.inFlight.Load()
}

// Submit validates the inputs and creates the task. On success the inputs are
// reset to empty; on any other outcome they are kept so the user can correct
// and resubmit. A call made while another is in flight returns InFlight and
// has no effect.
func (f *CreateForm) Submit(ctx context.Context) Result {
	if !f.inFlight.CompareAndSwap(false, true) {
		return InFlight
	}
	defer f.inFlight.Store(false)

	title, description, ok := f.validate()
	if !ok {
		return Invalid
	}

	if !f.creator.CreateTask(ctx, service.TaskCreate{Title: title, Description: description}) {
		return Failed
	}
	f.reset()
	return Submitted
}

// EditForm edits one selected task. Its saving flag is scoped to the form's
// lifetime and rejects a save while a previous one is still running.
type EditForm struct {
	Fields

	task    service.Task
	updater Updater
	saving  atomic.Bool
}

// NewEditForm opens an edit form prefilled from task.
func NewEditForm(updater Updater, task service.Task) *EditForm {
	f := &EditForm{task: task, updater: updater}
	f.title = task.Title
	f.description = task.Description
	return f
}

// Task returns the task being edited.
func (f *EditForm) Task() service.Task { return f.task }

// Saving reports whether a save is in flight.
func (f *EditForm) Saving() bool { return f.saving.Load() }

// Save validates the inputs and updates the task's title and description.
func (f *EditForm) Save(ctx context.Context) Result {
	if !f.saving.CompareAndSwap(false, true) {
		return InFlight
	}
	defer f.saving.Store(false)

	title, description, ok := f.validate()
	if !ok {
		return Invalid
	}

	patch := service.TaskPatch{
		ID:          f.task.ID,
		Title:       service.String(title),
		Description: service.String(description),
	}
	if !f.updater.UpdateTask(ctx, patch) {
		return Failed
	}
	return Submitted
}

// DeleteConfirm confirms deletion of one selected task.
type DeleteConfirm struct {
	task     service.Task
	deleter  Deleter
	deleting atomic.Bool
}

// NewDeleteConfirm opens a delete confirmation for task.
func NewDeleteConfirm(deleter Deleter, task service.Task) *DeleteConfirm {
	return &DeleteConfirm{task: task, deleter: deleter}
}

// Task returns the task to delete.
func (d *DeleteConfirm) Task() service.Task { return d.task }

// Deleting reports whether a delete is in flight.
func (d *DeleteConfirm) Deleting() bool { return d.deleting.Load() }

// Confirm deletes the task.
func (d *DeleteConfirm) Confirm(ctx context.Context) Result {
	if !d.deleting.CompareAndSwap(false, true) {
		return InFlight
	}
	defer d.deleting.Store(false)

	if !d.deleter.DeleteTask(ctx, d.task.ID) {
		return Failed
	}
	return Submitted
}
