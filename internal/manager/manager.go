// Package manager owns the client-side task collection and reconciles it with
// the remote store.
//
// The collection is written by exactly one path: a successful fetch. Mutating
// operations go through the gateway and, on success, re-fetch; they never
// patch the local collection. As a result the tasks held here are always the
// server state as of the last completed fetch, or unchanged after a failure.
package manager

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"tasksync/internal/logging"
	"tasksync/internal/service"
	"tasksync/internal/taskerr"
)

// State is a snapshot of the client collection.
type State struct {
	// Tasks holds the not-completed tasks of the last successful fetch, in
	// server order.
	Tasks []service.Task

	// IsLoading is true while a fetch is in flight.
	IsLoading bool

	// ErrorMessage is the message of the most recent failure, or "".
	ErrorMessage string
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. Failures are logged at debug level; callers
// surface them through State.ErrorMessage.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = logging.OrDiscard(l) }
}

// WithOnChange registers a callback invoked with a fresh snapshot after every
// state transition. It runs synchronously on the operation's goroutine and
// must not call back into the Manager's operations.
func WithOnChange(fn func(State)) Option {
	return func(m *Manager) { m.onChange = fn }
}

// Manager is the task state manager.
type Manager struct {
	gw       service.Gateway
	logger   *slog.Logger
	onChange func(State)

	// op serializes operations so each one completes before the next starts.
	op sync.Mutex

	mu      sync.RWMutex
	state   State
	lastErr *taskerr.Error
}

// New creates a Manager with an empty collection.
func New(gw service.Gateway, opts ...Option) *Manager {
	m := &Manager{
		gw:     gw,
		logger: logging.Discard(),
		state:  State{Tasks: []service.Task{}},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns a copy of the current state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// LastError returns the most recent failure, or nil if the latest operation
// attempt has not failed.
func (m *Manager) LastError() *taskerr.Error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// Task returns the task with id from the current collection.
func (m *Manager) Task(id string) (service.Task, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := slices.IndexFunc(m.state.Tasks, func(t service.Task) bool { return t.ID == id })
	if i < 0 {
		return service.Task{}, false
	}
	return m.state.Tasks[i], true
}

// TaskAt returns the task at 1-based position n in the current collection.
func (m *Manager) TaskAt(n int) (service.Task, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n < 1 || n > len(m.state.Tasks) {
		return service.Task{}, false
	}
	return m.state.Tasks[n-1], true
}

// FetchTasks replaces the collection with the not-completed subset of the
// server's tasks. On failure the previous collection is kept and the error
// message is recorded. IsLoading is cleared on every exit path.
func (m *Manager) FetchTasks(ctx context.Context) {
	m.op.Lock()
	defer m.op.Unlock()
	m.fetch(ctx)
}

// CreateTask creates a task and re-fetches. It returns false and records the
// error message on failure; the collection is left untouched.
func (m *Manager) CreateTask(ctx context.Context, input service.TaskCreate) bool {
	m.op.Lock()
	defer m.op.Unlock()

	m.clearError()
	if _, err := m.gw.Create(ctx, input); err != nil {
		m.fail("create task", err)
		return false
	}
	m.fetch(ctx)
	return true
}

// UpdateTask updates a task and re-fetches. Failure handling matches CreateTask.
func (m *Manager) UpdateTask(ctx context.Context, patch service.TaskPatch) bool {
	m.op.Lock()
	defer m.op.Unlock()
	return m.update(ctx, patch)
}

// DeleteTask deletes a task and re-fetches. Failure handling matches CreateTask.
func (m *Manager) DeleteTask(ctx context.Context, id string) bool {
	m.op.Lock()
	defer m.op.Unlock()

	m.clearError()
	if err := m.gw.Delete(ctx, id); err != nil {
		m.fail("delete task", err)
		return false
	}
	m.fetch(ctx)
	return true
}

// ToggleTaskComplete flips the completion flag of a task in the current
// collection. A task that is not in the collection (completed tasks are
// filtered out by FetchTasks) cannot be toggled: the call is a no-op and
// returns false without recording an error.
func (m *Manager) ToggleTaskComplete(ctx context.Context, id string) bool {
	m.op.Lock()
	defer m.op.Unlock()

	task, ok := m.Task(id)
	if !ok {
		m.logger.Debug("toggle skipped, task not in collection", "id", id)
		return false
	}
	return m.update(ctx, service.TaskPatch{ID: id, IsCompleted: service.Bool(!task.IsCompleted)})
}

// update runs an update with op already held.
func (m *Manager) update(ctx context.Context, patch service.TaskPatch) bool {
	m.clearError()
	if _, err := m.gw.Update(ctx, patch); err != nil {
		m.fail("update task", err)
		return false
	}
	m.fetch(ctx)
	return true
}

// fetch runs a fetch with op already held.
func (m *Manager) fetch(ctx context.Context) {
	m.set(func(s *State) {
		s.IsLoading = true
		s.ErrorMessage = ""
	})
	m.mu.Lock()
	m.lastErr = nil
	m.mu.Unlock()

	res, err := m.gw.List(ctx)
	if err != nil {
		m.fail("fetch tasks", err)
		m.set(func(s *State) { s.IsLoading = false })
		return
	}

	open := make([]service.Task, 0, len(res.Data))
	for _, t := range res.Data {
		if !t.IsCompleted {
			open = append(open, t)
		}
	}
	m.set(func(s *State) {
		if res.Success {
			s.Tasks = open
		}
		s.IsLoading = false
	})
	m.logger.Debug("fetched tasks", "total", len(res.Data), "open", len(open))
}

func (m *Manager) clearError() {
	m.mu.Lock()
	m.lastErr = nil
	m.mu.Unlock()
	m.set(func(s *State) { s.ErrorMessage = "" })
}

// fail records err. Gateways only return domain errors; anything else is
// coerced so the recorded kind is always one of the four.
func (m *Manager) fail(action string, err error) {
	derr := taskerr.Coerce(err, "")
	m.mu.Lock()
	m.lastErr = derr
	m.mu.Unlock()
	m.set(func(s *State) { s.ErrorMessage = derr.Message })
	m.logger.Debug("failed to "+action, "kind", derr.Kind.String(), "message", derr.Message, "detail", derr.Detail)
}

// set applies fn under the state lock and notifies the change callback.
func (m *Manager) set(fn func(*State)) {
	m.mu.Lock()
	fn(&m.state)
	snap := m.snapshotLocked()
	m.mu.Unlock()

	if m.onChange != nil {
		m.onChange(snap)
	}
}

func (m *Manager) snapshotLocked() State {
	s := m.state
	s.Tasks = slices.Clone(m.state.Tasks)
	return s
}
