package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"tasksync/internal/manager"
	"tasksync/internal/service"
)

// TaskRef is a parsed task reference: either a 1-based position in the
// displayed list or a raw task id.
type TaskRef struct {
	Num int    // 1-based number; 0 when ID is set
	ID  string // raw id when the reference is not numeric
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// errTaskNotFound is returned by resolve for an id missing from the list.
var errTaskNotFound = errors.New("task not found")

// ParseTaskRef parses a task reference from the first positional argument.
// All-digit references are positions; anything else is an id.
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return TaskRef{}, ErrTaskRefRequired
	}
	arg := strings.TrimSpace(args[0])

	if isAllDigits(arg) {
		num, err := strconv.Atoi(arg)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{Num: num}, nil
	}
	return TaskRef{ID: arg}, nil
}

// IsNumber reports whether the reference is a position.
func (r TaskRef) IsNumber() bool { return r.ID == "" }

func (r TaskRef) String() string {
	if r.IsNumber() {
		return strconv.Itoa(r.Num)
	}
	return r.ID
}

// resolve looks the reference up in the manager's current collection.
func (r TaskRef) resolve(m *manager.Manager) (service.Task, error) {
	if r.IsNumber() {
		task, ok := m.TaskAt(r.Num)
		if !ok {
			return service.Task{}, fmt.Errorf("task number out of range: %d", r.Num)
		}
		return task, nil
	}
	task, ok := m.Task(r.ID)
	if !ok {
		return service.Task{}, fmt.Errorf("%w: %s", errTaskNotFound, r.ID)
	}
	return task, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
