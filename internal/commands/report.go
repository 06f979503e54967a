package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tasksync/internal/config"
	"tasksync/internal/exitcode"
	"tasksync/internal/form"
	"tasksync/internal/manager"
	"tasksync/internal/service"
	"tasksync/internal/validate"
)

// reportFailure prints the manager's latest error message and maps its kind
// to an exit code.
func reportFailure(m *manager.Manager, errOut io.Writer) int {
	fmt.Fprintf(errOut, "error: %s\n", m.State().ErrorMessage)
	return exitcode.ForError(m.LastError())
}

// reportInvalid prints the form's per-field validation messages as one line.
func reportInvalid(errOut io.Writer, fields *form.Fields) int {
	titleErr, descErr := fields.Errors()
	var msgs []string
	for _, msg := range []string{titleErr, descErr} {
		if msg != "" {
			msgs = append(msgs, msg)
		}
	}
	fmt.Fprintf(errOut, "error: %s\n", validate.Join(msgs))
	return exitcode.UserError
}

func printOK(cfg *config.Config, out io.Writer) {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
}

// loadTask fetches the list and resolves the task reference in args. When
// unlisted is set, an id missing from the open list still resolves to a bare
// task so the store can decide. On failure it prints the error and returns
// ok=false with the exit code.
func loadTask(ctx context.Context, m *manager.Manager, args []string, unlisted bool, errOut io.Writer) (task service.Task, code int, ok bool) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, exitcode.UserError, false
	}

	m.FetchTasks(ctx)
	if m.LastError() != nil {
		return service.Task{}, reportFailure(m, errOut), false
	}

	task, err = ref.resolve(m)
	switch {
	case err == nil:
		return task, exitcode.Success, true
	case unlisted && errors.Is(err, errTaskNotFound):
		return service.Task{ID: ref.ID}, exitcode.Success, true
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, exitcode.UserError, false
	}
}
