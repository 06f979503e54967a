package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasksync/internal/config"
	"tasksync/internal/exitcode"
	"tasksync/internal/form"
	"tasksync/internal/manager"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command. A raw id is sent to the store even when it
// is not in the open list, so completed tasks can be removed by id.
type RmCmd struct{}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "tasksync rm <ref>" }
func (c *RmCmd) NeedsBackend() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, m *manager.Manager, args []string, out, errOut io.Writer) int {
	task, code, ok := loadTask(ctx, m, args, true, errOut)
	if !ok {
		return code
	}

	switch form.NewDeleteConfirm(m, task).Confirm(ctx) {
	case form.Submitted:
		printOK(cfg, out)
		return exitcode.Success
	case form.InFlight:
		fmt.Fprintln(errOut, "error: delete already in progress")
		return exitcode.UserError
	default:
		return reportFailure(m, errOut)
	}
}
