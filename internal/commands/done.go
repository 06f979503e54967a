package commands

import (
	"context"
	"flag"
	"io"

	"tasksync/internal/config"
	"tasksync/internal/exitcode"
	"tasksync/internal/manager"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command by toggling the task's completion.
// Only listed (open) tasks can be referenced, so in practice it completes.
type DoneCmd struct{}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string   { return "Mark a task completed" }
func (c *DoneCmd) Usage() string      { return "tasksync done <ref>" }
func (c *DoneCmd) NeedsBackend() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, m *manager.Manager, args []string, out, errOut io.Writer) int {
	task, code, ok := loadTask(ctx, m, args, false, errOut)
	if !ok {
		return code
	}

	if !m.ToggleTaskComplete(ctx, task.ID) {
		return reportFailure(m, errOut)
	}
	printOK(cfg, out)
	return exitcode.Success
}
