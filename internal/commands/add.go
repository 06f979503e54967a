package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasksync/internal/config"
	"tasksync/internal/exitcode"
	"tasksync/internal/form"
	"tasksync/internal/manager"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
}

// SetDescription sets the description (for testing).
func (c *AddCmd) SetDescription(description string) {
	c.description = description
}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "tasksync add -d <description> <title...>" }
func (c *AddCmd) NeedsBackend() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, m *manager.Manager, args []string, out, errOut io.Writer) int {
	f := form.NewCreateForm(m)
	f.SetTitle(strings.Join(args, " "))
	f.SetDescription(c.description)

	switch f.Submit(ctx) {
	case form.Submitted:
		printOK(cfg, out)
		return exitcode.Success
	case form.Invalid:
		return reportInvalid(errOut, &f.Fields)
	case form.InFlight:
		fmt.Fprintln(errOut, "error: submission already in progress")
		return exitcode.UserError
	default:
		return reportFailure(m, errOut)
	}
}
