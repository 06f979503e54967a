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
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Unset flags keep the current value.
type EditCmd struct {
	title       optionalString
	description optionalString
}

// optionalString is a flag.Value that remembers whether it was set.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(s string) error {
	o.value, o.set = s, true
	return nil
}

// SetTitle sets the new title (for testing).
func (c *EditCmd) SetTitle(title string) { _ = c.title.Set(title) }

// SetDescription sets the new description (for testing).
func (c *EditCmd) SetDescription(description string) { _ = c.description.Set(description) }

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return nil }
func (c *EditCmd) Synopsis() string   { return "Edit a task's title or description" }
func (c *EditCmd) Usage() string      { return "tasksync edit [-t <title>] [-d <description>] <ref>" }
func (c *EditCmd) NeedsBackend() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title, c.description = optionalString{}, optionalString{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.description, "description", "")
	fs.Var(&c.description, "d", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, m *manager.Manager, args []string, out, errOut io.Writer) int {
	if !c.title.set && !c.description.set {
		fmt.Fprintln(errOut, "error: nothing to edit (use --title or --description)")
		return exitcode.UserError
	}

	task, code, ok := loadTask(ctx, m, args, false, errOut)
	if !ok {
		return code
	}

	f := form.NewEditForm(m, task)
	if c.title.set {
		f.SetTitle(c.title.value)
	}
	if c.description.set {
		f.SetDescription(c.description.value)
	}

	switch f.Save(ctx) {
	case form.Submitted:
		printOK(cfg, out)
		return exitcode.Success
	case form.Invalid:
		return reportInvalid(errOut, &f.Fields)
	case form.InFlight:
		fmt.Fprintln(errOut, "error: save already in progress")
		return exitcode.UserError
	default:
		return reportFailure(m, errOut)
	}
}
