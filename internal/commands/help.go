package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"tasksync/internal/config"
	"tasksync/internal/exitcode"
	"tasksync/internal/manager"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command. The command table is generated from
// the default registry.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "tasksync help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, m *manager.Manager, args []string, out, errOut io.Writer) int {
	writeHelp(out, DefaultRegistry)
	return exitcode.Success
}

func writeHelp(out io.Writer, r *Registry) {
	fmt.Fprintln(out, "Usage:")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	for _, cmd := range r.All() {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Usage(), cmd.Synopsis())
	}
	tw.Flush()
	fmt.Fprint(out, helpFooter)
}

const helpFooter = `
Task references are the numbers shown by list, or raw task ids.
Running tasksync with no command lists open tasks.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
