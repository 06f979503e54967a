package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasksync/internal/config"
	"tasksync/internal/exitcode"
	"tasksync/internal/logging"
	"tasksync/internal/manager"
	"tasksync/internal/server"
	"tasksync/internal/taskstore"
)

// DefaultAddr is the listen address of the reference store.
const DefaultAddr = ":8000"

func init() {
	Register(&ServeCmd{})
}

// ServeCmd runs the in-memory reference task store until interrupted.
type ServeCmd struct {
	addr string
}

func (c *ServeCmd) Name() string       { return "serve" }
func (c *ServeCmd) Aliases() []string  { return nil }
func (c *ServeCmd) Synopsis() string   { return "Run a local task store" }
func (c *ServeCmd) Usage() string      { return "tasksync serve [--addr <host:port>]" }
func (c *ServeCmd) NeedsBackend() bool { return false }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", DefaultAddr, "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, m *manager.Manager, args []string, out, errOut io.Writer) int {
	addr := c.addr
	if addr == "" {
		addr = DefaultAddr
	}

	logger := logging.New(errOut, logging.ParseLevel(cfg.LogLevel))
	srv := server.New(taskstore.New(), logger)

	if !cfg.Quiet {
		fmt.Fprintf(out, "listening on %s\n", addr)
	}
	if err := srv.Run(ctx, addr); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
