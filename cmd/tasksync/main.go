// Package main is the entry point for the tasksync CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"tasksync/internal/backend/googletasks"
	"tasksync/internal/backend/rest"
	"tasksync/internal/cli"
	"tasksync/internal/commands"
	"tasksync/internal/config"
	"tasksync/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, newGateway)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// newGateway builds the gateway selected by cfg.Backend.
func newGateway(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Gateway, error) {
	if cfg.Backend == config.BackendGoogleTasks {
		return googletasks.New(ctx, cfg, logger)
	}
	return rest.New(ctx, cfg, logger)
}
