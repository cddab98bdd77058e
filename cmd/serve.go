package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/vibent/internal/server"
	"github.com/desertthunder/vibent/internal/shared"
)

// Serve runs the stateless relay until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String("config"); path != "" {
		if loaded, err := shared.LoadConfig(path); err == nil {
			loaded.ApplyEnv()
			r.config = loaded
		}
	}
	if port := cmd.Int("port"); port > 0 {
		r.config.Server.Port = int(port)
	}

	srv := server.New(r.config, shared.WithLogger(r.logger, "component", "server"))

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r.writePlain("→ Relay listening on http://%s\n", srv.Addr())
	return srv.Start(runCtx)
}
