package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillshelf/internal/server"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the bundle over HTTP for a host assistant",
		Description: `Starts the loader service:
   GET /healthz
   GET /v1/index
   GET /v1/skills
   GET /v1/skills/search?q=<terms>
   GET /v1/skills/{name}
   GET /v1/skills/{name}/references/<path>

   Reference bodies are loaded lazily from disk per request. With watching
   enabled (the default), file changes rebuild the index automatically.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "no-watch",
				Usage: "Disable rebuilding the index on file changes",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr := cmd.String("addr"); addr != "" {
				cfg.Server.Addr = addr
			}
			if cmd.Bool("no-watch") {
				cfg.Server.Watch = false
			}

			srv, err := server.New(cfg.Bundle, cfg.Server)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx)
		},
	}
}
