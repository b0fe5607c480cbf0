package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillshelf/internal/tui"
)

func browseCommand() *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Browse the bundle interactively",
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Browse(cfg.Bundle)
		},
	}
}
