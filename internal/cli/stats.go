package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillshelf/internal/stats"
)

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show bundle statistics",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Emit statistics as JSON",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			b, err := loadBundle(cmd)
			if err != nil {
				return err
			}

			s := stats.Collect(b)

			if cmd.Bool("json") {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}

			s.Render(os.Stdout)
			return nil
		},
	}
}
