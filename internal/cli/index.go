package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillshelf/internal/index"
	"github.com/klauern/skillshelf/internal/ui"
)

func indexCommand() *cli.Command {
	return &cli.Command{
		Name:  "index",
		Usage: "Build the bundle index",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the index to a file instead of stdout",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			b, err := loadBundle(cmd)
			if err != nil {
				return err
			}

			idx := index.Build(b)

			if out := cmd.String("output"); out != "" {
				if err := idx.WriteFile(out); err != nil {
					return err
				}
				fmt.Println(ui.StatusSuccess(fmt.Sprintf("indexed %d skill(s) to %s", len(idx.Skills), out)))
				return nil
			}

			data, err := idx.Encode()
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search skills by name and description keywords",
		UsageText: "skillshelf search <term>...",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return errors.New("search requires at least one term")
			}

			b, err := loadBundle(cmd)
			if err != nil {
				return err
			}

			query := ""
			for i := 0; i < cmd.Args().Len(); i++ {
				if i > 0 {
					query += " "
				}
				query += cmd.Args().Get(i)
			}

			matches := index.Build(b).Search(query)
			if len(matches) == 0 {
				fmt.Printf("No skills match %q\n", query)
				return nil
			}

			tbl := ui.NewTable("NAME", "SCORE", "DESCRIPTION")
			for _, m := range matches {
				tbl.AddRow(m.Entry.Name, fmt.Sprintf("%.0f", m.Score), m.Entry.Description)
			}
			tbl.Render(os.Stdout)
			return nil
		},
	}
}
