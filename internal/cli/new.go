package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillshelf/internal/template"
	"github.com/klauern/skillshelf/internal/ui"
)

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Scaffold a new skill in the bundle",
		UsageText: "skillshelf new <name> --description <text> [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "description",
				Aliases:  []string{"d"},
				Usage:    "Skill description (required; drives host activation)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "template",
				Usage: "Template kind: framework or guide",
				Value: "framework",
			},
			&cli.StringSliceFlag{
				Name:    "reference",
				Aliases: []string{"r"},
				Usage:   "Reference file to stub out (repeatable), e.g. -r eloquent.md",
			},
			&cli.StringFlag{
				Name:  "license",
				Usage: "License identifier for the front matter",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("new requires exactly one argument: the skill name")
			}

			kind, err := template.ParseKind(cmd.String("template"))
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			gen, err := template.New()
			if err != nil {
				return err
			}

			skillPath, err := gen.Scaffold(cfg.Bundle, kind, template.Data{
				Name:        cmd.Args().Get(0),
				Description: cmd.String("description"),
				License:     cmd.String("license"),
				References:  cmd.StringSlice("reference"),
			})
			if err != nil {
				return err
			}

			fmt.Println(ui.StatusSuccess("created " + skillPath))
			return nil
		},
	}
}
