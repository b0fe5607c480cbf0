package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillshelf/internal/bundle"
	"github.com/klauern/skillshelf/internal/model"
	"github.com/klauern/skillshelf/internal/ui"
)

// loadBundle resolves config and loads the bundle for a command.
func loadBundle(cmd *cli.Command) (*model.Bundle, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return bundle.Load(cfg.Bundle)
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the skills in a bundle",
		Action: func(_ context.Context, cmd *cli.Command) error {
			b, err := loadBundle(cmd)
			if err != nil {
				return err
			}
			if b.Len() == 0 {
				fmt.Printf("No skills found under %s\n", b.Root)
				return nil
			}

			tbl := ui.NewTable("NAME", "REFS", "DESCRIPTION")
			for _, skill := range b.Skills {
				tbl.AddRow(skill.Name, fmt.Sprintf("%d", len(skill.References)), skill.Description)
			}
			tbl.Render(os.Stdout)
			return nil
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print a skill's body, or one of its reference files",
		UsageText: "skillshelf show <name> [reference-path]",
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() < 1 || args.Len() > 2 {
				return errors.New("show requires a skill name and an optional reference path")
			}

			b, err := loadBundle(cmd)
			if err != nil {
				return err
			}

			skill, ok := b.Skill(args.Get(0))
			if !ok {
				return fmt.Errorf("unknown skill %q (try %q)", args.Get(0), "skillshelf list")
			}

			if args.Len() == 2 {
				data, err := bundle.ReadReference(skill, args.Get(1))
				if err != nil {
					return err
				}
				fmt.Print(string(data))
				return nil
			}

			fmt.Printf("%s %s\n", ui.Bold(skill.Name), ui.Dim(skill.Path))
			if skill.Description != "" {
				fmt.Println(ui.Dim(skill.Description))
			}
			fmt.Println()
			fmt.Println(skill.Body)

			if len(skill.References) > 0 {
				fmt.Println()
				fmt.Println(ui.Header("References"))
				for _, ref := range skill.References {
					fmt.Printf("  %s\n", ref.Path)
				}
			}
			return nil
		},
	}
}
