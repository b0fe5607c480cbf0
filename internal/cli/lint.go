package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillshelf/internal/lint"
	"github.com/klauern/skillshelf/internal/ui"
)

// errLintFailed makes the process exit non-zero once findings have
// already been printed.
var errLintFailed = errors.New("lint failed")

func lintCommand() *cli.Command {
	return &cli.Command{
		Name:  "lint",
		Usage: "Check a bundle for documentation-integrity problems",
		Description: `Checks every skill for:
   - missing or empty name/description front matter
   - references/ paths mentioned in SKILL.md that do not exist
   - unterminated code fences in SKILL.md and reference files
   - duplicate skill names, name/directory mismatches, oversized descriptions`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Emit findings as JSON",
			},
			&cli.BoolFlag{
				Name:  "no-orphans",
				Usage: "Skip warnings for reference files SKILL.md never mentions",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			b, err := loadBundle(cmd)
			if err != nil {
				return err
			}

			opts := lint.Options{
				MaxDescription: cfg.Lint.MaxDescription,
				OrphanWarnings: cfg.Lint.OrphanWarnings && !cmd.Bool("no-orphans"),
			}
			result := lint.Run(b, opts)

			if cmd.Bool("json") {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				printFindings(result)
			}

			if !result.OK() {
				return errLintFailed
			}
			return nil
		},
	}
}

func printFindings(result *lint.Result) {
	for _, f := range result.Findings {
		line := fmt.Sprintf("%s: %s (%s)", f.Path, f.Message, f.Rule)
		switch f.Severity {
		case lint.SeverityError:
			fmt.Println(ui.StatusError(line))
		default:
			fmt.Println(ui.StatusWarning(line))
		}
	}

	if result.OK() && len(result.Warnings()) == 0 {
		fmt.Println(ui.StatusSuccess(result.Summary()))
		return
	}
	fmt.Println()
	fmt.Println(result.Summary())
}
