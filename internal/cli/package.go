package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillshelf/internal/marketplace"
	"github.com/klauern/skillshelf/internal/ui"
)

func packageCommand() *cli.Command {
	return &cli.Command{
		Name:  "package",
		Usage: "Package a bundle as a distributable zip with marketplace.json",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output zip path (defaults to <bundle-name>.zip)",
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "Marketplace listing name (defaults to the bundle directory name)",
			},
			&cli.StringFlag{
				Name:  "pkg-version",
				Usage: "Marketplace listing version",
				Value: "0.1.0",
			},
			&cli.StringFlag{
				Name:  "description",
				Usage: "Marketplace listing description",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			b, err := loadBundle(cmd)
			if err != nil {
				return err
			}

			out := cmd.String("output")
			if out == "" {
				out = filepath.Base(b.Root) + ".zip"
			}

			f, err := os.Create(out) // #nosec G304 - user-chosen output path
			if err != nil {
				return fmt.Errorf("failed to create %q: %w", out, err)
			}
			defer f.Close()

			manifest, err := marketplace.Package(b, f, marketplace.PackageOptions{
				Name:        cmd.String("name"),
				Version:     cmd.String("pkg-version"),
				Description: cmd.String("description"),
				Progress:    os.Stderr,
			})
			if err != nil {
				// Remove the partial archive rather than leave junk behind.
				_ = f.Close()
				_ = os.Remove(out)
				return err
			}

			fmt.Println(ui.StatusSuccess(fmt.Sprintf("packaged %d skill(s) as %s (%s %s)",
				len(manifest.Skills), out, manifest.Name, manifest.Version)))
			return nil
		},
	}
}

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Unpack a packaged bundle zip",
		UsageText: "skillshelf extract <archive.zip> [target-dir]",
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() < 1 || args.Len() > 2 {
				return errors.New("extract requires an archive path and an optional target directory")
			}

			target := "."
			if args.Len() == 2 {
				target = args.Get(1)
			}

			manifest, err := marketplace.Extract(args.Get(0), target)
			if err != nil {
				return err
			}

			fmt.Println(ui.StatusSuccess(fmt.Sprintf("extracted %s %s (%d skill(s)) to %s",
				manifest.Name, manifest.Version, len(manifest.Skills), target)))
			return nil
		},
	}
}
