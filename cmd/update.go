package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okrause/tmplsync/pkg/fetch"
	"github.com/okrause/tmplsync/pkg/manifest"
	"github.com/okrause/tmplsync/pkg/project"
	syncpkg "github.com/okrause/tmplsync/pkg/sync"
	"github.com/okrause/tmplsync/pkg/utils/fileutils"
	"github.com/urfave/cli/v3"
)

func updateCommand() *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: "sync template files into the project",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "report what would change without touching any file",
			},
			&cli.StringFlag{
				Name:    "branch",
				Aliases: []string{"b"},
				Usage:   "template ref to fetch (overrides template.ref)",
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "use a local template tree instead of fetching",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to tmplsync.toml (default: ./tmplsync.toml)",
			},
		},
		Action: updateAction,
	}
}

func planCommand() *cli.Command {
	cmd := updateCommand()
	cmd.Name = "plan"
	cmd.Usage = "show what update would change"
	cmd.Action = planAction
	return cmd
}

func updateAction(ctx context.Context, cmd *cli.Command) error {
	return runUpdate(ctx, cmd, cmd.Bool("dry-run"))
}

func planAction(ctx context.Context, cmd *cli.Command) error {
	return runUpdate(ctx, cmd, true)
}

func runUpdate(ctx context.Context, cmd *cli.Command, dryRun bool) error {
	if args := cmd.Args().Slice(); len(args) > 0 {
		return fmt.Errorf("%s does not accept arguments", cmd.Name)
	}

	cfgPath, err := configPath(cmd)
	if err != nil {
		return err
	}

	cfg, err := project.Load(cfgPath)
	if err != nil {
		return err
	}

	logger := newLogger(cmd)
	destRoot := filepath.Dir(cfgPath)

	var sourceRoot string
	if src := cmd.String("source"); src != "" {
		sourceRoot, err = fileutils.AbsPath(src)
		if err != nil {
			return err
		}
	} else {
		ref := cfg.Template.Ref
		if branch := cmd.String("branch"); branch != "" {
			ref = branch
		}

		staging, err := fetch.Clone(ctx, fetch.Options{
			URL: cfg.Template.URL,
			Ref: ref,
		}, logger)
		if err != nil {
			return err
		}
		defer staging.Close()

		sourceRoot = staging.Dir
	}

	entries, err := manifest.Load(filepath.Join(sourceRoot, filepath.FromSlash(cfg.Template.Manifest)))
	if err != nil {
		return err
	}

	report, runErr := syncpkg.New(sourceRoot, destRoot, dryRun, logger).Run(entries)
	renderReport(os.Stdout, report)

	return runErr
}

func configPath(cmd *cli.Command) (string, error) {
	path := cmd.String("config")
	if path == "" {
		path = project.FileName
	}
	return fileutils.AbsPath(path)
}
