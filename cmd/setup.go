package cmd

import (
	"context"
	"fmt"

	"github.com/okrause/tmplsync/pkg/execx"
	"github.com/okrause/tmplsync/pkg/project"
	"github.com/okrause/tmplsync/pkg/setup"
	"github.com/okrause/tmplsync/pkg/shellrc"
	"github.com/urfave/cli/v3"
)

func setupCommand() *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "bootstrap the local environment",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "report what would be installed or appended",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to tmplsync.toml (default: ./tmplsync.toml)",
			},
		},
		Action: setupAction,
	}
}

func setupAction(ctx context.Context, cmd *cli.Command) error {
	if args := cmd.Args().Slice(); len(args) > 0 {
		return fmt.Errorf("setup does not accept arguments")
	}

	cfgPath, err := configPath(cmd)
	if err != nil {
		return err
	}

	cfg, err := project.Load(cfgPath)
	if err != nil {
		return err
	}

	profile, err := shellrc.DetectProfile()
	if err != nil {
		return err
	}

	dryRun := cmd.Bool("dry-run")
	res, err := setup.Bootstrap(ctx, execx.NewOSRunner(), cfg.Setup, profile, dryRun, newLogger(cmd))
	if err != nil {
		return err
	}

	verb := "installed"
	if dryRun {
		verb = "would install"
	}
	if len(res.InstalledPackages) > 0 {
		fmt.Printf("%s %d package(s) via %s\n", verb, len(res.InstalledPackages), res.Manager)
	}

	verb = "appended"
	if dryRun {
		verb = "would append"
	}
	for _, line := range res.AppendedLines {
		fmt.Printf("%s to %s: %s\n", verb, profile, line)
	}

	if len(res.InstalledPackages) == 0 && len(res.AppendedLines) == 0 {
		fmt.Println("environment already up to date")
	}

	return nil
}
