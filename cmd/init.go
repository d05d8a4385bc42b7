package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/okrause/tmplsync/pkg/project"
	"github.com/urfave/cli/v3"
)

func initCommand() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "write a starter tmplsync.toml",
		ArgsUsage: "<template-url>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "ref",
				Usage:   "template ref to track",
				Value:   "main",
				Aliases: []string{"b"},
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to tmplsync.toml (default: ./tmplsync.toml)",
			},
		},
		Action: initAction,
	}
}

func initAction(_ context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) != 1 {
		return fmt.Errorf("init requires exactly one template url argument")
	}

	cfgPath, err := configPath(cmd)
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", cfgPath, err)
	}

	cfg := project.Default()
	cfg.Template.URL = args[0]
	cfg.Template.Ref = cmd.String("ref")

	if err := project.Save(cfgPath, cfg); err != nil {
		return err
	}

	fmt.Printf("wrote %s (template %s @ %s)\n", cfgPath, cfg.Template.URL, cfg.Template.Ref)
	return nil
}
