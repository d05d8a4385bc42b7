package cmd

import (
	"context"

	"github.com/okrause/tmplsync/pkg/version"
	"github.com/urfave/cli/v3"
)

// Commands:
// init
//   writes a starter tmplsync.toml into the project
//
// update [--dry-run] [--branch ref] [--source dir]
//   fetches the template repository, reads its manifest and syncs the listed
//   files and directories into the project working tree
//
// plan
//   update with dry-run forced: reports what would change, mutates nothing
//
// setup
//   bootstraps the local environment: package manager, packages, shell
//   profile lines

func Execute(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:    "tmplsync",
		Usage:   "keep a project in sync with its template repository",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "show debug detail",
			},
		},
		Commands: []*cli.Command{
			initCommand(),
			updateCommand(),
			planCommand(),
			setupCommand(),
			versionCommand(),
		},
	}

	return app.Run(ctx, args)
}
