package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/okra-platform/okragen/internal/commands"
	"github.com/okra-platform/okragen/internal/config"
	"github.com/okra-platform/okragen/internal/snapshot"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func targetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "language",
			Aliases: []string{"l"},
			Usage:   "generator language (overrides okragen.yaml)",
		},
		&cli.StringFlag{
			Name:  "namespace",
			Usage: "namespace passed to the generator (overrides okragen.yaml)",
		},
	}
}

func targetOptions(c *cli.Command) commands.TargetOptions {
	return commands.TargetOptions{
		Language:  c.String("language"),
		Namespace: c.String("namespace"),
	}
}

func main() {
	flags := &commands.Flags{}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Read once so every command sees the same mode
	envMode := config.ModeFromEnv(os.LookupEnv)

	var ctrl *commands.Controller

	app := &cli.Command{
		Name:    "okragen",
		Usage:   "Generate code from okra schemas and keep golden snapshots of the output honest",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to okragen.yaml (default: search the working directory and its parents)",
				Sources:     cli.EnvVars("OKRAGEN_CONFIG"),
				Destination: &flags.Config,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(flags.LogLevel)
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)
			ctrl = commands.NewController(flags, log.Logger)

			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Create okragen.yaml with an example schema and fixture",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Init(ctx)
				},
			},
			{
				Name:  "generate",
				Usage: "Compile schema files into source code",
				Flags: append(targetFlags(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "output directory",
					},
					&cli.StringSliceFlag{
						Name:    "schema",
						Aliases: []string{"s"},
						Usage:   "schema file or glob; repeatable",
					},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Generate(ctx, commands.GenerateOptions{
						TargetOptions: targetOptions(c),
						Output:        c.String("output"),
						Schemas:       c.StringSlice("schema"),
					})
				},
			},
			{
				Name:  "snapshot",
				Usage: "Check generated code against golden snapshots (UPDATE_SNAPSHOTS=1 to update)",
				Flags: targetFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Snapshot(ctx, commands.SnapshotOptions{
						TargetOptions: targetOptions(c),
						Mode:          envMode,
						Yes:           envMode == snapshot.ModeUpdate,
					})
				},
				Commands: []*cli.Command{
					{
						Name:  "verify",
						Usage: "Fail when generated code differs from the snapshots",
						Flags: append(targetFlags(),
							&cli.BoolFlag{
								Name:  "diff",
								Usage: "print unified diffs for mismatched files",
							},
						),
						Action: func(ctx context.Context, c *cli.Command) error {
							return ctrl.Snapshot(ctx, commands.SnapshotOptions{
								TargetOptions: targetOptions(c),
								Mode:          snapshot.ModeVerify,
								Diff:          c.Bool("diff"),
							})
						},
					},
					{
						Name:  "update",
						Usage: "Replace the snapshots with freshly generated code",
						Flags: append(targetFlags(),
							&cli.BoolFlag{
								Name:    "yes",
								Aliases: []string{"y"},
								Usage:   "do not ask for confirmation",
							},
						),
						Action: func(ctx context.Context, c *cli.Command) error {
							return ctrl.Snapshot(ctx, commands.SnapshotOptions{
								TargetOptions: targetOptions(c),
								Mode:          snapshot.ModeUpdate,
								Yes:           c.Bool("yes"),
							})
						},
					},
				},
			},
			{
				Name:  "watch",
				Usage: "Re-verify snapshots whenever fixtures, schemas or baselines change",
				Flags: append(targetFlags(),
					&cli.BoolFlag{
						Name:  "diff",
						Usage: "print unified diffs for mismatched files",
					},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Watch(ctx, commands.WatchOptions{
						TargetOptions: targetOptions(c),
						Diff:          c.Bool("diff"),
					})
				},
			},
			{
				Name:  "languages",
				Usage: "List the available generator languages",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Languages(ctx)
				},
			},
		},
	}

	ctx := context.Background()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run okragen")
	}
}
