package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tasktidy/internal/commands"
	"github.com/hay-kot/tasktidy/internal/core/config"
	"github.com/hay-kot/tasktidy/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "tasktidy",
		Usage:     "Reformat indented checklists into a decorated tree",
		UsageText: "tasktidy [global options] [command] [paths...]",
		Description: `tasktidy turns indented checklist lines such as "- [x] done" into a
nested tree and prints it back with status glyphs, keeping every line's depth.

Run 'tasktidy' with paths (or piped input) to format them.
Run 'tasktidy schema' to print the JSON schema used by '--format json'.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TASKTIDY_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (empty logs to stderr)",
				Sources:     cli.EnvVars("TASKTIDY_LOG_FILE"),
				Value:       commands.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TASKTIDY_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			// Validation is left to the commands so "config validate" can
			// report structural errors.
			cfg, err := config.Read(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	formatCmd := commands.NewFormatCmd(flags)

	app = formatCmd.Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)
	app = commands.NewSchemaCmd(flags).Register(app)

	// Register format flags on root command
	app.Flags = append(app.Flags, formatCmd.Flags()...)

	// Format paths or stdin when no subcommand is provided
	app.Action = formatCmd.Run

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		_, _ = fmt.Fprintln(os.Stderr, runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
