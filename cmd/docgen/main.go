// Command docgen generates CLI reference documentation from the tasktidy
// command definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tasktidy/internal/commands"
)

func main() {
	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "tasktidy",
		Usage:     "Reformat indented checklists into a decorated tree",
		UsageText: "tasktidy [global options] [command] [paths...]",
		Description: `tasktidy turns indented checklist lines such as "- [x] done" into a
nested tree and prints it back with status glyphs, keeping every line's depth.

Run 'tasktidy' with paths (or piped input) to format them.
Run 'tasktidy schema' to print the JSON schema used by '--format json'.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("TASKTIDY_LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "path to log file (empty logs to stderr)",
				Sources: cli.EnvVars("TASKTIDY_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("TASKTIDY_CONFIG"),
				Value:   commands.DefaultConfigPath(),
			},
		},
	}

	formatCmd := commands.NewFormatCmd(flags)
	root.Flags = append(root.Flags, formatCmd.Flags()...)

	root = formatCmd.Register(root)
	root = commands.NewConfigValidateCmd(flags).Register(root)
	root = commands.NewSchemaCmd(flags).Register(root)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
