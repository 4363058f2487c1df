package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tasktidy/internal/core/config"
	"github.com/hay-kot/tasktidy/internal/core/logging"
	"github.com/hay-kot/tasktidy/internal/core/pretty"
	"github.com/hay-kot/tasktidy/internal/core/render"
	"github.com/hay-kot/tasktidy/pkg/textio"
)

// FormatCmd implements the tasktidy format command. It is also the default
// action of the root command.
type FormatCmd struct {
	flags *Flags

	write       bool
	format      string
	color       string
	hideDetails int
	width       int
}

// NewFormatCmd creates a new format command.
func NewFormatCmd(flags *Flags) *FormatCmd {
	return &FormatCmd{flags: flags}
}

// Flags returns the format flags so they can also be registered on the root command.
func (cmd *FormatCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "write",
			Aliases:     []string{"w"},
			Usage:       "rewrite files in place instead of printing",
			Destination: &cmd.write,
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"o"},
			Usage:       "output format (text, json, preview)",
			Destination: &cmd.format,
		},
		&cli.StringFlag{
			Name:        "color",
			Usage:       "style labels by status (auto, always, never)",
			Destination: &cmd.color,
		},
		&cli.IntFlag{
			Name:        "hide-details",
			Usage:       "omit items nested deeper than `DEPTH`",
			Destination: &cmd.hideDetails,
		},
		&cli.IntFlag{
			Name:        "width",
			Usage:       "wrap width for preview output (defaults to terminal width)",
			Destination: &cmd.width,
		},
	}
}

// Register adds the format command to the application.
func (cmd *FormatCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "format",
		Aliases:   []string{"fmt"},
		Usage:     "Reformat checklist lines into a decorated tree",
		UsageText: "tasktidy format [options] [paths...]",
		Description: `Reads checklist lines and prints them with status glyphs, keeping nesting.

Each line must start with a status marker after its indentation:
  - [x] done      - [-] pending      - [>] doing      - [ ] new

Indentation is two spaces per level. Blank lines are ignored. Paths may be
doublestar patterns; with no paths, input is read from stdin.

With --write, files are always rewritten as plain text with every item kept;
output settings from the config file are ignored and --hide-details,
--color always and non-text formats are rejected. With several files, -o json
prints one document per file; "tasktidy schema --check -" accepts that stream.

Examples:
  pbpaste | tasktidy                          # format the clipboard
  tasktidy format notes/todo.md               # print formatted file
  tasktidy format -w "notes/**/*.todo"        # rewrite files in place
  tasktidy format --hide-details 0 todo.md    # top-level items only
  tasktidy format -o json todo.md             # emit the tree as JSON`,
		Flags:  cmd.Flags(),
		Action: cmd.Run,
	})

	return app
}

// Run formats stdin or the files named by the arguments.
func (cmd *FormatCmd) Run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "format")

	opts, err := cmd.options(c)
	if err != nil {
		return err
	}

	out := c.Root().Writer

	if c.Args().Len() == 0 {
		if cmd.write {
			return fmt.Errorf("--write requires file arguments")
		}

		in, err := textio.Stdin(c.Root().Reader)
		if err != nil {
			return err
		}

		ctx = logging.WithSource(ctx, "-")
		result, err := opts.formatReader(ctx, in)
		if err != nil {
			return err
		}

		_, err = out.Write(result)
		return err
	}

	files, err := textio.Expand(c.Args().Slice(), cmd.flags.config().Ignore)
	if err != nil {
		return err
	}

	for i, file := range files {
		fileCtx := logging.WithSource(ctx, file)

		result, err := opts.formatFile(fileCtx, file)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		if cmd.write {
			if err := writeFile(file, result); err != nil {
				return err
			}
			log.Info().Ctx(fileCtx).Msg("rewrote file")
			continue
		}

		if i > 0 {
			if _, err := io.WriteString(out, "\n"); err != nil {
				return err
			}
		}
		if _, err := out.Write(result); err != nil {
			return err
		}
	}

	return nil
}

// formatOptions is the resolved output configuration for one run.
type formatOptions struct {
	format string
	theme  string
	width  int
	render render.Options
}

// options merges the loaded config with explicitly set flags.
func (cmd *FormatCmd) options(c *cli.Command) (formatOptions, error) {
	cfg := cmd.flags.config()
	if err := cfg.Validate(); err != nil {
		return formatOptions{}, fmt.Errorf("invalid config: %w", err)
	}

	opts := formatOptions{
		format: cfg.Format,
		theme:  cfg.Theme,
		width:  cfg.Width,
	}

	if c.IsSet("format") {
		if !config.IsValidFormat(cmd.format) {
			return opts, fmt.Errorf("invalid --format %q (text, json, preview)", cmd.format)
		}
		opts.format = cmd.format
	}

	color := cfg.Color
	if c.IsSet("color") {
		if !config.IsValidColor(cmd.color) {
			return opts, fmt.Errorf("invalid --color %q (auto, always, never)", cmd.color)
		}
		color = cmd.color
	}

	opts.render.MaxDepth = cfg.HideDetails
	if c.IsSet("hide-details") {
		if cmd.hideDetails < 0 {
			return opts, fmt.Errorf("--hide-details cannot be negative")
		}
		depth := cmd.hideDetails
		opts.render.MaxDepth = &depth
	}

	out := c.Root().Writer
	if c.IsSet("width") {
		opts.width = cmd.width
	} else {
		opts.width = textio.Width(out, opts.width)
	}

	if cmd.write {
		if err := cmd.checkWriteFlags(c); err != nil {
			return opts, err
		}
		// Files on disk keep every item and no escape codes.
		opts.format = config.FormatText
		opts.render = render.Options{}
		return opts, nil
	}

	if opts.format == config.FormatText {
		switch color {
		case config.ColorAlways:
			opts.render.Styles = render.NewStyles(out, true)
		case config.ColorAuto:
			if textio.IsTerminal(out) {
				opts.render.Styles = render.NewStyles(out, false)
			}
		}
	}

	return opts, nil
}

// checkWriteFlags rejects explicitly set flags that would lose content when
// rewriting files.
func (cmd *FormatCmd) checkWriteFlags(c *cli.Command) error {
	switch {
	case c.IsSet("hide-details"):
		return fmt.Errorf("--write cannot be combined with --hide-details")
	case c.IsSet("format") && cmd.format != config.FormatText:
		return fmt.Errorf("--write only supports --format text, got %q", cmd.format)
	case c.IsSet("color") && cmd.color == config.ColorAlways:
		return fmt.Errorf("--write cannot be combined with --color always")
	}
	return nil
}

func (o formatOptions) formatFile(ctx context.Context, path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return o.formatReader(ctx, f)
}

// formatReader runs the pipeline over r and encodes the result in the
// configured output format.
func (o formatOptions) formatReader(ctx context.Context, r io.Reader) ([]byte, error) {
	lines, err := pretty.ReadLines(r)
	if err != nil {
		return nil, err
	}

	forest, err := pretty.Parse(ctx, lines)
	if err != nil {
		return nil, err
	}

	switch o.format {
	case config.FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(render.JSON(forest, o.render)); err != nil {
			return nil, fmt.Errorf("encode JSON: %w", err)
		}
		return buf.Bytes(), nil

	case config.FormatPreview:
		plain := o.render
		plain.Styles = nil
		out, err := render.Preview(render.Lines(forest, plain), o.theme, o.width)
		if err != nil {
			return nil, err
		}
		return []byte(out), nil

	default:
		return []byte(render.Join(render.Lines(forest, o.render))), nil
	}
}

// writeFile replaces path's content, keeping its permissions. In-place
// output always ends with a newline.
func writeFile(path string, content []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	if len(content) > 0 && content[len(content)-1] != '\n' {
		content = append(content, '\n')
	}

	if err := os.WriteFile(path, content, info.Mode().Perm()); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
