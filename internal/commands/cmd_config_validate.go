package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "tasktidy config validate [options]",
				Description: "Validates the configuration file, checking the file itself, ignore patterns and the preview theme.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationError is one failed check in the validation report.
type validationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	result := cmd.flags.config().ValidateDeep(cmd.flags.ConfigPath)
	errs := collectErrors(result)

	if cmd.format == "json" {
		return cmd.outputJSON(c.Root().Writer, errs)
	}

	return cmd.outputText(c.Root().Writer, errs)
}

func collectErrors(err error) []validationError {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationError{{Message: err.Error()}}
	}

	out := make([]validationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, validationError{Field: fe.Field, Message: fe.Err.Error()})
	}
	return out
}

func (cmd *ConfigValidateCmd) outputJSON(w io.Writer, errs []validationError) error {
	out := struct {
		Valid  bool              `json:"valid"`
		Path   string            `json:"path,omitempty"`
		Errors []validationError `json:"errors,omitempty"`
	}{
		Valid:  len(errs) == 0,
		Path:   cmd.flags.ConfigPath,
		Errors: errs,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}

	if len(errs) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ConfigValidateCmd) outputText(w io.Writer, errs []validationError) error {
	for _, e := range errs {
		if e.Field != "" {
			_, _ = fmt.Fprintf(w, "✗ %s: %s\n", e.Field, e.Message)
			continue
		}
		_, _ = fmt.Fprintf(w, "✗ %s\n", e.Message)
	}

	if len(errs) == 0 {
		_, _ = fmt.Fprintln(w, "✓ Configuration is valid")
		return nil
	}

	_, _ = fmt.Fprintf(w, "\n%d error(s) found\n", len(errs))
	return cli.Exit("", 1)
}
