package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tasktidy/internal/core/render"
	"github.com/hay-kot/tasktidy/pkg/textio"
)

// SchemaCmd prints or checks against the JSON schema of "format -o json" output.
type SchemaCmd struct {
	flags *Flags

	check string
}

// NewSchemaCmd creates a new schema command.
func NewSchemaCmd(flags *Flags) *SchemaCmd {
	return &SchemaCmd{flags: flags}
}

// Register adds the schema command to the application.
func (cmd *SchemaCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "schema",
		Usage:     "Print the JSON schema for JSON output",
		UsageText: "tasktidy schema [--check <file|->]",
		Description: `Prints the JSON schema describing "tasktidy format -o json" output.

With --check, validates JSON against the schema instead. The input may hold
several documents, as printed by "format -o json" for multiple files.

Examples:
  tasktidy schema > forest.schema.json
  tasktidy format -o json todo.md | tasktidy schema --check -`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "check",
				Usage:       "validate a JSON document (path, or - for stdin)",
				Destination: &cmd.check,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SchemaCmd) run(ctx context.Context, c *cli.Command) error {
	w := c.Root().Writer

	if cmd.check == "" {
		_, err := w.Write(render.Schema())
		return err
	}

	data, err := cmd.readCheck(c.Root().Reader)
	if err != nil {
		return err
	}

	count, err := validateDocuments(data)
	if err != nil {
		return err
	}

	if count == 1 {
		_, err = fmt.Fprintln(w, "✓ document is valid")
		return err
	}
	_, err = fmt.Fprintf(w, "✓ %d documents are valid\n", count)
	return err
}

// validateDocuments checks each JSON value in data against the schema and
// returns how many it found.
func validateDocuments(data []byte) (int, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	count := 0
	for {
		var raw json.RawMessage
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, fmt.Errorf("document %d: %w", count+1, err)
		}

		count++
		if err := render.ValidateJSON(raw); err != nil {
			return count, fmt.Errorf("document %d: %w", count, err)
		}
	}

	if count == 0 {
		return 0, errors.New("no JSON document in input")
	}
	return count, nil
}

func (cmd *SchemaCmd) readCheck(stdin io.Reader) ([]byte, error) {
	if cmd.check != "-" {
		data, err := os.ReadFile(cmd.check)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		return data, nil
	}

	r, err := textio.Stdin(stdin)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}
