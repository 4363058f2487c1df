package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tasktidy/internal/core/config"
	"github.com/hay-kot/tasktidy/internal/core/render"
	"github.com/hay-kot/tasktidy/internal/core/task"
	"github.com/hay-kot/tasktidy/internal/core/tree"
)

// newFormatApp builds a bare root command with format registered both as a
// subcommand and as the default action, the way main wires it.
func newFormatApp(flags *Flags, stdin string, out *bytes.Buffer) *cli.Command {
	cmd := NewFormatCmd(flags)

	app := &cli.Command{
		Name:   "tasktidy",
		Writer: out,
		Reader: strings.NewReader(stdin),
	}
	app = cmd.Register(app)
	app.Flags = append(app.Flags, cmd.Flags()...)
	app.Action = cmd.Run

	return app
}

func writeTodo(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFormat_Stdin(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		input string
		want  string
	}{
		{
			name:  "subcommand",
			args:  []string{"tasktidy", "format"},
			input: "- [ ] 0\n  - [ ] 2",
			want:  "- 📦 0\n  - 📦 2",
		},
		{
			name:  "default action",
			args:  []string{"tasktidy"},
			input: "- [x] a\n- [x] b\n- [x] c\n",
			want:  "- ✅ a\n- ✅ b\n- ✅ c",
		},
		{
			name:  "alias with blank lines",
			args:  []string{"tasktidy", "fmt"},
			input: "- [>] a\n\n   \n  - [-] b\n",
			want:  "- 🚧 a\n  - 🛑 b",
		},
		{
			name:  "hide details",
			args:  []string{"tasktidy", "format", "--hide-details", "0"},
			input: "- [x] a\n  - [ ] b\n- [ ] c",
			want:  "- ✅ a\n- 📦 c",
		},
		{
			name:  "empty input",
			args:  []string{"tasktidy", "format"},
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			app := newFormatApp(&Flags{}, tt.input, &buf)

			require.NoError(t, app.Run(context.Background(), tt.args))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestFormat_InvalidMarker(t *testing.T) {
	var buf bytes.Buffer
	app := newFormatApp(&Flags{}, "- [x] a\n- [?] x\n", &buf)

	err := app.Run(context.Background(), []string{"tasktidy", "format"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, task.ErrInvalidStatusMarker))
	assert.Contains(t, err.Error(), "line 2")
	assert.Empty(t, buf.String(), "no partial output")
}

func TestFormat_EmptyParent(t *testing.T) {
	var buf bytes.Buffer
	app := newFormatApp(&Flags{}, "  - [x] orphan\n", &buf)

	err := app.Run(context.Background(), []string{"tasktidy", "format"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, tree.ErrEmptyParentFrame))
}

func TestFormat_Files(t *testing.T) {
	dir := t.TempDir()
	a := writeTodo(t, dir, "a.todo", "- [x] a\n")
	b := writeTodo(t, dir, "b.todo", "- [ ] b\n  - [>] b1\n")

	var buf bytes.Buffer
	app := newFormatApp(&Flags{}, "", &buf)

	require.NoError(t, app.Run(context.Background(), []string{"tasktidy", "format", a, b}))
	assert.Equal(t, "- ✅ a\n- 📦 b\n  - 🚧 b1", buf.String())
}

func TestFormat_GlobWithIgnore(t *testing.T) {
	dir := t.TempDir()
	writeTodo(t, dir, "notes/one.todo", "- [x] one\n")
	writeTodo(t, dir, "notes/skip/two.todo", "- [x] two\n")

	cfg := config.DefaultConfig()
	cfg.Ignore = []string{"**/skip/**"}

	var buf bytes.Buffer
	app := newFormatApp(&Flags{Config: &cfg}, "", &buf)

	pattern := filepath.Join(dir, "notes", "**", "*.todo")
	require.NoError(t, app.Run(context.Background(), []string{"tasktidy", "format", pattern}))
	assert.Equal(t, "- ✅ one", buf.String())
}

func TestFormat_Write(t *testing.T) {
	dir := t.TempDir()
	path := writeTodo(t, dir, "todo.md", "- [x] a\n  - [-] b\n")
	require.NoError(t, os.Chmod(path, 0o600))

	var buf bytes.Buffer
	app := newFormatApp(&Flags{}, "", &buf)

	require.NoError(t, app.Run(context.Background(), []string{"tasktidy", "format", "-w", path}))
	assert.Empty(t, buf.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "- ✅ a\n  - 🛑 b\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFormat_WriteIgnoresLossyConfig(t *testing.T) {
	depth := 0
	cfg := config.DefaultConfig()
	cfg.HideDetails = &depth
	cfg.Color = config.ColorAlways
	cfg.Format = config.FormatJSON

	dir := t.TempDir()
	path := writeTodo(t, dir, "todo.md", "- [x] a\n  - [-] b\n    - [ ] c\n")

	var buf bytes.Buffer
	app := newFormatApp(&Flags{Config: &cfg}, "", &buf)

	require.NoError(t, app.Run(context.Background(), []string{"tasktidy", "format", "-w", path}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "- ✅ a\n  - 🛑 b\n    - 📦 c\n", string(data))
}

func TestFormat_WriteRejectsLossyFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "hide details", args: []string{"--hide-details", "1"}, want: "--hide-details"},
		{name: "json", args: []string{"-o", "json"}, want: "only supports --format text"},
		{name: "preview", args: []string{"-o", "preview"}, want: "only supports --format text"},
		{name: "color always", args: []string{"--color", "always"}, want: "--color always"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const content = "- [x] a\n  - [-] b\n"
			path := writeTodo(t, t.TempDir(), "todo.md", content)

			var buf bytes.Buffer
			app := newFormatApp(&Flags{}, "", &buf)

			args := append([]string{"tasktidy", "format", "-w"}, tt.args...)
			args = append(args, path)

			err := app.Run(context.Background(), args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, content, string(data), "file left untouched")
		})
	}
}

func TestFormat_WriteAllowsPlainFlags(t *testing.T) {
	path := writeTodo(t, t.TempDir(), "todo.md", "- [x] a\n  - [-] b\n")

	var buf bytes.Buffer
	app := newFormatApp(&Flags{}, "", &buf)

	args := []string{"tasktidy", "format", "-w", "-o", "text", "--color", "never", path}
	require.NoError(t, app.Run(context.Background(), args))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "- ✅ a\n  - 🛑 b\n", string(data))
}

func TestFormat_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Format = "html"

	var buf bytes.Buffer
	app := newFormatApp(&Flags{Config: &cfg}, "- [x] a", &buf)

	err := app.Run(context.Background(), []string{"tasktidy", "format"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestFormat_WriteRequiresFiles(t *testing.T) {
	var buf bytes.Buffer
	app := newFormatApp(&Flags{}, "- [x] a", &buf)

	err := app.Run(context.Background(), []string{"tasktidy", "format", "--write"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--write requires file arguments")
}

func TestFormat_FailedFileIsNotRewritten(t *testing.T) {
	dir := t.TempDir()
	path := writeTodo(t, dir, "bad.todo", "- [x] a\n- [?] b\n")

	var buf bytes.Buffer
	app := newFormatApp(&Flags{}, "", &buf)

	err := app.Run(context.Background(), []string{"tasktidy", "format", "-w", path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "- [x] a\n- [?] b\n", string(data))
}

func TestFormat_JSON(t *testing.T) {
	var buf bytes.Buffer
	app := newFormatApp(&Flags{}, "- [x] a\n  - [ ] b\n- [>] c", &buf)

	require.NoError(t, app.Run(context.Background(), []string{"tasktidy", "format", "-o", "json"}))
	require.NoError(t, render.ValidateJSON(buf.Bytes()))
	assert.JSONEq(t, `{"nodes":[
		{"depth":0,"status":"done","label":"a","children":[{"depth":1,"status":"new","label":"b"}]},
		{"depth":0,"status":"doing","label":"c"}
	]}`, buf.String())
}

func TestFormat_ConfigFormat(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Format = config.FormatJSON

	var buf bytes.Buffer
	app := newFormatApp(&Flags{Config: &cfg}, "- [x] a", &buf)

	require.NoError(t, app.Run(context.Background(), []string{"tasktidy"}))
	assert.JSONEq(t, `{"nodes":[{"depth":0,"status":"done","label":"a"}]}`, buf.String())

	buf.Reset()
	app = newFormatApp(&Flags{Config: &cfg}, "- [x] a", &buf)
	require.NoError(t, app.Run(context.Background(), []string{"tasktidy", "-o", "text"}))
	assert.Equal(t, "- ✅ a", buf.String(), "flag overrides config")
}

func TestFormat_ColorAlways(t *testing.T) {
	var buf bytes.Buffer
	app := newFormatApp(&Flags{}, "- [x] a", &buf)

	require.NoError(t, app.Run(context.Background(), []string{"tasktidy", "format", "--color", "always"}))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "✅")
}

func TestFormat_ColorAutoNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	app := newFormatApp(&Flags{}, "- [x] a", &buf)

	require.NoError(t, app.Run(context.Background(), []string{"tasktidy", "format"}))
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestFormat_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "format", args: []string{"tasktidy", "format", "-o", "yaml"}, want: "invalid --format"},
		{name: "color", args: []string{"tasktidy", "format", "--color", "rainbow"}, want: "invalid --color"},
		{name: "hide details", args: []string{"tasktidy", "format", "--hide-details", "-1"}, want: "cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			app := newFormatApp(&Flags{}, "- [x] a", &buf)

			err := app.Run(context.Background(), tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFormat_Preview(t *testing.T) {
	var buf bytes.Buffer
	app := newFormatApp(&Flags{}, "- [x] first\n  - [ ] second", &buf)

	args := []string{"tasktidy", "format", "-o", "preview", "--width", "60"}
	require.NoError(t, app.Run(context.Background(), args))
	assert.Contains(t, buf.String(), "first")
	assert.Contains(t, buf.String(), "second")
}

func TestWriteFile_AddsTrailingNewline(t *testing.T) {
	path := writeTodo(t, t.TempDir(), "x.todo", "old")

	require.NoError(t, writeFile(path, []byte("- ✅ a")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "- ✅ a\n", string(data))

	require.NoError(t, writeFile(path, []byte{}))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}
