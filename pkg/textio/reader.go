// Package textio provides input helpers for line-oriented command line tools.
package textio

import (
	"errors"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrTerminalInput is returned by Stdin when input would be read from an
// interactive terminal.
var ErrTerminalInput = errors.New("no input provided (stdin is a terminal); pass file paths or pipe input")

// Stdin returns r unless it is an interactive terminal.
func Stdin(r io.Reader) (io.Reader, error) {
	if IsTerminal(r) {
		return nil, ErrTerminalInput
	}
	return r, nil
}

// IsTerminal reports whether v is an *os.File attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of w, or fallback when w is not a
// terminal or its size cannot be read.
func Width(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return fallback
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
