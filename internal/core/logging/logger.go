// Package logging holds the zerolog helpers shared by tasktidy packages.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component returns the global logger tagged with a "cmp" field. Call it at
// use time rather than package init so it picks up the logger configured by
// the CLI.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
