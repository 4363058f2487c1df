package logging

import "context"

type contextKey string

const (
	sourceKey  contextKey = "source"
	commandKey contextKey = "command"
)

// WithSource adds the input source (a file path or "-" for stdin) to the context.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey, source)
}

// WithCommand adds the running subcommand name to the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

// GetSource retrieves the input source from the context.
// Returns empty string if not present.
func GetSource(ctx context.Context) string {
	if s, ok := ctx.Value(sourceKey).(string); ok {
		return s
	}
	return ""
}

// GetCommand retrieves the subcommand name from the context.
// Returns empty string if not present.
func GetCommand(ctx context.Context) string {
	if c, ok := ctx.Value(commandKey).(string); ok {
		return c
	}
	return ""
}
