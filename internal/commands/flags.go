package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/hay-kot/tasktidy/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "tasktidy", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/tasktidy/tasktidy.log
// On Linux: $XDG_STATE_HOME/tasktidy/tasktidy.log (defaults to ~/.local/state/tasktidy/tasktidy.log)
func DefaultLogFile() string {
	// Check XDG_STATE_HOME first (works on both macOS and Linux)
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "tasktidy", "tasktidy.log")
	}

	home, _ := os.UserHomeDir()

	// On macOS, use ~/Library/Logs
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "tasktidy", "tasktidy.log")
	}

	// On Linux, use ~/.local/state
	return filepath.Join(home, ".local", "state", "tasktidy", "tasktidy.log")
}

// config returns the loaded configuration, falling back to defaults when the
// Before hook did not run (e.g. a command registered on a bare test app).
func (f *Flags) config() *config.Config {
	if f.Config == nil {
		cfg := config.DefaultConfig()
		f.Config = &cfg
	}
	return f.Config
}
