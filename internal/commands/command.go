// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"io"
	"time"

	"github.com/spf13/pflag"

	"taskdeck/internal/config"
	"taskdeck/internal/logging"
	"taskdeck/internal/service"
)

// Env is what the dispatcher hands to a command.
type Env struct {
	// Config is always provided (config dir, API settings).
	Config *config.Config

	// Service is nil if NeedsBackend() returns false.
	Service service.Service

	// Log is never nil.
	Log *logging.Logger

	// Location renders timestamps.
	Location *time.Location
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsBackend returns true if the command talks to the task service.
	// Commands like help and version return false.
	NeedsBackend() bool

	// Interactive returns true if the command takes over the terminal.
	// Interactive commands log to a file instead of stderr.
	Interactive() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *pflag.FlagSet)

	// Run executes the command.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}
