package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"taskdeck/internal/board"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command: the initial load, printed.
type ListCmd struct{}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List the most recent open tasks" }
func (c *ListCmd) Usage() string      { return "taskdeck list" }
func (c *ListCmd) NeedsBackend() bool { return true }
func (c *ListCmd) Interactive() bool  { return false }

func (c *ListCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	ctrl := board.New(env.Service, env.Log)
	if err := ctrl.LoadInitial(ctx); err != nil {
		fmt.Fprintf(errOut, "error: %s: %v\n", board.LoadFailedMessage, err)
		return exitcode.BackendError
	}

	if ctrl.Len() == 0 && env.Config.Quiet {
		return exitcode.Success
	}
	output.FormatList(out, ctrl.Tasks(), env.Location)
	return exitcode.Success
}
