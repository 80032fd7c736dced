package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"taskdeck/internal/exitcode"
	"taskdeck/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd opens the interactive board.
type UICmd struct {
	noMouse bool
	run     func(ctx context.Context, opts tui.Options) error
}

// SetRunner replaces the board runner (for testing).
func (c *UICmd) SetRunner(run func(ctx context.Context, opts tui.Options) error) {
	c.run = run
}

func (c *UICmd) Name() string       { return "ui" }
func (c *UICmd) Aliases() []string  { return []string{"board"} }
func (c *UICmd) Synopsis() string   { return "Open the interactive board" }
func (c *UICmd) Usage() string      { return "taskdeck ui [--no-mouse]" }
func (c *UICmd) NeedsBackend() bool { return true }
func (c *UICmd) Interactive() bool  { return true }

func (c *UICmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&c.noMouse, "no-mouse", false, "")
}

func (c *UICmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	run := c.run
	if run == nil {
		run = tui.Run
	}
	err := run(ctx, tui.Options{
		Service:  env.Service,
		Log:      env.Log,
		Location: env.Location,
		Mouse:    !c.noMouse,
	})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
