package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"taskdeck/internal/exitcode"
	"taskdeck/internal/form"
	"taskdeck/internal/output"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	title       string
	description string
}

// SetFields sets the title and description (for testing).
func (c *AddCmd) SetFields(title, description string) {
	c.title = title
	c.description = description
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskdeck add --description <text> [--title <text> | <title...>]"
}
func (c *AddCmd) NeedsBackend() bool { return true }
func (c *AddCmd) Interactive() bool  { return false }

func (c *AddCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.title, "title", "t", "", "")
	fs.StringVarP(&c.description, "description", "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	title := c.title
	if title == "" && len(args) > 0 {
		title = strings.Join(args, " ")
	} else if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	f := &form.Form{Title: title, Description: c.description}
	task, err := f.Submit(ctx, env.Service)
	if err != nil {
		if errors.Is(err, form.ErrEmptyFields) {
			fmt.Fprintf(errOut, "error: %s\n", form.EmptyFieldsMessage)
			return exitcode.UserError
		}
		env.Log.Warnw("create failed", "error", err)
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	if !env.Config.Quiet {
		output.FormatCreated(out, task, env.Location)
	}
	return exitcode.Success
}
