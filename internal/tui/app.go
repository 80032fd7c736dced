package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/logging"
	"taskdeck/internal/service"
)

// Options configures Run.
type Options struct {
	Service  service.Service
	Log      *logging.Logger
	Location *time.Location

	// Mouse enables click-to-dismiss on the dialog backdrop and wheel scrolling.
	Mouse bool
}

// Run starts the board and blocks until the user quits or ctx is canceled.
func Run(ctx context.Context, opts Options) error {
	m := NewModel(ctx, opts.Service, opts.Log, opts.Location)
	defer m.modal.Teardown()

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}

	_, err := tea.NewProgram(m, progOpts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
