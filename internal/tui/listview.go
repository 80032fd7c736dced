package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/output"
	"taskdeck/internal/service"
)

const (
	// CompleteFailedMessage is shown when a completion request fails.
	CompleteFailedMessage = "Error completing task: Please try again"

	DoneLabel    = "Done"
	MarkingLabel = "Marking..."
)

// itemView is the per-task completion affordance.
type itemView struct {
	completing bool
}

func (i itemView) label() string {
	if i.completing {
		return MarkingLabel
	}
	return DoneLabel
}

// listPane renders the collection inside a scrollable viewport.
type listPane struct {
	vp       viewport.Model
	locked   bool
	offsets  []int // first content line of each task
	location *time.Location
}

func newListPane(loc *time.Location) *listPane {
	vp := viewport.New(50, 10)
	vp.MouseWheelEnabled = true
	if loc == nil {
		loc = time.Local
	}
	return &listPane{vp: vp, location: loc}
}

// SetScrollLocked implements modal.ScrollLocker.
func (p *listPane) SetScrollLocked(locked bool) {
	p.locked = locked
	p.vp.MouseWheelEnabled = !locked
}

func (p *listPane) ScrollLocked() bool { return p.locked }

func (p *listPane) setSize(w, h int) {
	p.vp.Width = w
	p.vp.Height = h
}

// update forwards scrolling input unless the dialog has locked it.
func (p *listPane) update(msg tea.Msg) tea.Cmd {
	if p.locked {
		return nil
	}
	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return cmd
}

// render rebuilds the viewport content. status replaces the list while the
// initial load is outstanding or after it failed.
func (p *listPane) render(tasks []service.Task, items map[service.TaskID]*itemView, cursor int, focused bool, status string, statusIsError bool) {
	var lines []string
	p.offsets = p.offsets[:0]

	lines = append(lines, sectionTitleStyle.Render(output.ListHeading))
	switch {
	case status != "" && statusIsError:
		lines = append(lines, errorTextStyle.Render(status))
	case status != "":
		lines = append(lines, mutedStyle.Render(status))
	case len(tasks) == 0:
		lines = append(lines, mutedStyle.Render(output.EmptyMessage))
	default:
		lines = append(lines, mutedStyle.Render(output.CountSummary(len(tasks))))
		for i, task := range tasks {
			lines = append(lines, "")
			p.offsets = append(p.offsets, len(lines))
			item := items[task.ID]
			if item == nil {
				item = &itemView{}
			}
			lines = append(lines, p.renderItem(task, *item, focused && i == cursor)...)
		}
	}
	p.vp.SetContent(strings.Join(lines, "\n"))
}

func (p *listPane) renderItem(task service.Task, item itemView, selected bool) []string {
	marker := "  "
	title := cardTitleStyle
	if selected {
		marker = "▸ "
		title = selectedCardTitleStyle
	}

	button := doneButtonStyle
	if item.completing {
		button = disabledButtonStyle
	}

	lines := []string{marker + title.Render(output.NormalizeTitle(task.Title)) + "  " + button.Render("["+item.label()+"]")}
	for _, l := range strings.Split(strings.TrimRight(task.Description, "\n"), "\n") {
		lines = append(lines, "  "+l)
	}
	lines = append(lines, "  "+mutedStyle.Render(output.Created(task, p.location)))
	return lines
}

// ensureVisible scrolls so the cursor's task is on screen.
func (p *listPane) ensureVisible(cursor int) {
	if p.locked || cursor < 0 || cursor >= len(p.offsets) {
		return
	}
	top := p.offsets[cursor]
	bottom := p.vp.TotalLineCount() - 1
	if cursor+1 < len(p.offsets) {
		bottom = p.offsets[cursor+1] - 2
	}
	switch {
	case top < p.vp.YOffset:
		p.vp.SetYOffset(top)
	case bottom >= p.vp.YOffset+p.vp.Height:
		p.vp.SetYOffset(bottom - p.vp.Height + 1)
	}
}

func (p *listPane) view(focused bool) string {
	pane := paneStyle
	if focused {
		pane = focusedPaneStyle
	}
	return pane.Render(p.vp.View())
}
